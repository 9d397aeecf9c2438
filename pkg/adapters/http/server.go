package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/compiler"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/convert"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/schema"
	"github.com/aretw0/arbor/pkg/snapshot"
	"github.com/go-chi/chi/v5"
)

// maxBodySize bounds request bodies; documents are the largest payload.
const maxBodySize = 8 << 20

// Server exposes one editor over HTTP. Editor calls are serialized.
type Server struct {
	mu      sync.Mutex
	editor  *arbor.Editor
	parser  *compiler.Parser
	streams *StreamManager
	metrics http.Handler
	logger  *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithMetricsHandler mounts h on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler for ed. Change events are published on
// streams, which must also be wired into the editor hooks (see StreamManager.Hooks).
func NewHandler(ed *arbor.Editor, streams *StreamManager, opts ...Option) http.Handler {
	s := &Server{
		editor:  ed,
		parser:  compiler.NewParser(),
		streams: streams,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.streams == nil {
		s.streams = NewStreamManager()
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/document", s.GetDocument)
	r.Put("/document", s.PutDocument)
	r.Get("/snapshot", s.GetSnapshot)
	r.Get("/history", s.GetHistory)
	r.Get("/graph", s.GetGraph)
	r.Post("/commands", s.PostCommand)
	r.Post("/undo", s.PostUndo)
	r.Post("/redo", s.PostRedo)
	r.Post("/save", s.PostSave)
	r.Put("/read-only", s.PutReadOnly)
	r.Get("/events", s.SubscribeEvents)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Custom-Header")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// OutcomeResponse is the body returned by every command endpoint.
type OutcomeResponse struct {
	Applied       bool                 `json:"applied"`
	Reason        string               `json:"reason,omitempty"`
	OperationType domain.OperationType `json:"operationType,omitempty"`
	Description   string               `json:"description,omitempty"`
	Affected      []string             `json:"affectedNodeUuids,omitempty"`
	Revision      string               `json:"revision,omitempty"`
}

// HistoryResponse summarizes the undo stacks.
type HistoryResponse struct {
	CanUndo  bool `json:"canUndo"`
	CanRedo  bool `json:"canRedo"`
	Past     int  `json:"past"`
	Future   int  `json:"future"`
	Dirty    bool `json:"dirty"`
	ReadOnly bool `json:"readOnly"`
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "arbor-http",
		"version": strings.TrimSpace(arbor.Version),
	})
}

// GetDocument handles the GET /document request. ?format=raw returns the
// hierarchical interchange form instead of the flat store.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	doc := s.editor.Document()
	s.mu.Unlock()

	if r.URL.Query().Get("format") != "raw" {
		writeJSON(w, http.StatusOK, doc)
		return
	}
	raw, err := convert.FromMindMap(doc)
	if err != nil {
		http.Error(w, fmt.Sprintf("Convert error: %v", err), http.StatusInternalServerError)
		s.logger.Error("GetDocument: convert failed", "error", err)
		return
	}
	writeJSON(w, http.StatusOK, raw)
}

// PutDocument handles the PUT /document request: a raw hierarchical document
// replaces the present one and the editor returns to read-only mode.
func (s *Server) PutDocument(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	format := schema.FormatJSON
	if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
		format = schema.FormatYAML
	}
	raw, err := schema.Decode(body, format)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid document: %v", err), http.StatusBadRequest)
		s.logger.Warn("PutDocument: decode failed", "error", err)
		return
	}
	doc, err := convert.ToMindMap(raw)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid document: %v", err), http.StatusUnprocessableEntity)
		s.logger.Warn("PutDocument: convert failed", "error", err)
		return
	}

	s.mu.Lock()
	err = s.editor.Commands().SetData(doc)
	s.mu.Unlock()
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	s.logger.Info("document replaced", "nodes", doc.Len())
	writeJSON(w, http.StatusOK, OutcomeResponse{Applied: true, OperationType: domain.OpLoadData, Description: "Data replaced"})
}

// GetSnapshot handles the GET /snapshot request with the CBOR encoding of the document.
func (s *Server) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	doc := s.editor.Document()
	s.mu.Unlock()

	data, err := snapshot.Encode(doc)
	if err != nil {
		http.Error(w, fmt.Sprintf("Snapshot error: %v", err), http.StatusInternalServerError)
		s.logger.Error("GetSnapshot failed", "error", err)
		return
	}
	if rev, err := snapshot.Fingerprint(doc); err == nil {
		w.Header().Set("ETag", `"`+rev+`"`)
	}
	w.Header().Set("Content-Type", "application/cbor")
	w.Write(data)
}

// GetHistory handles the GET /history request.
func (s *Server) GetHistory(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	h := s.editor.History()
	readOnly := s.editor.ReadOnly()
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, HistoryResponse{
		CanUndo:  h.CanUndo(),
		CanRedo:  h.CanRedo(),
		Past:     len(h.Past),
		Future:   len(h.Future),
		Dirty:    h.IsDirty(),
		ReadOnly: readOnly,
	})
}

// GetGraph handles the GET /graph request with a Mermaid rendering of the document.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	doc := s.editor.Document()
	s.mu.Unlock()

	var overlay *graph.GraphOverlay
	if current := r.URL.Query().Get("current"); current != "" {
		overlay = &graph.GraphOverlay{CurrentNode: current}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, graph.GenerateMermaid(doc, overlay))
}

// PostCommand handles the POST /commands request: one script step, e.g.
// {"op":"REORDER_NODE","args":{"draggedNodeUuid":"a","targetSiblingUuid":"b","position":"before"}}.
func (s *Server) PostCommand(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	cmd, err := s.parser.ParseStep(body)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid command: %v", err), http.StatusBadRequest)
		s.logger.Warn("PostCommand: invalid command", "error", err)
		return
	}

	s.mu.Lock()
	out, err := cli.Route(s.editor, cmd)
	s.mu.Unlock()
	if err != nil {
		http.Error(w, fmt.Sprintf("Command error: %v", err), http.StatusInternalServerError)
		s.logger.Error("PostCommand failed", "op", cmd.Op(), "error", err)
		return
	}
	s.writeOutcome(w, out)
}

// PostUndo handles the POST /undo request.
func (s *Server) PostUndo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := s.editor.Undo()
	s.mu.Unlock()
	s.writeOutcome(w, out)
}

// PostRedo handles the POST /redo request.
func (s *Server) PostRedo(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := s.editor.Redo()
	s.mu.Unlock()
	s.writeOutcome(w, out)
}

// PostSave handles the POST /save request.
func (s *Server) PostSave(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	info, err := s.editor.Commands().Save()
	s.mu.Unlock()
	if err != nil {
		http.Error(w, fmt.Sprintf("Save error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Save failed", "error", err)
		return
	}
	s.writeOutcome(w, domain.Accepted(info))
}

// PutReadOnly handles the PUT /read-only request with body {"readOnly": bool}.
func (s *Server) PutReadOnly(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ReadOnly *bool `json:"readOnly"`
	}
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodySize)).Decode(&body); err != nil || body.ReadOnly == nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.editor.Commands().SetReadOnly(*body.ReadOnly)
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, map[string]bool{"readOnly": *body.ReadOnly})
}

// SubscribeEvents handles the GET /events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	// Parse 'watch' filter: a comma separated list of operation types
	var watch map[string]bool
	if v := r.URL.Query().Get("watch"); v != "" {
		watch = make(map[string]bool)
		for _, op := range strings.Split(v, ",") {
			watch[strings.ToUpper(strings.TrimSpace(op))] = true
		}
	}

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE client disconnected")
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if watch != nil && !watch[string(ev.OperationType)] {
				continue
			}
			data, err := json.Marshal(ev)
			if err != nil {
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", strings.ToLower(string(ev.OperationType)), data)
			flusher.Flush()
		}
	}
}

func (s *Server) writeOutcome(w http.ResponseWriter, out domain.Outcome) {
	resp := OutcomeResponse{Applied: out.Applied}
	if c := out.Change; c != nil {
		resp.OperationType = c.OperationType
		resp.Description = c.Description
		resp.Affected = c.AffectedNodeUUIDs
		resp.Revision = c.Revision
	}
	if !out.Applied {
		resp.Reason = out.Err().Error()
		writeJSON(w, statusFor(out.Err()), resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// statusFor maps a rejection reason to a response status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrReadOnly), errors.Is(err, domain.ErrUseCaseExecutionDisabled):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrUnsupportedAction):
		return http.StatusBadRequest
	default:
		return http.StatusConflict
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
