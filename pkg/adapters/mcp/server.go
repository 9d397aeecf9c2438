package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/compiler"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/pkg/convert"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	DocumentURI    = "arbor://document"
	RawDocumentURI = "arbor://document/raw"
	GraphURI       = "arbor://graph"
	HistoryURI     = "arbor://history"
)

// OutcomeResponse is the structured result of every command tool.
type OutcomeResponse struct {
	Applied       bool                 `json:"applied" jsonschema_description:"Whether the command changed the document"`
	Reason        string               `json:"reason,omitempty" jsonschema_description:"Why the command was refused"`
	OperationType domain.OperationType `json:"operationType,omitempty" jsonschema_description:"Kind of change that was applied"`
	Description   string               `json:"description,omitempty"`
	Affected      []string             `json:"affectedNodeUuids,omitempty"`
	Revision      string               `json:"revision,omitempty"`
	CanUndo       bool                 `json:"canUndo"`
	CanRedo       bool                 `json:"canRedo"`
	ReadOnly      bool                 `json:"readOnly"`
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

// Server exposes one editor as an MCP server. Editor calls are serialized.
type Server struct {
	mu        sync.Mutex
	editor    *arbor.Editor
	parser    *compiler.Parser
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for tool calls.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance over ed.
func NewServer(ed *arbor.Editor, opts ...Option) *Server {
	s := &Server{
		editor:    ed,
		parser:    compiler.NewParser(),
		logger:    slog.Default(),
		mcpServer: server.NewMCPServer("arbor-mcp", strings.TrimSpace(arbor.Version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// commandTool describes one editor command published as a tool. The tool
// name is the lower-cased op.
type commandTool struct {
	op     string
	desc   string
	params []mcp.ToolOption
}

func (c commandTool) name() string {
	return strings.ToLower(c.op)
}

func nodeParam(name, desc string) mcp.ToolOption {
	return mcp.WithString(name, mcp.Required(), mcp.Description(desc))
}

var nodeTypes = func() []string {
	out := make([]string, 0, len(domain.TypeHierarchy)+1)
	for _, t := range domain.TypeHierarchy {
		out = append(out, string(t))
	}
	return append(out, string(domain.NodeTypeGeneral))
}()

var commandTools = []commandTool{
	{
		op:   string(domain.ActionUpdateNodeText),
		desc: "Rename a node.",
		params: []mcp.ToolOption{
			nodeParam("nodeUuid", "Node to rename"),
			mcp.WithString("name", mcp.Required(), mcp.Description("New text")),
		},
	},
	{
		op:   string(domain.ActionUpdateNodeType),
		desc: "Change the type of a node.",
		params: []mcp.ToolOption{
			nodeParam("nodeUuid", "Node to change"),
			mcp.WithString("nodeType", mcp.Required(), mcp.Enum(nodeTypes...)),
		},
	},
	{
		op:   string(domain.ActionUpdateNodePriority),
		desc: "Set or clear the priority of a node.",
		params: []mcp.ToolOption{
			nodeParam("nodeUuid", "Node to change"),
			mcp.WithString("priorityLevel", mcp.Enum("", "0", "1", "2", "3"), mcp.Description("0 (highest) to 3; empty clears the priority")),
		},
	},
	{
		op:   string(domain.ActionUpdateNodeSize),
		desc: "Report the measured size of a node. Durable sizes re-lay out the map and can be undone.",
		params: []mcp.ToolOption{
			nodeParam("nodeUuid", "Measured node"),
			mcp.WithNumber("width", mcp.Required(), mcp.Min(0)),
			mcp.WithNumber("height", mcp.Required(), mcp.Min(0)),
			mcp.WithBoolean("durable", mcp.Description("Record the size as an undoable change")),
		},
	},
	{
		op:   string(domain.ActionReorderNode),
		desc: "Move a node before or after one of its siblings. Steps cannot move ahead of preconditions.",
		params: []mcp.ToolOption{
			nodeParam("draggedNodeUuid", "Node being moved"),
			nodeParam("targetSiblingUuid", "Sibling the node is placed next to"),
			mcp.WithString("position", mcp.Required(), mcp.Enum(string(domain.Before), string(domain.After))),
		},
	},
	{
		op:   string(domain.ActionReparentNode),
		desc: "Move a node under a new parent.",
		params: []mcp.ToolOption{
			nodeParam("nodeUuid", "Node being moved"),
			nodeParam("newParentUuid", "New parent"),
			mcp.WithString("oldParentUuid", mcp.Description("Current parent (optional)")),
		},
	},
	{
		op:     string(domain.ActionToggleNodeCollapse),
		desc:   "Collapse an expanded node or expand a collapsed one.",
		params: []mcp.ToolOption{nodeParam("nodeUuid", "Node to toggle")},
	},
	{
		op:   string(domain.ActionExpandNodes),
		desc: "Expand the listed nodes.",
		params: []mcp.ToolOption{
			mcp.WithArray("nodeUuids", mcp.Required(), mcp.Items(map[string]any{"type": "string"})),
		},
	},
	{op: string(domain.ActionExpandAllNodes), desc: "Expand every node."},
	{op: string(domain.ActionCollapseAllNodes), desc: "Collapse every node that has children."},
	{
		op:   string(domain.ActionExpandToLevel),
		desc: "Expand the map down to the levels of the target types.",
		params: []mcp.ToolOption{
			mcp.WithArray("targetTypes", mcp.Required(), mcp.Items(map[string]any{"type": "string", "enum": nodeTypes})),
		},
	},
	{
		op:   string(domain.ActionCollapseToLevel),
		desc: "Collapse every node of the target types.",
		params: []mcp.ToolOption{
			mcp.WithArray("targetTypes", mcp.Required(), mcp.Items(map[string]any{"type": "string", "enum": nodeTypes})),
		},
	},
	{
		op:     compiler.OpAddChildNode,
		desc:   "Append a new node under a parent.",
		params: []mcp.ToolOption{nodeParam("parentUuid", "Parent of the new node")},
	},
	{
		op:     compiler.OpAddSiblingNode,
		desc:   "Insert a new node right after a sibling.",
		params: []mcp.ToolOption{nodeParam("siblingUuid", "Sibling of the new node")},
	},
	{
		op:     string(domain.ActionDeleteNode),
		desc:   "Delete a node and its whole subtree.",
		params: []mcp.ToolOption{nodeParam("nodeUuid", "Node to delete")},
	},
	{op: compiler.OpAutoLayout, desc: "Recompute every node position."},
	{op: string(domain.ActionUndo), desc: "Undo the last change."},
	{op: string(domain.ActionRedo), desc: "Redo the last undone change."},
	{op: string(domain.ActionClearHistory), desc: "Keep the current document as a fresh baseline."},
	{op: compiler.OpSave, desc: "Save the current document."},
	{
		op:     compiler.OpExecuteUseCase,
		desc:   "Request execution of a USE_CASE node.",
		params: []mcp.ToolOption{nodeParam("nodeUuid", "USE_CASE node to execute")},
	},
	{
		op:   compiler.OpSetReadOnly,
		desc: "Turn read-only mode on or off.",
		params: []mcp.ToolOption{
			mcp.WithBoolean("readOnly", mcp.Required()),
		},
	},
}

func (s *Server) registerTools() {
	for _, c := range commandTools {
		opts := append([]mcp.ToolOption{
			mcp.WithDescription(c.desc),
			mcp.WithOutputSchema[OutcomeResponse](),
		}, c.params...)
		s.mcpServer.AddTool(mcp.NewTool(c.name(), opts...), mcp.NewStructuredToolHandler(s.commandHandler(c.op)))
	}

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Render the document as a Mermaid flowchart."),
		mcp.WithString("current", mcp.Description("Node to highlight (optional)")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var overlay *graph.GraphOverlay
		if current := request.GetString("current", ""); current != "" {
			overlay = &graph.GraphOverlay{CurrentNode: current}
		}
		return mcp.NewToolResultText(graph.GenerateMermaid(s.document(), overlay)), nil
	})

	s.mcpServer.AddTool(mcp.NewTool("get_history",
		mcp.WithDescription("Summarize the undo and redo stacks."),
		mcp.WithOutputSchema[HistoryResponse](),
	), mcp.NewStructuredToolHandler(func(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (HistoryResponse, error) {
		return s.history(), nil
	}))
}

// commandHandler compiles the tool arguments as a script step for op and
// routes it to the editor.
func (s *Server) commandHandler(op string) func(context.Context, mcp.CallToolRequest, map[string]any) (OutcomeResponse, error) {
	return func(ctx context.Context, request mcp.CallToolRequest, args map[string]any) (OutcomeResponse, error) {
		cmd, err := s.parser.Compile(compiler.Step{Op: op, Args: args})
		if err != nil {
			s.logger.Warn("MCP: invalid command", "op", op, "error", err)
			return OutcomeResponse{}, fmt.Errorf("invalid command: %w", err)
		}

		s.mu.Lock()
		defer s.mu.Unlock()

		out, err := cli.Route(s.editor, cmd)
		if err != nil {
			s.logger.Error("MCP: command failed", "op", op, "error", err)
			return OutcomeResponse{}, fmt.Errorf("%s failed: %w", op, err)
		}

		resp := OutcomeResponse{
			Applied:  out.Applied,
			CanUndo:  s.editor.CanUndo(),
			CanRedo:  s.editor.CanRedo(),
			ReadOnly: s.editor.ReadOnly(),
		}
		if c := out.Change; c != nil {
			resp.OperationType = c.OperationType
			resp.Description = c.Description
			resp.Affected = c.AffectedNodeUUIDs
			resp.Revision = c.Revision
		}
		if !out.Applied {
			resp.Reason = out.Err().Error()
		}
		return resp, nil
	}
}

func (s *Server) document() *domain.MindMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor.Document()
}

func (s *Server) history() HistoryResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.editor.History()
	return HistoryResponse{
		CanUndo:  h.CanUndo(),
		CanRedo:  h.CanRedo(),
		Past:     len(h.Past),
		Future:   len(h.Future),
		Dirty:    h.IsDirty(),
		ReadOnly: s.editor.ReadOnly(),
	}
}

func (s *Server) registerResources() {
	s.addJSONResource(DocumentURI, "Current Document", func() (any, error) {
		return s.document(), nil
	})
	s.addJSONResource(RawDocumentURI, "Current Document (hierarchical)", func() (any, error) {
		return convert.FromMindMap(s.document())
	})
	s.addJSONResource(HistoryURI, "Undo History", func() (any, error) {
		return s.history(), nil
	})

	s.mcpServer.AddResource(mcp.NewResource(GraphURI, "Mermaid Graph",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      GraphURI,
				MIMEType: "text/plain",
				Text:     graph.GenerateMermaid(s.document(), nil),
			},
		}, nil
	})
}

func (s *Server) addJSONResource(uri, name string, load func() (any, error)) {
	s.mcpServer.AddResource(mcp.NewResource(uri, name,
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		v, err := load()
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", uri, err)
		}
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", uri, err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}
