package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/testutils"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, opts ...arbor.Option) (*Server, *arbor.Editor) {
	t.Helper()
	base := []arbor.Option{arbor.WithReadOnly(false)}
	ed, err := arbor.New(testutils.Sample().Measured(100, 40).Build(), append(base, opts...)...)
	require.NoError(t, err)

	s := NewServer(ed)
	rpc(t, s, "initialize", map[string]any{
		"protocolVersion": "2025-03-26",
		"clientInfo":      map[string]any{"name": "arbor-test", "version": "0.0.0"},
		"capabilities":    map[string]any{},
	})
	return s, ed
}

var rpcID int

// rpc sends one JSON-RPC request and returns the decoded result.
func rpc(t *testing.T, s *Server, method string, params any) json.RawMessage {
	t.Helper()
	rpcID++
	req, err := json.Marshal(map[string]any{
		"jsonrpc": "2.0",
		"id":      rpcID,
		"method":  method,
		"params":  params,
	})
	require.NoError(t, err)

	raw, err := json.Marshal(s.MCPServer().HandleMessage(context.Background(), req))
	require.NoError(t, err)

	var resp struct {
		Result json.RawMessage `json:"result"`
		Error  *struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(raw, &resp))
	require.Nil(t, resp.Error, "%s failed: %s", method, raw)
	return resp.Result
}

type toolResult struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
	StructuredContent json.RawMessage `json:"structuredContent"`
	IsError           bool            `json:"isError"`
}

func callTool(t *testing.T, s *Server, name string, args map[string]any) toolResult {
	t.Helper()
	var res toolResult
	require.NoError(t, json.Unmarshal(rpc(t, s, "tools/call", map[string]any{
		"name":      name,
		"arguments": args,
	}), &res))
	return res
}

func callCommand(t *testing.T, s *Server, name string, args map[string]any) OutcomeResponse {
	t.Helper()
	res := callTool(t, s, name, args)
	require.False(t, res.IsError, "%s returned an error: %+v", name, res.Content)

	var out OutcomeResponse
	require.NoError(t, json.Unmarshal(res.StructuredContent, &out))
	return out
}

func readResource(t *testing.T, s *Server, uri string) string {
	t.Helper()
	var res struct {
		Contents []struct {
			URI      string `json:"uri"`
			MIMEType string `json:"mimeType"`
			Text     string `json:"text"`
		} `json:"contents"`
	}
	require.NoError(t, json.Unmarshal(rpc(t, s, "resources/read", map[string]any{"uri": uri}), &res))
	require.Len(t, res.Contents, 1)
	assert.Equal(t, uri, res.Contents[0].URI)
	return res.Contents[0].Text
}

func TestServer_ListsOneToolPerCommand(t *testing.T) {
	s, _ := newTestServer(t)

	var res struct {
		Tools []struct {
			Name string `json:"name"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(rpc(t, s, "tools/list", map[string]any{}), &res))

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.Len(t, names, len(commandTools)+2)
	for _, want := range []string{
		"reorder_node", "add_child_node", "add_sibling_node", "delete_node",
		"undo", "redo", "save", "execute_use_case", "set_read_only",
		"get_graph", "get_history",
	} {
		assert.Contains(t, names, want)
	}
}

func TestServer_CommandTools(t *testing.T) {
	tests := []struct {
		name    string
		tool    string
		args    map[string]any
		applied bool
		opType  domain.OperationType
		reason  error
		check   func(t *testing.T, ed *arbor.Editor)
	}{
		{
			name:    "reorder step among steps",
			tool:    "reorder_node",
			args:    map[string]any{"draggedNodeUuid": "s3", "targetSiblingUuid": "s1", "position": "before"},
			applied: true,
			opType:  domain.OpReorderNode,
			check: func(t *testing.T, ed *arbor.Editor) {
				assert.Equal(t, []string{"p1", "s3", "s1", "s2"}, ed.Document().Nodes["uc1"].ChildNodeList)
			},
		},
		{
			name:   "step ahead of precondition is refused",
			tool:   "reorder_node",
			args:   map[string]any{"draggedNodeUuid": "s1", "targetSiblingUuid": "p1", "position": "before"},
			reason: domain.ErrStepBeforePrecondition,
			check: func(t *testing.T, ed *arbor.Editor) {
				assert.Equal(t, []string{"p1", "s1", "s2", "s3"}, ed.Document().Nodes["uc1"].ChildNodeList)
			},
		},
		{
			name:    "add child",
			tool:    "add_child_node",
			args:    map[string]any{"parentUuid": "uc1"},
			applied: true,
			opType:  domain.OpAddNode,
			check: func(t *testing.T, ed *arbor.Editor) {
				assert.Len(t, ed.Document().Nodes["uc1"].ChildNodeList, 5)
			},
		},
		{
			name:    "delete subtree",
			tool:    "delete_node",
			args:    map[string]any{"nodeUuid": "s1"},
			applied: true,
			opType:  domain.OpDeleteNode,
			check: func(t *testing.T, ed *arbor.Editor) {
				_, ok := ed.Document().Node("r1")
				assert.False(t, ok)
			},
		},
		{
			name:   "unknown node",
			tool:   "delete_node",
			args:   map[string]any{"nodeUuid": "ghost"},
			reason: domain.ErrNodeNotFound,
		},
		{
			name:    "save",
			tool:    "save",
			applied: true,
			opType:  domain.OpSave,
		},
		{
			name:    "execute use case",
			tool:    "execute_use_case",
			args:    map[string]any{"nodeUuid": "uc1"},
			applied: true,
			opType:  domain.OpExecuteUseCase,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, ed := newTestServer(t)

			out := callCommand(t, s, tt.tool, tt.args)

			assert.Equal(t, tt.applied, out.Applied)
			if tt.applied {
				assert.Equal(t, tt.opType, out.OperationType)
				assert.Empty(t, out.Reason)
			}
			if tt.reason != nil {
				assert.Contains(t, out.Reason, tt.reason.Error())
			}
			if tt.check != nil {
				tt.check(t, ed)
			}
		})
	}
}

func TestServer_UndoRedo(t *testing.T) {
	s, ed := newTestServer(t)
	start := ed.Document()

	out := callCommand(t, s, "reorder_node", map[string]any{"draggedNodeUuid": "s3", "targetSiblingUuid": "s1", "position": "before"})
	require.True(t, out.Applied)
	assert.True(t, out.CanUndo)
	assert.False(t, out.CanRedo)

	out = callCommand(t, s, "undo", nil)
	require.True(t, out.Applied)
	assert.Equal(t, domain.OpUndo, out.OperationType)
	assert.True(t, out.CanRedo)
	assert.Equal(t, start.Nodes["uc1"].ChildNodeList, ed.Document().Nodes["uc1"].ChildNodeList)

	out = callCommand(t, s, "redo", nil)
	require.True(t, out.Applied)
	assert.Equal(t, []string{"p1", "s3", "s1", "s2"}, ed.Document().Nodes["uc1"].ChildNodeList)

	var h HistoryResponse
	res := callTool(t, s, "get_history", nil)
	require.False(t, res.IsError)
	require.NoError(t, json.Unmarshal(res.StructuredContent, &h))
	assert.Equal(t, 1, h.Past)
	assert.Equal(t, 0, h.Future)
	assert.True(t, h.Dirty)
}

func TestServer_ReadOnlyGate(t *testing.T) {
	s, ed := newTestServer(t)

	out := callCommand(t, s, "set_read_only", map[string]any{"readOnly": true})
	require.True(t, out.Applied)
	assert.True(t, out.ReadOnly)
	assert.True(t, ed.ReadOnly())

	out = callCommand(t, s, "delete_node", map[string]any{"nodeUuid": "m2"})
	assert.False(t, out.Applied)
	assert.Contains(t, out.Reason, domain.ErrReadOnly.Error())

	out = callCommand(t, s, "toggle_node_collapse", map[string]any{"nodeUuid": "m1"})
	assert.True(t, out.Applied, "collapse stays available while read-only")
}

func TestServer_InvalidArguments(t *testing.T) {
	s, ed := newTestServer(t)
	doc := ed.Document()

	res := callTool(t, s, "reorder_node", map[string]any{"draggedNodeUuid": "s3", "target": "s1"})
	assert.True(t, res.IsError)
	require.NotEmpty(t, res.Content)
	assert.Contains(t, res.Content[0].Text, "invalid command")
	assert.Same(t, doc, ed.Document())
}

func TestServer_Resources(t *testing.T) {
	s, _ := newTestServer(t)

	t.Run("Document", func(t *testing.T) {
		var doc domain.MindMap
		require.NoError(t, json.Unmarshal([]byte(readResource(t, s, DocumentURI)), &doc))
		assert.Equal(t, "root", doc.RootUUID)
		assert.Contains(t, doc.Nodes, "uc1")
	})

	t.Run("Raw Document", func(t *testing.T) {
		assert.Contains(t, readResource(t, s, RawDocumentURI), `"uc1"`)
	})

	t.Run("Graph", func(t *testing.T) {
		text := readResource(t, s, GraphURI)
		assert.Contains(t, text, "graph LR")
		assert.Contains(t, text, "n_uc1")
	})

	t.Run("History Follows Commands", func(t *testing.T) {
		callCommand(t, s, "delete_node", map[string]any{"nodeUuid": "m2"})
		var h HistoryResponse
		require.NoError(t, json.Unmarshal([]byte(readResource(t, s, HistoryURI)), &h))
		assert.True(t, h.CanUndo)
		assert.Equal(t, 1, h.Past)
	})
}

func TestServer_GraphTool(t *testing.T) {
	s, _ := newTestServer(t)

	res := callTool(t, s, "get_graph", map[string]any{"current": "s2"})
	require.False(t, res.IsError)
	require.NotEmpty(t, res.Content)
	assert.Contains(t, res.Content[0].Text, "class n_s2 current;")
}
