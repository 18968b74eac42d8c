package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/thememig/pkg/rules"
)

// --- helpers ---

func testServer() *Server {
	return NewServer(rules.Rules(), rules.TriageChecks(), nil)
}

func callTool(t *testing.T, s *Server, req mcp.CallToolRequest) *mcp.CallToolResult {
	t.Helper()
	var handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

	switch req.Params.Name {
	case "preview_rewrite":
		handler = s.handlePreviewRewrite
	case "triage_code":
		handler = s.handleTriageCode
	case "list_rules":
		handler = s.handleListRules
	default:
		t.Fatalf("unknown tool: %s", req.Params.Name)
	}

	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func makeRequest(toolName string, args map[string]any) mcp.CallToolRequest {
	var arguments any
	if args != nil {
		arguments = args
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      toolName,
			Arguments: arguments,
		},
	}
}

func resultJSON(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return textContent.Text
}

// --- preview_rewrite ---

func TestHandlePreviewRewrite_Basic(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("preview_rewrite", map[string]any{
		"code": "const Divider(),",
	}))
	assert.False(t, result.IsError)

	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &resp))
	assert.Equal(t, "const ThemedDivider(),", resp["code"])
	assert.Equal(t, true, resp["changed"])
	assert.Equal(t, float64(1), resp["total"])

	needed, ok := resp["needed_imports"].([]any)
	require.True(t, ok)
	require.Len(t, needed, 1)
	first := needed[0].(map[string]any)
	assert.Equal(t, "ThemedDivider", first["symbol"])
	assert.Equal(t, "widgets/common/themed_divider.dart", first["module_path"])
	assert.Equal(t, float64(0), resp["imports_added"])
}

func TestHandlePreviewRewrite_WithPathReconcilesImports(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("preview_rewrite", map[string]any{
		"code": "const Divider(),",
		"path": "screens/panel.dart",
	}))
	assert.False(t, result.IsError)

	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &resp))
	assert.Equal(t, float64(1), resp["imports_added"])
	assert.Contains(t, resp["code"], "import '../widgets/common/themed_divider.dart';")
}

func TestHandlePreviewRewrite_NoChange(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("preview_rewrite", map[string]any{
		"code": "Text('hello'),",
	}))
	assert.False(t, result.IsError)

	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &resp))
	assert.Equal(t, "Text('hello'),", resp["code"])
	assert.Equal(t, false, resp["changed"])
	assert.Equal(t, float64(0), resp["total"])
}

func TestHandlePreviewRewrite_MissingCode(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("preview_rewrite", nil))
	assert.True(t, result.IsError)
}

// --- triage_code ---

func TestHandleTriageCode_FlagsColoredDivider(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("triage_code", map[string]any{
		"code": "Text('x'),\nDivider(color: Colors.red),",
	}))
	assert.False(t, result.IsError)

	var resp struct {
		Entries []struct {
			Rule   string `json:"rule"`
			Reason string `json:"reason"`
			Line   int    `json:"line"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &resp))
	require.Len(t, resp.Entries, 1)
	assert.Equal(t, "divider", resp.Entries[0].Rule)
	assert.Equal(t, 2, resp.Entries[0].Line)
}

func TestHandleTriageCode_CleanCodeEmptyList(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("triage_code", map[string]any{
		"code": "const ThemedDivider(),",
	}))
	assert.False(t, result.IsError)

	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &resp))
	entries, ok := resp["entries"].([]any)
	require.True(t, ok, "entries must be a JSON array even when empty")
	assert.Empty(t, entries)
}

func TestHandleTriageCode_MissingCode(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("triage_code", nil))
	assert.True(t, result.IsError)
}

// --- list_rules ---

func TestHandleListRules(t *testing.T) {
	s := testServer()
	result := callTool(t, s, makeRequest("list_rules", nil))
	assert.False(t, result.IsError)

	var infos []struct {
		Name    string   `json:"name"`
		Trigger string   `json:"trigger"`
		Symbols []string `json:"symbols"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &infos))
	require.Len(t, infos, 5)
	assert.Equal(t, "border-side", infos[0].Name)
	assert.Equal(t, []string{"ThemedBorder"}, infos[0].Symbols)

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	assert.Contains(t, names, "text-field")
	assert.Contains(t, names, "vertical-divider")
}
