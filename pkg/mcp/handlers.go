package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/thememig/pkg/imports"
	"github.com/gnana997/thememig/pkg/rewrite"
)

// previewResponse is the JSON payload returned by preview_rewrite.
type previewResponse struct {
	Code          string         `json:"code"`
	Changed       bool           `json:"changed"`
	Counts        map[string]int `json:"counts"`
	Total         int            `json:"total"`
	NeededImports []importInfo   `json:"needed_imports"`
	ImportsAdded  int            `json:"imports_added"`
}

type importInfo struct {
	Symbol     string `json:"symbol"`
	ModulePath string `json:"module_path"`
}

type triageResponse struct {
	Entries []rewrite.TriageEntry `json:"entries"`
}

type ruleInfo struct {
	Name    string   `json:"name"`
	Trigger string   `json:"trigger"`
	Symbols []string `json:"symbols"`
}

func (s *Server) handlePreviewRewrite(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := req.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	docPath := req.GetString("path", "")

	result := s.rewriter.Rewrite(code)

	resp := previewResponse{
		Code:    result.Output,
		Changed: result.Total > 0,
		Counts:  result.Counts,
		Total:   result.Total,
	}
	for _, ref := range result.NeededImports {
		resp.NeededImports = append(resp.NeededImports, importInfo{
			Symbol:     ref.Symbol,
			ModulePath: ref.ModulePath,
		})
	}
	if docPath != "" && len(result.NeededImports) > 0 {
		resp.Code, resp.ImportsAdded = imports.Reconcile(resp.Code, docPath, result.NeededImports)
	}

	return jsonResult(resp)
}

func (s *Server) handleTriageCode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := req.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	entries := rewrite.RunTriage(code, s.checks)
	if entries == nil {
		entries = []rewrite.TriageEntry{}
	}
	return jsonResult(triageResponse{Entries: entries})
}

func (s *Server) handleListRules(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	infos := make([]ruleInfo, 0, len(s.rules))
	for _, rule := range s.rules {
		symbols := make([]string, 0, len(rule.Imports))
		for _, ref := range rule.Imports {
			symbols = append(symbols, ref.Symbol)
		}
		infos = append(infos, ruleInfo{
			Name:    rule.Name,
			Trigger: rule.Trigger,
			Symbols: symbols,
		})
	}
	return jsonResult(infos)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
