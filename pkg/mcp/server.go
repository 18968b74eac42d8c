// Package mcp exposes the rewrite engine to coding agents over the Model
// Context Protocol: preview a rewrite in memory, triage a snippet, and list
// the active rule catalog. Nothing here touches the file system.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/thememig/pkg/rewrite"
)

const serverVersion = "0.1.0-dev"

// Server implements the MCP server for thememig.
type Server struct {
	mcpServer *server.MCPServer
	rules     []rewrite.Rule
	rewriter  *rewrite.Rewriter
	checks    []rewrite.TriageCheck
	logger    *slog.Logger
}

// NewServer creates an MCP server over the given rule catalog and triage
// checks.
func NewServer(rules []rewrite.Rule, checks []rewrite.TriageCheck, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		rules:    rules,
		rewriter: rewrite.NewRewriter(rules, logger),
		checks:   checks,
		logger:   logger,
	}

	s.mcpServer = server.NewMCPServer(
		"thememig",
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: previewRewriteTool(), Handler: s.handlePreviewRewrite},
		server.ServerTool{Tool: triageCodeTool(), Handler: s.handleTriageCode},
		server.ServerTool{Tool: listRulesTool(), Handler: s.handleListRules},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
