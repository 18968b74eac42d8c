package mcp

import "github.com/mark3labs/mcp-go/mcp"

func previewRewriteTool() mcp.Tool {
	return mcp.NewTool("preview_rewrite",
		mcp.WithDescription("Rewrite a Dart code snippet to themed components in memory. "+
			"Returns the rewritten code, per-rule replacement counts, and the imports the result needs. Never writes files."),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("Dart source code to rewrite"),
		),
		mcp.WithString("path",
			mcp.Description("Path of the document relative to the UI source root, used to compute relative import paths. "+
				"When omitted, needed imports are reported but not inserted."),
		),
	)
}

func triageCodeTool() mcp.Tool {
	return mcp.NewTool("triage_code",
		mcp.WithDescription("Report constructs in a Dart snippet that the rewrite rules deliberately decline "+
			"(parameterized variants outside the canonical shapes). Read-only."),
		mcp.WithString("code",
			mcp.Required(),
			mcp.Description("Dart source code to inspect"),
		),
	)
}

func listRulesTool() mcp.Tool {
	return mcp.NewTool("list_rules",
		mcp.WithDescription("List the active rewrite rules: name, trigger substring, and the canonical symbols they introduce."),
	)
}
