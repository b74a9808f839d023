// Package mcp exposes the idea engine as MCP tools over stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/asismo/idea-management-mvp/internal/app"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"idea_capture": {
		def:     captureToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCapture },
	},
	"idea_list": {
		def:     ideaListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleIdeaList },
	},
	"idea_update": {
		def:     ideaUpdateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleIdeaUpdate },
	},
	"idea_delete": {
		def:     ideaDeleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleIdeaDelete },
	},
	"idea_search": {
		def:     searchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSearch },
	},
	"idea_export": {
		def:     exportToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleExport },
	},
	"folder_list": {
		def:     folderListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFolderList },
	},
	"folder_create": {
		def:     folderCreateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFolderCreate },
	},
	"folder_merge": {
		def:     folderMergeToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFolderMerge },
	},
	"folder_delete": {
		def:     folderDeleteToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFolderDelete },
	},
	"folder_describe": {
		def:     folderDescribeToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFolderDescribe },
	},
	"settings_get": {
		def:     settingsGetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSettingsGet },
	},
	"settings_update": {
		def:     settingsUpdateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSettingsUpdate },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// NewServer creates a new MCP server with the idea tools registered.
func NewServer(a *app.App, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"ideas",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(a)
	for _, entry := range toolRegistry {
		s.AddTool(entry.def, entry.handler(h))
	}
	return s
}

// Run starts the MCP server using stdio transport.
func Run(a *app.App, version string) error {
	s := NewServer(a, version)
	return server.ServeStdio(s)
}
