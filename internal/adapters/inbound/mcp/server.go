package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/skillvet/skillvet/internal/domain"
)

// NewSkillvetMCPServer creates an MCP server with the skillvet tools and
// resources registered. Relative skill paths are resolved against root, and
// configuration is reloaded through loader on every call.
func NewSkillvetMCPServer(root string, loader domain.ConfigLoader) *server.MCPServer {
	s := server.NewMCPServer(
		"skillvet",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, root, loader)
	registerResources(s, root, loader)

	return s
}
