package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/skillvet/skillvet/internal/application"
	"github.com/skillvet/skillvet/internal/domain"
)

const (
	configURI = "skillvet://config"
	rulesURI  = "skillvet://rules"
)

// registerResources registers all skillvet MCP resources on the given server.
func registerResources(s *server.MCPServer, root string, loader domain.ConfigLoader) {
	// 1. skillvet://config - effective engine configuration
	s.AddResource(
		mcplib.NewResource(
			configURI,
			"Engine Config",
			mcplib.WithResourceDescription("Effective thresholds, categories, suspicious hosts and score weights for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(root, loader),
	)

	// 2. skillvet://rules - security rule table
	s.AddResource(
		mcplib.NewResource(
			rulesURI,
			"Security Rules",
			mcplib.WithResourceDescription("Security rule ids, severities and failure messages"),
			mcplib.WithMIMEType("application/json"),
		),
		handleRulesResource(root, loader),
	)
}

type ruleInfo struct {
	ID       string          `json:"id"`
	Severity domain.Severity `json:"severity"`
	Message  string          `json:"message"`
}

func handleConfigResource(root string, loader domain.ConfigLoader) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		eng, err := application.LoadEngine(ctx, loader, root)
		if err != nil {
			return nil, err
		}
		return jsonContents(configURI, eng.Config())
	}
}

func handleRulesResource(root string, loader domain.ConfigLoader) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		eng, err := application.LoadEngine(ctx, loader, root)
		if err != nil {
			return nil, err
		}

		rules := eng.Rules()
		infos := make([]ruleInfo, 0, len(rules))
		for _, r := range rules {
			infos = append(infos, ruleInfo{ID: r.ID, Severity: r.Severity, Message: r.Message})
		}
		return jsonContents(rulesURI, infos)
	}
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
