package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/skillvet/skillvet/internal/adapters/outbound/parser"
	"github.com/skillvet/skillvet/internal/application"
	"github.com/skillvet/skillvet/internal/domain"
	"github.com/skillvet/skillvet/internal/logger"
)

// skillOptions describes a submission either by path or inline.
func skillOptions() []mcplib.ToolOption {
	return []mcplib.ToolOption{
		mcplib.WithString("path",
			mcplib.Description("SKILL.md file or skill directory, relative to the project root. Takes precedence over the inline fields."),
		),
		mcplib.WithString("name", mcplib.Description("Skill name")),
		mcplib.WithString("description", mcplib.Description("One-line skill description")),
		mcplib.WithString("slug", mcplib.Description("Kebab-case identifier")),
		mcplib.WithString("category", mcplib.Description("Category slug")),
		mcplib.WithString("version", mcplib.Description("Semantic version, e.g. 1.2.0")),
		mcplib.WithArray("platforms",
			mcplib.Description("Target agent platforms"),
			mcplib.WithStringItems(),
		),
		mcplib.WithString("instructions", mcplib.Description("Markdown instructions body")),
	}
}

// registerTools registers all skillvet MCP tools on the given server.
func registerTools(s *server.MCPServer, root string, loader domain.ConfigLoader) {
	// 1. skillvet_validate
	s.AddTool(
		mcplib.NewTool("skillvet_validate",
			append([]mcplib.ToolOption{
				mcplib.WithDescription("Runs every check on a skill and returns the full validation report, including whether it can be published"),
			}, skillOptions()...)...,
		),
		handleValidate(root, loader),
	)

	// 2. skillvet_score
	s.AddTool(
		mcplib.NewTool("skillvet_score",
			append([]mcplib.ToolOption{
				mcplib.WithDescription("Returns the 0-100 quality score and grade of a skill"),
			}, skillOptions()...)...,
		),
		handleScore(root, loader),
	)

	// 3. skillvet_detailed_score
	s.AddTool(
		mcplib.NewTool("skillvet_detailed_score",
			append([]mcplib.ToolOption{
				mcplib.WithDescription("Returns the quality score split into schema and instructions parts, with each awarded bucket"),
			}, skillOptions()...)...,
		),
		handleDetailedScore(root, loader),
	)

	// 4. skillvet_scan
	s.AddTool(
		mcplib.NewTool("skillvet_scan",
			mcplib.WithDescription("Runs only the security rules over a file or a piece of text"),
			mcplib.WithString("path", mcplib.Description("File to scan, relative to the project root")),
			mcplib.WithString("text", mcplib.Description("Text to scan when no path is given")),
		),
		handleScan(root, loader),
	)
}

func handleValidate(root string, loader domain.ConfigLoader) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		in, base, err := resolveInput(root, request)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		eng, err := application.LoadEngine(ctx, loader, base)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		report := eng.ValidateSkill(in)
		logger.G(ctx).WithField("tool", "skillvet_validate").
			WithField("slug", report.Slug).
			WithField("publishable", report.Publishable).
			Info("tool called")
		return jsonResult(report)
	}
}

func handleScore(root string, loader domain.ConfigLoader) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		in, base, err := resolveInput(root, request)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		eng, err := application.LoadEngine(ctx, loader, base)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		logger.G(ctx).WithField("tool", "skillvet_score").Debug("tool called")
		result := application.NewScoreResult(eng, in)
		return jsonResult(struct {
			Slug  string `json:"slug"`
			Score int    `json:"quality_score"`
			Grade string `json:"grade"`
		}{result.Slug, result.Score, result.Grade})
	}
}

func handleDetailedScore(root string, loader domain.ConfigLoader) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		in, base, err := resolveInput(root, request)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		eng, err := application.LoadEngine(ctx, loader, base)
		if err != nil {
			return errorResult(err.Error()), nil
		}

		logger.G(ctx).WithField("tool", "skillvet_detailed_score").Debug("tool called")
		return jsonResult(eng.ComputeDetailedScore(in))
	}
}

func handleScan(root string, loader domain.ConfigLoader) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		logger.G(ctx).WithField("tool", "skillvet_scan").Debug("tool called")

		if path := request.GetString("path", ""); path != "" {
			resolved, err := resolvePath(root, path)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			result, err := application.NewScanService(loader).ScanFile(ctx, resolved)
			if err != nil {
				return errorResult(fmt.Sprintf("scan failed: %v", err)), nil
			}
			return jsonResult(result)
		}

		text, err := request.RequireString("text")
		if err != nil {
			return errorResult("either path or text is required"), nil
		}
		eng, err := application.LoadEngine(ctx, loader, root)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		checks := eng.RunSecurityChecks(text)
		return jsonResult(application.ScanResult{Checks: checks, Summary: domain.Summarize(checks)})
	}
}

var errNoSkill = errors.New("either path or instructions is required")

// resolveInput returns the submission described by the request and the
// directory its configuration is loaded from.
func resolveInput(root string, request mcplib.CallToolRequest) (domain.ValidationInput, string, error) {
	if path := request.GetString("path", ""); path != "" {
		resolved, err := resolvePath(root, path)
		if err != nil {
			return domain.ValidationInput{}, "", err
		}
		skill, err := parser.New().Read(resolved)
		if err != nil {
			return domain.ValidationInput{}, "", err
		}
		return skill.Input, skill.Dir, nil
	}

	args := request.GetArguments()
	if _, ok := args["instructions"]; !ok {
		return domain.ValidationInput{}, "", errNoSkill
	}

	in := domain.ValidationInput{
		Name:         request.GetString("name", ""),
		Description:  request.GetString("description", ""),
		Slug:         request.GetString("slug", ""),
		CategorySlug: request.GetString("category", ""),
		Version:      request.GetString("version", ""),
		Platforms:    request.GetStringSlice("platforms", nil),
		Instructions: request.GetString("instructions", ""),
	}
	if in.Slug == "" {
		in.Slug = parser.Slug(in.Name)
	}
	return in, root, nil
}

// resolvePath confines path to the server root. Relative paths are joined
// to root; absolute ones must already lie beneath it.
func resolvePath(root, path string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root: %w", err)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(absRoot, path)
	}
	path = filepath.Clean(path)

	rel, err := filepath.Rel(absRoot, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %q is outside the project root", path)
	}
	return path, nil
}

// jsonResult marshals v to indented JSON and returns it as a text content result.
func jsonResult(v any) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns an error content result.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
