package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	toon "github.com/toon-format/toon-go"

	"github.com/mfiguera/camion/pkg/analyzer"
)

// AnalyzeInput is the base input for all analyze tools.
type AnalyzeInput struct {
	Repo string `json:"repo" jsonschema:"Repository to analyze: a local path, a clone URL, or an owner/repo shorthand."`
	Ref  string `json:"ref,omitempty" jsonschema:"Branch or tag to analyze. Defaults to the default branch."`
}

// ContributionsInput adds contribution-specific options.
type ContributionsInput struct {
	AnalyzeInput
	OmitTree bool `json:"omit_tree,omitempty" jsonschema:"Return only the author dictionary and aggregate stats, omitting the file tree."`
}

// AuthorsInput adds author-report options.
type AuthorsInput struct {
	AnalyzeInput
	Top int `json:"top,omitempty" jsonschema:"Show top N authors by files touched. Default all."`
}

func (s *Server) input(ctx context.Context, in AnalyzeInput) (analyzer.Input, error) {
	target := in.Repo
	if in.Ref != "" {
		target = in.Repo + "@" + in.Ref
	}
	payload, err := s.source.Analyze(ctx, target)
	if err != nil {
		return analyzer.Input{}, err
	}
	return analyzer.Input{
		Tree:    payload.Tree,
		Commits: payload.Commits,
		Authors: payload.Authors,
	}, nil
}

func toolResult(data any) (*mcp.CallToolResult, any, error) {
	out, err := toon.Marshal(data, toon.WithIndent(2))
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(out)},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func (s *Server) handleAnalyzeContributions(ctx context.Context, req *mcp.CallToolRequest, input ContributionsInput) (*mcp.CallToolResult, any, error) {
	if input.Repo == "" {
		return toolError("repo is required")
	}

	in, err := s.input(ctx, input.AnalyzeInput)
	if err != nil {
		return toolError(err.Error())
	}

	result := s.pipeline.Contributions(in)
	if input.OmitTree {
		out := struct {
			Authors      any `json:"authors" toon:"authors"`
			Stats        any `json:"stats" toon:"stats"`
			Distribution any `json:"commitDistribution" toon:"commitDistribution"`
		}{result.Authors, result.Stats, result.Distribution}
		return toolResult(out)
	}

	return toolResult(result)
}

func (s *Server) handleAnalyzeSimplified(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	if input.Repo == "" {
		return toolError("repo is required")
	}

	in, err := s.input(ctx, input)
	if err != nil {
		return toolError(err.Error())
	}

	return toolResult(s.pipeline.Simplified(in))
}

func (s *Server) handleAnalyzeComplexity(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	if input.Repo == "" {
		return toolError("repo is required")
	}

	in, err := s.input(ctx, input)
	if err != nil {
		return toolError(err.Error())
	}

	return toolResult(s.pipeline.Complexity(in))
}

func (s *Server) handleAnalyzeAuthors(ctx context.Context, req *mcp.CallToolRequest, input AuthorsInput) (*mcp.CallToolResult, any, error) {
	if input.Repo == "" {
		return toolError("repo is required")
	}

	in, err := s.input(ctx, input.AnalyzeInput)
	if err != nil {
		return toolError(err.Error())
	}

	report := s.pipeline.AuthorStats(in)
	if input.Top > 0 && len(report.Profiles) > input.Top {
		report.Profiles = report.Profiles[:input.Top]
	}

	return toolResult(report)
}
