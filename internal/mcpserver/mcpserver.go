// Package mcpserver exposes contribution analysis as MCP tools over stdio.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mfiguera/camion/internal/extract"
	"github.com/mfiguera/camion/pkg/analyzer"
)

// PayloadSource produces a raw analysis payload for a target repository.
// *truck.Runner satisfies it.
type PayloadSource interface {
	Analyze(ctx context.Context, target string) (*extract.Payload, error)
}

// Server wraps the MCP server and registers the camion analysis tools.
type Server struct {
	server   *mcp.Server
	source   PayloadSource
	pipeline *analyzer.Pipeline
}

// NewServer creates an MCP server with all camion tools registered.
func NewServer(version string, source PayloadSource) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "camion",
			Version: version,
		},
		nil,
	)

	s := &Server{
		server:   server,
		source:   source,
		pipeline: analyzer.New(),
	}
	s.registerTools()
	s.registerPrompts()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_contributions",
		Description: describeContributions(),
	}, s.handleAnalyzeContributions)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_simplified",
		Description: describeSimplified(),
	}, s.handleAnalyzeSimplified)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_complexity",
		Description: describeComplexity(),
	}, s.handleAnalyzeComplexity)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "analyze_authors",
		Description: describeAuthors(),
	}, s.handleAnalyzeAuthors)
}
