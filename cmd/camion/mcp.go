package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/mfiguera/camion/internal/mcpserver"
)

func mcpCmd() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "Start MCP (Model Context Protocol) server for LLM tool integration",
		Description: `Starts an MCP server over stdio transport that exposes camion's
analysis as tools that LLMs can invoke.

To use with Claude Desktop, add to your config:
  {
    "mcpServers": {
      "camion": {
        "command": "camion",
        "args": ["mcp"]
      }
    }
  }

Available tools:
  - analyze_contributions  Full contribution tree with aggregate stats
  - analyze_simplified     Dominant-author tree and commits by author
  - analyze_complexity     Per-author file-reach scores
  - analyze_authors        Author profiles, collaboration pairs, totals`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "manifest",
				Usage: "Print the MCP server manifest (server.json) and exit",
			},
		},
		Action: runMCPCmd,
	}
}

func runMCPCmd(c *cli.Context) error {
	if c.Bool("manifest") {
		data, err := mcpserver.GenerateManifest(version)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(c)
	runner := newRunner(c, cfg, log)

	server := mcpserver.NewServer(version, runner)
	return server.Run(c.Context)
}
