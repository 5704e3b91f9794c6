package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/mfiguera/camion/internal/output"
	"github.com/mfiguera/camion/pkg/analyzer"
)

func statsCmd() *cli.Command {
	return &cli.Command{
		Name:      "stats",
		Usage:     "Show aggregate statistics and commit distribution for a repository",
		ArgsUsage: "[target]",
		Action:    runStatsCmd,
	}
}

func runStatsCmd(c *cli.Context) error {
	target := getTargets(c)[0]

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	log := newLogger(c)
	runner := newRunner(c, cfg, log)

	store, err := newCache(c, cfg)
	if err != nil {
		return err
	}

	in, err := fetchInput(c.Context, target, runner, store)
	if err != nil {
		return fmt.Errorf("analyze %s: %w", target, err)
	}

	contributions := analyzer.New().Contributions(in)

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	stats := contributions.Stats
	dist := contributions.Distribution
	table := output.NewTable(
		fmt.Sprintf("Statistics: %s", target),
		[]string{"Metric", "Value"},
		[][]string{
			{"Min commits per file", fmt.Sprintf("%d", stats.MinCommits)},
			{"Max commits per file", fmt.Sprintf("%d", stats.MaxCommits)},
			{"First change epoch", fmt.Sprintf("%d", stats.FirstChangeEpoch)},
			{"Last change epoch", fmt.Sprintf("%d", stats.LastChangeEpoch)},
			{"Files with history", fmt.Sprintf("%d", dist.Blobs)},
			{"Mean commits per file", fmt.Sprintf("%.2f", dist.Mean)},
			{"Stddev commits per file", fmt.Sprintf("%.2f", dist.StdDev)},
			{"Median commits per file", fmt.Sprintf("%.2f", dist.P50)},
			{"P95 commits per file", fmt.Sprintf("%.2f", dist.P95)},
		},
		nil,
		contributions,
	)

	return formatter.Output(table)
}
