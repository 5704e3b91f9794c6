package main

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/mfiguera/camion/internal/output"
	"github.com/mfiguera/camion/internal/progress"
	"github.com/mfiguera/camion/pkg/analyzer"
)

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"an"},
		Usage:     "Run the full contribution analysis over one or more repositories",
		ArgsUsage: "[target...]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Max repositories analyzed in parallel (defaults to config)",
			},
		},
		Action: runAnalyzeCmd,
	}
}

func runAnalyzeCmd(c *cli.Context) error {
	targets := getTargets(c)

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

	inputs := make([]analyzer.Input, 0, len(targets))
	for _, target := range targets {
		in, err := fetchInput(c.Context, target, runner, store)
		if err != nil {
			return fmt.Errorf("analyze %s: %w", target, err)
		}
		inputs = append(inputs, in)
	}

	workers := c.Int("workers")
	if workers <= 0 {
		workers = cfg.Analysis.Workers
	}

	pipeline := analyzer.New()
	var results []*analyzer.Result
	if len(inputs) == 1 {
		results = []*analyzer.Result{pipeline.Run(inputs[0])}
	} else {
		tracker := progress.NewTracker("Running pipeline", len(inputs))
		results = analyzer.RunAll(pipeline, inputs, workers, tracker.Tick)
		tracker.FinishSuccess()
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	for i, result := range results {
		if err := formatter.Output(contributionTable(targets[i], result)); err != nil {
			return err
		}
	}
	return nil
}

// contributionTable renders one repository's result: authors by raw weight
// with aggregate stats in the footer, wrapping the full result for
// structured formats.
func contributionTable(target string, result *analyzer.Result) *output.Table {
	type weighted struct {
		name   string
		weight float64
	}
	authors := make([]weighted, 0, len(result.Contributions.Authors))
	for name, weight := range result.Contributions.Authors {
		authors = append(authors, weighted{name, weight})
	}
	sort.Slice(authors, func(i, j int) bool {
		if authors[i].weight != authors[j].weight {
			return authors[i].weight > authors[j].weight
		}
		return authors[i].name < authors[j].name
	})

	rows := make([][]string, 0, len(authors))
	for _, a := range authors {
		score := result.Complexity[a.name]
		rows = append(rows, []string{
			a.name,
			fmt.Sprintf("%.0f", a.weight),
			fmt.Sprintf("%d", score),
		})
	}

	stats := result.Contributions.Stats
	return output.NewTable(
		fmt.Sprintf("Contributions: %s", target),
		[]string{"Author", "Raw Weight", "File Reach"},
		rows,
		[]string{
			fmt.Sprintf("Commits/file: %d-%d", stats.MinCommits, stats.MaxCommits),
			fmt.Sprintf("First change: %d", stats.FirstChangeEpoch),
			fmt.Sprintf("Last change: %d", stats.LastChangeEpoch),
		},
		result,
	)
}
