package main

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"

	"github.com/mfiguera/camion/internal/output"
	"github.com/mfiguera/camion/pkg/analyzer"
)

func complexityCmd() *cli.Command {
	return &cli.Command{
		Name:      "complexity",
		Aliases:   []string{"cx"},
		Usage:     "Show per-author file-reach scores for a repository",
		ArgsUsage: "[target]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "top",
				Value: 20,
				Usage: "Show top N authors by score",
			},
		},
		Action: runComplexityCmd,
	}
}

func runComplexityCmd(c *cli.Context) error {
	target := getTargets(c)[0]
	top := c.Int("top")

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

	scores := analyzer.New().Complexity(in)

	type scored struct {
		name  string
		score int
	}
	authors := make([]scored, 0, len(scores))
	for name, score := range scores {
		authors = append(authors, scored{name, score})
	}
	sort.Slice(authors, func(i, j int) bool {
		if authors[i].score != authors[j].score {
			return authors[i].score > authors[j].score
		}
		return authors[i].name < authors[j].name
	})
	if top > 0 && len(authors) > top {
		authors = authors[:top]
	}

	rows := make([][]string, 0, len(authors))
	for _, a := range authors {
		rows = append(rows, []string{a.name, fmt.Sprintf("%d", a.score)})
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	table := output.NewTable(
		fmt.Sprintf("File Reach: %s", target),
		[]string{"Author", "Score"},
		rows,
		nil,
		scores,
	)
	return formatter.Output(table)
}
