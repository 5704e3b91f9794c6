package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/mfiguera/camion/internal/output"
	"github.com/mfiguera/camion/internal/vcs"
	"github.com/mfiguera/camion/pkg/analyzer"
	"github.com/mfiguera/camion/pkg/analyzer/grouping"
)

func authorsCmd() *cli.Command {
	return &cli.Command{
		Name:      "authors",
		Aliases:   []string{"au"},
		Usage:     "Show per-author profiles, collaboration pairs, and totals",
		ArgsUsage: "[target]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "top",
				Value: 20,
				Usage: "Show top N authors by files touched",
			},
			&cli.BoolFlag{
				Name:  "log",
				Usage: "Read commit history directly from the local git repository instead of the analysis tool",
			},
			&cli.IntFlag{
				Name:  "log-limit",
				Value: 500,
				Usage: "Max commits to read with --log",
			},
		},
		Action: runAuthorsCmd,
	}
}

func runAuthorsCmd(c *cli.Context) error {
	target := getTargets(c)[0]
	top := c.Int("top")

	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c, cfg)
	if err != nil {
		return err
	}
	defer formatter.Close()

	// --log bypasses the analysis tool entirely: it reads the commit log of
	// a local repository and groups commits by author.
	if c.Bool("log") {
		commits, err := vcs.Log(target, vcs.LogOptions{Limit: c.Int("log-limit")})
		if err != nil {
			return fmt.Errorf("read log for %s: %w", target, err)
		}

		byAuthor := grouping.ByAuthor(commits)
		rows := make([][]string, 0, len(byAuthor))
		for _, name := range sortedAuthorNames(byAuthor) {
			rows = append(rows, []string{name, fmt.Sprintf("%d", len(byAuthor[name]))})
		}

		table := output.NewTable(
			fmt.Sprintf("Commit Authors: %s", target),
			[]string{"Author", "Commits"},
			rows,
			[]string{"Total", fmt.Sprintf("%d", len(commits))},
			byAuthor,
		)
		return formatter.Output(table)
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

	report := analyzer.New().AuthorStats(in)

	profiles := report.Profiles
	if top > 0 && len(profiles) > top {
		profiles = profiles[:top]
	}

	rows := make([][]string, 0, len(profiles))
	for _, p := range profiles {
		rows = append(rows, []string{
			p.Author,
			fmt.Sprintf("%d", p.FilesTouched),
			fmt.Sprintf("%d", p.FilesOwned),
			fmt.Sprintf("%d", p.FilesShared),
			fmt.Sprintf("%.1f%%", p.AvgOwnership),
			fmt.Sprintf("%d", p.UniqueCommits),
		})
	}

	table := output.NewTable(
		fmt.Sprintf("Authors: %s", target),
		[]string{"Author", "Touched", "Owned", "Shared", "Avg Ownership", "Commits"},
		rows,
		[]string{
			fmt.Sprintf("Files: %d", report.Totals.Files),
			fmt.Sprintf("Authors: %d", report.Totals.Authors),
			fmt.Sprintf("Commits: %d", report.Totals.Commits),
			fmt.Sprintf("Binary: %d", report.Totals.BinaryFiles),
			fmt.Sprintf("Bytes: %d", report.Totals.SizeBytes),
			"",
		},
		report,
	)
	return formatter.Output(table)
}
