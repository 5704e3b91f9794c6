package main

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/mfiguera/camion/internal/cache"
	"github.com/mfiguera/camion/internal/extract"
	"github.com/mfiguera/camion/internal/output"
	"github.com/mfiguera/camion/internal/progress"
	"github.com/mfiguera/camion/internal/truck"
	"github.com/mfiguera/camion/pkg/analyzer"
	"github.com/mfiguera/camion/pkg/config"
	"github.com/mfiguera/camion/pkg/tree"
)

// getTargets returns targets from positional args, defaulting to ["."]
func getTargets(c *cli.Context) []string {
	if c.Args().Len() > 0 {
		return c.Args().Slice()
	}
	return []string{"."}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	if path := c.String("config"); path != "" {
		return config.Load(path)
	}
	return config.LoadOrDefault(), nil
}

func newLogger(c *cli.Context) *logrus.Logger {
	log := logrus.New()
	if c.Bool("verbose") {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

func newRunner(c *cli.Context, cfg *config.Config, log *logrus.Logger) *truck.Runner {
	command := cfg.Tool.Command
	args := cfg.Tool.Args
	if tool := c.String("tool"); tool != "" {
		fields := strings.Fields(tool)
		command = fields[0]
		args = fields[1:]
	}

	return truck.New(
		truck.WithCommand(command, args...),
		truck.WithTimeout(time.Duration(cfg.Tool.TimeoutMinutes)*time.Minute),
		truck.WithCloneDepth(cfg.Clone.Depth),
		truck.WithLogger(log),
	)
}

func newCache(c *cli.Context, cfg *config.Config) (*cache.Cache, error) {
	enabled := cfg.Cache.Enabled && !c.Bool("no-cache")
	return cache.New(cfg.Cache.Dir, cfg.Cache.TTL, enabled)
}

func newFormatter(c *cli.Context, cfg *config.Config) (*output.Formatter, error) {
	format := c.String("format")
	if !c.IsSet("format") && cfg.Output.Format != "" {
		format = cfg.Output.Format
	}
	return output.NewFormatter(output.ParseFormat(format), c.String("output"), cfg.Output.Color)
}

// sortedAuthorNames orders grouped authors by commit count descending, then
// by name.
func sortedAuthorNames(byAuthor map[string][]tree.RawCommit) []string {
	names := make([]string, 0, len(byAuthor))
	for name := range byAuthor {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := len(byAuthor[names[i]]), len(byAuthor[names[j]])
		if a != b {
			return a > b
		}
		return names[i] < names[j]
	})
	return names
}

// fetchInput resolves one target to pipeline input: cache hit, or a fresh
// tool run behind a spinner.
func fetchInput(ctx context.Context, target string, runner *truck.Runner, store *cache.Cache) (analyzer.Input, error) {
	key := cache.Key(target, "")
	if data, ok := store.Get(key); ok {
		var p extract.Payload
		if err := json.Unmarshal(data, &p); err == nil {
			return analyzer.Input{Tree: p.Tree, Commits: p.Commits, Authors: p.Authors}, nil
		}
		store.Invalidate(key)
	}

	spinner := progress.NewSpinner(fmt.Sprintf("Analyzing %s...", target))
	payload, err := runner.Analyze(ctx, target)
	if err != nil {
		spinner.FinishError(err)
		return analyzer.Input{}, err
	}
	spinner.FinishSuccess()

	if data, err := json.Marshal(payload); err == nil {
		store.Set(key, data)
	}

	return analyzer.Input{
		Tree:    payload.Tree,
		Commits: payload.Commits,
		Authors: payload.Authors,
	}, nil
}
