// Package truck drives the external analysis tool over a repository and
// hands back the extracted payload.
package truck

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/mfiguera/camion/internal/extract"
	"github.com/mfiguera/camion/internal/remote"
)

// DefaultTimeout bounds a single tool invocation, clone included.
const DefaultTimeout = 10 * time.Minute

// ErrToolNotFound is returned when the analysis tool is not in PATH.
var ErrToolNotFound = errors.New("analysis tool not found in PATH")

// Runner invokes the analysis tool.
type Runner struct {
	command string
	args    []string
	timeout time.Duration
	depth   int
	log     *logrus.Logger
}

// Option is a functional option for configuring Runner.
type Option func(*Runner)

// WithCommand overrides the tool executable and base arguments.
func WithCommand(command string, args ...string) Option {
	return func(r *Runner) {
		if command != "" {
			r.command = command
			r.args = args
		}
	}
}

// WithTimeout bounds each invocation.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithCloneDepth sets a shallow-clone depth for remote targets.
func WithCloneDepth(depth int) Option {
	return func(r *Runner) {
		r.depth = depth
	}
}

// WithLogger sets the structured logger.
func WithLogger(log *logrus.Logger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// New creates a Runner with defaults: the git-truck tool, headless output to
// stdout, ten-minute budget.
func New(opts ...Option) *Runner {
	r := &Runner{
		command: "git-truck",
		args:    []string{"--headless", "--stdout"},
		timeout: DefaultTimeout,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Analyze resolves target (local path or remote reference), runs the tool
// over it and extracts the payload. Remote clones are removed before return.
func (r *Runner) Analyze(ctx context.Context, target string) (*extract.Payload, error) {
	repoPath := target

	src, err := remote.Parse(target)
	if err != nil {
		return nil, err
	}
	if src != nil {
		if err := src.Clone(ctx, remote.CloneOptions{Depth: r.depth}); err != nil {
			return nil, err
		}
		defer src.Cleanup()
		repoPath = src.CloneDir
	}

	return r.AnalyzePath(ctx, repoPath)
}

// AnalyzePath runs the tool over an existing local repository.
func (r *Runner) AnalyzePath(ctx context.Context, repoPath string) (*extract.Payload, error) {
	if _, err := exec.LookPath(r.command); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, r.command)
	}

	absPath, err := filepath.Abs(repoPath)
	if err != nil {
		absPath = repoPath
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.command, r.args...)
	cmd.Dir = absPath

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Give the tool a moment to exit cleanly on cancellation before the
	// process group is killed.
	cmd.WaitDelay = 5 * time.Second

	start := time.Now()
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("run %s: %w: %s", r.command, err, msg)
		}
		return nil, fmt.Errorf("run %s: %w", r.command, err)
	}

	r.log.WithFields(logrus.Fields{
		"repo":     absPath,
		"tool":     r.command,
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("analysis tool finished")

	return extract.FromHTML(stdout.Bytes())
}
