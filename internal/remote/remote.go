// Package remote resolves and clones remote repository references.
package remote

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Source represents a remote repository to analyze.
type Source struct {
	URL      string // normalized git URL
	Ref      string // branch, tag, or SHA (empty = default branch)
	CloneDir string // temp directory after clone
}

// Parse detects if a path is a remote reference. Returns nil if the path
// exists on the filesystem (local paths take precedence).
func Parse(path string) (*Source, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, nil
	}

	// SSH URLs carry no ref suffix; the @ belongs to the user part.
	if strings.HasPrefix(path, "git@") {
		return &Source{URL: path}, nil
	}

	ref := ""
	if idx := strings.LastIndex(path, "@"); idx != -1 {
		ref = path[idx+1:]
		path = path[:idx]
	}

	switch {
	case strings.HasPrefix(path, "https://"), strings.HasPrefix(path, "http://"):
		return &Source{URL: path, Ref: ref}, nil
	case strings.HasPrefix(path, "github.com/"), strings.HasPrefix(path, "gitlab.com/"):
		return &Source{URL: "https://" + path, Ref: ref}, nil
	case isGitHubShorthand(path):
		return &Source{URL: "https://github.com/" + path, Ref: ref}, nil
	}

	return nil, nil
}

// isGitHubShorthand returns true if path matches the owner/repo pattern.
func isGitHubShorthand(path string) bool {
	slashIdx := strings.Index(path, "/")
	if slashIdx == -1 {
		return false
	}
	if strings.Count(path, "/") != 1 {
		return false
	}
	// A dot before the slash would indicate a domain.
	if strings.Contains(path[:slashIdx], ".") {
		return false
	}
	return slashIdx > 0 && slashIdx < len(path)-1
}

// CloneOptions configures Clone.
type CloneOptions struct {
	Depth    int       // 0 = full history
	Progress io.Writer // clone progress stream, may be nil
}

// Clone fetches the source into a fresh temp directory and records it in
// CloneDir. The caller owns cleanup via Cleanup.
func (s *Source) Clone(ctx context.Context, opts CloneOptions) error {
	dir, err := os.MkdirTemp("", "camion-clone-*")
	if err != nil {
		return fmt.Errorf("create clone dir: %w", err)
	}

	gitOpts := &git.CloneOptions{
		URL:      s.URL,
		Depth:    opts.Depth,
		Progress: opts.Progress,
	}
	if s.Ref != "" {
		gitOpts.ReferenceName = plumbing.NewBranchReferenceName(s.Ref)
		gitOpts.SingleBranch = true
	}

	if _, err := git.PlainCloneContext(ctx, dir, false, gitOpts); err != nil {
		// Branch refs and tag refs share the @ syntax; retry as a tag on a
		// clean directory.
		if s.Ref != "" {
			os.RemoveAll(dir)
			if mkErr := os.MkdirAll(dir, 0o755); mkErr == nil {
				gitOpts.ReferenceName = plumbing.NewTagReferenceName(s.Ref)
				if _, tagErr := git.PlainCloneContext(ctx, dir, false, gitOpts); tagErr == nil {
					s.CloneDir = dir
					return nil
				}
			}
		}
		os.RemoveAll(dir)
		return fmt.Errorf("clone %s: %w", s.URL, err)
	}

	s.CloneDir = dir
	return nil
}

// Cleanup removes the clone directory, if any.
func (s *Source) Cleanup() {
	if s.CloneDir != "" {
		os.RemoveAll(s.CloneDir)
		s.CloneDir = ""
	}
}
