// Package vcs reads commit history from local git repositories.
package vcs

import (
	"strings"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/mfiguera/camion/pkg/tree"
)

// LogOptions filters the commit log.
type LogOptions struct {
	// Since keeps only commits authored after this time.
	Since *time.Time
	// Limit caps the number of commits returned. Zero means unlimited.
	Limit int
}

// Log walks the repository history from HEAD and returns raw commit records,
// newest first. The .git directory is detected in parent directories, so any
// path inside a working tree works.
func Log(repoPath string, opts LogOptions) ([]tree.RawCommit, error) {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, err
	}

	iter, err := repo.Log(&git.LogOptions{Since: opts.Since})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var commits []tree.RawCommit
	err = iter.ForEach(func(c *object.Commit) error {
		commits = append(commits, tree.RawCommit{
			Hash:    c.Hash.String(),
			Message: strings.TrimSpace(c.Message),
			Time:    c.Author.When.Unix(),
			Author:  c.Author.Name,
		})
		if opts.Limit > 0 && len(commits) >= opts.Limit {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return commits, nil
}
