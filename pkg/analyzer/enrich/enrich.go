// Package enrich decorates a normalized tree with display dates and resolved
// commit history.
package enrich

import (
	"sort"

	"github.com/mfiguera/camion/pkg/dates"
	"github.com/mfiguera/camion/pkg/tree"
)

// FormatFunc renders a unix timestamp as a display date.
type FormatFunc func(int64) string

// Option configures enrichment.
type Option func(*settings)

type settings struct {
	format FormatFunc
}

// WithFormat overrides the date formatter (useful for testing).
func WithFormat(fn FormatFunc) Option {
	return func(s *settings) {
		if fn != nil {
			s.format = fn
		}
	}
}

func newSettings(opts []Option) settings {
	s := settings{format: dates.Format}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Dates returns a new tree in which every blob with a last-change timestamp
// carries its formatted display date. Other nodes pass through unchanged.
func Dates(node *tree.Node, opts ...Option) *tree.Node {
	s := newSettings(opts)
	return enrichDates(node, s.format)
}

func enrichDates(node *tree.Node, format FormatFunc) *tree.Node {
	if node == nil {
		return nil
	}
	out := node.Shallow()
	if node.IsBlob() && node.LastChangeEpoch != 0 {
		out.LastChangeDate = format(node.LastChangeEpoch)
	}
	if node.Children != nil {
		out.Children = make([]*tree.Node, len(node.Children))
		for i, child := range node.Children {
			out.Children[i] = enrichDates(child, format)
		}
	}
	return out
}

// Commits returns a new tree in which every blob's commit hashes are resolved
// against the commit dictionary and replaced with enriched records, newest
// first. Hashes absent from the dictionary are silently dropped; the pipeline
// surfaces no count of dropped entries. Ordering ties on equal timestamps
// keep the resolved commits' original relative order.
//
// The pipeline runs this stage exactly once per tree: its output carries
// records where the input carried hash strings.
func Commits(node *tree.Node, index map[string]tree.RawCommit, opts ...Option) *tree.Node {
	s := newSettings(opts)
	return enrichCommits(node, index, s.format)
}

func enrichCommits(node *tree.Node, index map[string]tree.RawCommit, format FormatFunc) *tree.Node {
	if node == nil {
		return nil
	}
	out := node.Shallow()
	if node.IsBlob() && node.Commits != nil {
		out.History = resolve(node.Commits, index, format)
		out.Commits = nil
	}
	if node.Children != nil {
		out.Children = make([]*tree.Node, len(node.Children))
		for i, child := range node.Children {
			out.Children[i] = enrichCommits(child, index, format)
		}
	}
	return out
}

func resolve(hashes []string, index map[string]tree.RawCommit, format FormatFunc) []tree.Commit {
	resolved := make([]tree.RawCommit, 0, len(hashes))
	for _, hash := range hashes {
		if raw, ok := index[hash]; ok {
			resolved = append(resolved, raw)
		}
	}

	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].Time > resolved[j].Time
	})

	history := make([]tree.Commit, len(resolved))
	for i, raw := range resolved {
		history[i] = tree.Commit{
			Hash:    raw.Hash,
			Message: raw.Message,
			Date:    format(raw.Time),
		}
	}
	return history
}
