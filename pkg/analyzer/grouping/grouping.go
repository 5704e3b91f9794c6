// Package grouping buckets raw commits by author.
package grouping

import "github.com/mfiguera/camion/pkg/tree"

// ByAuthor maps each author to the commits they wrote, preserving the input
// list's relative order within each bucket. The source declared this as an
// asynchronous operation out of call-site uniformity; it performs no blocking
// work, so here it is a plain function.
func ByAuthor(commits []tree.RawCommit) map[string][]tree.RawCommit {
	grouped := make(map[string][]tree.RawCommit)
	for _, commit := range commits {
		grouped[commit.Author] = append(grouped[commit.Author], commit)
	}
	return grouped
}
