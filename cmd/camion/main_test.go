package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfiguera/camion/pkg/analyzer"
	"github.com/mfiguera/camion/pkg/tree"
)

func TestSortedAuthorNames(t *testing.T) {
	byAuthor := map[string][]tree.RawCommit{
		"bob":   {{Hash: "h1"}},
		"alice": {{Hash: "h2"}, {Hash: "h3"}},
		"carol": {{Hash: "h4"}},
	}

	names := sortedAuthorNames(byAuthor)

	require.Len(t, names, 3)
	assert.Equal(t, "alice", names[0])
	// Equal counts fall back to name order.
	assert.Equal(t, []string{"bob", "carol"}, names[1:])
}

func TestContributionTable(t *testing.T) {
	in := analyzer.Input{
		Tree: &tree.Node{
			Type: tree.TypeTree,
			Name: "root",
			Children: []*tree.Node{
				{
					Type: tree.TypeBlob,
					Name: "main.go",
					Authors: tree.AuthorSet{
						{Name: "alice", Value: 3},
						{Name: "bob", Value: 1},
					},
					Commits: []string{"h1"},
				},
			},
		},
		Commits: []tree.RawCommit{
			{Hash: "h1", Message: "init", Time: 1700000000, Author: "alice"},
		},
	}

	result := analyzer.New().Run(in)
	table := contributionTable("/repos/demo", result)

	assert.Contains(t, table.Title, "/repos/demo")
	require.Len(t, table.Rows, 2)
	// Sorted by raw weight descending.
	assert.Equal(t, "alice", table.Rows[0][0])
	assert.Equal(t, "3", table.Rows[0][1])
	assert.Equal(t, "bob", table.Rows[1][0])
	assert.Same(t, result, table.Data)
}
