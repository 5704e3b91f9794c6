package authorstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfiguera/camion/pkg/tree"
)

func sampleTree() *tree.Node {
	return &tree.Node{Type: tree.TypeTree, Children: []*tree.Node{
		{
			Type:        tree.TypeBlob,
			Name:        "solo.go",
			SizeInBytes: 100,
			Commits:     []string{"h1", "h2"},
			Authors:     tree.AuthorSet{{Name: "alice", Value: 100}},
		},
		{
			Type:        tree.TypeBlob,
			Name:        "shared.go",
			SizeInBytes: 50,
			IsBinary:    true,
			Commits:     []string{"h2", "h3"},
			Authors: tree.AuthorSet{
				{Name: "alice", Value: 60},
				{Name: "bob", Value: 40},
			},
		},
	}}
}

func TestBuildProfiles(t *testing.T) {
	report := Build(sampleTree())
	require.Len(t, report.Profiles, 2)

	alice := report.Profiles[0]
	assert.Equal(t, "alice", alice.Author)
	assert.Equal(t, 2, alice.FilesTouched)
	assert.Equal(t, 1, alice.FilesOwned)
	assert.Equal(t, 1, alice.FilesShared)
	assert.InDelta(t, 80.0, alice.AvgOwnership, 1e-9)
	// h2 appears on both blobs but counts once.
	assert.Equal(t, 3, alice.UniqueCommits)

	bob := report.Profiles[1]
	assert.Equal(t, 1, bob.FilesTouched)
	assert.Equal(t, 0, bob.FilesOwned)
	assert.Equal(t, 2, bob.UniqueCommits)
}

func TestBuildCollaborationAndTotals(t *testing.T) {
	report := Build(sampleTree())

	require.Len(t, report.Collaboration, 1)
	assert.Equal(t, Pair{A: "alice", B: "bob", SharedFiles: 1}, report.Collaboration[0])

	assert.Equal(t, Totals{
		Files:       2,
		SizeBytes:   150,
		Commits:     4,
		BinaryFiles: 1,
		Authors:     2,
	}, report.Totals)
}

func TestBuildEmptyTree(t *testing.T) {
	report := Build(&tree.Node{Type: tree.TypeTree})
	assert.Empty(t, report.Profiles)
	assert.Empty(t, report.Collaboration)
	assert.Equal(t, Totals{}, report.Totals)
}

func TestBuildCountsEnrichedHistory(t *testing.T) {
	node := &tree.Node{
		Type:    tree.TypeBlob,
		Authors: tree.AuthorSet{{Name: "alice", Value: 100}},
		History: []tree.Commit{{Hash: "h1"}, {Hash: "h1"}},
	}

	report := Build(node)
	require.Len(t, report.Profiles, 1)
	assert.Equal(t, 1, report.Profiles[0].UniqueCommits)
}
