package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfiguera/camion/pkg/tree"
)

func TestDates(t *testing.T) {
	tests := []struct {
		name string
		node *tree.Node
		want string
	}{
		{
			name: "Blob with timestamp gets formatted date",
			node: &tree.Node{Type: tree.TypeBlob, LastChangeEpoch: 1700000000},
			want: "14 nov 2023",
		},
		{
			name: "Blob without timestamp stays empty",
			node: &tree.Node{Type: tree.TypeBlob},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dates(tt.node)
			assert.Equal(t, tt.want, got.LastChangeDate)
		})
	}
}

func TestDatesRecursesWithoutMutating(t *testing.T) {
	root := &tree.Node{
		Type: tree.TypeTree,
		Children: []*tree.Node{
			{Type: tree.TypeBlob, LastChangeEpoch: 1700000000},
		},
	}

	got := Dates(root)
	assert.Equal(t, "14 nov 2023", got.Children[0].LastChangeDate)
	assert.Empty(t, root.Children[0].LastChangeDate)
}

func commitIndex() map[string]tree.RawCommit {
	return map[string]tree.RawCommit{
		"h1": {Hash: "h1", Message: "m1", Time: 1700000000, Author: "alice"},
		"h2": {Hash: "h2", Message: "m2", Time: 1690000000, Author: "bob"},
		"h3": {Hash: "h3", Message: "m3", Time: 1690000000, Author: "carol"},
	}
}

func TestCommits(t *testing.T) {
	blob := &tree.Node{Type: tree.TypeBlob, Commits: []string{"h2", "h1"}}

	got := Commits(blob, commitIndex())
	require.Len(t, got.History, 2)
	assert.Nil(t, got.Commits)

	// Newest first, raw time and author dropped.
	assert.Equal(t, tree.Commit{Hash: "h1", Message: "m1", Date: "14 nov 2023"}, got.History[0])
	assert.Equal(t, "h2", got.History[1].Hash)
}

func TestCommitsDropsUnknownHashes(t *testing.T) {
	blob := &tree.Node{Type: tree.TypeBlob, Commits: []string{"h1", "missing", "h2", "gone"}}

	got := Commits(blob, commitIndex())

	// Exactly one entry lost per missing hash, no error surfaced.
	assert.Len(t, got.History, 2)
}

func TestCommitsTieOrderIsStable(t *testing.T) {
	blob := &tree.Node{Type: tree.TypeBlob, Commits: []string{"h2", "h3"}}

	got := Commits(blob, commitIndex())
	require.Len(t, got.History, 2)
	assert.Equal(t, "h2", got.History[0].Hash)
	assert.Equal(t, "h3", got.History[1].Hash)
}

func TestCommitsEmptyList(t *testing.T) {
	blob := &tree.Node{Type: tree.TypeBlob, Commits: []string{}}

	got := Commits(blob, commitIndex())
	require.NotNil(t, got.History)
	assert.Empty(t, got.History)
}

func TestCommitsLeavesInputAlone(t *testing.T) {
	blob := &tree.Node{Type: tree.TypeBlob, Commits: []string{"h1"}}
	root := &tree.Node{Type: tree.TypeTree, Children: []*tree.Node{blob}}

	Commits(root, commitIndex())

	assert.Equal(t, []string{"h1"}, root.Children[0].Commits)
	assert.Nil(t, root.Children[0].History)
}

func TestWithFormat(t *testing.T) {
	blob := &tree.Node{Type: tree.TypeBlob, LastChangeEpoch: 42}
	got := Dates(blob, WithFormat(func(int64) string { return "x" }))
	assert.Equal(t, "x", got.LastChangeDate)
}
