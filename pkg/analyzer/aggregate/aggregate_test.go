package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mfiguera/camion/pkg/tree"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name string
		node *tree.Node
		want Stats
	}{
		{
			name: "Empty tree yields zeros",
			node: &tree.Node{Type: tree.TypeTree},
			want: Stats{},
		},
		{
			name: "Single blob",
			node: &tree.Node{Type: tree.TypeTree, Children: []*tree.Node{
				{Type: tree.TypeBlob, Commits: []string{"h1", "h2"}, LastChangeEpoch: 1700000000},
			}},
			want: Stats{MinCommits: 2, MaxCommits: 2, FirstChangeEpoch: 1700000000, LastChangeEpoch: 1700000000},
		},
		{
			name: "Multiple blobs",
			node: &tree.Node{Type: tree.TypeTree, Children: []*tree.Node{
				{Type: tree.TypeBlob, Commits: []string{"a"}, LastChangeEpoch: 1650000000},
				{Type: tree.TypeTree, Children: []*tree.Node{
					{Type: tree.TypeBlob, Commits: []string{"b", "c", "d"}, LastChangeEpoch: 1700000000},
				}},
				{Type: tree.TypeBlob, LastChangeEpoch: 1600000000},
			}},
			want: Stats{MinCommits: 0, MaxCommits: 3, FirstChangeEpoch: 1600000000, LastChangeEpoch: 1700000000},
		},
		{
			name: "Blobs without timestamps are skipped for epochs",
			node: &tree.Node{Type: tree.TypeTree, Children: []*tree.Node{
				{Type: tree.TypeBlob, Commits: []string{"a", "b"}},
			}},
			want: Stats{MinCommits: 2, MaxCommits: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Calculate(tt.node))
		})
	}
}

func TestCalculateReadsEnrichedHistory(t *testing.T) {
	node := &tree.Node{Type: tree.TypeTree, Children: []*tree.Node{
		{Type: tree.TypeBlob, History: []tree.Commit{{Hash: "h1"}, {Hash: "h2"}}},
	}}
	got := Calculate(node)
	assert.Equal(t, 2, got.MinCommits)
	assert.Equal(t, 2, got.MaxCommits)
}

func TestCommitDistribution(t *testing.T) {
	node := &tree.Node{Type: tree.TypeTree, Children: []*tree.Node{
		{Type: tree.TypeBlob, Commits: []string{"a"}},
		{Type: tree.TypeBlob, Commits: []string{"b", "c", "d"}},
	}}

	got := CommitDistribution(node)
	assert.Equal(t, 2, got.Blobs)
	assert.InDelta(t, 2.0, got.Mean, 1e-9)
}

func TestCommitDistributionEmpty(t *testing.T) {
	assert.Equal(t, Distribution{}, CommitDistribution(&tree.Node{Type: tree.TypeTree}))
}
