package normalize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfiguera/camion/pkg/tree"
)

func TestAuthors(t *testing.T) {
	tests := []struct {
		name    string
		authors tree.AuthorSet
		want    tree.AuthorSet
	}{
		{
			name: "Weights become rounded percentages sorted descending",
			authors: tree.AuthorSet{
				{Name: "bob", Value: 1},
				{Name: "alice", Value: 3},
			},
			want: tree.AuthorSet{
				{Name: "alice", Value: 75},
				{Name: "bob", Value: 25},
			},
		},
		{
			name: "Ties keep first-seen order",
			authors: tree.AuthorSet{
				{Name: "carol", Value: 2},
				{Name: "alice", Value: 2},
				{Name: "bob", Value: 4},
			},
			want: tree.AuthorSet{
				{Name: "bob", Value: 50},
				{Name: "carol", Value: 25},
				{Name: "alice", Value: 25},
			},
		},
		{
			name: "Single author gets 100",
			authors: tree.AuthorSet{
				{Name: "alice", Value: 42},
			},
			want: tree.AuthorSet{
				{Name: "alice", Value: 100},
			},
		},
		{
			name: "Zero total weight yields all zeros in first-seen order",
			authors: tree.AuthorSet{
				{Name: "alice", Value: 0},
				{Name: "bob", Value: 0},
			},
			want: tree.AuthorSet{
				{Name: "alice", Value: 0},
				{Name: "bob", Value: 0},
			},
		},
		{
			name: "Rounding is independent per author",
			authors: tree.AuthorSet{
				{Name: "a", Value: 1},
				{Name: "b", Value: 1},
				{Name: "c", Value: 1},
			},
			want: tree.AuthorSet{
				{Name: "a", Value: 33},
				{Name: "b", Value: 33},
				{Name: "c", Value: 33},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob := &tree.Node{Type: tree.TypeBlob, Authors: tt.authors}
			got := Authors(blob)
			assert.Equal(t, tt.want, got.Authors)
		})
	}
}

func TestAuthorsRecursesAndPreservesChildOrder(t *testing.T) {
	root := &tree.Node{
		Type: tree.TypeTree,
		Children: []*tree.Node{
			{Type: tree.TypeBlob, Name: "b.go", Authors: tree.AuthorSet{{Name: "bob", Value: 2}}},
			{Type: tree.TypeBlob, Name: "a.go", Authors: tree.AuthorSet{{Name: "alice", Value: 5}}},
			{Type: tree.TypeTree, Name: "sub", Children: []*tree.Node{
				{Type: tree.TypeBlob, Name: "c.go", Authors: tree.AuthorSet{
					{Name: "alice", Value: 1},
					{Name: "bob", Value: 9},
				}},
			}},
		},
	}

	got := Authors(root)
	require.Len(t, got.Children, 3)
	assert.Equal(t, "b.go", got.Children[0].Name)
	assert.Equal(t, "a.go", got.Children[1].Name)
	assert.Equal(t, tree.AuthorSet{{Name: "bob", Value: 100}}, got.Children[0].Authors)

	nested := got.Children[2].Children[0]
	assert.Equal(t, tree.AuthorSet{
		{Name: "bob", Value: 90},
		{Name: "alice", Value: 10},
	}, nested.Authors)
}

func TestAuthorsDoesNotMutateInput(t *testing.T) {
	blob := &tree.Node{Type: tree.TypeBlob, Authors: tree.AuthorSet{
		{Name: "bob", Value: 1},
		{Name: "alice", Value: 3},
	}}
	root := &tree.Node{Type: tree.TypeTree, Children: []*tree.Node{blob}}

	Authors(root)

	assert.Equal(t, tree.AuthorSet{
		{Name: "bob", Value: 1},
		{Name: "alice", Value: 3},
	}, root.Children[0].Authors)
}

func TestAuthorsValuesAreWholeNumbers(t *testing.T) {
	blob := &tree.Node{Type: tree.TypeBlob, Authors: tree.AuthorSet{
		{Name: "a", Value: 1.7},
		{Name: "b", Value: 2.9},
	}}

	got := Authors(blob)
	for _, share := range got.Authors {
		assert.Equal(t, share.Value, math.Trunc(share.Value))
		assert.GreaterOrEqual(t, share.Value, 0.0)
		assert.LessOrEqual(t, share.Value, 100.0)
	}
}

func TestAuthorsNilNode(t *testing.T) {
	assert.Nil(t, Authors(nil))
}
