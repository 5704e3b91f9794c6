package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfiguera/camion/pkg/tree"
)

func TestTopContributor(t *testing.T) {
	tests := []struct {
		name    string
		authors tree.AuthorSet
		want    string
	}{
		{
			name:    "Empty set",
			authors: nil,
			want:    "",
		},
		{
			name:    "Single author",
			authors: tree.AuthorSet{{Name: "alice", Value: 100}},
			want:    "alice",
		},
		{
			name: "Highest value wins",
			authors: tree.AuthorSet{
				{Name: "bob", Value: 25},
				{Name: "alice", Value: 75},
			},
			want: "alice",
		},
		{
			name: "First author wins ties",
			authors: tree.AuthorSet{
				{Name: "bob", Value: 50},
				{Name: "alice", Value: 50},
			},
			want: "bob",
		},
		{
			name: "Unsorted input is handled",
			authors: tree.AuthorSet{
				{Name: "carol", Value: 10},
				{Name: "alice", Value: 60},
				{Name: "bob", Value: 30},
			},
			want: "alice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopContributor(tt.authors))
		})
	}
}

func TestAnnotate(t *testing.T) {
	root := &tree.Node{
		Type: tree.TypeTree,
		Children: []*tree.Node{
			{Type: tree.TypeBlob, Name: "solo.go", Authors: tree.AuthorSet{{Name: "alice", Value: 100}}},
			{Type: tree.TypeBlob, Name: "pair.go", Authors: tree.AuthorSet{
				{Name: "alice", Value: 75},
				{Name: "bob", Value: 25},
			}},
			{Type: tree.TypeBlob, Name: "orphan.go"},
			{Type: tree.TypeTree, Name: "sub", Children: []*tree.Node{
				{Type: tree.TypeBlob, Name: "deep.go", Authors: tree.AuthorSet{{Name: "bob", Value: 100}}},
			}},
		},
	}

	got := Annotate(root)

	// Directory nodes carry no annotations.
	assert.False(t, got.Annotated())

	solo := got.Children[0]
	require.True(t, solo.Annotated())
	assert.True(t, solo.SingleAuthor)
	assert.Equal(t, "alice", solo.TopContributor)

	pair := got.Children[1]
	assert.False(t, pair.SingleAuthor)
	assert.Equal(t, "alice", pair.TopContributor)

	// Zero authors: not single-author, empty contributor.
	orphan := got.Children[2]
	require.True(t, orphan.Annotated())
	assert.False(t, orphan.SingleAuthor)
	assert.Empty(t, orphan.TopContributor)

	// Children of directories are still visited.
	deep := got.Children[3].Children[0]
	assert.True(t, deep.SingleAuthor)

	// Input tree untouched.
	assert.False(t, root.Children[0].Annotated())
}

func TestAnnotateTopContributorIsAlwaysPresentKey(t *testing.T) {
	blob := &tree.Node{Type: tree.TypeBlob, Authors: tree.AuthorSet{
		{Name: "x", Value: 40},
		{Name: "y", Value: 60},
	}}
	got := Annotate(blob)
	_, ok := got.Authors.Get(got.TopContributor)
	assert.True(t, ok)
}
