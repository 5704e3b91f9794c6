package grouping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfiguera/camion/pkg/tree"
)

func TestByAuthor(t *testing.T) {
	commits := []tree.RawCommit{
		{Hash: "h1", Author: "alice", Time: 3},
		{Hash: "h2", Author: "bob", Time: 2},
		{Hash: "h3", Author: "alice", Time: 1},
		{Hash: "h4", Author: "alice", Time: 5},
	}

	got := ByAuthor(commits)
	require.Len(t, got, 2)

	// Relative order within each bucket follows the input list.
	hashes := func(cs []tree.RawCommit) []string {
		out := make([]string, len(cs))
		for i, c := range cs {
			out[i] = c.Hash
		}
		return out
	}
	assert.Equal(t, []string{"h1", "h3", "h4"}, hashes(got["alice"]))
	assert.Equal(t, []string{"h2"}, hashes(got["bob"]))
}

func TestByAuthorEmpty(t *testing.T) {
	got := ByAuthor(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
