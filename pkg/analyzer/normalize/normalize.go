// Package normalize converts raw per-author contribution weights into rounded
// percentages and establishes the author ordering later stages rely on.
package normalize

import (
	"math"
	"sort"

	"github.com/mfiguera/camion/pkg/tree"
)

// Authors returns a new tree in which every node carrying authors has its
// values replaced by round(weight/total*100) and its authors reordered
// descending by percentage. Ties keep the order in which the authors first
// appeared in the raw mapping; that tie-break is implementation-defined, not
// semantically meaningful, and is made deterministic here by an explicit
// stable sort over the ordered set.
//
// A node whose raw weights sum to zero gets 0 for every author in first-seen
// order. The source produced NaN for this case; zeroing keeps the pipeline
// total, consistent with its lossy handling of unresolvable commit hashes.
//
// Nodes without authors pass through unchanged. The input tree is not
// modified.
func Authors(node *tree.Node) *tree.Node {
	if node == nil {
		return nil
	}
	out := node.Shallow()

	if len(node.Authors) > 0 {
		out.Authors = normalizeSet(node.Authors)
	}

	if node.Children != nil {
		out.Children = make([]*tree.Node, len(node.Children))
		for i, child := range node.Children {
			out.Children[i] = Authors(child)
		}
	}
	return out
}

func normalizeSet(authors tree.AuthorSet) tree.AuthorSet {
	total := authors.Total()

	out := make(tree.AuthorSet, len(authors))
	for i, share := range authors {
		value := 0.0
		if total != 0 {
			value = math.Round(share.Value / total * 100)
		}
		out[i] = tree.AuthorShare{Name: share.Name, Value: value}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}
