// Package metrics annotates blobs with derived authorship metrics.
package metrics

import "github.com/mfiguera/camion/pkg/tree"

// Annotate returns a new tree in which every blob carries its single-author
// flag and top contributor. Directory nodes receive no annotations but their
// children are still visited.
//
// The top contributor is found with a strict greater-than scan so the first
// author encountered wins ties. On a tree normalized upstream the authors are
// already sorted descending and the scan degenerates to taking the first
// entry, but the scan does not assume sorted input.
func Annotate(node *tree.Node) *tree.Node {
	if node == nil {
		return nil
	}
	out := node.Shallow()
	if node.IsBlob() {
		out.Annotate(len(node.Authors) == 1, TopContributor(node.Authors))
	}
	if node.Children != nil {
		out.Children = make([]*tree.Node, len(node.Children))
		for i, child := range node.Children {
			out.Children[i] = Annotate(child)
		}
	}
	return out
}

// TopContributor returns the author with the highest contribution value, or
// an empty string when the set is empty.
func TopContributor(authors tree.AuthorSet) string {
	top := ""
	best := 0.0
	for i, share := range authors {
		if i == 0 || share.Value > best {
			top = share.Name
			best = share.Value
		}
	}
	return top
}
