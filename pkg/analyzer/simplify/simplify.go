// Package simplify reduces a normalized tree to top-contributor-only form.
package simplify

import "github.com/mfiguera/camion/pkg/tree"

// Tree returns a parallel copy of the input in which every node carrying
// authors keeps only its first entry. On a normalized tree the first entry is
// the top contributor. The input tree is never modified; every level that
// changes gets fresh containers.
func Tree(node *tree.Node) *tree.Node {
	if node == nil {
		return nil
	}
	out := node.Shallow()
	if len(node.Authors) > 0 {
		out.Authors = tree.AuthorSet{node.Authors[0]}
	}
	if node.Children != nil {
		out.Children = make([]*tree.Node, len(node.Children))
		for i, child := range node.Children {
			out.Children[i] = Tree(child)
		}
	}
	return out
}
