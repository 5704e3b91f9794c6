// Package complexity accumulates a per-author complexity metric over the
// repository tree.
package complexity

import "github.com/mfiguera/camion/pkg/tree"

// Aggregate credits every author recorded on a node with the number of blob
// descendants under that node (a blob counts itself as 1). Authors recorded
// on both an ancestor directory and a blob beneath it accumulate credit at
// both levels, so totals can exceed the blob count. That double-counting is
// an accepted property of the metric, not collapsed here.
func Aggregate(node *tree.Node) map[string]int {
	totals := make(map[string]int)
	tree.Walk(node, func(n *tree.Node) {
		if len(n.Authors) == 0 {
			return
		}
		weight := tree.CountBlobs(n)
		for _, share := range n.Authors {
			totals[share.Name] += weight
		}
	})
	return totals
}
