// Package aggregate computes whole-tree statistics over blob commit counts
// and change timestamps.
package aggregate

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/mfiguera/camion/pkg/tree"
)

// Stats holds the four whole-tree reductions. An empty tree yields the zero
// value for every field; zero is the empty-tree result, not an error
// sentinel.
type Stats struct {
	MinCommits       int   `json:"minCommits"`
	MaxCommits       int   `json:"maxCommits"`
	FirstChangeEpoch int64 `json:"firstChangeEpoch"`
	LastChangeEpoch  int64 `json:"lastChangeEpoch"`
}

// Calculate folds the tree into its aggregate stats. It reads only commit
// counts and change timestamps, both stable across enrichment, so it accepts
// raw and enriched trees alike.
func Calculate(node *tree.Node) Stats {
	var s Stats
	seenBlob := false
	seenEpoch := false

	tree.Walk(node, func(n *tree.Node) {
		if !n.IsBlob() {
			return
		}
		count := n.CommitCount()
		if !seenBlob || count < s.MinCommits {
			s.MinCommits = count
		}
		if !seenBlob || count > s.MaxCommits {
			s.MaxCommits = count
		}
		seenBlob = true

		if n.LastChangeEpoch == 0 {
			return
		}
		if !seenEpoch || n.LastChangeEpoch < s.FirstChangeEpoch {
			s.FirstChangeEpoch = n.LastChangeEpoch
		}
		if !seenEpoch || n.LastChangeEpoch > s.LastChangeEpoch {
			s.LastChangeEpoch = n.LastChangeEpoch
		}
		seenEpoch = true
	})
	return s
}

// Distribution summarizes the spread of per-blob commit counts.
type Distribution struct {
	Blobs  int     `json:"blobs"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
	P50    float64 `json:"p50"`
	P95    float64 `json:"p95"`
}

// CommitDistribution computes summary statistics over the commit counts of
// every blob in the tree. Returns the zero value for an empty tree.
func CommitDistribution(node *tree.Node) Distribution {
	var counts []float64
	tree.Walk(node, func(n *tree.Node) {
		if n.IsBlob() {
			counts = append(counts, float64(n.CommitCount()))
		}
	})
	if len(counts) == 0 {
		return Distribution{}
	}

	mean, std := stat.MeanStdDev(counts, nil)
	if len(counts) == 1 {
		std = 0
	}

	sort.Float64s(counts)
	return Distribution{
		Blobs:  len(counts),
		Mean:   mean,
		StdDev: std,
		P50:    stat.Quantile(0.5, stat.Empirical, counts, nil),
		P95:    stat.Quantile(0.95, stat.Empirical, counts, nil),
	}
}
