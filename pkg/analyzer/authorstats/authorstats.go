// Package authorstats builds per-author contribution profiles and
// collaboration pairs from a normalized tree.
package authorstats

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/mfiguera/camion/pkg/tree"
)

// Profile summarizes one author's footprint across the tree.
type Profile struct {
	Author        string  `json:"author"`
	FilesTouched  int     `json:"filesTouched"`
	FilesOwned    int     `json:"filesOwned"`  // files where the author holds 100%
	FilesShared   int     `json:"filesShared"` // files shared with other authors
	AvgOwnership  float64 `json:"avgOwnership"`
	UniqueCommits int     `json:"uniqueCommits"`
}

// Pair counts blobs shared by two authors. A is lexicographically smaller
// than B.
type Pair struct {
	A           string `json:"a"`
	B           string `json:"b"`
	SharedFiles int    `json:"sharedFiles"`
}

// Totals holds project-wide counts.
type Totals struct {
	Files       int   `json:"files"`
	SizeBytes   int64 `json:"sizeBytes"`
	Commits     int   `json:"commits"`
	BinaryFiles int   `json:"binaryFiles"`
	Authors     int   `json:"authors"`
}

// Report is the full author analysis.
type Report struct {
	Profiles      []Profile `json:"profiles"`
	Collaboration []Pair    `json:"collaboration"`
	Totals        Totals    `json:"totals"`
}

type accumulator struct {
	filesTouched int
	filesOwned   int
	filesShared  int
	ownershipSum float64
	commits      *roaring.Bitmap
}

// Build walks the normalized tree once and assembles the report. Unique
// commit counts are tracked as bitmaps over a hash index: blobs routinely
// share commits, and the bitmap union collapses the duplicates cheaply.
func Build(node *tree.Node) *Report {
	authors := make(map[string]*accumulator)
	pairs := make(map[[2]string]int)
	commitIDs := make(map[string]uint32)
	var totals Totals

	acc := func(name string) *accumulator {
		a, ok := authors[name]
		if !ok {
			a = &accumulator{commits: roaring.New()}
			authors[name] = a
		}
		return a
	}

	commitID := func(hash string) uint32 {
		id, ok := commitIDs[hash]
		if !ok {
			id = uint32(len(commitIDs))
			commitIDs[hash] = id
		}
		return id
	}

	tree.Walk(node, func(n *tree.Node) {
		if !n.IsBlob() {
			return
		}
		totals.Files++
		totals.SizeBytes += n.SizeInBytes
		totals.Commits += n.CommitCount()
		if n.IsBinary {
			totals.BinaryFiles++
		}

		for _, share := range n.Authors {
			a := acc(share.Name)
			a.filesTouched++
			a.ownershipSum += share.Value
			if share.Value == 100 {
				a.filesOwned++
			} else {
				a.filesShared++
			}
			for _, hash := range n.Commits {
				a.commits.Add(commitID(hash))
			}
			for _, c := range n.History {
				a.commits.Add(commitID(c.Hash))
			}
		}

		for i := 0; i < len(n.Authors); i++ {
			for j := i + 1; j < len(n.Authors); j++ {
				a, b := n.Authors[i].Name, n.Authors[j].Name
				if a > b {
					a, b = b, a
				}
				pairs[[2]string{a, b}]++
			}
		}
	})

	totals.Authors = len(authors)

	report := &Report{Totals: totals}
	for name, a := range authors {
		avg := 0.0
		if a.filesTouched > 0 {
			avg = a.ownershipSum / float64(a.filesTouched)
		}
		report.Profiles = append(report.Profiles, Profile{
			Author:        name,
			FilesTouched:  a.filesTouched,
			FilesOwned:    a.filesOwned,
			FilesShared:   a.filesShared,
			AvgOwnership:  avg,
			UniqueCommits: int(a.commits.GetCardinality()),
		})
	}
	sort.Slice(report.Profiles, func(i, j int) bool {
		pi, pj := report.Profiles[i], report.Profiles[j]
		if pi.FilesTouched != pj.FilesTouched {
			return pi.FilesTouched > pj.FilesTouched
		}
		return pi.Author < pj.Author
	})

	for key, count := range pairs {
		report.Collaboration = append(report.Collaboration, Pair{A: key[0], B: key[1], SharedFiles: count})
	}
	sort.Slice(report.Collaboration, func(i, j int) bool {
		pi, pj := report.Collaboration[i], report.Collaboration[j]
		if pi.SharedFiles != pj.SharedFiles {
			return pi.SharedFiles > pj.SharedFiles
		}
		if pi.A != pj.A {
			return pi.A < pj.A
		}
		return pi.B < pj.B
	})

	return report
}
