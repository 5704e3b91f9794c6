// Package analyzer threads a raw analysis payload through the enrichment
// stages in their required order and assembles the result shapes served to
// downstream consumers.
//
// Stage order matters: normalization establishes the descending author order
// that annotation and simplification read, and commit enrichment runs exactly
// once per tree. Every stage is pure, so the pipeline owns the sequencing and
// callers never coordinate mutation.
package analyzer

import (
	"github.com/mfiguera/camion/pkg/analyzer/aggregate"
	"github.com/mfiguera/camion/pkg/analyzer/authorstats"
	"github.com/mfiguera/camion/pkg/analyzer/complexity"
	"github.com/mfiguera/camion/pkg/analyzer/enrich"
	"github.com/mfiguera/camion/pkg/analyzer/grouping"
	"github.com/mfiguera/camion/pkg/analyzer/metrics"
	"github.com/mfiguera/camion/pkg/analyzer/normalize"
	"github.com/mfiguera/camion/pkg/analyzer/simplify"
	"github.com/mfiguera/camion/pkg/tree"
)

// Input is one repository's raw analysis data: the unnormalized tree, the
// commit list in document order, and the raw author dictionary the tool
// emitted alongside the tree (author -> total raw weight; may be nil, in
// which case it is derived from the raw tree).
type Input struct {
	Tree    *tree.Node
	Commits []tree.RawCommit
	Authors map[string]float64
}

// CommitIndex builds the hash -> commit dictionary used for enrichment.
func (in Input) CommitIndex() map[string]tree.RawCommit {
	index := make(map[string]tree.RawCommit, len(in.Commits))
	for _, c := range in.Commits {
		index[c.Hash] = c
	}
	return index
}

// rawAuthors sums raw weights per author across the unnormalized tree.
func rawAuthors(node *tree.Node) map[string]float64 {
	totals := make(map[string]float64)
	tree.Walk(node, func(n *tree.Node) {
		for _, share := range n.Authors {
			totals[share.Name] += share.Value
		}
	})
	return totals
}

// Contributions is the primary result: the fully enriched tree, the raw
// author dictionary, and the four aggregate numbers.
type Contributions struct {
	Tree         *tree.Node             `json:"tree"`
	Authors      map[string]float64     `json:"authors"`
	Stats        aggregate.Stats        `json:"stats"`
	Distribution aggregate.Distribution `json:"commitDistribution"`
}

// Simplified is the reduced view: top-contributor-only tree plus the
// author -> commits grouping.
type Simplified struct {
	Tree            *tree.Node                  `json:"tree"`
	CommitsByAuthor map[string][]tree.RawCommit `json:"commitsByAuthor"`
}

// Result bundles every view produced from one payload.
type Result struct {
	Contributions *Contributions      `json:"contributions"`
	Simplified    *Simplified         `json:"simplified"`
	Complexity    map[string]int      `json:"complexity"`
	Authors       *authorstats.Report `json:"authorStats"`
}

// Pipeline runs the enrichment stages. The zero value is not usable; use New.
type Pipeline struct {
	format enrich.FormatFunc
}

// Option is a functional option for configuring Pipeline.
type Option func(*Pipeline)

// WithFormat overrides the display-date formatter.
func WithFormat(fn enrich.FormatFunc) Option {
	return func(p *Pipeline) {
		if fn != nil {
			p.format = fn
		}
	}
}

// New creates a pipeline with default settings.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) enrichOpts() []enrich.Option {
	if p.format == nil {
		return nil
	}
	return []enrich.Option{enrich.WithFormat(p.format)}
}

// normalized returns the input tree with author values normalized.
func (p *Pipeline) normalized(in Input) *tree.Node {
	return normalize.Authors(in.Tree)
}

// enriched runs dates, commits and metrics over a normalized tree.
func (p *Pipeline) enriched(normalized *tree.Node, index map[string]tree.RawCommit) *tree.Node {
	opts := p.enrichOpts()
	t := enrich.Dates(normalized, opts...)
	t = enrich.Commits(t, index, opts...)
	return metrics.Annotate(t)
}

// Contributions produces the enriched-tree result shape.
func (p *Pipeline) Contributions(in Input) *Contributions {
	enriched := p.enriched(p.normalized(in), in.CommitIndex())
	authors := in.Authors
	if authors == nil {
		authors = rawAuthors(in.Tree)
	}
	return &Contributions{
		Tree:         enriched,
		Authors:      authors,
		Stats:        aggregate.Calculate(enriched),
		Distribution: aggregate.CommitDistribution(enriched),
	}
}

// Simplified produces the reduced result shape.
func (p *Pipeline) Simplified(in Input) *Simplified {
	return &Simplified{
		Tree:            simplify.Tree(p.normalized(in)),
		CommitsByAuthor: grouping.ByAuthor(in.Commits),
	}
}

// Complexity produces the author -> complexity mapping.
func (p *Pipeline) Complexity(in Input) map[string]int {
	return complexity.Aggregate(p.normalized(in))
}

// AuthorStats produces the per-author profile report.
func (p *Pipeline) AuthorStats(in Input) *authorstats.Report {
	return authorstats.Build(p.normalized(in))
}

// Run produces every view from a single normalization pass.
func (p *Pipeline) Run(in Input) *Result {
	normalized := p.normalized(in)
	enriched := p.enriched(normalized, in.CommitIndex())

	authors := in.Authors
	if authors == nil {
		authors = rawAuthors(in.Tree)
	}

	return &Result{
		Contributions: &Contributions{
			Tree:         enriched,
			Authors:      authors,
			Stats:        aggregate.Calculate(enriched),
			Distribution: aggregate.CommitDistribution(enriched),
		},
		Simplified: &Simplified{
			Tree:            simplify.Tree(normalized),
			CommitsByAuthor: grouping.ByAuthor(in.Commits),
		},
		Complexity: complexity.Aggregate(normalized),
		Authors:    authorstats.Build(normalized),
	}
}
