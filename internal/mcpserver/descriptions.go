package mcpserver

// Tool descriptions with interpretation guidance for LLMs.
// Each description explains what the tool does, when to use it,
// how to interpret results, and key thresholds.

func describeContributions() string {
	return `Produces the full contribution breakdown of a repository: a file tree where every file and folder carries per-author contribution percentages, enriched commit records, formatted change dates, and aggregate statistics.

USE WHEN:
- Understanding who owns which parts of a codebase
- Reviewing how contribution is distributed before reassigning work
- Spotting single-author files that concentrate knowledge risk
- Summarizing repository activity for a report

INTERPRETING RESULTS:
- Author percentages are normalized per node and sum to 100 (or all 0 when a node carries no weight)
- singleAuthor: true flags files written entirely by one person
- topContributor names the author with the highest share on each file
- stats.minCommits/maxCommits bound per-file commit counts across the tree
- commitDistribution gives mean, stddev, median, and p95 of commits per file

METRICS RETURNED:
- Per-node: authors (percent by author), commits, lastChangeEpoch and its formatted date, sizeInBytes, noCommits, isBinary, singleAuthor, topContributor
- Root-level: raw author dictionary, aggregate stats, commit distribution`
}

func describeSimplified() string {
	return `Produces a simplified view of the contribution tree keeping only the dominant author per node, plus commits grouped by author.

USE WHEN:
- Rendering an ownership map where one name per file is enough
- Producing a compact summary for large repositories
- Listing each author's commits in one place

INTERPRETING RESULTS:
- Each node keeps exactly its highest-share author; ties keep the first-seen author
- commitsByAuthor maps author name to their commits in original list order

METRICS RETURNED:
- Simplified tree with single-entry author sets
- commitsByAuthor: author -> list of raw commits`
}

func describeComplexity() string {
	return `Aggregates a per-author file-reach score: for every subtree an author contributed to, the author is credited with the subtree's full file count.

USE WHEN:
- Estimating how widely each author's work spreads through the tree
- Comparing breadth of involvement between authors

INTERPRETING RESULTS:
- Scores intentionally double-count: an author credited on a folder and on files inside it is counted for both, so scores are comparable to each other, not to the file total
- Higher score means the author's contributions reach more of the tree

METRICS RETURNED:
- Map of author name to aggregate file-reach score`
}

func describeAuthors() string {
	return `Builds per-author profiles, collaboration pairs, and repository totals from the contribution tree.

USE WHEN:
- Profiling individual contributors (files touched, owned, shared)
- Finding frequent collaborator pairs
- Getting headline totals for a repository

INTERPRETING RESULTS:
- filesOwned counts files where the author is the top contributor
- avgOwnership is the author's mean percentage across touched files
- uniqueCommits deduplicates commits across the author's files
- pairs are sorted by shared file count, descending

METRICS RETURNED:
- profiles: per-author files touched/owned/shared, average ownership, unique commits
- pairs: author pairs with shared file counts
- totals: files, bytes, commits, binary files, author count`
}
