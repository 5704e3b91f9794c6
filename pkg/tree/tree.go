// Package tree defines the repository tree model shared by all analyzers.
//
// A tree is a hierarchy of directory ("tree") and file ("blob") nodes as
// produced by the external analysis tool. Blobs carry per-author contribution
// values and commit history; directories carry only ordered children. Child
// order is meaningful and preserved through every transformation.
package tree

// NodeType discriminates directory nodes from file nodes.
type NodeType string

const (
	// TypeTree is a directory node.
	TypeTree NodeType = "tree"
	// TypeBlob is a file node.
	TypeBlob NodeType = "blob"
)

// AuthorShare is one author's contribution value at a node. Before
// normalization the value is a raw weight (e.g. lines touched); after
// normalization it is a rounded percentage in [0, 100].
type AuthorShare struct {
	Name  string
	Value float64
}

// AuthorSet is an ordered author -> value mapping. Go maps do not preserve
// insertion order, so author order (first-seen on ingest, descending by
// percentage after normalization) is kept explicit in a slice.
type AuthorSet []AuthorShare

// Get returns the value for the named author.
func (s AuthorSet) Get(name string) (float64, bool) {
	for _, share := range s {
		if share.Name == name {
			return share.Value, true
		}
	}
	return 0, false
}

// Names returns the author names in stored order.
func (s AuthorSet) Names() []string {
	names := make([]string, len(s))
	for i, share := range s {
		names[i] = share.Name
	}
	return names
}

// Total returns the sum of all values.
func (s AuthorSet) Total() float64 {
	var total float64
	for _, share := range s {
		total += share.Value
	}
	return total
}

// Copy returns a fresh AuthorSet backed by its own array.
func (s AuthorSet) Copy() AuthorSet {
	if s == nil {
		return nil
	}
	out := make(AuthorSet, len(s))
	copy(out, s)
	return out
}

// RawCommit is a commit as emitted by the analysis tool, keyed by hash in the
// commit dictionary that accompanies the raw tree.
type RawCommit struct {
	Hash    string `json:"hash"`
	Message string `json:"message"`
	Time    int64  `json:"time"`
	Author  string `json:"author"`
}

// Commit is the enriched form served downstream. The raw time and author are
// dropped; the date is a formatted display string.
type Commit struct {
	Hash    string `json:"hash"`
	Message string `json:"message"`
	Date    string `json:"date"`
}

// Node is one entry in the repository tree. Exactly one of Children (tree
// nodes) or the blob fields is populated.
type Node struct {
	Type     NodeType
	Name     string
	Children []*Node

	// Blob fields.
	Authors         AuthorSet
	Commits         []string // commit hashes from the raw payload
	History         []Commit // set by commit enrichment, replaces Commits downstream
	LastChangeEpoch int64    // unix seconds; 0 means absent
	LastChangeDate  string   // set by date enrichment
	SizeInBytes     int64
	NoCommits       int
	IsBinary        bool

	// Derived metrics, valid only when annotated is true.
	SingleAuthor   bool
	TopContributor string
	annotated      bool
}

// IsBlob reports whether the node is a file node.
func (n *Node) IsBlob() bool { return n.Type == TypeBlob }

// Annotated reports whether derived metrics have been set on this node.
func (n *Node) Annotated() bool { return n.annotated }

// Annotate records derived metrics on the node.
func (n *Node) Annotate(singleAuthor bool, topContributor string) {
	n.SingleAuthor = singleAuthor
	n.TopContributor = topContributor
	n.annotated = true
}

// CommitCount returns the number of commits attached to the node, reading
// whichever representation is present. Enrichment replaces hash strings with
// records but never changes the count of resolved entries.
func (n *Node) CommitCount() int {
	if n.History != nil {
		return len(n.History)
	}
	return len(n.Commits)
}

// Shallow returns a copy of the node with fresh Authors, Commits and History
// containers. Children are shared; stages that transform children must replace
// the slice with freshly built nodes.
func (n *Node) Shallow() *Node {
	out := *n
	out.Authors = n.Authors.Copy()
	if n.Commits != nil {
		out.Commits = append([]string(nil), n.Commits...)
	}
	if n.History != nil {
		out.History = append([]Commit(nil), n.History...)
	}
	return &out
}

// Clone returns a deep copy of the subtree rooted at n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := n.Shallow()
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			out.Children[i] = child.Clone()
		}
	}
	return out
}

// Walk visits n and every descendant in pre-order, children in stored order.
func Walk(n *Node, fn func(*Node)) {
	if n == nil {
		return
	}
	fn(n)
	for _, child := range n.Children {
		Walk(child, fn)
	}
}

// Blobs returns every blob node in the subtree, in pre-order.
func Blobs(n *Node) []*Node {
	var blobs []*Node
	Walk(n, func(node *Node) {
		if node.IsBlob() {
			blobs = append(blobs, node)
		}
	})
	return blobs
}

// CountBlobs returns the number of blob descendants of n, counting n itself
// when it is a blob.
func CountBlobs(n *Node) int {
	count := 0
	Walk(n, func(node *Node) {
		if node.IsBlob() {
			count++
		}
	})
	return count
}
