// Package viz turns a similarity snapshot into a renderable paper graph and
// resolves its visual attributes against the live slider weights.
package viz

import (
	"github.com/matsen/simgraph/internal/paper"
)

// Graph holds the nodes and links built from one snapshot.
// Nodes and links are stored in slices and indexed by ID.
type Graph struct {
	Nodes   []Node
	Links   []Link
	Metrics []paper.Similarity
	RootID  string

	// Citations is the citation range of the node set, for the legend.
	Citations CitationScale

	nodeIndex map[string]int
	linkIndex map[string]int
}

// Node represents a paper in the graph.
type Node struct {
	ID    string
	Paper *paper.Paper
	Size  float64
	Root  bool
}

// Link connects an unordered pair of papers.
type Link struct {
	ID     string
	Source string
	Target string

	// Similarities holds the normalized similarity for each metric.
	Similarities []float64
	// Fused is the static fused similarity: the renormalized sum of the
	// normalized layers. It colors links before any user weighting.
	Fused float64
}

// IsEmpty returns true if the graph has no nodes.
func (g *Graph) IsEmpty() bool {
	return g == nil || len(g.Nodes) == 0
}

// Node looks up a node by paper ID.
func (g *Graph) Node(id string) (*Node, bool) {
	i, ok := g.nodeIndex[id]
	if !ok {
		return nil, false
	}
	return &g.Nodes[i], true
}

// Link looks up a link by ID.
func (g *Graph) Link(id string) (*Link, bool) {
	i, ok := g.linkIndex[id]
	if !ok {
		return nil, false
	}
	return &g.Links[i], true
}

// LinkBetween looks up the link joining two papers in either order.
func (g *Graph) LinkBetween(a, b string) (*Link, bool) {
	if l, ok := g.Link(linkID(a, b)); ok {
		return l, true
	}
	return g.Link(linkID(b, a))
}

// linkID generates the link ID for a source/target pair. IDs are stable
// across rebuilds of the same snapshot and unique because paper IDs never
// contain the separator.
func linkID(source, target string) string {
	return source + paper.LinkSeparator + target
}
