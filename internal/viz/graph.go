package viz

import (
	"fmt"

	"github.com/matsen/simgraph/internal/paper"
	"github.com/matsen/simgraph/internal/similarity"
)

// Build validates a snapshot, fuses its tensor and constructs the complete
// graph: one node per paper, one link per unordered pair, sized nodes and
// the citation range for the legend.
func Build(s *paper.Snapshot) (*Graph, error) {
	if s == nil {
		return nil, fmt.Errorf("snapshot cannot be nil")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}

	fused := similarity.Fuse(toTensor(s.Tensor))

	// The graph owns its paper records so later changes to the snapshot
	// can't leak into rendered nodes.
	papers := make([]paper.Paper, len(s.Papers))
	copy(papers, s.Papers)

	g := &Graph{
		Metrics: append([]paper.Similarity(nil), s.Similarities...),
		RootID:  papers[0].ID,
	}
	g.Nodes, g.nodeIndex = buildNodes(papers)
	g.Links, g.linkIndex = buildLinks(papers, fused)

	g.Citations = citationRange(papers)
	for i := range g.Nodes {
		g.Nodes[i].Size = g.Citations.Size(g.Nodes[i].Paper.CitationCount())
	}

	return g, nil
}

func toTensor(raw [][][]float64) similarity.Tensor {
	t := make(similarity.Tensor, len(raw))
	for m, layer := range raw {
		t[m] = similarity.Matrix(layer)
	}
	return t
}

// buildNodes constructs one node per paper. The first paper is the root.
func buildNodes(papers []paper.Paper) ([]Node, map[string]int) {
	nodes := make([]Node, len(papers))
	index := make(map[string]int, len(papers))

	for i := range papers {
		nodes[i] = Node{
			ID:    papers[i].ID,
			Paper: &papers[i],
			Root:  i == 0,
		}
		index[papers[i].ID] = i
	}

	return nodes, index
}

// buildLinks emits exactly one link per unordered pair i<j.
func buildLinks(papers []paper.Paper, fused *similarity.Fused) ([]Link, map[string]int) {
	n := len(papers)
	links := make([]Link, 0, n*(n-1)/2)
	index := make(map[string]int, n*(n-1)/2)

	for i := 0; i < n-1; i++ {
		for j := i + 1; j < n; j++ {
			id := linkID(papers[i].ID, papers[j].ID)
			index[id] = len(links)
			links = append(links, Link{
				ID:           id,
				Source:       papers[i].ID,
				Target:       papers[j].ID,
				Similarities: fused.Pair(i, j),
				Fused:        fused.StaticAt(i, j),
			})
		}
	}

	return links, index
}

// citationRange returns the citation extremes across papers.
func citationRange(papers []paper.Paper) CitationScale {
	var scale CitationScale
	for i := range papers {
		c := papers[i].CitationCount()
		if i == 0 || c < scale.Min {
			scale.Min = c
		}
		if i == 0 || c > scale.Max {
			scale.Max = c
		}
	}
	return scale
}
