package viz

import (
	"encoding/json"
	"fmt"
)

// CytoscapeElements represents the Cytoscape.js data format.
type CytoscapeElements struct {
	Nodes []CytoscapeNode `json:"nodes"`
	Edges []CytoscapeEdge `json:"edges"`
}

// CytoscapeNode represents a node in Cytoscape.js format.
type CytoscapeNode struct {
	Data    FrameNode `json:"data"`
	Classes string    `json:"classes,omitempty"`
}

// CytoscapeEdge represents an edge in Cytoscape.js format.
type CytoscapeEdge struct {
	Data    FrameLink `json:"data"`
	Classes string    `json:"classes,omitempty"`
}

// ToCytoscapeJSON converts a frame to Cytoscape.js JSON format. Links
// hidden by the weak-link filter are left out.
func (f *Frame) ToCytoscapeJSON() (string, error) {
	elements := CytoscapeElements{
		Nodes: make([]CytoscapeNode, 0, len(f.Nodes)),
		Edges: make([]CytoscapeEdge, 0, len(f.Links)),
	}

	for _, n := range f.Nodes {
		elements.Nodes = append(elements.Nodes, CytoscapeNode{Data: n, Classes: nodeClasses(n)})
	}

	for _, l := range f.Links {
		if !l.Visible {
			continue
		}
		cyEdge := CytoscapeEdge{Data: l}
		if l.Hovered {
			cyEdge.Classes = "hovered"
		}
		elements.Edges = append(elements.Edges, cyEdge)
	}

	jsonBytes, err := json.Marshal(elements)
	if err != nil {
		return "", fmt.Errorf("marshaling Cytoscape elements to JSON: %w", err)
	}
	return string(jsonBytes), nil
}

func nodeClasses(n FrameNode) string {
	switch {
	case n.Root && n.Hovered:
		return "root hovered"
	case n.Root:
		return "root"
	case n.Hovered:
		return "hovered"
	default:
		return ""
	}
}
