package main

import (
	"testing"

	"github.com/matsen/simgraph/internal/paper"
	"github.com/matsen/simgraph/internal/viz"
)

func TestExportedPapers(t *testing.T) {
	// root-b strong, root-c weak, b-c zero
	snap := &paper.Snapshot{
		Tensor: [][][]float64{{
			{0, 1, 0.1},
			{1, 0, 0},
			{0.1, 0, 0},
		}},
		Papers: []paper.Paper{
			{ID: "root", Title: "Root"},
			{ID: "b", Title: "B"},
			{ID: "c", Title: "C"},
		},
		Similarities: []paper.Similarity{{Name: "co-citation"}},
	}

	session := viz.NewSession(nil, viz.DefaultSettings())
	if err := session.Load(snap); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	all := exportedPapers(session.Graph(), session.Frame(), false)
	if len(all) != 3 {
		t.Errorf("exportedPapers(all) = %d papers, want 3", len(all))
	}

	if err := session.SetFilter(50); err != nil {
		t.Fatalf("SetFilter() error = %v", err)
	}
	visible := exportedPapers(session.Graph(), session.Frame(), true)
	if len(visible) != 2 || visible[0].ID != "root" || visible[1].ID != "b" {
		ids := make([]string, len(visible))
		for i, p := range visible {
			ids[i] = p.ID
		}
		t.Errorf("exportedPapers(visible) = %v, want [root b]", ids)
	}
}
