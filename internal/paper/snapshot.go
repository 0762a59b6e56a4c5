package paper

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSnapshot indicates a snapshot whose tensor, papers and
// similarities don't agree in shape.
var ErrInvalidSnapshot = errors.New("invalid graph snapshot")

// LinkSeparator joins two paper IDs into a link ID. Paper IDs may not
// contain it, so every pair gets a distinct link ID.
const LinkSeparator = "|"

// Snapshot is the graph-data source response for one root paper.
// It is treated as a single atomic unit.
type Snapshot struct {
	// Tensor holds tensor[metric][i][j], indexed like Papers.
	Tensor       [][][]float64 `json:"tensor"`
	Papers       []Paper       `json:"paper"`
	Similarities []Similarity  `json:"similarities"`
}

// Root returns the requested paper, which the source always puts first.
func (s *Snapshot) Root() *Paper {
	if len(s.Papers) == 0 {
		return nil
	}
	return &s.Papers[0]
}

// MetricNames returns the similarity names in tensor order.
func (s *Snapshot) MetricNames() []string {
	names := make([]string, len(s.Similarities))
	for i, sim := range s.Similarities {
		names[i] = sim.Name
	}
	return names
}

// Validate checks that the snapshot is internally consistent.
func (s *Snapshot) Validate() error {
	if len(s.Papers) == 0 {
		return fmt.Errorf("%w: no papers", ErrInvalidSnapshot)
	}
	if len(s.Tensor) != len(s.Similarities) {
		return fmt.Errorf("%w: %d tensor layers but %d similarities",
			ErrInvalidSnapshot, len(s.Tensor), len(s.Similarities))
	}

	n := len(s.Papers)
	for m, layer := range s.Tensor {
		if len(layer) != n {
			return fmt.Errorf("%w: layer %d has %d rows, want %d", ErrInvalidSnapshot, m, len(layer), n)
		}
		for i, row := range layer {
			if len(row) != n {
				return fmt.Errorf("%w: layer %d row %d has %d columns, want %d",
					ErrInvalidSnapshot, m, i, len(row), n)
			}
		}
	}

	seen := make(map[string]bool, n)
	for i, p := range s.Papers {
		if p.ID == "" {
			return fmt.Errorf("%w: paper %d has empty id", ErrInvalidSnapshot, i)
		}
		if strings.Contains(p.ID, LinkSeparator) {
			return fmt.Errorf("%w: paper id %q contains %q", ErrInvalidSnapshot, p.ID, LinkSeparator)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate paper id %s", ErrInvalidSnapshot, p.ID)
		}
		seen[p.ID] = true
	}

	return nil
}
