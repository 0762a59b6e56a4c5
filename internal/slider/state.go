package slider

import (
	"fmt"
)

// Store persists slider weights between sessions. Implementations are best
// effort: no transactional guarantee is expected.
type Store interface {
	// SavedSliders returns the persisted weights, or nil if none were saved.
	SavedSliders() ([]float64, error)
	// SetSavedSliders replaces the persisted weights.
	SetSavedSliders(weights []float64) error
}

// Sliders holds the live weight vector and writes it through to a Store
// after every change.
type Sliders struct {
	weights Weights
	store   Store

	// weighted is set once user weights are in effect: restored from the
	// store or applied with Set or Reset.
	weighted bool
}

// Load restores sliders for n metrics from store. A missing, unreadable or
// mismatched saved vector falls back to uniform weights; the read error, if
// any, is returned alongside usable sliders.
func Load(store Store, n int) (*Sliders, error) {
	s := &Sliders{store: store}
	if store == nil {
		s.weights = Uniform(n)
		return s, nil
	}

	saved, err := store.SavedSliders()
	s.weights = Restore(saved, n)
	s.weighted = restorable(saved, n)
	if err != nil {
		return s, fmt.Errorf("reading saved sliders: %w", err)
	}
	return s, nil
}

// New returns sliders with uniform weights for n metrics that persist to store.
func New(store Store, n int) *Sliders {
	return &Sliders{weights: Uniform(n), store: store}
}

// Len returns the number of sliders.
func (s *Sliders) Len() int {
	return len(s.weights)
}

// Values returns a copy of the current weights.
func (s *Sliders) Values() Weights {
	out := make(Weights, len(s.weights))
	copy(out, s.weights)
	return out
}

// Set moves slider index to value and redistributes the others. Invalid
// input leaves the weights untouched and returns ErrOutOfRange. A failed
// save is returned but the new weights stay in effect.
func (s *Sliders) Set(index int, value float64) error {
	next, err := Redistribute(s.weights, index, value)
	if err != nil {
		return err
	}
	s.weights = next
	s.weighted = true
	return s.save()
}

// Reset restores uniform weights and persists them.
func (s *Sliders) Reset() error {
	s.weights = Uniform(len(s.weights))
	s.weighted = true
	return s.save()
}

// Weighted reports whether user weights are in effect. Before that, links
// are drawn from the unweighted fused similarity.
func (s *Sliders) Weighted() bool {
	return s.weighted
}

func (s *Sliders) save() error {
	if s.store == nil {
		return nil
	}
	if err := s.store.SetSavedSliders(s.Values()); err != nil {
		return fmt.Errorf("saving sliders: %w", err)
	}
	return nil
}
