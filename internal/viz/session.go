package viz

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/matsen/simgraph/internal/paper"
	"github.com/matsen/simgraph/internal/slider"
)

// ErrUnknownElement indicates a hover target that isn't in the current graph.
var ErrUnknownElement = errors.New("unknown graph element")

// ErrFilterOutOfRange indicates a weak-link filter outside [0, FilterDivisor].
var ErrFilterOutOfRange = errors.New("weak-link filter out of range")

// Settings are the display preferences applied to every frame.
type Settings struct {
	Palette         Palette
	Filter          float64
	CurrentYear     int
	RepellingOffset float64
	DefaultField    string
}

// DefaultSettings returns settings with the default palette, no filter and
// the current calendar year.
func DefaultSettings() Settings {
	p, _ := PaletteByName(DefaultPalette)
	return Settings{
		Palette:      p,
		CurrentYear:  time.Now().Year(),
		DefaultField: DefaultField,
	}
}

// Session holds the displayed graph, its sliders and hover state. It is
// driven from a single event loop and is not safe for concurrent use.
type Session struct {
	settings Settings
	store    slider.Store

	graph   *Graph
	sliders *slider.Sliders
	hover   Hover
}

// NewSession creates an empty session persisting sliders to store.
func NewSession(store slider.Store, settings Settings) *Session {
	return &Session{
		settings: settings,
		store:    store,
		sliders:  slider.New(store, 0),
	}
}

// Load builds a graph from the snapshot and replaces the displayed graph in
// one step. Hover state is reset and sliders are restored for the
// snapshot's metric count. On error the previous graph stays displayed.
func (s *Session) Load(snap *paper.Snapshot) error {
	g, err := Build(snap)
	if err != nil {
		return fmt.Errorf("building graph: %w", err)
	}

	sliders, err := slider.Load(s.store, len(g.Metrics))
	if err != nil {
		slog.Warn("restoring sliders failed, using uniform weights", "error", err)
	}

	s.graph = g
	s.sliders = sliders
	s.hover.Clear()

	slog.Debug("graph loaded", "root", g.RootID, "nodes", len(g.Nodes), "links", len(g.Links),
		"metrics", len(g.Metrics))
	return nil
}

// Graph returns the displayed graph, or nil before the first Load.
func (s *Session) Graph() *Graph {
	return s.graph
}

// Weights returns a copy of the current slider weights.
func (s *Session) Weights() slider.Weights {
	return s.sliders.Values()
}

// SetWeight moves one slider and redistributes the rest. Out-of-range input
// leaves the weights unchanged.
func (s *Session) SetWeight(index int, value float64) error {
	return s.sliders.Set(index, value)
}

// ResetWeights restores uniform weights.
func (s *Session) ResetWeights() error {
	return s.sliders.Reset()
}

// SetFilter sets the weak-link filter.
func (s *Session) SetFilter(filter float64) error {
	if filter < 0 || filter > FilterDivisor {
		return fmt.Errorf("%w: %g", ErrFilterOutOfRange, filter)
	}
	s.settings.Filter = filter
	return nil
}

// SetPalette replaces the node palette.
func (s *Session) SetPalette(p Palette) {
	s.settings.Palette = p
}

// HoverNode marks id as the hovered node, clearing the previous one.
// An empty id clears the node hover.
func (s *Session) HoverNode(id string) error {
	if id == "" {
		s.hover.LeaveNode()
		return nil
	}
	if s.graph == nil {
		return fmt.Errorf("%w: node %s", ErrUnknownElement, id)
	}
	if _, ok := s.graph.Node(id); !ok {
		return fmt.Errorf("%w: node %s", ErrUnknownElement, id)
	}
	s.hover.EnterNode(id)
	return nil
}

// HoverLink marks id as the hovered link, clearing the previous one.
// An empty id clears the link hover.
func (s *Session) HoverLink(id string) error {
	if id == "" {
		s.hover.LeaveLink()
		return nil
	}
	if s.graph == nil {
		return fmt.Errorf("%w: link %s", ErrUnknownElement, id)
	}
	if _, ok := s.graph.Link(id); !ok {
		return fmt.Errorf("%w: link %s", ErrUnknownElement, id)
	}
	s.hover.EnterLink(id)
	return nil
}

// HoveredNode returns the hovered node ID, or "" if none.
func (s *Session) HoveredNode() string {
	return s.hover.Node()
}

// HoveredLink returns the hovered link ID, or "" if none.
func (s *Session) HoveredLink() string {
	return s.hover.Link()
}

// Resolver returns a resolver over the session's current state.
func (s *Session) Resolver() Resolver {
	return Resolver{
		Weights:         s.sliders.Values(),
		Total:           slider.Total,
		StaticColor:     !s.sliders.Weighted(),
		Palette:         s.settings.Palette,
		Filter:          s.settings.Filter,
		CurrentYear:     s.settings.CurrentYear,
		RepellingOffset: s.settings.RepellingOffset,
		DefaultField:    s.settings.DefaultField,
		Hover:           &s.hover,
	}
}

// Frame evaluates the displayed graph against the current state.
func (s *Session) Frame() Frame {
	return s.Resolver().Frame(s.graph)
}
