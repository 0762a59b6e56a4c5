package viz

import (
	"fmt"

	"github.com/matsen/simgraph/internal/similarity"
)

// Visual constants for node and link encodings.
const (
	// YearRange is how many years back node opacity ramps down before
	// settling at OpacityLowerBound.
	YearRange         = 20
	OpacityLowerBound = 0.2

	WidthScale = 5.0
	HoverWidth = 4.0

	// FilterDivisor converts the weak-link filter slider (0-100) into a
	// similarity threshold.
	FilterDivisor = 100.0

	// Squish keeps link distance finite at near-zero similarity.
	Squish        = 0.01
	DistanceScale = 100.0
)

// DefaultField is the field of study given its own accent color.
const DefaultField = "Computer Science"

// Resolver evaluates visual attributes of nodes and links. It holds no graph
// state; every value is recomputed from its inputs on each call.
type Resolver struct {
	// Weights are the current slider values summing to Total. With no
	// weights links fall back to their static fused similarity.
	Weights []float64
	Total   float64
	// StaticColor shades links by their static fused similarity. It is set
	// until user weights are in effect.
	StaticColor bool

	Palette         Palette
	Filter          float64 // weak-link filter, 0-100
	CurrentYear     int
	RepellingOffset float64
	DefaultField    string
	Hover           *Hover
}

// Opacity returns the node opacity for a publication year: a linear ramp
// from 1 for current papers down to OpacityLowerBound at YearRange years old.
func (r Resolver) Opacity(year int) float64 {
	cutoff := r.CurrentYear - YearRange
	if year < cutoff {
		return OpacityLowerBound
	}
	age := float64(r.CurrentYear - year)
	opacity := 1 - (1-OpacityLowerBound)*age/YearRange
	if opacity > 1 {
		return 1
	}
	if opacity < OpacityLowerBound {
		return OpacityLowerBound
	}
	return opacity
}

// NodeColor returns the node's base color before opacity is applied.
func (r Resolver) NodeColor(n *Node) RGB {
	if n.Root {
		return OriginColor
	}
	field := r.DefaultField
	if field == "" {
		field = DefaultField
	}
	if n.Paper.HasSoleField(field) {
		return DefaultFieldColor
	}
	return r.Palette.ColorFor(n.Paper.Fields)
}

// NodeRGBA returns the node color with year-based opacity.
func (r Resolver) NodeRGBA(n *Node) string {
	return r.NodeColor(n).RGBA(r.Opacity(n.Paper.Year))
}

// NodeLabel returns the tooltip label for a node.
func (r Resolver) NodeLabel(n *Node) string {
	p := n.Paper
	label := p.Title
	if author := p.FirstAuthor(); author != "" {
		if len(p.Authors) > 1 {
			author += " et al."
		}
		label += "\n" + author
	}
	if p.Year != 0 {
		label += fmt.Sprintf(" (%d)", p.Year)
	}
	return label
}

// WeightedSimilarity fuses a link's per-metric similarities with the
// current weights.
func (r Resolver) WeightedSimilarity(l *Link) float64 {
	if len(r.Weights) == 0 {
		return l.Fused
	}
	return similarity.Weighted(l.Similarities, r.Weights, r.Total)
}

// LinkWidth returns the rendered width of a link.
func (r Resolver) LinkWidth(l *Link) float64 {
	if r.Hover.LinkHovered(l.ID) {
		return HoverWidth
	}
	return r.WeightedSimilarity(l) * WidthScale
}

// LinkVisible reports whether a link passes the weak-link filter. Links
// with zero similarity are never visible.
func (r Resolver) LinkVisible(l *Link) bool {
	w := r.WeightedSimilarity(l)
	return w != 0 && w > r.Filter/FilterDivisor
}

// LinkRGBA returns the link color. Its alpha follows the weighted
// similarity, or the static fused similarity while StaticColor is set.
func (r Resolver) LinkRGBA(l *Link) string {
	if r.Hover.LinkHovered(l.ID) {
		return HoverLinkColor.RGBA(1)
	}
	shade := l.Fused
	if !r.StaticColor {
		shade = r.WeightedSimilarity(l)
	}
	return LinkColor.RGBA(clamp01(shade))
}

// LinkDistance is the force-layout rest length hint for a link.
func (r Resolver) LinkDistance(l *Link) float64 {
	return DistanceScale/(r.WeightedSimilarity(l)+Squish) + r.RepellingOffset
}

// LinkStrength is the force-layout strength hint for a link.
func (r Resolver) LinkStrength(l *Link) float64 {
	return r.WeightedSimilarity(l) + Squish
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
