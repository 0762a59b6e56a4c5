package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/matsen/simgraph/internal/paper"
)

func testResolver() Resolver {
	p, _ := PaletteByName(DefaultPalette)
	return Resolver{
		Weights:      []float64{50, 50},
		Total:        100,
		Palette:      p,
		CurrentYear:  2024,
		DefaultField: DefaultField,
		Hover:        &Hover{},
	}
}

func TestOpacity(t *testing.T) {
	r := testResolver()
	tests := []struct {
		year int
		want float64
	}{
		{2024, 1},
		{2030, 1},
		{2014, 0.6},
		{2004, OpacityLowerBound},
		{1990, OpacityLowerBound},
		{0, OpacityLowerBound},
	}
	for _, tt := range tests {
		if got := r.Opacity(tt.year); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Opacity(%d) = %v, want %v", tt.year, got, tt.want)
		}
	}
}

func TestOpacity_DecreasesWithAge(t *testing.T) {
	r := testResolver()
	prev := r.Opacity(r.CurrentYear)
	for year := r.CurrentYear - 1; year > r.CurrentYear-40; year-- {
		got := r.Opacity(year)
		if got > prev {
			t.Fatalf("Opacity(%d) = %v > Opacity(%d) = %v", year, got, year+1, prev)
		}
		prev = got
	}
}

func TestNodeColor(t *testing.T) {
	r := testResolver()

	root := &Node{ID: "r", Root: true, Paper: &paper.Paper{Fields: []string{"Biology"}}}
	if got := r.NodeColor(root); got != OriginColor {
		t.Errorf("root color = %v, want origin color", got)
	}

	cs := &Node{ID: "cs", Paper: &paper.Paper{Fields: []string{"Computer Science"}}}
	if got := r.NodeColor(cs); got != DefaultFieldColor {
		t.Errorf("default field color = %v, want %v", got, DefaultFieldColor)
	}

	mixed := &Node{ID: "m", Paper: &paper.Paper{Fields: []string{"Computer Science", "Medicine"}}}
	if got := r.NodeColor(mixed); got == DefaultFieldColor {
		t.Errorf("multi-field paper got the default field color")
	}
}

func TestNodeColor_StableForSameFieldSet(t *testing.T) {
	r := testResolver()
	a := &Node{ID: "a", Paper: &paper.Paper{Fields: []string{"Medicine", "Biology"}}}
	b := &Node{ID: "b", Paper: &paper.Paper{Fields: []string{"Biology", "Medicine"}}}

	first := r.NodeColor(a)
	for i := 0; i < 10; i++ {
		if got := r.NodeColor(a); got != first {
			t.Fatalf("color changed between calls: %v vs %v", got, first)
		}
	}
	if got := r.NodeColor(b); got != first {
		t.Errorf("reordered field set got %v, want %v", got, first)
	}
}

func TestFieldColorIndex(t *testing.T) {
	// xxhash64 of the sorted set joined by \x1f, modulo size
	tests := []struct {
		fields []string
		size   int
		want   int
	}{
		{[]string{"Biology", "Medicine"}, 8, 7},
		{[]string{"Medicine", "Biology"}, 8, 7},
		{[]string{"Biology", "Medicine"}, 6, 1},
		{[]string{"Biology"}, 8, 1},
		{[]string{"Biology"}, 6, 5},
		{[]string{"Biology", "Biology"}, 6, 5},
		{[]string{"Computer Science"}, 8, 0},
		{[]string{"Mathematics", "Computer Science"}, 8, 4},
		{[]string{"Mathematics", "Computer Science", "Physics"}, 8, 1},
		{[]string{"Physics"}, 6, 1},
		{nil, 5, 1},
	}
	for _, tt := range tests {
		if got := FieldColorIndex(tt.fields, tt.size); got != tt.want {
			t.Errorf("FieldColorIndex(%v, %d) = %d, want %d", tt.fields, tt.size, got, tt.want)
		}
	}
}

func TestFieldColorIndex_DoesNotMutate(t *testing.T) {
	fields := []string{"Medicine", "Biology", "Medicine"}
	FieldColorIndex(fields, 8)
	if fields[0] != "Medicine" || fields[1] != "Biology" || len(fields) != 3 {
		t.Errorf("FieldColorIndex() mutated its input: %v", fields)
	}
}

func TestNodeRGBA(t *testing.T) {
	r := testResolver()
	n := &Node{ID: "r", Root: true, Paper: &paper.Paper{Year: 2014}}
	if got, want := r.NodeRGBA(n), "rgba(228,87,46,0.600)"; got != want {
		t.Errorf("NodeRGBA() = %q, want %q", got, want)
	}
}

func TestNodeLabel(t *testing.T) {
	r := testResolver()
	n := &Node{Paper: &paper.Paper{
		Title:   "Attention",
		Year:    2017,
		Authors: []paper.Author{{Name: "A. Vaswani"}, {Name: "N. Shazeer"}},
	}}
	if got, want := r.NodeLabel(n), "Attention\nA. Vaswani et al. (2017)"; got != want {
		t.Errorf("NodeLabel() = %q, want %q", got, want)
	}
}

func TestWeightedSimilarity(t *testing.T) {
	r := testResolver()
	l := &Link{ID: "a|b", Similarities: []float64{1, 0.5}, Fused: 0.9}

	if got := r.WeightedSimilarity(l); math.Abs(got-0.75) > 1e-12 {
		t.Errorf("WeightedSimilarity() = %v, want 0.75", got)
	}

	r.Weights = []float64{0, 100}
	if got := r.WeightedSimilarity(l); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("WeightedSimilarity() = %v, want 0.5", got)
	}

	r.Weights = nil
	if got := r.WeightedSimilarity(l); got != 0.9 {
		t.Errorf("unweighted WeightedSimilarity() = %v, want fused 0.9", got)
	}
}

func TestLinkWidth(t *testing.T) {
	r := testResolver()
	l := &Link{ID: "a|b", Similarities: []float64{1, 0.5}}

	if got := r.LinkWidth(l); math.Abs(got-0.75*WidthScale) > 1e-12 {
		t.Errorf("LinkWidth() = %v, want %v", got, 0.75*WidthScale)
	}

	r.Hover.EnterLink("a|b")
	if got := r.LinkWidth(l); got != HoverWidth {
		t.Errorf("hovered LinkWidth() = %v, want %v", got, HoverWidth)
	}
	if got := r.LinkRGBA(l); got != HoverLinkColor.RGBA(1) {
		t.Errorf("hovered LinkRGBA() = %q, want hover color", got)
	}
}

func TestLinkVisible_ZeroNeverVisible(t *testing.T) {
	r := testResolver()
	l := &Link{ID: "a|b", Similarities: []float64{0, 0}}
	for _, filter := range []float64{0, 1, 50, 100} {
		r.Filter = filter
		if r.LinkVisible(l) {
			t.Errorf("zero-similarity link visible at filter %v", filter)
		}
	}
}

func TestLinkVisible_FilterOnlyHides(t *testing.T) {
	r := testResolver()
	links := []*Link{
		{ID: "1", Similarities: []float64{0.05, 0.1}},
		{ID: "2", Similarities: []float64{0.3, 0.5}},
		{ID: "3", Similarities: []float64{0.9, 1}},
		{ID: "4", Similarities: []float64{0.2, 0}},
	}

	visible := make(map[string]bool)
	for _, l := range links {
		visible[l.ID] = r.LinkVisible(l)
	}

	for filter := 0.0; filter <= 100; filter += 2.5 {
		r.Filter = filter
		for _, l := range links {
			now := r.LinkVisible(l)
			if now && !visible[l.ID] {
				t.Fatalf("link %s reappeared at filter %v", l.ID, filter)
			}
			visible[l.ID] = now
		}
	}
	for id, v := range visible {
		if v {
			t.Errorf("link %s still visible at filter 100", id)
		}
	}
}

func TestLinkVisible_Threshold(t *testing.T) {
	r := testResolver()
	r.Filter = 40
	if r.LinkVisible(&Link{Similarities: []float64{0.4, 0.4}}) {
		t.Errorf("link at exactly the threshold should be hidden")
	}
	if !r.LinkVisible(&Link{Similarities: []float64{0.5, 0.5}}) {
		t.Errorf("link above the threshold should be visible")
	}
}

func TestPhysicsHints(t *testing.T) {
	r := testResolver()
	r.RepellingOffset = 10
	l := &Link{Similarities: []float64{1, 0.5}}

	if got, want := r.LinkDistance(l), 100/(0.75+Squish)+10; math.Abs(got-want) > 1e-9 {
		t.Errorf("LinkDistance() = %v, want %v", got, want)
	}
	if got, want := r.LinkStrength(l), 0.75+Squish; math.Abs(got-want) > 1e-12 {
		t.Errorf("LinkStrength() = %v, want %v", got, want)
	}

	zero := &Link{Similarities: []float64{0, 0}}
	if got := r.LinkDistance(zero); math.IsInf(got, 0) || math.IsNaN(got) {
		t.Errorf("LinkDistance(zero) = %v, want finite", got)
	}
}

func TestPaletteByName(t *testing.T) {
	for _, name := range PaletteNames() {
		p, err := PaletteByName(name)
		if err != nil {
			t.Errorf("PaletteByName(%q) error = %v", name, err)
		}
		if len(p) == 0 {
			t.Errorf("palette %q is empty", name)
		}
	}
	if _, err := PaletteByName("neon"); err == nil || !strings.Contains(err.Error(), "unknown palette") {
		t.Errorf("PaletteByName(neon) error = %v, want unknown palette", err)
	}
	if p, err := PaletteByName(""); err != nil || len(p) == 0 {
		t.Errorf("PaletteByName(\"\") = %v, %v; want default palette", p, err)
	}
}
