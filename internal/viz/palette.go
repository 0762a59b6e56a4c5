package viz

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// RGB is an opaque color.
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as #rrggbb.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGBA returns a CSS rgba() color with the given opacity.
func (c RGB) RGBA(alpha float64) string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", c.R, c.G, c.B, alpha)
}

// Palette is an ordered set of colors for field-of-study groups.
type Palette []RGB

// Accent colors shared by every palette.
var (
	OriginColor       = RGB{228, 87, 46}
	DefaultFieldColor = RGB{41, 51, 92}
	LinkColor         = RGB{120, 120, 120}
	HoverLinkColor    = RGB{243, 167, 18}
)

// DefaultPalette is used when no palette is configured.
const DefaultPalette = "category"

var palettes = map[string]Palette{
	// d3 category10 without the colors reserved for accents
	"category": {
		{31, 119, 180}, {44, 160, 44}, {148, 103, 189}, {140, 86, 75},
		{227, 119, 194}, {127, 127, 127}, {188, 189, 34}, {23, 190, 207},
	},
	// Okabe-Ito
	"colorblind": {
		{230, 159, 0}, {86, 180, 233}, {0, 158, 115}, {240, 228, 66},
		{0, 114, 178}, {204, 121, 167},
	},
	// ColorBrewer Pastel1
	"pastel": {
		{251, 180, 174}, {179, 205, 227}, {204, 235, 197}, {222, 203, 228},
		{254, 217, 166}, {255, 255, 204}, {229, 216, 189}, {253, 218, 236},
	},
	// ColorBrewer Dark2
	"dark": {
		{27, 158, 119}, {217, 95, 2}, {117, 112, 179}, {231, 41, 138},
		{102, 166, 30}, {230, 171, 2}, {166, 118, 29},
	},
}

// PaletteNames returns the available palette names in sorted order.
func PaletteNames() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// PaletteByName returns a copy of the named palette.
func PaletteByName(name string) (Palette, error) {
	if name == "" {
		name = DefaultPalette
	}
	p, ok := palettes[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette %q: must be one of %s", name, strings.Join(PaletteNames(), ", "))
	}
	return append(Palette(nil), p...), nil
}

// fieldSep joins sorted field names before hashing; it can't occur in a name.
const fieldSep = "\x1f"

// FieldColorIndex maps a set of fields of study to a palette index. The
// result depends only on the sorted, deduplicated set, so it is stable
// across renders and process restarts. size must be positive.
func FieldColorIndex(fields []string, size int) int {
	set := append([]string(nil), fields...)
	sort.Strings(set)
	set = slices.Compact(set)
	h := xxhash.Sum64String(strings.Join(set, fieldSep))
	return int(h % uint64(size))
}

// ColorFor returns the palette color for a set of fields of study.
func (p Palette) ColorFor(fields []string) RGB {
	if len(p) == 0 {
		return LinkColor
	}
	return p[FieldColorIndex(fields, len(p))]
}

// Hex returns the palette colors as hex strings.
func (p Palette) Hex() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Hex()
	}
	return out
}
