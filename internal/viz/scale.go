package viz

import "math"

// Node size bounds and the shift that keeps log(0) out of the scale.
const (
	SizeMin       = 2.0
	SizeMax       = 12.0
	CitationShift = 1.0
)

// CitationScale maps citation counts onto node sizes with a log scale,
// compressing the long tail of highly cited papers.
type CitationScale struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Size returns the node size for a paper with c citations. Counts outside
// the scale's range are clamped. A flat range yields the mid-range size.
func (s CitationScale) Size(c int) float64 {
	if s.Min == s.Max {
		return (SizeMin + SizeMax) / 2
	}
	if c < s.Min {
		c = s.Min
	}
	if c > s.Max {
		c = s.Max
	}

	lo := math.Log(float64(s.Min) + CitationShift)
	hi := math.Log(float64(s.Max) + CitationShift)
	x := math.Log(float64(c) + CitationShift)

	return (x-lo)/(hi-lo)*(SizeMax-SizeMin) + SizeMin
}
