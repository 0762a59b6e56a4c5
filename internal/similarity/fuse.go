package similarity

import (
	"gonum.org/v1/gonum/floats"
)

// Fused is the result of normalizing a tensor once at load time.
type Fused struct {
	// Layers holds each metric normalized independently into [0, 1].
	Layers Tensor
	// Static is the normalized element-wise sum of Layers, i.e. the
	// equal-weight fusion used before any slider weighting.
	Static Matrix
}

// Fuse normalizes every layer of t and computes the static fused matrix.
// t is not modified.
func Fuse(t Tensor) *Fused {
	f := &Fused{Layers: make(Tensor, len(t))}
	if len(t) == 0 {
		return f
	}

	for m, layer := range t {
		f.Layers[m] = Normalize(layer)
	}

	sum := make(Matrix, len(f.Layers[0]))
	for i, row := range f.Layers[0] {
		sum[i] = make([]float64, len(row))
	}
	for _, layer := range f.Layers {
		for i, row := range layer {
			floats.Add(sum[i], row)
		}
	}
	f.Static = Normalize(sum)

	return f
}

// Metrics returns the number of similarity metrics.
func (f *Fused) Metrics() int {
	return len(f.Layers)
}

// Pair returns the normalized similarity of papers i and j for every metric.
func (f *Fused) Pair(i, j int) []float64 {
	values := make([]float64, len(f.Layers))
	for m, layer := range f.Layers {
		values[m] = layer[i][j]
	}
	return values
}

// StaticAt returns the equal-weight fused similarity of papers i and j.
func (f *Fused) StaticAt(i, j int) float64 {
	if f.Static == nil {
		return 0
	}
	return f.Static[i][j]
}

// Weighted combines per-metric values with slider weights that sum to total:
// the sum of values[m] * weights[m] / total. Missing weights count as zero.
func Weighted(values, weights []float64, total float64) float64 {
	if total == 0 {
		return 0
	}
	var sum float64
	for m, v := range values {
		if m >= len(weights) {
			break
		}
		sum += v * weights[m]
	}
	return sum / total
}
