// Package similarity normalizes and fuses multi-metric similarity tensors.
package similarity

import (
	"gonum.org/v1/gonum/floats"
)

// Matrix is a square matrix of pairwise similarity values for one metric.
type Matrix [][]float64

// Tensor holds one Matrix per similarity metric.
type Tensor []Matrix

// Bounds returns the smallest and largest entry of m.
// An empty matrix has bounds (0, 0).
func Bounds(m Matrix) (lo, hi float64) {
	first := true
	for _, row := range m {
		if len(row) == 0 {
			continue
		}
		rowMin, rowMax := floats.Min(row), floats.Max(row)
		if first {
			lo, hi = rowMin, rowMax
			first = false
			continue
		}
		if rowMin < lo {
			lo = rowMin
		}
		if rowMax > hi {
			hi = rowMax
		}
	}
	return lo, hi
}

// Normalize rescales m into [0, 1] using its own bounds.
// A flat matrix (min == max) maps to all zeros. m is not modified.
func Normalize(m Matrix) Matrix {
	lo, hi := Bounds(m)
	return normalizeWith(m, lo, hi)
}

func normalizeWith(m Matrix, lo, hi float64) Matrix {
	out := make(Matrix, len(m))
	span := hi - lo
	for i, row := range m {
		out[i] = make([]float64, len(row))
		if span == 0 {
			continue
		}
		for j, x := range row {
			out[i][j] = (x - lo) / span
		}
	}
	return out
}
