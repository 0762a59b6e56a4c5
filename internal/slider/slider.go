// Package slider maintains the metric weight sliders, whose values always sum
// to Total, and persists them through a Store.
package slider

import (
	"errors"
	"fmt"
	"math"
)

const (
	// Total is the fixed sum of all slider weights.
	Total = 100.0

	// Tolerance is the allowed deviation of the weight sum from Total.
	Tolerance = 1e-6
)

// ErrOutOfRange indicates a slider index or value that would break the
// weight invariant. The update is rejected and the weights stay unchanged.
var ErrOutOfRange = errors.New("slider value out of range")

// Weights is an ordered weight vector, one entry per similarity metric.
type Weights []float64

// Sum returns the sum of all weights.
func (w Weights) Sum() float64 {
	var sum float64
	for _, v := range w {
		sum += v
	}
	return sum
}

// Valid reports whether w is non-negative and sums to Total.
func (w Weights) Valid() bool {
	if len(w) == 0 {
		return false
	}
	for _, v := range w {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return math.Abs(w.Sum()-Total) <= Tolerance
}

// Uniform returns n weights of Total/n each.
func Uniform(n int) Weights {
	w := make(Weights, n)
	for i := range w {
		w[i] = Total / float64(n)
	}
	return w
}

// Restore returns a copy of saved if it matches the current metric count n
// and is a valid weight vector. Anything else is discarded in favor of
// uniform weights.
func Restore(saved []float64, n int) Weights {
	if !restorable(saved, n) {
		return Uniform(n)
	}
	w := make(Weights, n)
	copy(w, saved)
	return w
}

func restorable(saved []float64, n int) bool {
	return len(saved) == n && Weights(saved).Valid()
}

// Redistribute sets w[index] to value and rescales the other weights so the
// vector still sums to Total. Each other weight keeps its proportion to the
// rest; if all others are zero the remainder is split evenly between them.
// w is not modified.
func Redistribute(w Weights, index int, value float64) (Weights, error) {
	if index < 0 || index >= len(w) {
		return nil, fmt.Errorf("%w: index %d with %d sliders", ErrOutOfRange, index, len(w))
	}
	if value < 0 || value > Total || math.IsNaN(value) {
		return nil, fmt.Errorf("%w: value %g not in [0, %g]", ErrOutOfRange, value, Total)
	}

	out := make(Weights, len(w))
	out[index] = value

	if len(w) == 1 {
		if math.Abs(value-Total) > Tolerance {
			return nil, fmt.Errorf("%w: a single slider must stay at %g", ErrOutOfRange, Total)
		}
		out[index] = Total
		return out, nil
	}

	// othersSum equals Total - w[index] while the invariant holds; summing
	// keeps rounding error from compounding across updates.
	remainder := Total - value
	othersSum := w.Sum() - w[index]

	if othersSum <= 0 || allOthersZero(w, index) {
		share := remainder / float64(len(w)-1)
		for k := range w {
			if k != index {
				out[k] = share
			}
		}
		return out, nil
	}

	ratio := remainder / othersSum
	for k, v := range w {
		if k != index {
			out[k] = v * ratio
		}
	}
	return out, nil
}

func allOthersZero(w Weights, index int) bool {
	for k, v := range w {
		if k != index && v != 0 {
			return false
		}
	}
	return true
}
