// Package vecmath provides normalization, similarity, and confidence
// helpers for embedding vectors.
package vecmath

import (
	"errors"
	"math"

	"github.com/viant/vec/search"
)

// ErrDegenerateVector is returned when a vector's L2 norm is too close
// to zero to normalize.
var ErrDegenerateVector = errors.New("degenerate vector: zero norm")

// normEpsilon is the smallest norm considered non-zero.
const normEpsilon = 1e-12

// Magnitude returns the L2 norm of v.
func Magnitude(v []float32) float32 {
	return search.Float32s(v).Magnitude()
}

// Normalize scales v in place to unit L2 norm and returns it.
// Returns ErrDegenerateVector when the norm is numerically zero, NaN,
// or infinite; v is left unchanged in that case.
func Normalize(v []float32) ([]float32, error) {
	m := float64(search.Float32s(v).Magnitude())
	if m < normEpsilon || math.IsNaN(m) || math.IsInf(m, 0) {
		return nil, ErrDegenerateVector
	}
	inv := float32(1 / m)
	for i := range v {
		v[i] *= inv
	}
	return v, nil
}

// CosineSimilarity returns the cosine similarity of two unit vectors,
// clamped to [-1, 1]. Both inputs must already be normalized.
func CosineSimilarity(a, b []float32) float32 {
	d := search.Float32s(a).CosineDistanceWithMagnitude(b, 1, 1)
	return clamp(1 - d)
}

// Confidence maps a similarity score to [0, 1] via (s+1)/2, clamping
// the input to [-1, 1] first. All confidence values shown to callers
// or compared against thresholds go through this function.
func Confidence(s float32) float64 {
	return (float64(clamp(s)) + 1) / 2
}

// MeanPool returns the element-wise mean of the given vectors as a new
// slice. All vectors must share the same length.
func MeanPool(vs [][]float32) ([]float32, error) {
	if len(vs) == 0 {
		return nil, errors.New("mean pool: no vectors")
	}
	dim := len(vs[0])
	out := make([]float32, dim)
	for _, v := range vs {
		if len(v) != dim {
			return nil, errors.New("mean pool: vector length mismatch")
		}
		for i, x := range v {
			out[i] += x
		}
	}
	inv := float32(1) / float32(len(vs))
	for i := range out {
		out[i] *= inv
	}
	return out, nil
}

func clamp(s float32) float32 {
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return s
}
