package vecmath

import (
	"errors"
	"math"
	"testing"
)

func TestNormalize(t *testing.T) {
	v, err := Normalize([]float32{3, 4})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(float64(v[0])-0.6) > 1e-6 || math.Abs(float64(v[1])-0.8) > 1e-6 {
		t.Errorf("got %v, want [0.6 0.8]", v)
	}
	if m := Magnitude(v); math.Abs(float64(m)-1) > 1e-6 {
		t.Errorf("magnitude after normalize = %v", m)
	}
}

func TestNormalize_ZeroVector(t *testing.T) {
	_, err := Normalize([]float32{0, 0, 0, 0})
	if !errors.Is(err, ErrDegenerateVector) {
		t.Errorf("expected ErrDegenerateVector, got %v", err)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	v, err := Normalize([]float32{1, 2, 2})
	if err != nil {
		t.Fatal(err)
	}
	w := make([]float32, len(v))
	copy(w, v)
	w, err = Normalize(w)
	if err != nil {
		t.Fatal(err)
	}
	for i := range v {
		if math.Abs(float64(v[i]-w[i])) > 1e-6 {
			t.Fatalf("second normalize changed vector: %v vs %v", v, w)
		}
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float32
	}{
		{"identical", []float32{1, 0, 0}, []float32{1, 0, 0}, 1},
		{"orthogonal", []float32{1, 0, 0}, []float32{0, 1, 0}, 0},
		{"opposite", []float32{1, 0, 0}, []float32{-1, 0, 0}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("CosineSimilarity=%v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfidence(t *testing.T) {
	tests := []struct {
		s    float32
		want float64
	}{
		{1, 1},
		{0, 0.5},
		{-1, 0},
		{0.6, 0.8},
		{1.5, 1},  // clamped
		{-2, 0},   // clamped
	}
	for _, tt := range tests {
		if got := Confidence(tt.s); math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("Confidence(%v)=%v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestMeanPool(t *testing.T) {
	out, err := MeanPool([][]float32{{1, 0}, {0, 1}})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(float64(out[0])-0.5) > 1e-6 || math.Abs(float64(out[1])-0.5) > 1e-6 {
		t.Errorf("got %v, want [0.5 0.5]", out)
	}
}

func TestMeanPool_OppositeVectorsCancel(t *testing.T) {
	out, err := MeanPool([][]float32{{1, 0}, {-1, 0}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Normalize(out); !errors.Is(err, ErrDegenerateVector) {
		t.Errorf("normalizing a cancelled mean should fail, got %v", err)
	}
}

func TestMeanPool_LengthMismatch(t *testing.T) {
	if _, err := MeanPool([][]float32{{1, 0}, {1}}); err == nil {
		t.Error("expected error for mismatched lengths")
	}
	if _, err := MeanPool(nil); err == nil {
		t.Error("expected error for empty input")
	}
}
