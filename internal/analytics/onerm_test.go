package analytics

import (
	"math"
	"testing"
)

// TestEstimateSingleRep verifies that a one-rep set needs no extrapolation:
// the estimate is the weight itself.
func TestEstimateSingleRep(t *testing.T) {
	for _, w := range []float64{1, 60, 102.5, 300} {
		if got := EstimateOneRepMax(w, 1); got != w {
			t.Errorf("EstimateOneRepMax(%g, 1) = %g, want %g", w, got, w)
		}
	}
}

// TestEstimateInvalidInput verifies that sets with no strength signal
// (non-positive weight or reps) and rep counts outside the Brzycki domain
// all estimate to 0 rather than failing.
func TestEstimateInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		weight float64
		reps   int
	}{
		{"zero weight", 0, 5},
		{"negative weight", -80, 5},
		{"zero reps", 100, 0},
		{"negative reps", 100, -3},
		{"zero weight single rep", 0, 1},
		{"reps at domain limit", 100, 37},
		{"reps beyond domain limit", 100, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateOneRepMax(tt.weight, tt.reps); got != 0 {
				t.Errorf("EstimateOneRepMax(%g, %d) = %g, want 0", tt.weight, tt.reps, got)
			}
		})
	}
}

// TestEstimateBrzycki verifies known formula values.
func TestEstimateBrzycki(t *testing.T) {
	tests := []struct {
		weight float64
		reps   int
		want   float64
	}{
		{90, 5, 101.25},      // 90 * 36/32
		{100, 10, 133.3333},  // 100 * 36/27
		{80, 2, 82.2857},     // 80 * 36/35
		{15, 8, 18.6206},     // 15 * 36/29
	}

	for _, tt := range tests {
		got := EstimateOneRepMax(tt.weight, tt.reps)
		if math.Abs(got-tt.want) > 0.001 {
			t.Errorf("EstimateOneRepMax(%g, %d) = %.4f, want %.4f", tt.weight, tt.reps, got, tt.want)
		}
	}
}

// TestEstimateMonotonicInReps verifies that for a fixed sub-maximal weight,
// more reps always means a higher estimate, across the entire valid range.
func TestEstimateMonotonicInReps(t *testing.T) {
	prev := 0.0
	for reps := 1; reps <= 36; reps++ {
		got := EstimateOneRepMax(100, reps)
		if got <= prev {
			t.Fatalf("EstimateOneRepMax(100, %d) = %.4f, not greater than %.4f at %d reps",
				reps, got, prev, reps-1)
		}
		prev = got
	}
}

// TestNormalizeExercise verifies the shared identity key: trim, casefold,
// collapse internal whitespace.
func TestNormalizeExercise(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Bench Press", "bench press"},
		{"  bench  press  ", "bench press"},
		{"INCLINE BENCH PRESS", "incline bench press"},
		{"Squat", "squat"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeExercise(tt.in); got != tt.want {
			t.Errorf("NormalizeExercise(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
