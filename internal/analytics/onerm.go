// Package analytics derives training insights from logged workout sessions:
// estimated one-rep maxes, personal record detection, day streaks, volume
// stats, and progressive overload suggestions. All functions are pure; the
// caller supplies history and, where recency matters, the current time.
package analytics

import "strings"

// brzyckiLimit is the rep count at which the Brzycki denominator (37 - reps)
// reaches zero. Estimates are undefined at or beyond it.
const brzyckiLimit = 37

// EstimateOneRepMax converts a set's weight and reps to an estimated
// one-rep max using the Brzycki formula: weight * 36 / (37 - reps).
// Non-positive weight or reps carry no strength signal and return 0,
// as do rep counts at or above the formula's domain limit of 37.
// A single rep is returned as the weight itself.
func EstimateOneRepMax(weight float64, reps int) float64 {
	if weight <= 0 || reps <= 0 || reps >= brzyckiLimit {
		return 0
	}
	if reps == 1 {
		return weight
	}
	return weight * 36 / float64(brzyckiLimit-reps)
}

// NormalizeExercise folds an exercise name into its identity key: trimmed,
// lowercased, with internal whitespace runs collapsed. PR lookup, overload
// history, and the records storage key all match on this form, so
// "Bench Press" and " bench  press " are the same exercise while
// "Incline Bench Press" is not.
func NormalizeExercise(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
