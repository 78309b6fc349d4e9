package planparse

import (
	"testing"
	"time"
)

var parseNow = time.Date(2026, 3, 18, 15, 0, 0, 0, time.UTC)

// TestContainsWorkoutPlan exercises each detection rule plus plain prose
// that must not trigger any of them.
func TestContainsWorkoutPlan(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"day marker", "Here's your split. Day 1 is chest.", true},
		{"weekday name", "Train hard on Tuesday and rest after.", true},
		{"sets by reps", "Do 4 sets x 10 with a controlled tempo.", true},
		{"sets x reps phrase", "Aim for 3 sets x 12 reps.", true},
		{"unicode multiply sign", "Work up to 5 sets × 5.", true},
		{"workout plan phrase", "I've put together a workout plan for you.", true},
		{"exercise label", "Exercise: Romanian deadlift, focus on the hinge.", true},
		{"plain encouragement", "Great effort! Stay hydrated and get enough sleep.", false},
		{"numbers without markers", "You burned around 450 calories in 50 minutes.", false},
		{"empty text", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsWorkoutPlan(tt.text); got != tt.want {
				t.Errorf("ContainsWorkoutPlan(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

// TestParseTwoDayPlan verifies the basic shape: two day headers, one
// exercise each, sets and reps extracted.
func TestParseTwoDayPlan(t *testing.T) {
	text := "Day 1\n- Bench Press: 4x8\nDay 2\n- Squat: 5x5"

	plan := Parse(text, parseNow)
	if plan == nil {
		t.Fatal("plan = nil, want parsed plan")
	}
	if len(plan.Days) != 2 {
		t.Fatalf("days = %d, want 2", len(plan.Days))
	}

	d1 := plan.Days[0]
	if d1.Day != "Day 1" {
		t.Errorf("day 1 label = %q, want %q", d1.Day, "Day 1")
	}
	if len(d1.Exercises) != 1 {
		t.Fatalf("day 1 exercises = %d, want 1", len(d1.Exercises))
	}
	e1 := d1.Exercises[0]
	if e1.Name != "Bench Press" || e1.TargetSets != 4 || e1.TargetReps != "8" {
		t.Errorf("day 1 exercise = %+v, want Bench Press 4x\"8\"", e1)
	}

	e2 := plan.Days[1].Exercises[0]
	if e2.Name != "Squat" || e2.TargetSets != 5 || e2.TargetReps != "5" {
		t.Errorf("day 2 exercise = %+v, want Squat 5x\"5\"", e2)
	}

	if plan.Raw != text {
		t.Errorf("Raw = %q, want original text", plan.Raw)
	}
	if plan.Name != "AI Generated Plan - Mar 18, 2026" {
		t.Errorf("Name = %q", plan.Name)
	}
}

// TestParseMarkdownAndWeekdays verifies heading markers are stripped from
// day labels and weekday names open days.
func TestParseMarkdownAndWeekdays(t *testing.T) {
	text := `## Day 1: Push
1. Incline Bench Press - 3 sets x 10
2. Overhead Press - 3x8 @ 40kg

### Friday - Legs
- Back Squat: 5x5
Rest 3 minutes between sets.`

	plan := Parse(text, parseNow)
	if plan == nil {
		t.Fatal("plan = nil, want parsed plan")
	}
	if len(plan.Days) != 2 {
		t.Fatalf("days = %d, want 2", len(plan.Days))
	}

	if plan.Days[0].Day != "Day 1: Push" {
		t.Errorf("day label = %q, want %q", plan.Days[0].Day, "Day 1: Push")
	}
	if len(plan.Days[0].Exercises) != 2 {
		t.Fatalf("push exercises = %d, want 2", len(plan.Days[0].Exercises))
	}

	ohp := plan.Days[0].Exercises[1]
	if ohp.Name != "Overhead Press" || ohp.TargetSets != 3 || ohp.TargetReps != "8" {
		t.Errorf("overhead press = %+v, want 3x\"8\"", ohp)
	}

	if plan.Days[1].Day != "Friday - Legs" {
		t.Errorf("day label = %q, want %q", plan.Days[1].Day, "Friday - Legs")
	}
	if len(plan.Days[1].Exercises) != 1 {
		t.Errorf("legs exercises = %d, want 1 (rest note skipped)", len(plan.Days[1].Exercises))
	}
}

// TestParseDropsEmptyDays verifies a day header with no matching exercise
// lines under it is discarded.
func TestParseDropsEmptyDays(t *testing.T) {
	text := "Day 1\nJust some mobility work, nothing tracked.\nDay 2\n- Squat: 3x5"

	plan := Parse(text, parseNow)
	if plan == nil {
		t.Fatal("plan = nil, want parsed plan")
	}
	if len(plan.Days) != 1 {
		t.Fatalf("days = %d, want 1", len(plan.Days))
	}
	if plan.Days[0].Day != "Day 2" {
		t.Errorf("remaining day = %q, want Day 2", plan.Days[0].Day)
	}
}

// TestParseDetectionWithoutStructure verifies that text tripping a detection
// rule but holding no extractable days still returns nil.
func TestParseDetectionWithoutStructure(t *testing.T) {
	if plan := Parse("This workout plan will change everything for you.", parseNow); plan != nil {
		t.Errorf("plan = %+v, want nil", plan)
	}
}

// TestParsePlainProse verifies ordinary coaching prose yields nothing.
func TestParsePlainProse(t *testing.T) {
	text := "Nice session! Keep your protein intake high and sleep at least eight hours."
	if ContainsWorkoutPlan(text) {
		t.Error("ContainsWorkoutPlan = true, want false")
	}
	if plan := Parse(text, parseNow); plan != nil {
		t.Errorf("plan = %+v, want nil", plan)
	}
}

// TestParseNeverPanics throws hostile input at the parser; the only
// acceptable failure mode is a nil plan.
func TestParseNeverPanics(t *testing.T) {
	inputs := []string{
		"",
		"\n\n\n",
		"Day 1\n- : 4x8",
		"Day 99999999999999999999\n- Bench: 4x8",
		"monday::::----\n-- x x x 0x0",
		"Day 1\n- Bench Press: 4x8 @ not-a-weight kg",
	}

	for _, in := range inputs {
		// A panic here fails the test by itself; nil vs non-nil is incidental.
		_ = Parse(in, parseNow)
	}
}
