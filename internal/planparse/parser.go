// Package planparse extracts structured workout plans from free-form AI chat
// text. It is a best-effort line scanner, not a grammar: unusual formatting
// may be missed, but malformed input never fails — it just yields no plan.
package planparse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gymrat-ai/gymrat/internal/models"
)

// planIndicators are tried in order; any single match means the text likely
// contains a workout plan. Substring matches, case-insensitive.
var planIndicators = []*regexp.Regexp{
	regexp.MustCompile(`(?i)day\s*\d+`),
	regexp.MustCompile(`(?i)monday|tuesday|wednesday|thursday|friday|saturday|sunday`),
	regexp.MustCompile(`(?i)sets?\s*[x×]\s*\d+`),
	regexp.MustCompile(`(?i)\d+\s*sets?\s*[x×]\s*\d+\s*reps?`),
	regexp.MustCompile(`(?i)workout\s*plan`),
	regexp.MustCompile(`(?i)exercise\s*:\s*`),
}

var (
	// dayRe matches a day header: optional markdown heading markers, then
	// "Day N" or a weekday name, then an optional label ("Day 1: Push").
	dayRe = regexp.MustCompile(`(?i)^(?:#+\s*)?(?:day\s*\d+|monday|tuesday|wednesday|thursday|friday|saturday|sunday)[\s:\-]*(.*)`)

	// exerciseRe matches an exercise line: optional bullet/number prefix,
	// name, separator, "<sets> x <reps>", optional "@ <weight> kg|lbs".
	// The weight is accepted but not retained.
	exerciseRe = regexp.MustCompile(`(?i)^(?:[-•*\d.]+\s*)?(.+?)[\s:\-]+(\d+)\s*(?:sets?\s*)?[x×]\s*(\d+)(?:\s*(?:reps?)?)(?:\s*@?\s*(\d+(?:\.\d+)?)\s*(?:kg|lbs?)?)?`)

	headingRe = regexp.MustCompile(`^#+\s*`)
)

// ParsedDay is one day extracted from chat text.
type ParsedDay struct {
	Day       string                `json:"day"`
	Exercises []models.PlanExercise `json:"exercises"`
}

// ParsedPlan is a workout plan extracted from chat text. It is ephemeral:
// generated on demand and only persisted if the user saves it.
type ParsedPlan struct {
	Name string      `json:"name"`
	Days []ParsedDay `json:"days"`
	Raw  string      `json:"raw"`
}

// ContainsWorkoutPlan reports whether the text looks like it embeds a
// workout plan (day markers, weekday names, sets-by-reps notation, etc.).
func ContainsWorkoutPlan(text string) bool {
	for _, re := range planIndicators {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Parse extracts a structured plan from chat text. It scans non-empty lines
// top to bottom: a day header opens a new day, subsequent exercise lines
// accumulate into it, and anything else is skipped. Returns nil when the
// text contains no plan or no day yields at least one exercise. The plan
// name is stamped with now's date.
func Parse(text string, now time.Time) *ParsedPlan {
	if !ContainsWorkoutPlan(text) {
		return nil
	}

	var days []ParsedDay
	var current *ParsedDay

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if dayRe.MatchString(line) {
			if current != nil && len(current.Exercises) > 0 {
				days = append(days, *current)
			}
			current = &ParsedDay{
				Day: strings.TrimSpace(headingRe.ReplaceAllString(line, "")),
			}
			continue
		}

		if current == nil {
			continue
		}
		if m := exerciseRe.FindStringSubmatch(line); m != nil {
			sets, err := strconv.Atoi(m[2])
			if err != nil {
				continue
			}
			current.Exercises = append(current.Exercises, models.PlanExercise{
				Name:       strings.TrimSpace(m[1]),
				TargetSets: sets,
				TargetReps: m[3],
			})
		}
	}

	if current != nil && len(current.Exercises) > 0 {
		days = append(days, *current)
	}

	if len(days) == 0 {
		return nil
	}

	return &ParsedPlan{
		Name: fmt.Sprintf("AI Generated Plan - %s", now.Format("Jan 2, 2006")),
		Days: days,
		Raw:  text,
	}
}
