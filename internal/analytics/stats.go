package analytics

import (
	"time"

	"github.com/gymrat-ai/gymrat/internal/models"
)

// recentPRWindow is how far back a personal record still counts as "recent".
const recentPRWindow = 30 * 24 * time.Hour

// Stats summarizes a user's training history for the dashboard.
type Stats struct {
	TotalSessions    int     `json:"total_sessions"`
	TotalVolume      float64 `json:"total_volume"`
	CurrentStreak    int     `json:"current_streak"`
	SessionsThisWeek int     `json:"sessions_this_week"`
	RecentPRsCount   int     `json:"recent_prs_count"`
}

// ComputeStats derives summary metrics from the full session and PR history.
// Total volume is tonnage: the sum of reps*weight over every set, in whatever
// unit the weights were logged in. The week starts Monday in now's location;
// recent PRs are those dated within the trailing 30 days (inclusive).
func ComputeStats(sessions []models.Session, records []models.PersonalRecord, now time.Time) Stats {
	stats := Stats{TotalSessions: len(sessions)}
	if len(sessions) == 0 && len(records) == 0 {
		return stats
	}

	for _, s := range sessions {
		for _, ex := range s.Exercises {
			for _, set := range ex.Sets {
				stats.TotalVolume += float64(set.Reps) * set.Weight
			}
		}
	}

	weekStart := startOfWeek(now)
	for _, s := range sessions {
		if !s.Date.Before(weekStart) {
			stats.SessionsThisWeek++
		}
	}

	prCutoff := now.Add(-recentPRWindow)
	for _, pr := range records {
		if !pr.Date.Before(prCutoff) {
			stats.RecentPRsCount++
		}
	}

	stats.CurrentStreak = CalculateStreak(sessions, now)
	return stats
}

// startOfWeek returns midnight of the most recent Monday in now's location.
func startOfWeek(now time.Time) time.Time {
	daysSinceMonday := (int(now.Weekday()) + 6) % 7
	monday := now.AddDate(0, 0, -daysSinceMonday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, now.Location())
}
