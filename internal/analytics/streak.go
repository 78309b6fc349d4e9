package analytics

import (
	"time"

	"github.com/gymrat-ai/gymrat/internal/models"
)

// maxStreakDays bounds the walk-back so a pathological input cannot loop
// forever. Nobody trains 365 consecutive days without a rest day anyway.
const maxStreakDays = 365

// civilDay identifies one local calendar day.
type civilDay struct {
	year  int
	month time.Month
	day   int
}

func civilDayOf(t time.Time) civilDay {
	y, m, d := t.Date()
	return civilDay{y, m, d}
}

// CalculateStreak returns the number of consecutive calendar days, ending
// today or yesterday, that contain at least one session. A day without any
// session breaks the streak, so sessions only older than yesterday yield 0.
// Days are resolved in now's location.
func CalculateStreak(sessions []models.Session, now time.Time) int {
	if len(sessions) == 0 {
		return 0
	}

	days := make(map[civilDay]struct{}, len(sessions))
	for _, s := range sessions {
		days[civilDayOf(s.Date.In(now.Location()))] = struct{}{}
	}

	anchor := now
	if _, ok := days[civilDayOf(now)]; !ok {
		anchor = now.AddDate(0, 0, -1)
		if _, ok := days[civilDayOf(anchor)]; !ok {
			return 0
		}
	}

	streak := 1
	for i := 1; i < maxStreakDays; i++ {
		if _, ok := days[civilDayOf(anchor.AddDate(0, 0, -i))]; !ok {
			break
		}
		streak++
	}
	return streak
}
