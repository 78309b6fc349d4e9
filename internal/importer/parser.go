package importer

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gymrat-ai/gymrat/internal/models"
)

// Session export files are line-oriented CSV. Each record starts with a
// type token:
//
//	session,2026-03-10,Push Pull Legs,1,Push Day
//	exercise,Bench Press
//	set,1,8,80
//	set,2,8,82.5
//	duration,65
//	notes,Felt strong today
//
// Plan name, day number and day name on the session record are optional.
// Blank lines and lines starting with # are ignored.
var (
	sessionRe  = regexp.MustCompile(`^session,(\d{4}-\d{2}-\d{2})(?:,([^,]*))?(?:,(\d*))?(?:,([^,]*))?\s*$`)
	exerciseRe = regexp.MustCompile(`^exercise,(.+?)\s*$`)
	setRe      = regexp.MustCompile(`^set,(\d+),(\d+),(\d+(?:\.\d+)?)\s*$`)
	durationRe = regexp.MustCompile(`^duration,(\d+)\s*$`)
	notesRe    = regexp.MustCompile(`^notes,(.*?)\s*$`)
)

// ParseExport reads a session export stream and returns the sessions it
// describes, in file order. Session IDs are left zero; the importer
// assigns deterministic ones.
func ParseExport(r io.Reader) ([]models.Session, error) {
	var (
		sessions []models.Session
		cur      *models.Session
	)

	flush := func() {
		if cur != nil && len(cur.Exercises) > 0 {
			sessions = append(sessions, *cur)
		}
		cur = nil
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if m := sessionRe.FindStringSubmatch(line); m != nil {
			flush()
			date, err := time.Parse("2006-01-02", m[1])
			if err != nil {
				return nil, fmt.Errorf("line %d: parsing date %q: %w", lineNo, m[1], err)
			}
			cur = &models.Session{
				Date:     date,
				PlanName: strings.TrimSpace(m[2]),
				DayName:  strings.TrimSpace(m[4]),
			}
			if m[3] != "" {
				cur.DayNumber, _ = strconv.Atoi(m[3])
			}
			continue
		}

		if cur == nil {
			return nil, fmt.Errorf("line %d: %q before any session record", lineNo, line)
		}

		switch {
		case exerciseRe.MatchString(line):
			m := exerciseRe.FindStringSubmatch(line)
			cur.Exercises = append(cur.Exercises, models.SessionExercise{Name: m[1]})

		case setRe.MatchString(line):
			if len(cur.Exercises) == 0 {
				return nil, fmt.Errorf("line %d: set record before any exercise record", lineNo)
			}
			m := setRe.FindStringSubmatch(line)
			num, _ := strconv.Atoi(m[1])
			reps, _ := strconv.Atoi(m[2])
			weight, err := strconv.ParseFloat(m[3], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: parsing weight %q: %w", lineNo, m[3], err)
			}
			ex := &cur.Exercises[len(cur.Exercises)-1]
			ex.Sets = append(ex.Sets, models.SessionSet{SetNumber: num, Reps: reps, Weight: weight})

		case durationRe.MatchString(line):
			m := durationRe.FindStringSubmatch(line)
			mins, _ := strconv.Atoi(m[1])
			cur.DurationMin = &mins

		case notesRe.MatchString(line):
			m := notesRe.FindStringSubmatch(line)
			cur.Notes = m[1]

		default:
			return nil, fmt.Errorf("line %d: unrecognized record %q", lineNo, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}
	flush()

	return sessions, nil
}
