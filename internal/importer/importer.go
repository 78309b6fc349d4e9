package importer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/gymrat-ai/gymrat/internal/analytics"
	"github.com/gymrat-ai/gymrat/internal/models"
	"github.com/gymrat-ai/gymrat/internal/storage"
)

// sessionNamespace seeds deterministic session UUIDs so re-importing the
// same export never duplicates rows.
var sessionNamespace = uuid.MustParse("9b2f41d6-7c3a-49e8-b1f0-2a8d5e6c9a01")

// Stats tracks import progress.
type Stats struct {
	FilesProcessed int
	FilesSkipped   int
	FilesErrored   int

	SessionsInserted   int
	SessionsDuplicated int
	RecordsUpdated     int
}

// Importer reads session export files from a directory and inserts them
// into the DB, replaying PR detection in date order.
type Importer struct {
	db     *storage.DB
	state  *StateDB
	log    *slog.Logger
	userID int
	dryRun bool
	stats  Stats
}

// New creates a new Importer. state may be nil, in which case every file
// is processed.
func New(db *storage.DB, state *StateDB, log *slog.Logger, userID int, dryRun bool) *Importer {
	return &Importer{db: db, state: state, log: log, userID: userID, dryRun: dryRun}
}

// Import processes all .csv export files under dir.
func (imp *Importer) Import(ctx context.Context, dir string) (*Stats, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return &imp.stats, fmt.Errorf("reading %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".csv") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	var sessions []models.Session
	var imported []string
	for _, name := range files {
		path := filepath.Join(dir, name)

		skip, err := imp.alreadyImported(name, path)
		if err != nil {
			return &imp.stats, err
		}
		if skip {
			imp.stats.FilesSkipped++
			continue
		}

		f, err := os.Open(path)
		if err != nil {
			imp.log.Error("opening export", "file", name, "error", err)
			imp.stats.FilesErrored++
			continue
		}
		parsed, err := ParseExport(f)
		f.Close()
		if err != nil {
			imp.log.Error("parsing export", "file", name, "error", err)
			imp.stats.FilesErrored++
			continue
		}

		sessions = append(sessions, parsed...)
		imported = append(imported, name)
		imp.stats.FilesProcessed++
	}

	if err := imp.insertSessions(ctx, sessions); err != nil {
		return &imp.stats, err
	}

	if !imp.dryRun && imp.state != nil {
		for _, name := range imported {
			if err := imp.markImported(name, filepath.Join(dir, name)); err != nil {
				return &imp.stats, err
			}
		}
	}

	return &imp.stats, nil
}

// insertSessions writes sessions oldest first so PR detection sees them
// in the order they happened.
func (imp *Importer) insertSessions(ctx context.Context, sessions []models.Session) error {
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date.Before(sessions[j].Date)
	})

	for i := range sessions {
		s := &sessions[i]
		s.UserID = imp.userID
		s.ID = sessionID(imp.userID, s)

		if imp.dryRun {
			imp.log.Info("would import session", "id", s.ID, "date", s.Date.Format("2006-01-02"), "exercises", len(s.Exercises))
			imp.stats.SessionsInserted++
			continue
		}

		records, err := imp.db.ListRecords(ctx, imp.userID)
		if err != nil {
			return fmt.Errorf("loading records: %w", err)
		}
		detections := analytics.DetectNewPRs(*s, records)

		inserted, err := imp.db.InsertSession(ctx, *s)
		if err != nil {
			return fmt.Errorf("inserting session %s: %w", s.ID, err)
		}
		if !inserted {
			imp.stats.SessionsDuplicated++
			continue
		}
		imp.stats.SessionsInserted++

		for _, d := range detections {
			if !d.IsNewPR {
				continue
			}
			if err := imp.db.UpsertRecord(ctx, imp.userID, d.ExerciseName, d.NewWeight, d.NewReps, s.Date); err != nil {
				return fmt.Errorf("upserting record for %s: %w", d.ExerciseName, err)
			}
			imp.stats.RecordsUpdated++
		}
	}

	return nil
}

func (imp *Importer) alreadyImported(name, path string) (bool, error) {
	if imp.state == nil {
		return false, nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	hash, err := HashFile(path)
	if err != nil {
		return false, fmt.Errorf("hashing %s: %w", path, err)
	}
	return imp.state.IsImported(name, info.Size(), hash)
}

func (imp *Importer) markImported(name, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	hash, err := HashFile(path)
	if err != nil {
		return fmt.Errorf("hashing %s: %w", path, err)
	}
	if err := imp.state.MarkImported(name, info.Size(), hash); err != nil {
		return fmt.Errorf("recording %s: %w", name, err)
	}
	return nil
}

// sessionID derives a stable UUID from the user and the session's content,
// so the same export line always maps to the same row.
func sessionID(userID int, s *models.Session) uuid.UUID {
	var b strings.Builder
	fmt.Fprintf(&b, "%d|%s|%s|%d", userID, s.Date.Format("2006-01-02"), s.DayName, s.DayNumber)
	for _, ex := range s.Exercises {
		fmt.Fprintf(&b, "|%s", analytics.NormalizeExercise(ex.Name))
		for _, set := range ex.Sets {
			fmt.Fprintf(&b, ",%d:%dx%g", set.SetNumber, set.Reps, set.Weight)
		}
	}
	return uuid.NewSHA1(sessionNamespace, []byte(b.String()))
}
