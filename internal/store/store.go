// Package store handles SQLite persistence for the profile and
// finished sessions.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/velichenko/typesprint/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNoProfile is returned when no profile has been stored yet.
var ErrNoProfile = errors.New("no stored profile")

// A single profile row is kept per install.
const profileID = "default"

// Store wraps SQLite access for profile and session data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.init(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on setup failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) init() error {
	if _, err := s.db.Exec(`PRAGMA journal_mode = WAL`); err != nil {
		return fmt.Errorf("failed to set WAL mode: %w", err)
	}
	return s.migrate()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profile (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			lang TEXT NOT NULL,
			duration_sec INTEGER NOT NULL,
			best_wpm REAL NOT NULL,
			best_accuracy REAL NOT NULL,
			total_sessions INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			finished_at TEXT NOT NULL,
			lang TEXT NOT NULL,
			duration_sec INTEGER NOT NULL,
			wpm REAL NOT NULL,
			accuracy REAL NOT NULL,
			typed_chars INTEGER NOT NULL,
			correct_chars INTEGER NOT NULL,
			active_ms INTEGER NOT NULL,
			sentences_completed INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_finished_at ON sessions(finished_at);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_lang ON sessions(lang);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// LoadProfile returns the stored profile, or ErrNoProfile when none
// has been saved yet.
func (s *Store) LoadProfile(ctx context.Context) (model.Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT name, lang, duration_sec, best_wpm, best_accuracy, total_sessions, updated_at
		 FROM profile WHERE id = ?`, profileID)

	var p model.Profile
	var updatedAt string
	err := row.Scan(&p.Name, &p.Lang, &p.DurationSec, &p.BestWPM, &p.BestAccuracy, &p.TotalSessions, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Profile{}, ErrNoProfile
		}
		return model.Profile{}, fmt.Errorf("failed to scan profile: %w", err)
	}
	if p.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return model.Profile{}, fmt.Errorf("failed to parse profile timestamp: %w", err)
	}
	return p, nil
}

// SaveProfile upserts the single profile row.
func (s *Store) SaveProfile(ctx context.Context, p model.Profile) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO profile (id, name, lang, duration_sec, best_wpm, best_accuracy, total_sessions, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		profileID,
		p.Name,
		p.Lang,
		p.DurationSec,
		p.BestWPM,
		p.BestAccuracy,
		p.TotalSessions,
		p.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

// InsertRecord stores a finished session and returns its id. A blank
// id gets a fresh one assigned.
func (s *Store) InsertRecord(ctx context.Context, rec model.SessionRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, finished_at, lang, duration_sec, wpm, accuracy, typed_chars, correct_chars, active_ms, sentences_completed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.FinishedAt.Format(time.RFC3339Nano),
		rec.Lang,
		rec.DurationSec,
		rec.WPM,
		rec.Accuracy,
		rec.TypedChars,
		rec.CorrectChars,
		rec.ActiveMs,
		rec.SentencesCompleted,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert session: %w", err)
	}
	return rec.ID, nil
}

// ListRecords returns sessions filtered by the stats config, oldest
// first. The Last cutoff is applied by the reporting layer, not here.
func (s *Store) ListRecords(ctx context.Context, cfg model.StatsConfig) ([]model.SessionRecord, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if cfg.Lang != "" {
		clauses = append(clauses, "lang = ?")
		args = append(args, cfg.Lang)
	}
	if cfg.Since != nil {
		clauses = append(clauses, "finished_at >= ?")
		args = append(args, cfg.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, finished_at, lang, duration_sec, wpm, accuracy, typed_chars, correct_chars, active_ms, sentences_completed
		FROM sessions
		WHERE %s
		ORDER BY finished_at ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var records []model.SessionRecord
	for rows.Next() {
		var rec model.SessionRecord
		var finishedAt string
		if err := rows.Scan(&rec.ID, &finishedAt, &rec.Lang, &rec.DurationSec, &rec.WPM, &rec.Accuracy,
			&rec.TypedChars, &rec.CorrectChars, &rec.ActiveMs, &rec.SentencesCompleted); err != nil {
			return nil, err
		}
		if rec.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
