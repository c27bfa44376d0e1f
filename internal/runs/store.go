package runs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"splice/internal/config"
)

// Store manages the run ledger backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// ErrRunNotFound indicates the requested run id has no ledger row.
var ErrRunNotFound = errors.New("run not found")

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) execWithRetry(ctx context.Context, query string, args ...any) error {
	ctx = ensureContext(ctx)
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}

// Open initializes or connects to the run database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "runs.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Begin records the start of a generation run and returns it.
func (s *Store) Begin(ctx context.Context, projectName, identifier, scriptType string) (*Run, error) {
	run := &Run{
		ID:         uuid.NewString(),
		Project:    projectName,
		Identifier: identifier,
		ScriptType: scriptType,
		Status:     StatusRunning,
		StartedAt:  time.Now().UTC(),
	}
	err := s.execWithRetry(ctx,
		`INSERT INTO runs (id, project, identifier, script_type, status, started_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Project, run.Identifier, run.ScriptType, string(run.Status),
		run.StartedAt.Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("record run start: %w", err)
	}
	return run, nil
}

// Complete marks a run successful and records its outcome.
func (s *Store) Complete(ctx context.Context, id string, outcome Outcome) error {
	err := s.execWithRetry(ctx,
		`UPDATE runs SET status = ?, timing_source = ?, duration_source = ?, total_duration = ?,
		 entries = ?, dropped = ?, timeline_path = ?, finished_at = ? WHERE id = ?`,
		string(StatusCompleted), outcome.TimingSource, outcome.DurationSource, outcome.TotalDuration,
		outcome.Entries, outcome.Dropped, outcome.TimelinePath,
		time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("record run completion: %w", err)
	}
	return nil
}

// Fail marks a run failed with an error message.
func (s *Store) Fail(ctx context.Context, id string, message string) error {
	err := s.execWithRetry(ctx,
		`UPDATE runs SET status = ?, error_message = ?, finished_at = ? WHERE id = ?`,
		string(StatusFailed), message, time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return fmt.Errorf("record run failure: %w", err)
	}
	return nil
}

const runColumns = `id, project, identifier, script_type, status, timing_source, duration_source,
	total_duration, entries, dropped, timeline_path, error_message, started_at, finished_at`

// GetByID fetches a single run.
func (s *Store) GetByID(ctx context.Context, id string) (*Run, error) {
	ctx = ensureContext(ctx)
	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch run: %w", err)
	}
	return run, nil
}

// List returns runs newest first, optionally limited.
func (s *Store) List(ctx context.Context, limit int) ([]*Run, error) {
	ctx = ensureContext(ctx)
	query := "SELECT " + runColumns + " FROM runs ORDER BY started_at DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var result []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		result = append(result, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return result, nil
}

// Summary aggregates run counts per lifecycle state.
func (s *Store) Summary(ctx context.Context) (HealthSummary, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, "SELECT status, COUNT(1) FROM runs GROUP BY status")
	if err != nil {
		return HealthSummary{}, fmt.Errorf("summarize runs: %w", err)
	}
	defer rows.Close()

	var summary HealthSummary
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return HealthSummary{}, fmt.Errorf("scan summary: %w", err)
		}
		summary.Total += count
		switch Status(status) {
		case StatusRunning:
			summary.Running += count
		case StatusCompleted:
			summary.Completed += count
		case StatusFailed:
			summary.Failed += count
		}
	}
	if err := rows.Err(); err != nil {
		return HealthSummary{}, fmt.Errorf("iterate summary: %w", err)
	}
	return summary, nil
}

// Health inspects the database file and schema for diagnostics.
func (s *Store) Health(ctx context.Context) DatabaseHealth {
	ctx = ensureContext(ctx)
	health := DatabaseHealth{DBPath: s.path}

	if _, err := os.Stat(s.path); err != nil {
		health.Error = fmt.Sprintf("database file: %v", err)
		return health
	}
	health.DatabaseExists = true

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		health.Error = fmt.Sprintf("schema version: %v", err)
		return health
	}
	health.DatabaseReadable = true
	health.SchemaVersion = strconv.Itoa(version)

	var integrity string
	if err := s.db.QueryRowContext(ctx, "PRAGMA integrity_check").Scan(&integrity); err == nil {
		health.IntegrityCheck = integrity == "ok"
	}

	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM runs").Scan(&health.TotalRuns); err != nil {
		health.Error = fmt.Sprintf("count runs: %v", err)
	}
	return health
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var (
		run        Run
		status     string
		startedAt  string
		finishedAt sql.NullString
	)
	err := row.Scan(&run.ID, &run.Project, &run.Identifier, &run.ScriptType, &status,
		&run.TimingSource, &run.DurationSource, &run.TotalDuration, &run.Entries, &run.Dropped,
		&run.TimelinePath, &run.ErrorMessage, &startedAt, &finishedAt)
	if err != nil {
		return nil, err
	}
	run.Status = Status(status)
	if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if finishedAt.Valid {
		parsed, err := time.Parse(time.RFC3339Nano, finishedAt.String)
		if err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		run.FinishedAt = &parsed
	}
	return &run, nil
}
