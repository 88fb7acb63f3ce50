package alarms

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"kaylife/kaydash/internal/database"
	"kaylife/kaydash/internal/retry"
	"kaylife/kaydash/internal/telemetry/domain"
)

// timestampLayout is fixed width so stored timestamps sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

// Repository defines the persistence interface for alarm events.
type Repository interface {
	Save(event *Event) error
	List(limit int) ([]Event, error)
	ListBySeverity(severity string, limit int) ([]Event, error)
	ListBySubject(subject string, limit int) ([]Event, error)
	Count() (int64, error)
	PruneBefore(cutoff time.Time) (int64, error)
	Close() error
}

// SQLiteRepository implements Repository on SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// OpenMemory creates a journal that lives only as long as the process.
func OpenMemory() (*SQLiteRepository, error) {
	db, err := database.OpenMemory()
	if err != nil {
		return nil, fmt.Errorf("alarms: %w", err)
	}
	return newRepository(db)
}

// OpenAt creates or opens a journal in a SQLite file at path.
func OpenAt(path string) (*SQLiteRepository, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("alarms: %w", err)
	}
	return newRepository(db)
}

func newRepository(db *sql.DB) (*SQLiteRepository, error) {
	r := &SQLiteRepository{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

func (r *SQLiteRepository) migrate() error {
	const ddl = `
        CREATE TABLE IF NOT EXISTS alarm_events (
            id        INTEGER PRIMARY KEY AUTOINCREMENT,
            session   TEXT    NOT NULL DEFAULT '',
            timestamp TEXT    NOT NULL,
            source    TEXT    NOT NULL,
            subject   TEXT    NOT NULL,
            label     TEXT    NOT NULL DEFAULT '',
            previous  TEXT    NOT NULL,
            current   TEXT    NOT NULL,
            severity  TEXT    NOT NULL,
            value     REAL    NOT NULL DEFAULT 0,
            unit      TEXT    NOT NULL DEFAULT ''
        );
        CREATE INDEX IF NOT EXISTS idx_alarm_events_timestamp ON alarm_events(timestamp);
        CREATE INDEX IF NOT EXISTS idx_alarm_events_severity ON alarm_events(severity);
        CREATE INDEX IF NOT EXISTS idx_alarm_events_subject ON alarm_events(subject);
    `
	if _, err := r.db.Exec(ddl); err != nil {
		return fmt.Errorf("alarms: migration failed: %w", err)
	}
	return nil
}

// Save inserts a new event, assigning its ID and, when unset, its
// timestamp and severity.
func (r *SQLiteRepository) Save(event *Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.Severity == "" {
		event.Severity = SeverityFor(event.Current)
	}

	// A journal file may be shared with another kaydash process.
	var result sql.Result
	err := retry.Do(context.Background(), retry.JournalPolicy(), retry.IsBusy, func() error {
		var err error
		result, err = r.db.Exec(`
        INSERT INTO alarm_events (session, timestamp, source, subject, label, previous, current, severity, value, unit)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			event.Session, event.Timestamp.UTC().Format(timestampLayout), event.Source, event.Subject, event.Label,
			string(event.Previous), string(event.Current), event.Severity, event.Value, event.Unit,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("alarms: insert failed: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("alarms: failed to get last insert ID: %w", err)
	}
	event.ID = id
	return nil
}

const selectColumns = `
        SELECT id, session, timestamp, source, subject, label, previous, current, severity, value, unit
        FROM alarm_events`

// List returns the most recent n events, newest first.
func (r *SQLiteRepository) List(limit int) ([]Event, error) {
	return r.query(selectColumns+` ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
}

// ListBySeverity returns the most recent n events of one severity.
func (r *SQLiteRepository) ListBySeverity(severity string, limit int) ([]Event, error) {
	return r.query(selectColumns+` WHERE severity = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, severity, limit)
}

// ListBySubject returns the most recent n events for a series or cell.
func (r *SQLiteRepository) ListBySubject(subject string, limit int) ([]Event, error) {
	return r.query(selectColumns+` WHERE subject = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, subject, limit)
}

// Count returns the number of journaled events.
func (r *SQLiteRepository) Count() (int64, error) {
	var n int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM alarm_events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("alarms: count failed: %w", err)
	}
	return n, nil
}

// PruneBefore deletes events older than cutoff.
func (r *SQLiteRepository) PruneBefore(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM alarm_events WHERE timestamp < ?`, cutoff.UTC().Format(timestampLayout))
	if err != nil {
		return 0, fmt.Errorf("alarms: delete failed: %w", err)
	}
	return result.RowsAffected()
}

// Close releases database resources.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) query(q string, args ...any) ([]Event, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("alarms: query failed: %w", err)
	}
	defer rows.Close()
	return scanRows(rows)
}

func scanRows(rows *sql.Rows) ([]Event, error) {
	var events []Event
	for rows.Next() {
		var e Event
		var ts, prev, cur string
		err := rows.Scan(
			&e.ID, &e.Session, &ts, &e.Source, &e.Subject, &e.Label,
			&prev, &cur, &e.Severity, &e.Value, &e.Unit,
		)
		if err != nil {
			return nil, fmt.Errorf("alarms: scan failed: %w", err)
		}
		e.Timestamp, _ = time.Parse(timestampLayout, ts)
		e.Previous = domain.Status(prev)
		e.Current = domain.Status(cur)
		events = append(events, e)
	}
	return events, rows.Err()
}
