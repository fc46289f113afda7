package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"workouttimer/internal/core/model"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

const historyColumns = `id, mode, started_at, finished_at, prep_seconds, work_seconds,
	rest_seconds, cooldown_seconds, rounds_completed, total_seconds`

// HistoryRepo stores finished sessions.
type HistoryRepo struct {
	db *sql.DB
}

// NewHistoryRepo creates a HistoryRepo on db.
func NewHistoryRepo(db *sql.DB) *HistoryRepo {
	return &HistoryRepo{db: db}
}

// Create inserts record, assigning an ID when it has none.
func (r *HistoryRepo) Create(ctx context.Context, record *model.SessionRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	query := `INSERT INTO sessions (` + historyColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		string(record.Mode),
		record.StartedAt.UTC().Format(time.RFC3339),
		record.FinishedAt.UTC().Format(time.RFC3339),
		record.PrepSeconds,
		record.WorkSeconds,
		record.RestSeconds,
		record.CooldownSeconds,
		record.RoundsCompleted,
		record.TotalSeconds,
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

// GetByID returns the session with id.
func (r *HistoryRepo) GetByID(ctx context.Context, id string) (*model.SessionRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+historyColumns+` FROM sessions WHERE id = ?`, id)
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	return record, nil
}

// List returns the most recent sessions first. limit <= 0 returns all.
func (r *HistoryRepo) List(ctx context.Context, limit int) ([]*model.SessionRecord, error) {
	query := `SELECT ` + historyColumns + ` FROM sessions ORDER BY finished_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var records []*model.SessionRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Delete removes the session with id.
func (r *HistoryRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*model.SessionRecord, error) {
	var record model.SessionRecord
	var mode, startedAt, finishedAt string
	err := row.Scan(
		&record.ID, &mode, &startedAt, &finishedAt,
		&record.PrepSeconds, &record.WorkSeconds, &record.RestSeconds, &record.CooldownSeconds,
		&record.RoundsCompleted, &record.TotalSeconds,
	)
	if err != nil {
		return nil, err
	}
	record.Mode = model.Mode(mode)
	if record.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	if record.FinishedAt, err = time.Parse(time.RFC3339, finishedAt); err != nil {
		return nil, fmt.Errorf("parsing finished_at: %w", err)
	}
	return &record, nil
}
