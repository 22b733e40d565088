// Package audit provides access to the voice_commands table for
// recording and querying processed utterances.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CommandRecord represents a single processed utterance and its outcome.
type CommandRecord struct {
	ID         string    `json:"id"`
	Source     string    `json:"source"`
	RawText    string    `json:"raw_text"`
	Device     string    `json:"device,omitempty"`
	Location   string    `json:"location,omitempty"`
	Action     string    `json:"action,omitempty"`
	Value      string    `json:"value,omitempty"`
	Valid      bool      `json:"valid"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// Filter controls which command records to return.
type Filter struct {
	Source string // optional: filter by ingress source (api, mqtt)
	Device string // optional: filter by extracted device type
	Valid  *bool  // optional: filter by validation outcome
	Limit  int    // default 50, max 200
	Offset int    // pagination offset
}

// ListResult contains the paginated command record results.
type ListResult struct {
	Commands []CommandRecord `json:"commands"`
	Total    int             `json:"total"`
	Limit    int             `json:"limit"`
	Offset   int             `json:"offset"`
}

// Repository defines the interface for command audit operations.
type Repository interface {
	Create(ctx context.Context, rec *CommandRecord) error
	List(ctx context.Context, filter Filter) (*ListResult, error)
}

// SQLiteRepository stores command records in SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new command audit repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Create inserts a new command record. The ID and CreatedAt are generated if empty.
func (r *SQLiteRepository) Create(ctx context.Context, rec *CommandRecord) error {
	if rec.ID == "" {
		rec.ID = "cmd-" + uuid.NewString()[:8]
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	valid := 0
	if rec.Valid {
		valid = 1
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO voice_commands (id, source, raw_text, device, location, action, value, valid, error, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Source, rec.RawText,
		nullableString(rec.Device), nullableString(rec.Location),
		nullableString(rec.Action), nullableString(rec.Value),
		valid, nullableString(rec.Error), rec.DurationMS,
		rec.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting command record: %w", err)
	}

	return nil
}

// nullableString returns nil for empty strings, or the string otherwise.
// Used for nullable TEXT columns in SQLite.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// List returns command records matching the filter, ordered by most recent first.
func (r *SQLiteRepository) List(ctx context.Context, filter Filter) (*ListResult, error) { //nolint:gocognit // dynamic query builder: WHERE clause assembly from filter fields
	// Clamp limit.
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 200 { //nolint:mnd // max page size for audit queries
		filter.Limit = 200
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	// Build WHERE clause dynamically.
	var conditions []string
	var args []any

	if filter.Source != "" {
		conditions = append(conditions, "source = ?")
		args = append(args, filter.Source)
	}
	if filter.Device != "" {
		conditions = append(conditions, "device = ?")
		args = append(args, filter.Device)
	}
	if filter.Valid != nil {
		conditions = append(conditions, "valid = ?")
		if *filter.Valid {
			args = append(args, 1)
		} else {
			args = append(args, 0)
		}
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Get total count.
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM voice_commands %s", where) //nolint:gosec // WHERE built from parameterised conditions, not user input
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting command records: %w", err)
	}

	// Get paginated results.
	query := fmt.Sprintf( //nolint:gosec // WHERE built from parameterised conditions, not user input
		"SELECT id, source, raw_text, device, location, action, value, valid, error, duration_ms, created_at FROM voice_commands %s ORDER BY created_at DESC LIMIT ? OFFSET ?",
		where,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying command records: %w", err)
	}
	defer rows.Close()

	var records []CommandRecord
	for rows.Next() {
		var rec CommandRecord
		var device, location, action, value, errText sql.NullString
		var valid int
		var createdAt string

		if err := rows.Scan(&rec.ID, &rec.Source, &rec.RawText,
			&device, &location, &action, &value,
			&valid, &errText, &rec.DurationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning command record: %w", err)
		}

		rec.Device = device.String
		rec.Location = location.String
		rec.Action = action.String
		rec.Value = value.String
		rec.Error = errText.String
		rec.Valid = valid == 1

		t, err := time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing command record timestamp %q: %w", createdAt, err)
		}
		rec.CreatedAt = t

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating command records: %w", err)
	}

	if records == nil {
		records = []CommandRecord{}
	}

	return &ListResult{
		Commands: records,
		Total:    total,
		Limit:    filter.Limit,
		Offset:   filter.Offset,
	}, nil
}
