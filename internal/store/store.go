package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"hotel-ob/internal/wizard"
)

// Store persists wizard sessions in PostgreSQL.
type Store struct {
	db *sqlx.DB
}

// SessionSummary is the listing view of a stored session.
type SessionSummary struct {
	ID         string         `db:"session_id" json:"id"`
	Mode       string         `db:"mode" json:"mode"`
	ActiveStep string         `db:"active_step" json:"activeStep"`
	HotelID    sql.NullInt64  `db:"hotel_id" json:"-"`
	Completed  pq.StringArray `db:"completed_steps" json:"completed"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updatedAt"`
}

const schema = `
CREATE TABLE IF NOT EXISTS wizard_sessions (
	session_id      TEXT PRIMARY KEY,
	mode            TEXT NOT NULL,
	active_step     TEXT NOT NULL,
	hotel_id        BIGINT,
	completed_steps TEXT[] NOT NULL DEFAULT '{}',
	state           JSONB NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL,
	updated_at      TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS wizard_sessions_updated_at_idx ON wizard_sessions (updated_at DESC);`

// NewStore opens a PostgreSQL connection and verifies it.
func NewStore(ctx context.Context, connString string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", connString)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStoreFromDB constructs a Store from an existing *sql.DB. Useful for tests.
func NewStoreFromDB(db *sql.DB) *Store {
	return &Store{db: sqlx.NewDb(db, "postgres")}
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// InitDB creates the session table if it does not exist.
func (s *Store) InitDB(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to execute init SQL: %w", err)
	}
	return nil
}

// SaveSession inserts or replaces a session.
func (s *Store) SaveSession(ctx context.Context, sess *wizard.Session) error {
	var hotelID sql.NullInt64
	if sess.IDs.HotelID != 0 {
		hotelID = sql.NullInt64{Int64: sess.IDs.HotelID, Valid: true}
	}

	query := `
		INSERT INTO wizard_sessions (
			session_id, mode, active_step, hotel_id, completed_steps, state, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (session_id) DO UPDATE SET
			mode = EXCLUDED.mode,
			active_step = EXCLUDED.active_step,
			hotel_id = EXCLUDED.hotel_id,
			completed_steps = EXCLUDED.completed_steps,
			state = EXCLUDED.state,
			updated_at = EXCLUDED.updated_at`

	_, err := s.db.ExecContext(ctx, query,
		sess.ID,
		string(sess.Mode),
		string(sess.ActiveStep),
		hotelID,
		completedSteps(sess.Completion),
		JSONBSession{sess},
		sess.CreatedAt,
		sess.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save session %s: %w", sess.ID, err)
	}
	return nil
}

// GetSession loads a session by id.
func (s *Store) GetSession(ctx context.Context, id string) (*wizard.Session, error) {
	var state JSONBSession
	err := s.db.GetContext(ctx, &state, `SELECT state FROM wizard_sessions WHERE session_id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", wizard.ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	return state.Session, nil
}

// ListSessions returns all sessions, most recently updated first.
func (s *Store) ListSessions(ctx context.Context) ([]SessionSummary, error) {
	var out []SessionSummary
	err := s.db.SelectContext(ctx, &out, `
		SELECT session_id, mode, active_step, hotel_id, completed_steps, updated_at
		FROM wizard_sessions
		ORDER BY updated_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return out, nil
}

// DeleteSession removes a session.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM wizard_sessions WHERE session_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%w: %s", wizard.ErrSessionNotFound, id)
	}
	return nil
}

// CleanupStaleSessions removes sessions not updated since before.
func (s *Store) CleanupStaleSessions(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM wizard_sessions WHERE updated_at < $1`, before)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup stale sessions: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected, nil
}

// completedSteps lists the complete steps in sequence order.
func completedSteps(c wizard.Completion) pq.StringArray {
	out := pq.StringArray{}
	for _, step := range wizard.Steps() {
		if c.IsComplete(step) {
			out = append(out, string(step))
		}
	}
	return out
}
