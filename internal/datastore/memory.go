package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/lib/pq"

	"hotel-ob/internal/store"
	"hotel-ob/internal/wizard"
)

// Memory keeps encoded sessions in a map. Sessions are stored in their JSON
// form so callers never share state with the store.
type Memory struct {
	sessions map[string]memoryEntry
	mu       sync.RWMutex
}

type memoryEntry struct {
	summary store.SessionSummary
	state   []byte
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]memoryEntry)}
}

func (m *Memory) Close() error { return nil }

func (m *Memory) InitDB(context.Context) error { return nil }

func (m *Memory) SaveSession(_ context.Context, sess *wizard.Session) error {
	state, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	summary := store.SessionSummary{
		ID:         sess.ID,
		Mode:       string(sess.Mode),
		ActiveStep: string(sess.ActiveStep),
		Completed:  pq.StringArray{},
		UpdatedAt:  sess.UpdatedAt,
	}
	if sess.IDs.HotelID != 0 {
		summary.HotelID = sql.NullInt64{Int64: sess.IDs.HotelID, Valid: true}
	}
	for _, step := range wizard.Steps() {
		if sess.Completion.IsComplete(step) {
			summary.Completed = append(summary.Completed, string(step))
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = memoryEntry{summary: summary, state: state}
	return nil
}

func (m *Memory) GetSession(_ context.Context, id string) (*wizard.Session, error) {
	m.mu.RLock()
	entry, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", wizard.ErrSessionNotFound, id)
	}

	var sess wizard.Session
	if err := json.Unmarshal(entry.state, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", id, err)
	}
	return &sess, nil
}

func (m *Memory) ListSessions(context.Context) ([]store.SessionSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]store.SessionSummary, 0, len(m.sessions))
	for _, entry := range m.sessions {
		out = append(out, entry.summary)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (m *Memory) DeleteSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", wizard.ErrSessionNotFound, id)
	}
	delete(m.sessions, id)
	return nil
}

func (m *Memory) CleanupStaleSessions(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for id, entry := range m.sessions {
		if entry.summary.UpdatedAt.Before(before) {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}
