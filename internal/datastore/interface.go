package datastore

import (
	"context"
	"time"

	"hotel-ob/internal/store"
	"hotel-ob/internal/wizard"
)

// DataStore persists wizard sessions between CLI invocations and HTTP
// requests. It is implemented by the PostgreSQL store and the in-memory store.
type DataStore interface {
	// Lifecycle
	Close() error
	InitDB(ctx context.Context) error

	// Session Operations
	SaveSession(ctx context.Context, sess *wizard.Session) error
	GetSession(ctx context.Context, id string) (*wizard.Session, error)
	ListSessions(ctx context.Context) ([]store.SessionSummary, error)
	DeleteSession(ctx context.Context, id string) error
	CleanupStaleSessions(ctx context.Context, before time.Time) (int64, error)
}

// Type selects the data store implementation.
type Type string

const (
	// PostgreSQLStore uses a real PostgreSQL database
	PostgreSQLStore Type = "postgres"
	// MemoryStore keeps sessions in process memory
	MemoryStore Type = "memory"
)

// Config holds configuration for data store creation
type Config struct {
	Type             Type
	ConnectionString string
}

// NewDataStore creates a new data store based on configuration
func NewDataStore(ctx context.Context, config Config) (DataStore, error) {
	switch config.Type {
	case PostgreSQLStore:
		s, err := store.NewStore(ctx, config.ConnectionString)
		if err != nil {
			return nil, err
		}
		return s, nil
	case MemoryStore:
		return NewMemory(), nil
	default:
		return nil, &UnsupportedStoreTypeError{Type: string(config.Type)}
	}
}

// UnsupportedStoreTypeError is returned when an unsupported store type is requested
type UnsupportedStoreTypeError struct {
	Type string
}

func (e *UnsupportedStoreTypeError) Error() string {
	return "unsupported store type: " + e.Type
}
