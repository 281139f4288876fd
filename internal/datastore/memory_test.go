package datastore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-ob/internal/wizard"
)

func TestMemory_SaveAndGetAreIsolated(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	sess := wizard.NewSession(wizard.ModeAdd, nil)
	require.NoError(t, sess.Data.Set(wizard.StepHotel, wizard.HotelInfo{Name: "Seeblick"}))
	sess.IDs.HotelID = 42
	sess.Completion.MarkComplete(wizard.StepHotel)
	require.NoError(t, m.SaveSession(ctx, sess))

	// later edits to the caller's copy do not leak into the store
	sess.IDs.HotelID = 99

	got, err := m.GetSession(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(42), got.IDs.HotelID)
	assert.Equal(t, "Seeblick", wizard.CommittedAs[wizard.HotelInfo](got.Data, wizard.StepHotel).Name)
	assert.Equal(t, wizard.StateIdle, got.State())

	list, err := m.ListSessions(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"hotel"}, []string(list[0].Completed))
	assert.Equal(t, int64(42), list[0].HotelID.Int64)
}

func TestMemory_DeleteAndCleanup(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	old := wizard.NewSession(wizard.ModeAdd, nil)
	old.UpdatedAt = time.Now().Add(-48 * time.Hour)
	fresh := wizard.NewSession(wizard.ModeEdit, nil)
	require.NoError(t, m.SaveSession(ctx, old))
	require.NoError(t, m.SaveSession(ctx, fresh))

	n, err := m.CleanupStaleSessions(ctx, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = m.GetSession(ctx, old.ID)
	assert.ErrorIs(t, err, wizard.ErrSessionNotFound)

	require.NoError(t, m.DeleteSession(ctx, fresh.ID))
	assert.ErrorIs(t, m.DeleteSession(ctx, fresh.ID), wizard.ErrSessionNotFound)
}

func TestNewDataStore(t *testing.T) {
	ds, err := NewDataStore(context.Background(), Config{Type: MemoryStore})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, ds)

	_, err = NewDataStore(context.Background(), Config{Type: "mock"})
	var unsupported *UnsupportedStoreTypeError
	assert.ErrorAs(t, err, &unsupported)
}
