package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fieldtrail/fieldtrail/internal/common"
	"github.com/fieldtrail/fieldtrail/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "fieldtrail.db")
	store, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func TestNewSQLiteStorageRequiresPath(t *testing.T) {
	_, err := NewSQLiteStorage("")
	assert.Error(t, err)
}

func TestMigrateIsIdempotent(t *testing.T) {
	store := newTestStorage(t)
	assert.NoError(t, store.Migrate(context.Background()))
}

func TestSessionLifecycle(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	_, err := store.GetSession(ctx)
	assert.ErrorIs(t, err, common.ErrNoSession)

	session := &model.Session{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		User: model.User{
			Email:    "asha@example.com",
			FullName: "Asha Rao",
			Role:     "Field Executive",
		},
	}
	require.NoError(t, store.SaveSession(ctx, session))

	got, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-1", got.AccessToken)
	assert.Equal(t, "refresh-1", got.RefreshToken)
	assert.Equal(t, "Asha Rao", got.User.FullName)

	// Logging in again replaces the single session row.
	session.AccessToken = "access-2"
	require.NoError(t, store.SaveSession(ctx, session))
	got, err = store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-2", got.AccessToken)

	require.NoError(t, store.ClearSession(ctx))
	_, err = store.GetSession(ctx)
	assert.ErrorIs(t, err, common.ErrNoSession)
}

func TestSaveSessionRejectsNil(t *testing.T) {
	store := newTestStorage(t)
	assert.Error(t, store.SaveSession(context.Background(), nil))
}

func TestUpdateAccessToken(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	err := store.UpdateAccessToken(ctx, "fresh")
	assert.ErrorIs(t, err, common.ErrNoSession, "no session to update")

	require.NoError(t, store.SaveSession(ctx, &model.Session{
		AccessToken:  "stale",
		RefreshToken: "refresh-1",
		User:         model.User{Email: "asha@example.com"},
	}))
	require.NoError(t, store.UpdateAccessToken(ctx, "fresh"))

	got, err := store.GetSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.AccessToken)
	assert.Equal(t, "refresh-1", got.RefreshToken, "refresh token survives")
}

func TestAttendanceCache(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	got, err := store.GetAttendanceRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	records := []model.AttendanceRecord{
		{
			ID:           "7",
			RawTimestamp: "2025-01-20T09:00:00",
			Purpose:      "Client Visit",
			LocationName: "Bengaluru, Karnataka",
			Lat:          12.97,
			Lng:          77.59,
		},
		{
			ID:           "8",
			RawTimestamp: "2025-01-20T17:00:00",
			Purpose:      "Site Survey",
			SubPurpose:   "Measurements",
			Lat:          12.98,
			Lng:          77.60,
		},
	}
	require.NoError(t, store.SaveAttendanceRecords(ctx, records))

	got, err = store.GetAttendanceRecords(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, model.RecordID("8"), got[0].ID, "newest raw timestamp first")
	assert.Equal(t, "Client Visit", got[1].Purpose)

	// Refetching the same record updates it in place.
	records[0].Purpose = "Office Visit"
	require.NoError(t, store.SaveAttendanceRecords(ctx, records[:1]))

	got, err = store.GetAttendanceRecords(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Office Visit", got[1].Purpose)
}

func TestSaveAttendanceRecordsRejectsMissingID(t *testing.T) {
	store := newTestStorage(t)
	err := store.SaveAttendanceRecords(context.Background(), []model.AttendanceRecord{{RawTimestamp: "2025-01-20"}})
	assert.Error(t, err)
}

func TestLeaveRequests(t *testing.T) {
	store := newTestStorage(t)
	ctx := context.Background()

	request := &model.LeaveRequest{
		Type:   model.LeaveSick,
		From:   time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2025, 2, 5, 0, 0, 0, 0, time.UTC),
		Reason: "Fever",
	}
	require.NoError(t, store.SaveLeaveRequest(ctx, request))
	assert.NotZero(t, request.ID)
	assert.False(t, request.CreatedAt.IsZero())

	second := &model.LeaveRequest{
		Type:   model.LeaveCasual,
		From:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		To:     time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Reason: "Family function",
	}
	require.NoError(t, store.SaveLeaveRequest(ctx, second))

	requests, err := store.GetLeaveRequests(ctx)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, model.LeaveCasual, requests[0].Type, "most recent first")
	assert.Equal(t, 3, requests[1].Days())
}

func TestSaveLeaveRequestValidatesType(t *testing.T) {
	store := newTestStorage(t)
	err := store.SaveLeaveRequest(context.Background(), &model.LeaveRequest{Type: "Long Weekend"})
	assert.Error(t, err)
}

func TestValidateContext(t *testing.T) {
	store := newTestStorage(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.GetAttendanceRecords(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
