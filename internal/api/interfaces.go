package api

import (
	"context"

	"github.com/fieldtrail/fieldtrail/internal/model"
)

// AttendanceFetcher defines the contract for fetching the user's attendance
// history. This interface allows for easy mocking in tests.
type AttendanceFetcher interface {
	ViewAttendance(ctx context.Context) ([]model.AttendanceRecord, error)
}

// DistanceFetcher defines the contract for fetching the per-day distance
// report. Its failure degrades the day view; it never blocks record display.
type DistanceFetcher interface {
	CalculateDistance(ctx context.Context, date string) (*model.DistanceReport, error)
}

// TokenSource supplies the stored session to authenticated calls and
// persists a replacement access token after a refresh.
type TokenSource interface {
	GetSession(ctx context.Context) (*model.Session, error)
	UpdateAccessToken(ctx context.Context, accessToken string) error
}
