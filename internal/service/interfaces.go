// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/fieldtrail/fieldtrail/internal/model"
)

// Storage defines the contract for the local persistence layer: the session
// cache that replaces the mobile app's device storage, plus an offline copy
// of fetched attendance history and locally filed leave requests.
type Storage interface {
	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context) (*model.Session, error)
	UpdateAccessToken(ctx context.Context, accessToken string) error
	ClearSession(ctx context.Context) error

	// Attendance cache operations
	SaveAttendanceRecords(ctx context.Context, records []model.AttendanceRecord) error
	GetAttendanceRecords(ctx context.Context) ([]model.AttendanceRecord, error)

	// Leave request operations
	SaveLeaveRequest(ctx context.Context, request *model.LeaveRequest) error
	GetLeaveRequests(ctx context.Context) ([]model.LeaveRequest, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
