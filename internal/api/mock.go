package api

import (
	"context"

	"github.com/fieldtrail/fieldtrail/internal/model"
)

// MockBackend is a mock implementation of the fetcher interfaces for testing.
type MockBackend struct {
	// Functions that can be set by tests to control behavior
	ViewAttendanceFn    func(ctx context.Context) ([]model.AttendanceRecord, error)
	CalculateDistanceFn func(ctx context.Context, date string) (*model.DistanceReport, error)

	// Call tracking
	CalculateDistanceCalls []string
	ViewAttendanceCalls    int
}

// NewMockBackend creates a new mock backend.
func NewMockBackend() *MockBackend {
	return &MockBackend{
		CalculateDistanceCalls: []string{},
	}
}

// ViewAttendance implements AttendanceFetcher.
func (m *MockBackend) ViewAttendance(ctx context.Context) ([]model.AttendanceRecord, error) {
	m.ViewAttendanceCalls++

	if m.ViewAttendanceFn != nil {
		return m.ViewAttendanceFn(ctx)
	}
	return []model.AttendanceRecord{}, nil
}

// CalculateDistance implements DistanceFetcher.
func (m *MockBackend) CalculateDistance(ctx context.Context, date string) (*model.DistanceReport, error) {
	m.CalculateDistanceCalls = append(m.CalculateDistanceCalls, date)

	if m.CalculateDistanceFn != nil {
		return m.CalculateDistanceFn(ctx, date)
	}
	return &model.DistanceReport{Date: date}, nil
}

// Reset clears all call tracking.
func (m *MockBackend) Reset() {
	m.ViewAttendanceCalls = 0
	m.CalculateDistanceCalls = []string{}
}

// Ensure MockBackend implements the fetcher interfaces.
var (
	_ AttendanceFetcher = (*MockBackend)(nil)
	_ DistanceFetcher   = (*MockBackend)(nil)
)
