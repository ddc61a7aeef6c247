package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldtrail/fieldtrail/internal/model"
)

// SaveLeaveRequest files a new leave request locally and fills in the
// assigned ID and creation time.
func (s *SQLiteStorage) SaveLeaveRequest(ctx context.Context, request *model.LeaveRequest) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if request == nil {
		return fmt.Errorf("request cannot be nil")
	}
	if !request.Type.Valid() {
		return fmt.Errorf("unknown leave type %q", request.Type)
	}

	now := time.Now().UTC()
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO leave_requests (leave_type, from_date, to_date, reason, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		string(request.Type), request.From, request.To, request.Reason, now)
	if err != nil {
		return fmt.Errorf("failed to save leave request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get leave request id: %w", err)
	}
	request.ID = id
	request.CreatedAt = now
	return nil
}

// GetLeaveRequests returns locally filed leave requests, most recent first.
func (s *SQLiteStorage) GetLeaveRequests(ctx context.Context) ([]model.LeaveRequest, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, leave_type, from_date, to_date, reason, created_at
		FROM leave_requests
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var requests []model.LeaveRequest
	for rows.Next() {
		var r model.LeaveRequest
		var leaveType string
		if err := rows.Scan(&r.ID, &leaveType, &r.From, &r.To, &r.Reason, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		r.Type = model.LeaveType(leaveType)
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leave requests: %w", err)
	}
	return requests, nil
}
