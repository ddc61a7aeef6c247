package storage

import (
	"context"
	"fmt"

	"github.com/fieldtrail/fieldtrail/internal/model"
)

// SaveAttendanceRecords upserts fetched records into the offline cache.
// Records are immutable server-side, so an upsert simply refreshes fields.
func (s *SQLiteStorage) SaveAttendanceRecords(ctx context.Context, records []model.AttendanceRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO attendance_records
			(id, raw_timestamp, purpose, sub_purpose, feedback, location_name, lat, lng, image, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			raw_timestamp = excluded.raw_timestamp,
			purpose = excluded.purpose,
			sub_purpose = excluded.sub_purpose,
			feedback = excluded.feedback,
			location_name = excluded.location_name,
			lat = excluded.lat,
			lng = excluded.lng,
			image = excluded.image,
			fetched_at = CURRENT_TIMESTAMP`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		if r.ID == "" {
			return fmt.Errorf("attendance record missing id")
		}
		if _, err := stmt.ExecContext(ctx,
			string(r.ID), r.RawTimestamp, r.Purpose, r.SubPurpose, r.Feedback,
			r.LocationName, r.Lat, r.Lng, r.Image); err != nil {
			return fmt.Errorf("failed to save record %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit records: %w", err)
	}
	return nil
}

// GetAttendanceRecords returns the cached attendance history, newest raw
// timestamp first.
func (s *SQLiteStorage) GetAttendanceRecords(ctx context.Context) ([]model.AttendanceRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, raw_timestamp, purpose, sub_purpose, feedback, location_name, lat, lng, image
		FROM attendance_records
		ORDER BY raw_timestamp DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []model.AttendanceRecord
	for rows.Next() {
		var r model.AttendanceRecord
		var id string
		if err := rows.Scan(&id, &r.RawTimestamp, &r.Purpose, &r.SubPurpose,
			&r.Feedback, &r.LocationName, &r.Lat, &r.Lng, &r.Image); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		r.ID = model.RecordID(id)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return records, nil
}
