package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fieldtrail/fieldtrail/internal/common"
	"github.com/fieldtrail/fieldtrail/internal/model"
)

// SaveSession stores the session, replacing any existing one. There is at
// most one logged-in user per database.
func (s *SQLiteStorage) SaveSession(ctx context.Context, session *model.Session) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	userJSON, err := json.Marshal(session.User)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session (id, access_token, refresh_token, user_json, saved_at)
		VALUES (1, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			user_json = excluded.user_json,
			saved_at = CURRENT_TIMESTAMP`,
		session.AccessToken, session.RefreshToken, string(userJSON))
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// GetSession loads the stored session. Returns common.ErrNoSession when no
// one is logged in.
func (s *SQLiteStorage) GetSession(ctx context.Context) (*model.Session, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	var session model.Session
	var userJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT access_token, refresh_token, user_json FROM session WHERE id = 1`).
		Scan(&session.AccessToken, &session.RefreshToken, &userJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if err := json.Unmarshal([]byte(userJSON), &session.User); err != nil {
		return nil, fmt.Errorf("failed to decode cached user: %w", err)
	}
	return &session, nil
}

// UpdateAccessToken replaces only the access token, keeping the refresh
// token and cached profile.
func (s *SQLiteStorage) UpdateAccessToken(ctx context.Context, accessToken string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE session SET access_token = ?, saved_at = CURRENT_TIMESTAMP WHERE id = 1`,
		accessToken)
	if err != nil {
		return fmt.Errorf("failed to update access token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update: %w", err)
	}
	if rows == 0 {
		return common.ErrNoSession
	}
	return nil
}

// ClearSession logs the user out locally, discarding tokens and the cached
// profile.
func (s *SQLiteStorage) ClearSession(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM session`); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}
