// Package api provides the HTTP client for the field-workforce backend. All
// business logic (authentication, attendance persistence, distance
// calculation) lives server-side; this client only moves data.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/fieldtrail/fieldtrail/internal/common"
	"github.com/fieldtrail/fieldtrail/internal/model"
)

// Client talks to the backend's /user endpoints.
type Client struct {
	httpClient *http.Client
	tokens     TokenSource
	baseURL    string
}

// NewClient creates a backend client. tokens may be nil for a client that
// only performs unauthenticated calls (login, forgot-password).
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) (*Client, error) {
	baseURL = strings.TrimSuffix(baseURL, "/")
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("%w: api.base_url must be an http(s) URL, got %q", common.ErrInvalidConfig, baseURL)
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    baseURL,
		tokens:     tokens,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Success bool            `json:"success"`
}

type loginResponse struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
	User         model.User `json:"user"`
	Message      string     `json:"message"`
	Success      bool       `json:"success"`
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, email, password string) (*model.Session, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode login request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/user/login", body, "")
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var out loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	if !out.Success {
		return nil, fmt.Errorf("%w: %s", common.ErrBackendRejected, messageOrDefault(out.Message, "login failed"))
	}

	return &model.Session{
		AccessToken:  out.AccessToken,
		RefreshToken: out.RefreshToken,
		User:         out.User,
	}, nil
}

// RefreshAccessToken exchanges a refresh token for a new access token.
func (c *Client) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	body, err := json.Marshal(map[string]string{"refreshToken": refreshToken})
	if err != nil {
		return "", fmt.Errorf("failed to encode refresh request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/user/refresh-token", body, "")
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	var out struct {
		AccessToken string `json:"accessToken"`
		Message     string `json:"message"`
		Success     bool   `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode refresh response: %w", err)
	}
	if !out.Success || out.AccessToken == "" {
		return "", fmt.Errorf("%w: token refresh rejected", common.ErrSessionExpired)
	}

	return out.AccessToken, nil
}

// ForgotPassword asks the backend to start a password reset for email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body, err := json.Marshal(map[string]string{"email": email})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.do(ctx, http.MethodPost, "/user/forgot-password", body, "")
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	env, err := decodeEnvelope(resp.Body)
	if err != nil {
		return err
	}
	if !env.Success {
		return fmt.Errorf("%w: %s", common.ErrBackendRejected, messageOrDefault(env.Message, "password reset failed"))
	}
	return nil
}

// Me fetches the logged-in user's profile.
func (c *Client) Me(ctx context.Context) (*model.User, error) {
	resp, err := c.doAuthenticated(ctx, http.MethodGet, "/user/me", nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var out struct {
		User    model.User `json:"user"`
		Message string     `json:"message"`
		Success bool       `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode profile response: %w", err)
	}
	if !out.Success {
		return nil, fmt.Errorf("%w: %s", common.ErrBackendRejected, messageOrDefault(out.Message, "profile fetch failed"))
	}
	return &out.User, nil
}

// ViewAttendance fetches the user's full attendance history.
func (c *Client) ViewAttendance(ctx context.Context) ([]model.AttendanceRecord, error) {
	resp, err := c.doAuthenticated(ctx, http.MethodGet, "/user/viewAttendance", nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	env, err := decodeEnvelope(resp.Body)
	if err != nil {
		return nil, err
	}
	if !env.Success {
		return nil, fmt.Errorf("%w: %s", common.ErrBackendRejected, messageOrDefault(env.Message, "failed to fetch attendance records"))
	}

	var records []model.AttendanceRecord
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &records); err != nil {
			return nil, fmt.Errorf("failed to decode attendance records: %w", err)
		}
	}
	return records, nil
}

// CalculateDistance fetches the distance report for one calendar date
// (YYYY-MM-DD).
func (c *Client) CalculateDistance(ctx context.Context, date string) (*model.DistanceReport, error) {
	body, err := json.Marshal(map[string]string{"date": date})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	resp, err := c.doAuthenticated(ctx, http.MethodPost, "/user/calculateDistance", body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDistanceFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	var out struct {
		Message       string                `json:"message"`
		Entries       []model.DistanceEntry `json:"pointToPointDistances"`
		TotalDistance float64               `json:"totalDistance"`
		Success       bool                  `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrDistanceFetchFailed, err)
	}
	if !out.Success {
		return nil, fmt.Errorf("%w: %s", common.ErrDistanceFetchFailed, messageOrDefault(out.Message, "backend returned failure"))
	}

	return &model.DistanceReport{
		Date:          date,
		TotalDistance: out.TotalDistance,
		Entries:       out.Entries,
	}, nil
}

// SubmitAttendance posts a geotagged photo check-in.
func (c *Client) SubmitAttendance(ctx context.Context, checkIn model.CheckIn) error {
	location, err := json.Marshal(map[string]float64{"lat": checkIn.Lat, "lng": checkIn.Lng})
	if err != nil {
		return fmt.Errorf("failed to encode location: %w", err)
	}
	checkIn.Location = string(location)

	body, err := json.Marshal(checkIn)
	if err != nil {
		return fmt.Errorf("failed to encode check-in: %w", err)
	}

	resp, err := c.doAuthenticated(ctx, http.MethodPost, "/user/attendance", body)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	env, err := decodeEnvelope(resp.Body)
	if err != nil {
		return err
	}
	if !env.Success {
		return fmt.Errorf("%w: %s", common.ErrBackendRejected, messageOrDefault(env.Message, "check-in rejected"))
	}
	return nil
}

// doAuthenticated performs a request with the stored access token. A 401
// triggers exactly one token refresh followed by one retry, mirroring the
// session behavior the backend expects of its clients.
func (c *Client) doAuthenticated(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	if c.tokens == nil {
		return nil, common.ErrNoSession
	}

	session, err := c.tokens.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil || session.AccessToken == "" {
		return nil, common.ErrNoSession
	}

	resp, err := c.do(ctx, method, path, body, session.AccessToken)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}
	_ = resp.Body.Close()

	slog.Debug("access token rejected, refreshing", "path", path)

	accessToken, err := c.RefreshAccessToken(ctx, session.RefreshToken)
	if err != nil {
		return nil, err
	}
	if err := c.tokens.UpdateAccessToken(ctx, accessToken); err != nil {
		return nil, fmt.Errorf("failed to persist refreshed token: %w", err)
	}

	return c.do(ctx, method, path, body, accessToken)
}

// do performs one HTTP round trip. Network-level failures are marked
// retryable so the command layer's retry helper can back off and try again.
func (c *Client) do(ctx context.Context, method, path string, body []byte, accessToken string) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, &common.RetryableError{
			Err:       fmt.Errorf("request to %s failed: %w", path, err),
			Retryable: true,
		}
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return nil, &common.RetryableError{
			Err:       fmt.Errorf("backend error on %s: %d - %s", path, resp.StatusCode, string(body)),
			Retryable: true,
		}
	}

	return resp, nil
}

func decodeEnvelope(r io.Reader) (*envelope, error) {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &env, nil
}

func messageOrDefault(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}

// Compile-time collaborator checks.
var (
	_ AttendanceFetcher = (*Client)(nil)
	_ DistanceFetcher   = (*Client)(nil)
)
