package main

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/fieldtrail/fieldtrail/internal/api"
	"github.com/fieldtrail/fieldtrail/internal/common"
	"github.com/fieldtrail/fieldtrail/internal/config"
	"github.com/fieldtrail/fieldtrail/internal/service"
	"github.com/fieldtrail/fieldtrail/internal/storage"
)

// initStorage initializes the local store with proper path expansion.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.ExpandPath(viper.GetString("storage.database"))

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// newAPIClient creates the backend client. tokens may be nil for commands
// that only make unauthenticated calls.
func newAPIClient(tokens api.TokenSource) (*api.Client, error) {
	baseURL := viper.GetString("api.base_url")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: api.base_url is not set (use --api-url, FIELDTRAIL_API_BASE_URL, or the config file)", common.ErrMissingConfig)
	}

	return api.NewClient(baseURL, viper.GetDuration("api.timeout"), tokens)
}

// defaultRetryOpts is the backoff policy for user-initiated network commands.
func defaultRetryOpts() service.RetryOptions {
	return service.RetryOptions{MaxAttempts: 3}
}
