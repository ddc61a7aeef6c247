package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fieldtrail/fieldtrail/internal/cli"
	"github.com/fieldtrail/fieldtrail/internal/common"
	"github.com/fieldtrail/fieldtrail/internal/model"
)

func syncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Download your attendance history into the local cache",
		Long: `Fetch the full attendance history from the backend and store it in the
local database so other commands can work offline.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			client, err := newAPIClient(store)
			if err != nil {
				return err
			}

			var records []model.AttendanceRecord
			err = common.WithRetry(ctx, func() error {
				var fetchErr error
				records, fetchErr = client.ViewAttendance(ctx)
				return fetchErr
			}, defaultRetryOpts())
			if err != nil {
				return fmt.Errorf("failed to fetch attendance history: %w", err)
			}

			if len(records) == 0 {
				fmt.Println(cli.FormatInfo("No attendance records on the backend yet."))
				return nil
			}

			bar := cli.NewProgressBar(len(records), "Caching attendance records...", os.Stdout)
			for i := range records {
				if err := store.SaveAttendanceRecords(ctx, records[i:i+1]); err != nil {
					return err
				}
				_ = bar.Add(1)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Synced %d attendance records", len(records))))
			return nil
		},
	}
}
