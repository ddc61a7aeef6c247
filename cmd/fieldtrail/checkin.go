package main

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fieldtrail/fieldtrail/internal/cli"
	"github.com/fieldtrail/fieldtrail/internal/common"
	"github.com/fieldtrail/fieldtrail/internal/model"
)

// maxDetailsLen mirrors the check-in form's character limit.
const maxDetailsLen = 50

func checkinCmd() *cobra.Command {
	var (
		photoPath    string
		purpose      string
		details      string
		locationName string
		lat, lng     float64
	)

	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Submit a geotagged photo check-in",
		Long: `Submit an attendance check-in: a photo, your coordinates, and a visit
purpose. The photo is embedded in the request as a base64 data URI.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			checkIn, err := buildCheckIn(photoPath, purpose, details, locationName, lat, lng, time.Now())
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			session, err := store.GetSession(ctx)
			if err != nil {
				return err
			}
			checkIn.UserID = session.User.ID

			client, err := newAPIClient(store)
			if err != nil {
				return err
			}

			if err := client.SubmitAttendance(ctx, checkIn); err != nil {
				if errors.Is(err, common.ErrBackendRejected) {
					return common.NewUserError("The backend rejected the check-in.", err)
				}
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Checked in: %s at %s", checkIn.Purpose, checkIn.LocationName)))
			return nil
		},
	}

	cmd.Flags().StringVar(&photoPath, "photo", "", "path to the check-in photo (JPEG)")
	cmd.Flags().StringVar(&purpose, "purpose", "", "visit purpose (e.g. \"Check In\", \"Site Visit\")")
	cmd.Flags().StringVar(&details, "details", "", "optional details, up to 50 characters")
	cmd.Flags().StringVar(&locationName, "location-name", "", "human-readable location")
	cmd.Flags().Float64Var(&lat, "lat", 0, "latitude")
	cmd.Flags().Float64Var(&lng, "lng", 0, "longitude")
	_ = cmd.MarkFlagRequired("photo")
	_ = cmd.MarkFlagRequired("purpose")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lng")
	return cmd
}

// buildCheckIn validates the form inputs and assembles the submission the
// backend expects: empty free-text fields become "N/A", the photo becomes a
// data URI, and the timestamp carries a matching calendar date.
func buildCheckIn(photoPath, purpose, details, locationName string, lat, lng float64, now time.Time) (model.CheckIn, error) {
	if strings.TrimSpace(purpose) == "" {
		return model.CheckIn{}, common.NewUserError("A visit purpose is required.", errors.New("purpose is empty"))
	}
	if len(details) > maxDetailsLen {
		return model.CheckIn{}, common.NewUserError(
			fmt.Sprintf("Details must be at most %d characters.", maxDetailsLen),
			fmt.Errorf("details too long: %d characters", len(details)))
	}

	photo, err := os.ReadFile(photoPath)
	if err != nil {
		return model.CheckIn{}, common.NewUserError("Could not read the photo file.", err)
	}

	if details == "" {
		details = model.FieldNA
	}
	if locationName == "" {
		locationName = "Unknown"
	}

	return model.CheckIn{
		Image:        "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(photo),
		LocationName: locationName,
		Purpose:      purpose,
		SubPurpose:   details,
		Feedback:     details,
		Timestamp:    now.UTC().Format(time.RFC3339),
		Date:         now.UTC().Format("2006-01-02"),
		Lat:          lat,
		Lng:          lng,
	}, nil
}
