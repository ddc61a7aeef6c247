package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fieldtrail/fieldtrail/internal/api"
	"github.com/fieldtrail/fieldtrail/internal/cli"
	"github.com/fieldtrail/fieldtrail/internal/common"
	"github.com/fieldtrail/fieldtrail/internal/dayfeed"
	"github.com/fieldtrail/fieldtrail/internal/model"
	"github.com/fieldtrail/fieldtrail/internal/tui"
)

func attendanceCmd() *cobra.Command {
	var (
		dateFlag    string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "attendance",
		Short: "Show the attendance feed for a day",
		Long: `Fetch your attendance history and render one day's check-ins newest
first, annotated with the travel distance between consecutive visits.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			date := time.Now()
			if dateFlag != "" {
				parsed, err := time.Parse("2006-01-02", dateFlag)
				if err != nil {
					return common.NewUserError("Dates must look like 2025-01-20.", err)
				}
				date = parsed
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			client, err := newAPIClient(store)
			if err != nil {
				return err
			}

			assembler := dayfeed.NewAssembler(viper.GetFloat64("attendance.min_movement_km"))

			if interactive {
				return tui.Run(tui.Config{
					Attendance:  client,
					Distance:    client,
					Assembler:   assembler,
					Enricher:    dayfeed.NewEnricher(),
					InitialDate: date,
				})
			}

			return renderDay(ctx, client, assembler, date)
		},
	}

	cmd.Flags().StringVarP(&dateFlag, "date", "d", "", "day to show (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse days in the TUI")
	return cmd
}

// renderDay prints one day's feed without the TUI. The distance fetch is
// allowed to fail; the feed then renders degraded.
func renderDay(ctx context.Context, client *api.Client, assembler *dayfeed.Assembler, date time.Time) error {
	records, err := client.ViewAttendance(ctx)
	if err != nil {
		return err
	}

	dateKey := dayfeed.DateKey(date)
	enriched := dayfeed.NewEnricher().Enrich(records)

	var report *model.DistanceReport
	var reportErr error
	if len(dayfeed.FilterDay(enriched, dateKey)) > 0 {
		report, reportErr = client.CalculateDistance(ctx, dateKey)
	}

	vm := assembler.Assemble(enriched, dateKey, report, reportErr)

	fmt.Println(cli.FormatTitle("Attendance — " + date.Format("Mon, 02 Jan 2006")))

	if vm.Empty() {
		fmt.Println(cli.SubtleStyle.Render("No check-ins on this day."))
		return nil
	}

	for _, r := range vm.OrderedRecords {
		fmt.Printf("%s  %s", cli.BoldStyle.Render(r.DisplayTime), r.Purpose)
		if r.HasSubPurpose() {
			fmt.Printf(" · %s", r.SubPurpose)
		}
		fmt.Println()
		if r.LocationName != "" {
			fmt.Println(cli.SubtleStyle.Render("    " + cli.PinIcon + " " + r.LocationName))
		}
		fmt.Println("    " + annotationLine(vm.Annotation(r.ID)))
	}

	fmt.Println()
	if vm.TotalKnown {
		total := fmt.Sprintf("Total distance: %.2f km", vm.TotalDistance)
		if vm.SingleLocation() {
			total += " (Single location)"
		}
		fmt.Println(cli.BoldStyle.Render(total))
	} else {
		fmt.Println(cli.BoldStyle.Render("Total distance: —"))
	}

	if vm.DistanceDegraded() {
		fmt.Println(cli.FormatWarning("Distance information is temporarily unavailable."))
	}
	return nil
}

// annotationLine must cover every classification.
func annotationLine(a dayfeed.Annotation) string {
	switch a.Kind {
	case dayfeed.FirstOfDay:
		return cli.StyleInfo("Start of day")
	case dayfeed.DistanceKnown:
		switch {
		case a.SameLocation():
			return cli.StyleInfo("Same location")
		case a.MinimalMovement:
			return cli.StyleWarning(fmt.Sprintf("%.2f km (minimal movement)", a.Distance))
		default:
			return fmt.Sprintf("%.2f km from previous visit", a.Distance)
		}
	case dayfeed.DistanceUnavailable:
		return cli.SubtleStyle.Render("Distance unavailable")
	default:
		return cli.SubtleStyle.Render("Distance unavailable")
	}
}
