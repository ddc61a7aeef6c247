package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fieldtrail/fieldtrail/internal/cli"
	"github.com/fieldtrail/fieldtrail/internal/common"
	"github.com/fieldtrail/fieldtrail/internal/model"
)

func leaveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leave",
		Short: "File and review leave requests",
	}

	cmd.AddCommand(leaveApplyCmd())
	cmd.AddCommand(leaveListCmd())
	return cmd
}

func leaveApplyCmd() *cobra.Command {
	var (
		leaveType string
		from, to  string
		reason    string
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply for leave",
		Long: `File a leave request locally. Every field is required: the leave type,
the date range, and a reason.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			request, err := buildLeaveRequest(leaveType, from, to, reason)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveLeaveRequest(ctx, request); err != nil {
				return err
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf(
				"Leave application submitted for %d day(s) as %s.", request.Days(), request.Type)))
			return nil
		},
	}

	cmd.Flags().StringVar(&leaveType, "type", "", "leave type: Sick Leave, Casual Leave, or Earned Leave")
	cmd.Flags().StringVar(&from, "from", "", "first day of leave (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "last day of leave (YYYY-MM-DD, default same as --from)")
	cmd.Flags().StringVar(&reason, "reason", "", "reason for the leave")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("reason")
	return cmd
}

func leaveListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List filed leave requests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			requests, err := store.GetLeaveRequests(ctx)
			if err != nil {
				return err
			}
			if len(requests) == 0 {
				fmt.Println(cli.FormatInfo("No leave requests filed yet."))
				return nil
			}

			fmt.Println(cli.FormatTitle("Leave Requests"))
			for _, r := range requests {
				fmt.Printf("%s  %s — %s  %s (%d day(s))\n",
					cli.BoldStyle.Render(string(r.Type)),
					r.From.Format("2006-01-02"),
					r.To.Format("2006-01-02"),
					cli.SubtleStyle.Render(r.Reason),
					r.Days())
			}
			return nil
		},
	}
}

// buildLeaveRequest validates the form the same way the application screen
// does: all fields present, known leave type, coherent date range.
func buildLeaveRequest(leaveType, from, to, reason string) (*model.LeaveRequest, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, common.NewUserError("Please fill all fields before submitting.", errors.New("reason is empty"))
	}

	lt := model.LeaveType(leaveType)
	if !lt.Valid() {
		return nil, common.NewUserError(
			fmt.Sprintf("Unknown leave type %q. Valid types: %s.", leaveType, joinLeaveTypes()),
			errors.New("invalid leave type"))
	}

	fromDate, err := time.Parse("2006-01-02", from)
	if err != nil {
		return nil, common.NewUserError("Dates must look like 2025-02-03.", err)
	}

	toDate := fromDate
	if to != "" {
		toDate, err = time.Parse("2006-01-02", to)
		if err != nil {
			return nil, common.NewUserError("Dates must look like 2025-02-03.", err)
		}
	}
	if toDate.Before(fromDate) {
		return nil, common.NewUserError("The last day of leave cannot be before the first.", errors.New("inverted date range"))
	}

	return &model.LeaveRequest{
		Type:   lt,
		From:   fromDate,
		To:     toDate,
		Reason: reason,
	}, nil
}

func joinLeaveTypes() string {
	types := model.LeaveTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
