package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fieldtrail/fieldtrail/internal/cli"
	"github.com/fieldtrail/fieldtrail/internal/model"
)

// Company-wide reference data. The backend has no endpoints for these yet;
// the lists ship with the client, as they did in the mobile app.
var (
	notices = []model.Notice{
		{
			ID:    1,
			Title: "Quarterly Team Meeting",
			Date:  "2025-01-30",
			Body:  "All employees are required to attend the quarterly team meeting scheduled on January 30, 2025, at 10:00 AM in the conference room.",
		},
		{
			ID:    2,
			Title: "Work From Home Policy Update",
			Date:  "2025-01-20",
			Body:  "Please note that the new work-from-home policy will take effect from February 1, 2025. For details, refer to the HR portal.",
		},
		{
			ID:    3,
			Title: "Holiday Reminder: Republic Day",
			Date:  "2025-01-26",
			Body:  "The office will remain closed on January 26, 2025, in observance of Republic Day. Happy holiday!",
		},
	}

	holidays = []model.Holiday{
		{ID: 1, Name: "New Year's Day", Date: "2025-01-01"},
		{ID: 2, Name: "Republic Day", Date: "2025-01-26"},
		{ID: 3, Name: "Holi", Date: "2025-03-17"},
		{ID: 4, Name: "Good Friday", Date: "2025-04-18"},
		{ID: 5, Name: "Independence Day", Date: "2025-08-15"},
		{ID: 6, Name: "Diwali", Date: "2025-11-12"},
		{ID: 7, Name: "Christmas", Date: "2025-12-25"},
	}

	tasks = []model.Task{
		{
			ID:          1,
			Title:       "Complete client site survey",
			Description: "Finish the pending measurements and photos for the new site.",
			Deadline:    "2025-01-31",
			Priority:    "High",
		},
		{
			ID:          2,
			Title:       "Prepare visit report",
			Description: "Summarize last week's client visits for the regional lead.",
			Deadline:    "2025-02-05",
			Priority:    "Medium",
		},
		{
			ID:          3,
			Title:       "Update contact sheet",
			Description: "Refresh phone numbers for the accounts in your territory.",
			Deadline:    "2025-01-28",
			Priority:    "Low",
		},
	}
)

func noticesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "notices",
		Short: "Show company notices",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(cli.FormatTitle("Notices"))
			for _, n := range notices {
				fmt.Printf("%s  %s\n", cli.SubtleStyle.Render(n.Date), cli.BoldStyle.Render(n.Title))
				fmt.Println("    " + n.Body)
			}
		},
	}
}

func holidaysCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "holidays",
		Short: "Show the holiday calendar",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(cli.FormatTitle(cli.CalendarIcon + " Holiday List"))
			for _, h := range holidays {
				fmt.Printf("%s  %s\n", cli.SubtleStyle.Render(h.Date), h.Name)
			}
		},
	}
}

func tasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "Show assigned tasks",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(cli.FormatTitle("Assigned Tasks"))
			for _, t := range tasks {
				fmt.Printf("%s  %s %s\n",
					cli.SubtleStyle.Render(t.Deadline),
					cli.BoldStyle.Render(t.Title),
					cli.SubtleStyle.Render("["+t.Priority+"]"))
				fmt.Println("    " + t.Description)
			}
		},
	}
}
