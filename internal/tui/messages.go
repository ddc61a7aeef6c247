package tui

import "github.com/fieldtrail/fieldtrail/internal/model"

// recordsLoadedMsg carries the full attendance history after a fetch.
type recordsLoadedMsg struct {
	records []model.AttendanceRecord
}

// recordsFailedMsg signals that the attendance fetch failed. The feed cannot
// render without records, so this is terminal for the current refresh.
type recordsFailedMsg struct {
	err error
}

// distanceLoadedMsg carries one day's distance report. date identifies which
// day it belongs to; stale replies for other days are dropped.
type distanceLoadedMsg struct {
	report *model.DistanceReport
	date   string
}

// distanceFailedMsg signals a failed distance fetch for one day. The day
// still renders, degraded.
type distanceFailedMsg struct {
	err  error
	date string
}
