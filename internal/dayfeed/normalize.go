package dayfeed

import (
	"fmt"
	"log/slog"
	"time"
)

// timestampLayouts are tried in order when parsing a raw record timestamp.
// The backend normally emits ISO-8601, with or without an offset; older
// records use a space separator. No timezone conversion is performed — the
// value is assumed to already be in the display timezone.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// normalizeTimestamp parses raw into a point in time. When raw does not parse
// under any known layout it logs an InvalidTimestamp warning and falls back
// to now, so the record still renders on today's feed.
func normalizeTimestamp(raw string, now func() time.Time) time.Time {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t
		}
	}

	slog.Warn("invalid timestamp on attendance record, substituting current time",
		"raw", raw)
	return now()
}

// DateKey renders t as a zero-padded YYYY-MM-DD calendar date in its own
// location. Two timestamps on the same calendar date always share a key.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// DisplayTime renders t as zero-padded HH:MM:SS with a 12-hour AM/PM suffix.
// Hour 0 displays as 12.
func DisplayTime(t time.Time) string {
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	suffix := "AM"
	if t.Hour() >= 12 {
		suffix = "PM"
	}
	return fmt.Sprintf("%02d:%02d:%02d %s", hour, t.Minute(), t.Second(), suffix)
}
