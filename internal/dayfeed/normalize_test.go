package dayfeed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTimestamp(t *testing.T) {
	fallback := time.Date(2025, 6, 1, 10, 30, 0, 0, time.Local)
	clock := func() time.Time { return fallback }

	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{
			name: "iso 8601 without offset",
			raw:  "2025-01-20T09:00:00",
			want: time.Date(2025, 1, 20, 9, 0, 0, 0, time.Local),
		},
		{
			name: "space separated",
			raw:  "2025-01-20 17:45:12",
			want: time.Date(2025, 1, 20, 17, 45, 12, 0, time.Local),
		},
		{
			name: "date only",
			raw:  "2025-01-20",
			want: time.Date(2025, 1, 20, 0, 0, 0, 0, time.Local),
		},
		{
			name: "malformed falls back to now",
			raw:  "not-a-date",
			want: fallback,
		},
		{
			name: "empty falls back to now",
			raw:  "",
			want: fallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeTimestamp(tt.raw, clock)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestDateKey(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "zero padded month and day",
			in:   time.Date(2025, 3, 7, 23, 59, 59, 0, time.Local),
			want: "2025-03-07",
		},
		{
			name: "midnight belongs to its own day",
			in:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.Local),
			want: "2025-12-31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DateKey(tt.in))
		})
	}
}

func TestDateKeyDeterministic(t *testing.T) {
	ts := time.Date(2025, 1, 20, 9, 0, 0, 0, time.Local)
	assert.Equal(t, DateKey(ts), DateKey(ts.Add(5*time.Hour)))
}

func TestDisplayTime(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "morning",
			in:   time.Date(2025, 1, 20, 9, 5, 3, 0, time.Local),
			want: "09:05:03 AM",
		},
		{
			name: "afternoon",
			in:   time.Date(2025, 1, 20, 17, 0, 0, 0, time.Local),
			want: "05:00:00 PM",
		},
		{
			name: "hour zero displays as twelve",
			in:   time.Date(2025, 1, 20, 0, 15, 9, 0, time.Local),
			want: "12:15:09 AM",
		},
		{
			name: "noon is twelve pm",
			in:   time.Date(2025, 1, 20, 12, 0, 0, 0, time.Local),
			want: "12:00:00 PM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayTime(tt.in))
		})
	}
}
