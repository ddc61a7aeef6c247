package dayfeed

import (
	"testing"

	"github.com/fieldtrail/fieldtrail/internal/model"
	"github.com/stretchr/testify/assert"
)

func enrichedDay(t *testing.T, raws map[string]string) []model.EnrichedRecord {
	t.Helper()
	e := NewEnricher()
	var records []model.AttendanceRecord
	for id, raw := range raws {
		records = append(records, record(id, raw))
	}
	return e.Enrich(records)
}

func TestAnnotateClassifications(t *testing.T) {
	records := enrichedDay(t, map[string]string{
		"first":   "2025-01-20T09:00:00",
		"moved":   "2025-01-20T11:00:00",
		"parked":  "2025-01-20T13:00:00",
		"crawled": "2025-01-20T15:00:00",
		"na":      "2025-01-20T16:00:00",
		"missing": "2025-01-20T17:00:00",
	})
	report := &model.DistanceReport{
		TotalDistance: 2.41,
		Entries: []model.DistanceEntry{
			{AttendanceID: "first", Distance: "0.00", IsFirst: true},
			{AttendanceID: "moved", Distance: "2.35"},
			{AttendanceID: "parked", Distance: "0.00"},
			{AttendanceID: "crawled", Distance: "0.03"},
			{AttendanceID: "na", Distance: "N/A"},
		},
	}

	annotations := Annotate(records, report, DefaultMinMovementKM)

	assert.Equal(t, FirstOfDay, annotations["first"].Kind)

	moved := annotations["moved"]
	assert.Equal(t, DistanceKnown, moved.Kind)
	assert.InDelta(t, 2.35, moved.Distance, 1e-9)
	assert.False(t, moved.MinimalMovement)

	parked := annotations["parked"]
	assert.Equal(t, DistanceKnown, parked.Kind)
	assert.True(t, parked.SameLocation())
	assert.False(t, parked.MinimalMovement, "exact zero is same-location, not minimal movement")

	crawled := annotations["crawled"]
	assert.Equal(t, DistanceKnown, crawled.Kind)
	assert.True(t, crawled.MinimalMovement)
	assert.False(t, crawled.SameLocation())

	assert.Equal(t, DistanceUnavailable, annotations["na"].Kind)
	assert.Equal(t, DistanceUnavailable, annotations["missing"].Kind)
}

func TestAnnotateFirstOfDayIgnoresDistanceValue(t *testing.T) {
	records := enrichedDay(t, map[string]string{"a": "2025-01-20T09:00:00"})
	report := &model.DistanceReport{Entries: []model.DistanceEntry{
		{AttendanceID: "a", Distance: "7.50", IsFirst: true},
	}}

	annotations := Annotate(records, report, DefaultMinMovementKM)

	a := annotations["a"]
	assert.Equal(t, FirstOfDay, a.Kind)
	assert.Zero(t, a.Distance, "first of day always renders as zero distance")
}

func TestAnnotateToleratesMissingReport(t *testing.T) {
	records := enrichedDay(t, map[string]string{
		"a": "2025-01-20T09:00:00",
		"b": "2025-01-20T10:00:00",
	})

	tests := []struct {
		report *model.DistanceReport
		name   string
	}{
		{name: "nil report", report: nil},
		{name: "empty report", report: &model.DistanceReport{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			annotations := Annotate(records, tt.report, DefaultMinMovementKM)
			assert.Len(t, annotations, 2)
			for id, a := range annotations {
				assert.Equal(t, DistanceUnavailable, a.Kind, "record %s", id)
			}
		})
	}
}

func TestAnnotateMalformedDistance(t *testing.T) {
	records := enrichedDay(t, map[string]string{"a": "2025-01-20T09:00:00"})

	tests := []struct {
		name     string
		distance string
	}{
		{name: "sentinel", distance: "N/A"},
		{name: "garbage", distance: "one point two"},
		{name: "negative", distance: "-1.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := &model.DistanceReport{Entries: []model.DistanceEntry{
				{AttendanceID: "a", Distance: tt.distance},
			}}
			annotations := Annotate(records, report, DefaultMinMovementKM)
			assert.Equal(t, DistanceUnavailable, annotations["a"].Kind)
		})
	}
}

func TestAnnotateConfigurableThreshold(t *testing.T) {
	records := enrichedDay(t, map[string]string{"a": "2025-01-20T09:00:00"})
	report := &model.DistanceReport{Entries: []model.DistanceEntry{
		{AttendanceID: "a", Distance: "0.08"},
	}}

	strict := Annotate(records, report, 0.10)
	assert.True(t, strict["a"].MinimalMovement)

	loose := Annotate(records, report, 0.05)
	assert.False(t, loose["a"].MinimalMovement)
}

func TestClassificationString(t *testing.T) {
	tests := []struct {
		want string
		in   Classification
	}{
		{in: DistanceUnavailable, want: "DistanceUnavailable"},
		{in: FirstOfDay, want: "FirstOfDay"},
		{in: DistanceKnown, want: "DistanceKnown"},
		{in: Classification(42), want: "Unknown(42)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.String())
	}
}
