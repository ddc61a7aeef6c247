package dayfeed

import (
	"errors"
	"testing"
	"time"

	"github.com/fieldtrail/fieldtrail/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleEmptyDistanceReport(t *testing.T) {
	// One record, empty report: record renders, distance unavailable,
	// total absent rather than zero.
	e := NewEnricher()
	enriched := e.Enrich([]model.AttendanceRecord{record("1", "2025-01-20T09:00:00")})
	a := NewAssembler(0)

	vm := a.Assemble(enriched, "2025-01-20", &model.DistanceReport{}, nil)

	require.Len(t, vm.OrderedRecords, 1)
	assert.Equal(t, StateReady, vm.State)
	assert.Equal(t, DistanceUnavailable, vm.Annotation("1").Kind)
	assert.False(t, vm.TotalKnown, "empty report must not report a zero total")
}

func TestAssembleOrdersAndClassifies(t *testing.T) {
	e := NewEnricher()
	enriched := e.Enrich([]model.AttendanceRecord{
		record("morning", "2025-01-20T09:00:00"),
		record("evening", "2025-01-20T17:00:00"),
	})
	report := &model.DistanceReport{
		TotalDistance: 2.35,
		Entries: []model.DistanceEntry{
			{AttendanceID: "morning", Distance: "0.00", IsFirst: true},
			{AttendanceID: "evening", Distance: "2.35"},
		},
	}
	a := NewAssembler(0)

	vm := a.Assemble(enriched, "2025-01-20", report, nil)

	require.Len(t, vm.OrderedRecords, 2)
	assert.Equal(t, model.RecordID("evening"), vm.OrderedRecords[0].ID, "newest first")
	assert.Equal(t, model.RecordID("morning"), vm.OrderedRecords[1].ID)

	evening := vm.Annotation("evening")
	assert.Equal(t, DistanceKnown, evening.Kind)
	assert.InDelta(t, 2.35, evening.Distance, 1e-9)

	assert.Equal(t, FirstOfDay, vm.Annotation("morning").Kind)

	assert.True(t, vm.TotalKnown)
	assert.InDelta(t, 2.35, vm.TotalDistance, 1e-9)
	assert.False(t, vm.SingleLocation())
}

func TestAssembleNoMatchingRecords(t *testing.T) {
	e := NewEnricher()
	enriched := e.Enrich([]model.AttendanceRecord{
		record("1", "2025-01-18T09:00:00"),
		record("2", "2025-01-19T09:00:00"),
		record("3", "2025-01-21T09:00:00"),
	})
	a := NewAssembler(0)

	vm := a.Assemble(enriched, "2025-01-20", &model.DistanceReport{}, nil)

	assert.True(t, vm.Empty())
	assert.Empty(t, vm.OrderedRecords)
	assert.Equal(t, StateReady, vm.State)
}

func TestAssembleSingleLocationDay(t *testing.T) {
	// A single-record day with a 0.00 total still reports the total; the
	// "(Single location)" condition is the record count, not the value.
	e := NewEnricher()
	enriched := e.Enrich([]model.AttendanceRecord{record("only", "2025-01-20T09:00:00")})
	report := &model.DistanceReport{
		TotalDistance: 0.00,
		Entries: []model.DistanceEntry{
			{AttendanceID: "only", Distance: "0.00", IsFirst: true},
		},
	}
	a := NewAssembler(0)

	vm := a.Assemble(enriched, "2025-01-20", report, nil)

	assert.True(t, vm.TotalKnown)
	assert.Zero(t, vm.TotalDistance)
	assert.True(t, vm.SingleLocation())
}

func TestAssembleDistanceFetchFailed(t *testing.T) {
	e := NewEnricher()
	enriched := e.Enrich([]model.AttendanceRecord{
		record("a", "2025-01-20T09:00:00"),
		record("b", "2025-01-20T11:00:00"),
	})
	a := NewAssembler(0)

	vm := a.Assemble(enriched, "2025-01-20", nil, errors.New("distance fetch failed"))

	assert.Equal(t, StatePartiallyDegraded, vm.State)
	assert.True(t, vm.DistanceDegraded())
	assert.Len(t, vm.OrderedRecords, 2, "records still render when distance is degraded")
	assert.False(t, vm.TotalKnown)
	for _, r := range vm.OrderedRecords {
		assert.Equal(t, DistanceUnavailable, vm.Annotation(r.ID).Kind)
	}
}

func TestAssembleLoading(t *testing.T) {
	e := NewEnricher()
	enriched := e.Enrich([]model.AttendanceRecord{record("a", "2025-01-20T09:00:00")})
	a := NewAssembler(0)

	vm := a.Assemble(enriched, "2025-01-20", nil, nil)

	assert.Equal(t, StateLoading, vm.State)
	assert.False(t, vm.TotalKnown)
	assert.Equal(t, DistanceUnavailable, vm.Annotation("a").Kind)
}

func TestAssembleDeterministic(t *testing.T) {
	e := NewEnricherWithClock(func() time.Time {
		return time.Date(2025, 1, 20, 12, 0, 0, 0, time.Local)
	})
	enriched := e.Enrich([]model.AttendanceRecord{
		record("1", "2025-01-20T09:00:00"),
		record("2", "not-a-date"),
		record("3", "2025-01-20T17:00:00"),
	})
	report := &model.DistanceReport{
		TotalDistance: 1.2,
		Entries: []model.DistanceEntry{
			{AttendanceID: "1", Distance: "0.00", IsFirst: true},
			{AttendanceID: "2", Distance: "0.70"},
			{AttendanceID: "3", Distance: "0.50"},
		},
	}
	a := NewAssembler(0)

	first := a.Assemble(enriched, "2025-01-20", report, nil)
	second := a.Assemble(enriched, "2025-01-20", report, nil)

	assert.Equal(t, first, second, "re-derivation on unchanged inputs must be value-identical")
}

func TestAssembleInvalidTimestampAppearsOnToday(t *testing.T) {
	now := time.Date(2025, 6, 1, 14, 0, 0, 0, time.Local)
	e := NewEnricherWithClock(func() time.Time { return now })
	enriched := e.Enrich([]model.AttendanceRecord{record("odd", "not-a-date")})
	a := NewAssembler(0)

	vm := a.Assemble(enriched, "2025-06-01", &model.DistanceReport{}, nil)

	require.Len(t, vm.OrderedRecords, 1)
	assert.Equal(t, model.RecordID("odd"), vm.OrderedRecords[0].ID)
}

func TestAssembleTotalNotRecomputedFromEntries(t *testing.T) {
	// The backend's notion of "total" may differ from a naive sum; the
	// assembler must pass it through untouched.
	e := NewEnricher()
	enriched := e.Enrich([]model.AttendanceRecord{
		record("1", "2025-01-20T09:00:00"),
		record("2", "2025-01-20T10:00:00"),
	})
	report := &model.DistanceReport{
		TotalDistance: 9.99,
		Entries: []model.DistanceEntry{
			{AttendanceID: "1", Distance: "0.00", IsFirst: true},
			{AttendanceID: "2", Distance: "1.00"},
		},
	}

	vm := NewAssembler(0).Assemble(enriched, "2025-01-20", report, nil)

	assert.InDelta(t, 9.99, vm.TotalDistance, 1e-9)
}

func TestStateString(t *testing.T) {
	tests := []struct {
		want string
		in   State
	}{
		{in: StateLoading, want: "Loading"},
		{in: StateReady, want: "Ready"},
		{in: StatePartiallyDegraded, want: "PartiallyDegraded"},
		{in: State(9), want: "Unknown(9)"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.in.String())
	}
}
