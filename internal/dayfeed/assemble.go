// Package dayfeed derives the per-day attendance view model: a time-ordered
// feed of a single day's check-ins annotated with inter-visit travel
// distance. Every transformation is a pure, synchronous function over
// in-memory data; the package never initiates, retries, or cancels the
// upstream fetches whose results it consumes.
package dayfeed

import (
	"fmt"

	"github.com/fieldtrail/fieldtrail/internal/model"
)

// DefaultMinMovementKM is the default minimal-movement cutoff. Distances
// below it are flagged for display emphasis but aggregate identically.
const DefaultMinMovementKM = 0.05

// State describes how much of the day view is backed by data.
type State int

const (
	// StateLoading means records are present but the distance fetch is
	// still in flight.
	StateLoading State = iota
	// StateReady means both records and the distance report are available.
	StateReady
	// StatePartiallyDegraded means the distance fetch failed; records
	// still render, distance fields are absent.
	StatePartiallyDegraded
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateReady:
		return "Ready"
	case StatePartiallyDegraded:
		return "PartiallyDegraded"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// DayViewModel is the ordered, annotated feed for one selected date. It is
// purely derived: recomputing it from unchanged inputs yields an equal value.
type DayViewModel struct {
	Annotations    map[model.RecordID]Annotation
	SelectedDate   string
	OrderedRecords []model.EnrichedRecord
	TotalDistance  float64
	TotalKnown     bool
	State          State
}

// Annotation returns the classification for a record id, defaulting to
// DistanceUnavailable for ids outside the day.
func (vm DayViewModel) Annotation(id model.RecordID) Annotation {
	if a, ok := vm.Annotations[id]; ok {
		return a
	}
	return Annotation{Kind: DistanceUnavailable}
}

// SingleLocation reports whether the day has exactly one record. The UI's
// "(Single location)" tag keys off the record count, not the distance value.
func (vm DayViewModel) SingleLocation() bool {
	return len(vm.OrderedRecords) == 1
}

// Empty reports whether the selected date has no records.
func (vm DayViewModel) Empty() bool {
	return len(vm.OrderedRecords) == 0
}

// DistanceDegraded reports whether the day-level distance fetch failed.
// Independent of per-record DistanceUnavailable tags.
func (vm DayViewModel) DistanceDegraded() bool {
	return vm.State == StatePartiallyDegraded
}

// Assembler composes filter, sort, and annotate into day view models.
type Assembler struct {
	minMovementKM float64
}

// NewAssembler returns an Assembler with the given minimal-movement cutoff
// in km. Non-positive values fall back to DefaultMinMovementKM.
func NewAssembler(minMovementKM float64) *Assembler {
	if minMovementKM <= 0 {
		minMovementKM = DefaultMinMovementKM
	}
	return &Assembler{minMovementKM: minMovementKM}
}

// Assemble builds the view model for selectedDate from the enriched record
// set and the day's distance report. A nil report with a nil err yields
// StateLoading; a non-nil err yields StatePartiallyDegraded. The day total
// is taken from the report, never recomputed by summing entries, and is
// absent when the report failed or carries no entries.
func (a *Assembler) Assemble(records []model.EnrichedRecord, selectedDate string, report *model.DistanceReport, reportErr error) DayViewModel {
	ordered := SortNewestFirst(FilterDay(records, selectedDate))

	vm := DayViewModel{
		SelectedDate:   selectedDate,
		OrderedRecords: ordered,
	}

	switch {
	case reportErr != nil:
		vm.State = StatePartiallyDegraded
		vm.Annotations = Annotate(ordered, nil, a.minMovementKM)
	case report == nil:
		vm.State = StateLoading
		vm.Annotations = Annotate(ordered, nil, a.minMovementKM)
	default:
		vm.State = StateReady
		vm.Annotations = Annotate(ordered, report, a.minMovementKM)
		if len(report.Entries) > 0 {
			vm.TotalDistance = report.TotalDistance
			vm.TotalKnown = true
		}
	}

	return vm
}
