package dayfeed

import (
	"fmt"
	"strconv"

	"github.com/fieldtrail/fieldtrail/internal/model"
)

// Classification tags a record's relationship to the day's distance report.
// The rendering layer must handle every value.
type Classification int

const (
	// DistanceUnavailable means no usable distance exists for the record:
	// the report has no entry for it, the entry carries the "N/A" sentinel,
	// or the report itself is missing.
	DistanceUnavailable Classification = iota
	// FirstOfDay marks the chronologically first record of the day. It is
	// always displayed as zero distance regardless of the entry's value.
	FirstOfDay
	// DistanceKnown means the record has a parsed inter-visit distance.
	DistanceKnown
)

// String returns a string representation of the classification.
func (c Classification) String() string {
	switch c {
	case DistanceUnavailable:
		return "DistanceUnavailable"
	case FirstOfDay:
		return "FirstOfDay"
	case DistanceKnown:
		return "DistanceKnown"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// Annotation is the distance classification attached to one record.
type Annotation struct {
	Kind Classification
	// Distance is the inter-visit distance in km. Meaningful only when
	// Kind is DistanceKnown.
	Distance float64
	// MinimalMovement flags a non-zero distance below the movement
	// threshold. Display emphasis only; aggregation ignores it.
	MinimalMovement bool
}

// SameLocation reports whether the record sits exactly where its predecessor
// was.
func (a Annotation) SameLocation() bool {
	return a.Kind == DistanceKnown && a.Distance == 0
}

// Annotate joins each record with the day's distance report by record id.
// A nil or empty report tolerantly classifies every record as
// DistanceUnavailable. threshold is the minimal-movement cutoff in km.
func Annotate(records []model.EnrichedRecord, report *model.DistanceReport, threshold float64) map[model.RecordID]Annotation {
	annotations := make(map[model.RecordID]Annotation, len(records))

	var entries map[model.RecordID]model.DistanceEntry
	if report != nil {
		entries = make(map[model.RecordID]model.DistanceEntry, len(report.Entries))
		for _, e := range report.Entries {
			entries[e.AttendanceID] = e
		}
	}

	for _, r := range records {
		entry, ok := entries[r.ID]
		switch {
		case !ok:
			annotations[r.ID] = Annotation{Kind: DistanceUnavailable}
		case entry.IsFirst:
			annotations[r.ID] = Annotation{Kind: FirstOfDay}
		default:
			dist, err := strconv.ParseFloat(entry.Distance, 64)
			if err != nil || dist < 0 {
				annotations[r.ID] = Annotation{Kind: DistanceUnavailable}
				continue
			}
			annotations[r.ID] = Annotation{
				Kind:            DistanceKnown,
				Distance:        dist,
				MinimalMovement: dist > 0 && dist < threshold,
			}
		}
	}

	return annotations
}
