package dayfeed

import (
	"sort"
	"time"

	"github.com/fieldtrail/fieldtrail/internal/model"
)

// Enricher derives enriched records from raw attendance records. The clock is
// injectable so the invalid-timestamp fallback is testable.
type Enricher struct {
	now func() time.Time
}

// NewEnricher returns an Enricher using the wall clock.
func NewEnricher() *Enricher {
	return &Enricher{now: time.Now}
}

// NewEnricherWithClock returns an Enricher using the supplied clock.
func NewEnricherWithClock(now func() time.Time) *Enricher {
	return &Enricher{now: now}
}

// Enrich maps each raw record to an enriched record, one-to-one and in input
// order. Records are never dropped or merged.
func (e *Enricher) Enrich(records []model.AttendanceRecord) []model.EnrichedRecord {
	enriched := make([]model.EnrichedRecord, 0, len(records))
	for _, r := range records {
		ts := normalizeTimestamp(r.RawTimestamp, e.now)
		enriched = append(enriched, model.EnrichedRecord{
			AttendanceRecord: r,
			Timestamp:        ts,
			DateKey:          DateKey(ts),
			DisplayTime:      DisplayTime(ts),
		})
	}
	return enriched
}

// FilterDay selects the subsequence of records whose DateKey matches target,
// preserving relative order. No matches yields an empty slice, not an error.
func FilterDay(records []model.EnrichedRecord, target string) []model.EnrichedRecord {
	filtered := make([]model.EnrichedRecord, 0, len(records))
	for _, r := range records {
		if r.DateKey == target {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// SortNewestFirst returns a copy of records ordered by timestamp descending.
// Equal timestamps keep their input order; the data model offers no secondary
// key.
func SortNewestFirst(records []model.EnrichedRecord) []model.EnrichedRecord {
	sorted := make([]model.EnrichedRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp)
	})
	return sorted
}
