package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// RecordID is an opaque attendance record identifier. The backend emits both
// integer and string ids, so it decodes from either.
type RecordID string

// UnmarshalJSON accepts a JSON string or number.
func (id *RecordID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = RecordID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("record id must be a string or number: %w", err)
	}
	*id = RecordID(n.String())
	return nil
}

// AttendanceRecord is a single check-in as returned by the backend.
// Immutable once fetched.
type AttendanceRecord struct {
	ID           RecordID `json:"id"`
	RawTimestamp string   `json:"timestamp"`
	Purpose      string   `json:"purpose"`
	SubPurpose   string   `json:"subPurpose"`
	Feedback     string   `json:"feedback"`
	LocationName string   `json:"locationName"`
	Image        string   `json:"image"`
	Lat          float64  `json:"lat"`
	Lng          float64  `json:"lng"`
}

// EnrichedRecord is an AttendanceRecord with its timestamp parsed and a
// calendar date key derived from it.
type EnrichedRecord struct {
	AttendanceRecord

	// Timestamp is the parsed point in time. Falls back to the time of
	// enrichment when RawTimestamp does not parse.
	Timestamp time.Time
	// DateKey is the zero-padded YYYY-MM-DD calendar date of Timestamp.
	DateKey string
	// DisplayTime is the 12-hour HH:MM:SS AM/PM rendering of Timestamp.
	DisplayTime string
}

// DistanceEntry is one row of a per-day distance report, joined to an
// attendance record by AttendanceID.
type DistanceEntry struct {
	AttendanceID RecordID `json:"attendanceId"`
	// Distance is a non-negative decimal string, or the sentinel "N/A".
	Distance string `json:"distance"`
	// IsFirst marks the chronologically first record of the day.
	IsFirst bool `json:"isFirst"`
}

// DistanceReport is the distance-fetch collaborator's response for one
// calendar date.
type DistanceReport struct {
	Date          string          `json:"date"`
	Entries       []DistanceEntry `json:"pointToPointDistances"`
	TotalDistance float64         `json:"totalDistance"`
}

// CheckIn is a geotagged photo attendance submission.
type CheckIn struct {
	Image        string  `json:"image"`
	Location     string  `json:"location"`
	LocationName string  `json:"locationName"`
	Purpose      string  `json:"purpose"`
	SubPurpose   string  `json:"subPurpose"`
	Feedback     string  `json:"feedback"`
	Timestamp    string  `json:"timestamp"`
	Date         string  `json:"date"`
	UserID       int     `json:"userId"`
	Lat          float64 `json:"-"`
	Lng          float64 `json:"-"`
}

// FieldNA is the backend's sentinel for an absent free-text field.
const FieldNA = "N/A"

// HasSubPurpose reports whether the record carries a meaningful sub-purpose.
func (r AttendanceRecord) HasSubPurpose() bool {
	return r.SubPurpose != "" && r.SubPurpose != FieldNA
}

// HasFeedback reports whether the record carries meaningful feedback.
func (r AttendanceRecord) HasFeedback() bool {
	return r.Feedback != "" && r.Feedback != FieldNA
}
