// Package profile renders the employee profile as an ordered list of
// labeled fields. The field list is closed; adding a field means adding
// an entry here, not threading new keys through callers.
package profile

import (
	"time"

	"github.com/fieldtrail/fieldtrail/internal/model"
)

// format selects how a raw profile value is displayed.
type format int

const (
	formatText format = iota
	formatBool
	formatDate
)

// fieldDef describes one profile row: which value to pull from the user
// and how to present it.
type fieldDef struct {
	value  func(model.User) string
	Label  string
	format format
}

// Field is a rendered profile row.
type Field struct {
	Label string
	Value string
}

var fieldDefs = []fieldDef{
	{Label: "Full Name", format: formatText, value: func(u model.User) string { return u.FullName }},
	{Label: "Email", format: formatText, value: func(u model.User) string { return u.Email }},
	{Label: "Phone Number", format: formatText, value: func(u model.User) string { return u.PhoneNumber }},
	{Label: "Role", format: formatText, value: func(u model.User) string { return u.Role }},
	{Label: "Designation", format: formatText, value: func(u model.User) string { return u.Designation }},
	{Label: "Organization", format: formatText, value: func(u model.User) string { return u.Organization }},
	{Label: "Company", format: formatText, value: func(u model.User) string { return u.CompanyName }},
	{Label: "Base Location", format: formatText, value: func(u model.User) string { return u.BaseLocation }},
	{Label: "State", format: formatText, value: func(u model.User) string { return u.State }},
	{Label: "Joined", format: formatDate, value: func(u model.User) string { return u.CreatedAt }},
	{Label: "Verified", format: formatBool, value: func(u model.User) string {
		if u.IsVerified {
			return "true"
		}
		return "false"
	}},
}

// Render produces the profile rows for display, in fixed order. Values the
// backend left empty render as "N/A" rather than being dropped, so every
// profile shows the same rows.
func Render(user model.User) []Field {
	fields := make([]Field, 0, len(fieldDefs))
	for _, def := range fieldDefs {
		fields = append(fields, Field{
			Label: def.Label,
			Value: renderValue(def.value(user), def.format),
		})
	}
	return fields
}

func renderValue(raw string, f format) string {
	if f == formatBool {
		if raw == "true" {
			return "Yes"
		}
		return "No"
	}

	if raw == "" {
		return model.FieldNA
	}
	if f == formatDate {
		return renderDate(raw)
	}
	return raw
}

// renderDate shortens backend timestamps to a calendar date. Unparseable
// values pass through untouched.
func renderDate(raw string) string {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("02 Jan 2006")
		}
	}
	return raw
}
