package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldtrail/fieldtrail/internal/model"
)

func TestBuildLeaveRequest(t *testing.T) {
	request, err := buildLeaveRequest("Sick Leave", "2025-02-03", "2025-02-05", "Fever")

	require.NoError(t, err)
	assert.Equal(t, model.LeaveSick, request.Type)
	assert.Equal(t, 3, request.Days())
}

func TestBuildLeaveRequestSingleDay(t *testing.T) {
	request, err := buildLeaveRequest("Casual Leave", "2025-03-10", "", "Family function")

	require.NoError(t, err)
	assert.Equal(t, request.From, request.To)
	assert.Equal(t, 1, request.Days())
}

func TestBuildLeaveRequestValidation(t *testing.T) {
	tests := []struct {
		name      string
		leaveType string
		from      string
		to        string
		reason    string
	}{
		{name: "empty reason", leaveType: "Sick Leave", from: "2025-02-03", reason: "  "},
		{name: "unknown type", leaveType: "Long Weekend", from: "2025-02-03", reason: "because"},
		{name: "bad from date", leaveType: "Sick Leave", from: "03/02/2025", reason: "Fever"},
		{name: "bad to date", leaveType: "Sick Leave", from: "2025-02-03", to: "soon", reason: "Fever"},
		{name: "inverted range", leaveType: "Sick Leave", from: "2025-02-05", to: "2025-02-03", reason: "Fever"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := buildLeaveRequest(tt.leaveType, tt.from, tt.to, tt.reason)
			assert.Error(t, err)
		})
	}
}
