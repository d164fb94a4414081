package dashboard

import (
	"testing"

	"classroom-dashboard/backend/models"

	"github.com/stretchr/testify/assert"
)

func TestPercentage(t *testing.T) {
	tests := []struct {
		name        string
		numerator   int
		denominator int
		want        int
	}{
		{name: "zero denominator", numerator: 5, denominator: 0, want: 0},
		{name: "zero over zero", numerator: 0, denominator: 0, want: 0},
		{name: "half", numerator: 5, denominator: 10, want: 50},
		{name: "one third rounds down", numerator: 1, denominator: 3, want: 33},
		{name: "two thirds rounds up", numerator: 2, denominator: 3, want: 67},
		{name: "exact half point rounds up", numerator: 1, denominator: 8, want: 13},
		{name: "all", numerator: 7, denominator: 7, want: 100},
		{name: "none", numerator: 0, denominator: 7, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percentage(tt.numerator, tt.denominator))
		})
	}
}

func TestPercentageStaysWithinBounds(t *testing.T) {
	for d := 1; d <= 40; d++ {
		for n := 0; n <= d; n++ {
			got := Percentage(n, d)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		}
	}
}

func TestTrend(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{name: "no previous week", current: 80, previous: 0, want: 0},
		{name: "no previous week with zero current", current: 0, previous: 0, want: 0},
		{name: "whole points", current: 55, previous: 50, want: 5},
		{name: "rounds to one decimal", current: 52.34, previous: 50, want: 2.3},
		{name: "tiny drop rounds to zero", current: 49.96, previous: 50, want: 0},
		{name: "drop", current: 40, previous: 50, want: -10},
		{name: "percentage point scale", current: 100, previous: 50, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Trend(tt.current, tt.previous))
		})
	}
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 3, Round(2.5))
	assert.Equal(t, -2, Round(-2.5))
	assert.Equal(t, 2, Round(2.49))
	assert.Equal(t, 0, Round(0))
}

func TestAttendanceRatio(t *testing.T) {
	two := []models.Participant{byID("a"), byID("b")}
	one := []models.Participant{byID("a")}

	assert.Equal(t, 0.0, AttendanceRatio(nil, 10), "no meetings")
	assert.Equal(t, 0.0, AttendanceRatio([]models.Meeting{{Participants: two}}, 0), "empty roster")
	assert.Equal(t, 100.0, AttendanceRatio([]models.Meeting{{Participants: two}}, 2))
	assert.Equal(t, 75.0, AttendanceRatio([]models.Meeting{{Participants: two}, {Participants: one}}, 2))
	assert.Equal(t, 0.0, AttendanceRatio([]models.Meeting{{}, {}}, 4), "meetings without participants")
}

func TestAttendanceRatioCountsSeatsNotStudents(t *testing.T) {
	// The same student in every meeting counts once per meeting.
	meetings := []models.Meeting{
		{Participants: []models.Participant{byID("a")}},
		{Participants: []models.Participant{byID("a")}},
	}

	assert.Equal(t, 50.0, AttendanceRatio(meetings, 2))
}
