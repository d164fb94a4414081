package repository

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"classroom-dashboard/backend/models"

	"github.com/bytedance/sonic"
	"gorm.io/datatypes"
)

func isNullJSON(raw datatypes.JSON) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// decodeParticipants reads a participants jsonb array. Every element is a
// seat; only string ids and emails can match a student. The email falls
// back to user_email for rows written by older syncs. A value that is not
// an array is an error.
func decodeParticipants(raw datatypes.JSON) ([]models.Participant, error) {
	if isNullJSON(raw) {
		return nil, nil
	}

	var entries []models.RawParticipant
	if err := sonic.Unmarshal(raw, &entries); err != nil {
		// Some elements are not objects: keep the seats, drop the identities.
		var seats []interface{}
		if err := sonic.Unmarshal(raw, &seats); err != nil {
			return nil, fmt.Errorf("decode participants: %w", err)
		}
		entries = make([]models.RawParticipant, len(seats))
		for i, seat := range seats {
			if obj, ok := seat.(map[string]interface{}); ok {
				entries[i] = models.RawParticipant{
					UserID:    obj["user_id"],
					Email:     obj["email"],
					UserEmail: obj["user_email"],
				}
			}
		}
	}

	participants := make([]models.Participant, 0, len(entries))
	for _, e := range entries {
		email := stringField(e.Email)
		if email == "" {
			email = stringField(e.UserEmail)
		}
		participants = append(participants, models.Participant{
			UserID: stringField(e.UserID),
			Email:  email,
		})
	}
	return participants, nil
}

// decodeSchedule reads a schedule_date jsonb object. A JSON null gives a nil
// window; unparseable or non-string dates leave that bound empty. A value
// that is not an object is an error.
func decodeSchedule(raw datatypes.JSON, loc *time.Location) (*models.DateWindow, error) {
	if isNullJSON(raw) {
		return nil, nil
	}

	var schedule models.RawSchedule
	if err := sonic.Unmarshal(raw, &schedule); err != nil {
		return nil, fmt.Errorf("decode schedule: %w", err)
	}

	window := &models.DateWindow{}
	if t, ok := parseDate(stringField(schedule.StartDate), loc); ok {
		window.Start = &t
	}
	if t, ok := parseDate(stringField(schedule.EndDate), loc); ok {
		window.End = &t
	}
	return window, nil
}

func stringField(v interface{}) string {
	s, _ := v.(string)
	return s
}

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
}

// parseDate accepts RFC 3339 timestamps, local date-times (read in loc) and
// bare dates (read as UTC midnight).
func parseDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02 15:04:05.999999999Z07:00", value); err == nil {
		return t, true
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}
