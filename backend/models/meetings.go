package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Class types recorded on meeting instances.
const (
	ClassTypeProgramming = "programming"
	ClassTypeEnglish     = "english"
	ClassTypeSoftSkills  = "soft-skills"
)

// MeetingPastInstance is one synchronized occurrence of a classroom meeting.
type MeetingPastInstance struct {
	ID                  uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid();column:id" json:"id"`
	ClassroomID         uuid.UUID      `gorm:"type:uuid;not null;column:classroom_id" json:"classroom_id"`
	MeetingID           int64          `gorm:"column:meeting_id" json:"meeting_id"`
	UUID                string         `gorm:"type:text;column:uuid" json:"uuid"`
	StartTime           time.Time      `gorm:"type:timestamptz;column:start_time" json:"start_time"`
	ClassType           *string        `gorm:"type:text;column:class_type" json:"class_type,omitempty"`
	IsVisibleOnSchedule bool           `gorm:"not null;default:true;column:is_visible_on_schedule" json:"is_visible_on_schedule"`
	Participants        datatypes.JSON `gorm:"type:jsonb;column:participants" json:"participants"`
}

func (MeetingPastInstance) TableName() string { return "classroom_zoom_meeting_past_instancies" }

// RawParticipant is the stored shape of a participants entry. Older syncs
// wrote the address as user_email. Fields are untyped because the column
// is not schema checked; only string values identify anyone.
type RawParticipant struct {
	UserID    interface{} `json:"user_id,omitempty"`
	Email     interface{} `json:"email,omitempty"`
	UserEmail interface{} `json:"user_email,omitempty"`
	Name      interface{} `json:"name,omitempty"`
}
