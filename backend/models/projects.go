package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

type Project struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid();column:id" json:"id"`
	ClassroomID  uuid.UUID      `gorm:"type:uuid;not null;column:classroom_id" json:"classroom_id"`
	Title        *string        `gorm:"type:text;column:title" json:"title,omitempty"`
	Module       *string        `gorm:"type:text;column:module" json:"module,omitempty"`
	ScheduleDate datatypes.JSON `gorm:"type:jsonb;column:schedule_date" json:"schedule_date,omitempty"`
	CreatedAt    time.Time      `gorm:"type:timestamptz;column:created_at" json:"created_at"`
}

func (Project) TableName() string { return "classroom_projects" }

// RawSchedule is the stored shape of schedule_date. Non-string dates are
// treated as missing.
type RawSchedule struct {
	StartDate interface{} `json:"start_date,omitempty"`
	EndDate   interface{} `json:"end_date,omitempty"`
}

// ProjectDelivery is one submission; members holds user ids or emails.
type ProjectDelivery struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid();column:id" json:"id"`
	ProjectID uuid.UUID      `gorm:"type:uuid;not null;column:project_id" json:"project_id"`
	Members   pq.StringArray `gorm:"type:text[];column:members" json:"members"`
	CreatedAt time.Time      `gorm:"type:timestamptz;column:created_at" json:"created_at"`
}

func (ProjectDelivery) TableName() string { return "classroom_project_deliveries" }
