package models

import (
	"time"

	"github.com/google/uuid"
)

// UserClassroom is a roster membership row.
type UserClassroom struct {
	UserID      uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	ClassroomID uuid.UUID `gorm:"type:uuid;primaryKey;column:classroom_id" json:"classroom_id"`
	Role        string    `gorm:"type:text;column:role" json:"role"`
	CreatedAt   time.Time `gorm:"type:timestamptz;column:created_at" json:"created_at"`

	Profile *Profile `gorm:"foreignKey:ID;references:UserID" json:"profile,omitempty"`
}

func (UserClassroom) TableName() string { return "user_classrooms" }

type Profile struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;column:id" json:"id"`
	FullName string    `gorm:"type:text;column:full_name" json:"full_name"`
	Email    string    `gorm:"type:text;column:email" json:"email"`
}

func (Profile) TableName() string { return "profiles" }
