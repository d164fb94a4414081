package dashboard

import (
	"context"
	"time"

	"classroom-dashboard/backend/models"
)

// Gateway is the read side of the backing store used by the dashboard.
// Implementations return normalized records; the dashboard never looks at
// raw column data.
type Gateway interface {
	GetRosterByClassroom(ctx context.Context, classroomID string) (models.Roster, error)

	// GetMeetingsInRange returns visible meetings with start_time in [start, end].
	GetMeetingsInRange(ctx context.Context, classroomID string, start, end time.Time) ([]models.Meeting, error)
	// GetRecentMeetings returns at most limit visible meetings, most recent first.
	GetRecentMeetings(ctx context.Context, classroomID string, limit int) ([]models.Meeting, error)
	// GetVisibleMeetings returns every visible meeting of the classroom.
	GetVisibleMeetings(ctx context.Context, classroomID string) ([]models.Meeting, error)

	GetProjectsWithSchedule(ctx context.Context, classroomID string) ([]models.ScheduledProject, error)
	// GetEndedProjects takes the limit most recently created scheduled
	// projects and keeps those whose end date is before now.
	GetEndedProjects(ctx context.Context, classroomID string, now time.Time, limit int) ([]models.ScheduledProject, error)

	GetDeliveryCountForProject(ctx context.Context, projectID string) (int, error)
	GetDeliveriesForProjects(ctx context.Context, projectIDs []string) ([]models.Delivery, error)
}
