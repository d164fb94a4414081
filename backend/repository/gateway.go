package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"classroom-dashboard/backend/dashboard"
	"classroom-dashboard/backend/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// GormGateway reads the dashboard inputs from the upstream Postgres tables.
type GormGateway struct {
	db  *gorm.DB
	loc *time.Location
	log zerolog.Logger
}

var _ dashboard.Gateway = (*GormGateway)(nil)

// NewGormGateway builds a gateway. loc is used for schedule dates stored
// without an offset; nil means UTC.
func NewGormGateway(db *gorm.DB, loc *time.Location, logger zerolog.Logger) *GormGateway {
	if loc == nil {
		loc = time.UTC
	}
	return &GormGateway{db: db, loc: loc, log: logger.With().Str("component", "repository").Logger()}
}

// GetRosterByClassroom returns members that have a profile. Members without
// one are left out of both the list and the count.
func (g *GormGateway) GetRosterByClassroom(ctx context.Context, classroomID string) (models.Roster, error) {
	var rows []models.UserClassroom
	err := g.db.WithContext(ctx).
		Preload("Profile").
		Where("classroom_id = ?", classroomID).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return models.Roster{}, wrapError("get roster", err)
	}

	return toRoster(rows), nil
}

func toRoster(rows []models.UserClassroom) models.Roster {
	students := make([]models.Student, 0, len(rows))
	for _, row := range rows {
		if row.Profile == nil {
			continue
		}
		students = append(students, models.Student{
			ID:       row.UserID.String(),
			FullName: row.Profile.FullName,
			Email:    row.Profile.Email,
		})
	}
	return models.Roster{Students: students, Count: len(students)}
}

func (g *GormGateway) visibleMeetings(ctx context.Context, classroomID string) *gorm.DB {
	return g.db.WithContext(ctx).
		Model(&models.MeetingPastInstance{}).
		Select("class_type", "start_time", "participants").
		Where("classroom_id = ? AND is_visible_on_schedule = ?", classroomID, true)
}

func (g *GormGateway) GetMeetingsInRange(ctx context.Context, classroomID string, start, end time.Time) ([]models.Meeting, error) {
	var rows []models.MeetingPastInstance
	err := g.visibleMeetings(ctx, classroomID).
		Where("start_time BETWEEN ? AND ?", start, end).
		Order("start_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, wrapError("get meetings in range", err)
	}
	return g.toMeetings(rows), nil
}

// GetRecentMeetings returns up to limit meetings, most recent first.
func (g *GormGateway) GetRecentMeetings(ctx context.Context, classroomID string, limit int) ([]models.Meeting, error) {
	var rows []models.MeetingPastInstance
	err := g.visibleMeetings(ctx, classroomID).
		Order("start_time DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, wrapError("get recent meetings", err)
	}
	return g.toMeetings(rows), nil
}

func (g *GormGateway) GetVisibleMeetings(ctx context.Context, classroomID string) ([]models.Meeting, error) {
	var rows []models.MeetingPastInstance
	err := g.visibleMeetings(ctx, classroomID).
		Order("start_time ASC").
		Find(&rows).Error
	if err != nil {
		return nil, wrapError("get visible meetings", err)
	}
	return g.toMeetings(rows), nil
}

func (g *GormGateway) scheduledProjects(ctx context.Context, classroomID string) *gorm.DB {
	return g.db.WithContext(ctx).
		Select("id", "title", "module", "schedule_date", "created_at").
		Where("classroom_id = ? AND schedule_date IS NOT NULL", classroomID).
		Order("created_at DESC").
		Order("id ASC")
}

// GetProjectsWithSchedule returns projects that carry a schedule, most
// recently created first.
func (g *GormGateway) GetProjectsWithSchedule(ctx context.Context, classroomID string) ([]models.ScheduledProject, error) {
	var rows []models.Project
	if err := g.scheduledProjects(ctx, classroomID).Find(&rows).Error; err != nil {
		return nil, wrapError("get scheduled projects", err)
	}
	return g.toScheduledProjects(rows), nil
}

// GetEndedProjects takes the limit most recently created scheduled projects
// and keeps those whose end date is before now.
func (g *GormGateway) GetEndedProjects(ctx context.Context, classroomID string, now time.Time, limit int) ([]models.ScheduledProject, error) {
	var rows []models.Project
	if err := g.scheduledProjects(ctx, classroomID).Limit(limit).Find(&rows).Error; err != nil {
		return nil, wrapError("get ended projects", err)
	}
	return endedBefore(g.toScheduledProjects(rows), now), nil
}

// endedBefore keeps, in order, the projects whose end date is strictly
// before now.
func endedBefore(projects []models.ScheduledProject, now time.Time) []models.ScheduledProject {
	ended := make([]models.ScheduledProject, 0, len(projects))
	for _, p := range projects {
		if end, ok := p.EndDate(); ok && end.Before(now) {
			ended = append(ended, p)
		}
	}
	return ended
}

func (g *GormGateway) GetDeliveryCountForProject(ctx context.Context, projectID string) (int, error) {
	var count int64
	err := g.db.WithContext(ctx).
		Model(&models.ProjectDelivery{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	if err != nil {
		return 0, wrapError("count deliveries", err)
	}
	return int(count), nil
}

func (g *GormGateway) GetDeliveriesForProjects(ctx context.Context, projectIDs []string) ([]models.Delivery, error) {
	if len(projectIDs) == 0 {
		return nil, nil
	}

	var rows []models.ProjectDelivery
	err := g.db.WithContext(ctx).
		Select("project_id", "members").
		Where("project_id IN ?", projectIDs).
		Find(&rows).Error
	if err != nil {
		return nil, wrapError("get deliveries", err)
	}

	deliveries := make([]models.Delivery, len(rows))
	for i, row := range rows {
		deliveries[i] = models.Delivery{
			ProjectID: row.ProjectID.String(),
			Members:   []string(row.Members),
		}
	}
	return deliveries, nil
}

// toMeetings keeps a meeting whose participants cannot be read, with no
// participants.
func (g *GormGateway) toMeetings(rows []models.MeetingPastInstance) []models.Meeting {
	meetings := make([]models.Meeting, len(rows))
	for i, row := range rows {
		participants, err := decodeParticipants(row.Participants)
		if err != nil {
			g.log.Warn().Err(err).Str("meeting_id", row.ID.String()).Msg("ignoring unreadable participants")
		}
		meetings[i] = models.Meeting{
			ClassType:    stringValue(row.ClassType),
			StartTime:    row.StartTime,
			Participants: participants,
		}
	}
	return meetings
}

// toScheduledProjects drops rows whose schedule_date is a JSON null or not
// an object.
func (g *GormGateway) toScheduledProjects(rows []models.Project) []models.ScheduledProject {
	projects := make([]models.ScheduledProject, 0, len(rows))
	for _, row := range rows {
		schedule, err := decodeSchedule(row.ScheduleDate, g.loc)
		if err != nil {
			g.log.Warn().Err(err).Str("project_id", row.ID.String()).Msg("ignoring unreadable schedule")
			continue
		}
		if schedule == nil {
			continue
		}
		projects = append(projects, models.ScheduledProject{
			ID:       row.ID.String(),
			Title:    stringValue(row.Title),
			Module:   stringValue(row.Module),
			Schedule: schedule,
		})
	}
	return projects
}

// wrapError prefixes the operation and, for Postgres errors, the SQLSTATE.
func wrapError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Errorf("repository: %s: sqlstate %s: %w", op, pgErr.Code, err)
	}
	return fmt.Errorf("repository: %s: %w", op, err)
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
