package repository

import (
	"context"
	"testing"
	"time"

	"classroom-dashboard/backend/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunGateway builds statements without a database connection.
func dryRunGateway(t *testing.T) *GormGateway {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=postgres dbname=classroom_dashboard sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return NewGormGateway(db, time.UTC, zerolog.Nop())
}

func date(value string) *time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestScheduledProjectsQuery(t *testing.T) {
	g := dryRunGateway(t)

	var rows []models.Project
	stmt := g.scheduledProjects(context.Background(), "c1").Limit(3).Find(&rows).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, `FROM "classroom_projects"`)
	assert.Contains(t, sql, "classroom_id = $1 AND schedule_date IS NOT NULL")
	assert.Contains(t, sql, "ORDER BY created_at DESC,id ASC LIMIT 3")
	assert.Equal(t, []interface{}{"c1"}, stmt.Vars)
}

func TestRecentMeetingsQuery(t *testing.T) {
	g := dryRunGateway(t)

	var rows []models.MeetingPastInstance
	stmt := g.visibleMeetings(context.Background(), "c1").Order("start_time DESC").Limit(5).Find(&rows).Statement
	sql := stmt.SQL.String()

	assert.Contains(t, sql, `FROM "classroom_zoom_meeting_past_instancies"`)
	assert.Contains(t, sql, "classroom_id = $1 AND is_visible_on_schedule = $2")
	assert.Contains(t, sql, "ORDER BY start_time DESC LIMIT 5")
	assert.Equal(t, []interface{}{"c1", true}, stmt.Vars)
}

func TestGatewayDryRun(t *testing.T) {
	g := dryRunGateway(t)
	ctx := context.Background()

	ended, err := g.GetEndedProjects(ctx, "c1", time.Now(), 10)
	require.NoError(t, err)
	assert.Empty(t, ended)

	deliveries, err := g.GetDeliveriesForProjects(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, deliveries)
}

func TestEndedBefore(t *testing.T) {
	now := *date("2025-03-12T15:00:00Z")
	projects := []models.ScheduledProject{
		{ID: "open", Schedule: &models.DateWindow{Start: date("2025-03-01T00:00:00Z")}},
		{ID: "p3", Schedule: &models.DateWindow{End: date("2025-03-10T00:00:00Z")}},
		{ID: "ends-now", Schedule: &models.DateWindow{End: &now}},
		{ID: "future", Schedule: &models.DateWindow{End: date("2025-03-20T00:00:00Z")}},
		{ID: "p2", Schedule: &models.DateWindow{End: date("2025-02-28T00:00:00Z")}},
		{ID: "p1", Schedule: &models.DateWindow{End: date("2025-02-14T00:00:00Z")}},
	}

	got := endedBefore(projects, now)

	ids := make([]string, len(got))
	for i, p := range got {
		ids[i] = p.ID
	}
	assert.Equal(t, []string{"p3", "p2", "p1"}, ids)
	assert.NotNil(t, endedBefore(nil, now))
}

func TestToRosterCountsOnlyMembersWithProfile(t *testing.T) {
	ana, orphan := uuid.New(), uuid.New()

	got := toRoster([]models.UserClassroom{
		{UserID: ana, Profile: &models.Profile{ID: ana, FullName: "Ana Souza", Email: "ana@example.com"}},
		{UserID: orphan},
	})

	assert.Equal(t, 1, got.Count)
	assert.Equal(t, []models.Student{{ID: ana.String(), FullName: "Ana Souza", Email: "ana@example.com"}}, got.Students)
	assert.Equal(t, models.Roster{Students: []models.Student{}, Count: 0}, toRoster(nil))
}

func TestToScheduledProjects(t *testing.T) {
	g := NewGormGateway(nil, nil, zerolog.Nop())
	title := "REST API"
	valid, stringSchedule := uuid.New(), uuid.New()

	got := g.toScheduledProjects([]models.Project{
		{ID: uuid.New(), ScheduleDate: datatypes.JSON("null")},
		{ID: stringSchedule, ScheduleDate: datatypes.JSON(`"2025-03-09"`)},
		{ID: valid, Title: &title, ScheduleDate: datatypes.JSON(`{"end_date": "2025-03-20"}`)},
	})

	require.Len(t, got, 1)
	assert.Equal(t, valid.String(), got[0].ID)
	assert.Equal(t, "REST API", got[0].Title)
	assert.Empty(t, got[0].Module)
}

func TestToMeetings(t *testing.T) {
	g := NewGormGateway(nil, nil, zerolog.Nop())
	classType := models.ClassTypeEnglish
	start := time.Date(2025, 3, 10, 19, 0, 0, 0, time.UTC)

	got := g.toMeetings([]models.MeetingPastInstance{
		{ClassType: &classType, StartTime: start, Participants: datatypes.JSON(`[{"user_id": "u1"}]`)},
		{StartTime: start},
		{StartTime: start, Participants: datatypes.JSON(`[{"user_id": 123}, {"email": "ana@example.com"}]`)},
		{StartTime: start, Participants: datatypes.JSON(`{"user_id": "u1"}`)},
	})

	require.Len(t, got, 4)
	assert.Equal(t, models.ClassTypeEnglish, got[0].ClassType)
	assert.Equal(t, []models.Participant{{UserID: "u1"}}, got[0].Participants)
	assert.Empty(t, got[1].ClassType)
	assert.Empty(t, got[1].Participants)
	assert.Equal(t, []models.Participant{{}, {Email: "ana@example.com"}}, got[2].Participants)
	assert.Empty(t, got[3].Participants)
}
