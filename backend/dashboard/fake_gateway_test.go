package dashboard

import (
	"context"
	"sort"
	"sync"
	"time"

	"classroom-dashboard/backend/models"
)

// fakeGateway is an in-memory Gateway. Projects are kept in creation order,
// most recent first.
type fakeGateway struct {
	roster     models.Roster
	meetings   []models.Meeting
	projects   []models.ScheduledProject
	deliveries []models.Delivery

	errs   map[string]error
	panics map[string]bool

	mu    sync.Mutex
	calls map[string]int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		errs:   make(map[string]error),
		panics: make(map[string]bool),
		calls:  make(map[string]int),
	}
}

func (f *fakeGateway) record(ctx context.Context, method string) error {
	f.mu.Lock()
	f.calls[method]++
	f.mu.Unlock()

	if f.panics[method] {
		panic(method + " exploded")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.errs[method]
}

func (f *fakeGateway) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}

func (f *fakeGateway) GetRosterByClassroom(ctx context.Context, classroomID string) (models.Roster, error) {
	if err := f.record(ctx, "GetRosterByClassroom"); err != nil {
		return models.Roster{}, err
	}
	return f.roster, nil
}

func (f *fakeGateway) GetMeetingsInRange(ctx context.Context, classroomID string, start, end time.Time) ([]models.Meeting, error) {
	if err := f.record(ctx, "GetMeetingsInRange"); err != nil {
		return nil, err
	}
	var out []models.Meeting
	for _, m := range f.meetings {
		if InRange(m.StartTime, start, end) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeGateway) GetRecentMeetings(ctx context.Context, classroomID string, limit int) ([]models.Meeting, error) {
	if err := f.record(ctx, "GetRecentMeetings"); err != nil {
		return nil, err
	}
	out := append([]models.Meeting(nil), f.meetings...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeGateway) GetVisibleMeetings(ctx context.Context, classroomID string) ([]models.Meeting, error) {
	if err := f.record(ctx, "GetVisibleMeetings"); err != nil {
		return nil, err
	}
	return f.meetings, nil
}

func (f *fakeGateway) GetProjectsWithSchedule(ctx context.Context, classroomID string) ([]models.ScheduledProject, error) {
	if err := f.record(ctx, "GetProjectsWithSchedule"); err != nil {
		return nil, err
	}
	var out []models.ScheduledProject
	for _, p := range f.projects {
		if p.Schedule != nil {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeGateway) GetEndedProjects(ctx context.Context, classroomID string, now time.Time, limit int) ([]models.ScheduledProject, error) {
	if err := f.record(ctx, "GetEndedProjects"); err != nil {
		return nil, err
	}
	var scheduled []models.ScheduledProject
	for _, p := range f.projects {
		if p.Schedule != nil {
			scheduled = append(scheduled, p)
		}
	}
	if len(scheduled) > limit {
		scheduled = scheduled[:limit]
	}
	var out []models.ScheduledProject
	for _, p := range scheduled {
		if end, ok := p.EndDate(); ok && end.Before(now) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeGateway) GetDeliveryCountForProject(ctx context.Context, projectID string) (int, error) {
	if err := f.record(ctx, "GetDeliveryCountForProject"); err != nil {
		return 0, err
	}
	n := 0
	for _, d := range f.deliveries {
		if d.ProjectID == projectID {
			n++
		}
	}
	return n, nil
}

func (f *fakeGateway) GetDeliveriesForProjects(ctx context.Context, projectIDs []string) ([]models.Delivery, error) {
	if err := f.record(ctx, "GetDeliveriesForProjects"); err != nil {
		return nil, err
	}
	wanted := make(map[string]bool, len(projectIDs))
	for _, id := range projectIDs {
		wanted[id] = true
	}
	var out []models.Delivery
	for _, d := range f.deliveries {
		if wanted[d.ProjectID] {
			out = append(out, d)
		}
	}
	return out, nil
}

func at(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func window(start, end string) *models.DateWindow {
	w := &models.DateWindow{}
	if start != "" {
		s := at(start)
		w.Start = &s
	}
	if end != "" {
		e := at(end)
		w.End = &e
	}
	return w
}

func meeting(start string, participants ...models.Participant) models.Meeting {
	return models.Meeting{StartTime: at(start), Participants: participants}
}

func byID(id string) models.Participant       { return models.Participant{UserID: id} }
func byEmail(email string) models.Participant { return models.Participant{Email: email} }

func roster(students ...models.Student) models.Roster {
	return models.Roster{Students: students, Count: len(students)}
}
