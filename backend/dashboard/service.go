package dashboard

import (
	"context"
	"sort"
	"time"

	"classroom-dashboard/backend/models"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	defaultRecentMeetingsLimit = 10
	defaultEndedProjectsLimit  = 10

	untitledProject = "Untitled project"
	unknownModule   = "Module not informed"
	unknownName     = "Name not informed"
	unknownEmail    = "Email not informed"
)

type Options struct {
	// Location cuts calendar weeks. Defaults to UTC.
	Location *time.Location
	// Now is the clock. Defaults to time.Now.
	Now                 func() time.Time
	RecentMeetingsLimit int
	EndedProjectsLimit  int
}

// Service computes the classroom home dashboard. Every exported view is
// fail-soft: gateway errors are logged and turned into zero values.
type Service struct {
	gateway Gateway
	log     zerolog.Logger

	loc                 *time.Location
	now                 func() time.Time
	recentMeetingsLimit int
	endedProjectsLimit  int
}

func NewService(gateway Gateway, logger zerolog.Logger, opts Options) *Service {
	s := &Service{
		gateway:             gateway,
		log:                 logger.With().Str("component", "dashboard").Logger(),
		loc:                 opts.Location,
		now:                 opts.Now,
		recentMeetingsLimit: opts.RecentMeetingsLimit,
		endedProjectsLimit:  opts.EndedProjectsLimit,
	}
	if s.loc == nil {
		s.loc = time.UTC
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.recentMeetingsLimit <= 0 {
		s.recentMeetingsLimit = defaultRecentMeetingsLimit
	}
	if s.endedProjectsLimit <= 0 {
		s.endedProjectsLimit = defaultEndedProjectsLimit
	}
	return s
}

func (s *Service) logFor(classroomID string) zerolog.Logger {
	return s.log.With().Str("classroom_id", classroomID).Logger()
}

func (s *Service) WeeklyAttendance(ctx context.Context, classroomID string) models.WeeklyAttendanceData {
	return s.weeklyAttendanceSafe(ctx, s.gateway, classroomID)
}

func (s *Service) WeeklyPendencies(ctx context.Context, classroomID string) models.WeeklyPendenciesData {
	return s.weeklyPendenciesSafe(ctx, s.gateway, classroomID)
}

// ActiveProject returns nil when no project window contains now.
func (s *Service) ActiveProject(ctx context.Context, classroomID string) *models.ActiveProjectData {
	return s.activeProjectSafe(ctx, s.gateway, classroomID)
}

func (s *Service) StudentsWithConsecutiveAbsences(ctx context.Context, classroomID string) []models.StudentAbsence {
	return s.absencesSafe(ctx, s.gateway, classroomID)
}

func (s *Service) StudentsWithConsecutivePendencies(ctx context.Context, classroomID string) []models.StudentPendency {
	return s.pendingStudentsSafe(ctx, s.gateway, classroomID)
}

func (s *Service) StudentPresence(ctx context.Context, classroomID, studentID string) models.PresenceByType {
	return WithFallback(ctx, s.logFor(classroomID), "student_presence", models.PresenceByType{},
		func(ctx context.Context) (models.PresenceByType, error) {
			return s.studentPresence(ctx, s.gateway, classroomID, studentID)
		})
}

// Dashboard computes all five views concurrently over one request cache, so
// the roster and the meeting and project histories are read once.
func (s *Service) Dashboard(ctx context.Context, classroomID string) models.Dashboard {
	cache := NewRequestCache(ctx, s.gateway)

	var (
		out models.Dashboard
		g   errgroup.Group
	)
	g.Go(func() error {
		out.Attendance = s.weeklyAttendanceSafe(ctx, cache, classroomID)
		return nil
	})
	g.Go(func() error {
		out.Pendencies = s.weeklyPendenciesSafe(ctx, cache, classroomID)
		return nil
	})
	g.Go(func() error {
		out.ActiveProject = s.activeProjectSafe(ctx, cache, classroomID)
		return nil
	})
	g.Go(func() error {
		out.Absences = s.absencesSafe(ctx, cache, classroomID)
		return nil
	})
	g.Go(func() error {
		out.PendingStudents = s.pendingStudentsSafe(ctx, cache, classroomID)
		return nil
	})
	_ = g.Wait()

	return out
}

func (s *Service) weeklyAttendanceSafe(ctx context.Context, gw Gateway, classroomID string) models.WeeklyAttendanceData {
	return WithFallback(ctx, s.logFor(classroomID), "weekly_attendance", models.WeeklyAttendanceData{},
		func(ctx context.Context) (models.WeeklyAttendanceData, error) {
			return s.weeklyAttendance(ctx, gw, classroomID)
		})
}

func (s *Service) weeklyPendenciesSafe(ctx context.Context, gw Gateway, classroomID string) models.WeeklyPendenciesData {
	return WithFallback(ctx, s.logFor(classroomID), "weekly_pendencies", models.WeeklyPendenciesData{},
		func(ctx context.Context) (models.WeeklyPendenciesData, error) {
			return s.weeklyPendencies(ctx, gw, classroomID)
		})
}

func (s *Service) activeProjectSafe(ctx context.Context, gw Gateway, classroomID string) *models.ActiveProjectData {
	return WithFallback(ctx, s.logFor(classroomID), "active_project", nil,
		func(ctx context.Context) (*models.ActiveProjectData, error) {
			return s.activeProject(ctx, gw, classroomID)
		})
}

func (s *Service) absencesSafe(ctx context.Context, gw Gateway, classroomID string) []models.StudentAbsence {
	return WithFallback(ctx, s.logFor(classroomID), "consecutive_absences", []models.StudentAbsence{},
		func(ctx context.Context) ([]models.StudentAbsence, error) {
			return s.studentsWithConsecutiveAbsences(ctx, gw, classroomID)
		})
}

func (s *Service) pendingStudentsSafe(ctx context.Context, gw Gateway, classroomID string) []models.StudentPendency {
	return WithFallback(ctx, s.logFor(classroomID), "consecutive_pendencies", []models.StudentPendency{},
		func(ctx context.Context) ([]models.StudentPendency, error) {
			return s.studentsWithConsecutivePendencies(ctx, gw, classroomID)
		})
}

func (s *Service) weeks() (Week, Week) {
	current := WeekBounds(s.now(), s.loc)
	return current, PreviousWeekBounds(current.Start)
}

func (s *Service) weeklyAttendance(ctx context.Context, gw Gateway, classroomID string) (models.WeeklyAttendanceData, error) {
	currentWeek, previousWeek := s.weeks()

	roster, err := gw.GetRosterByClassroom(ctx, classroomID)
	if err != nil {
		return models.WeeklyAttendanceData{}, err
	}
	if roster.Count == 0 {
		return models.WeeklyAttendanceData{}, nil
	}

	var current, previous []models.Meeting
	g, gctx := errgroup.WithContext(ctx)
	g.Go(recovered(func() error {
		var err error
		current, err = gw.GetMeetingsInRange(gctx, classroomID, currentWeek.Start, currentWeek.End)
		return err
	}))
	g.Go(recovered(func() error {
		var err error
		previous, err = gw.GetMeetingsInRange(gctx, classroomID, previousWeek.Start, previousWeek.End)
		return err
	}))
	if err := g.Wait(); err != nil {
		return models.WeeklyAttendanceData{}, err
	}

	currentRatio := AttendanceRatio(current, roster.Count)
	previousRatio := AttendanceRatio(previous, roster.Count)

	return models.WeeklyAttendanceData{
		Percentage: Round(currentRatio),
		Trend:      Trend(currentRatio, previousRatio),
	}, nil
}

func (s *Service) weeklyPendencies(ctx context.Context, gw Gateway, classroomID string) (models.WeeklyPendenciesData, error) {
	currentWeek, previousWeek := s.weeks()

	var (
		roster   models.Roster
		projects []models.ScheduledProject
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(recovered(func() error {
		var err error
		roster, err = gw.GetRosterByClassroom(gctx, classroomID)
		return err
	}))
	g.Go(recovered(func() error {
		var err error
		projects, err = gw.GetProjectsWithSchedule(gctx, classroomID)
		return err
	}))
	if err := g.Wait(); err != nil {
		return models.WeeklyPendenciesData{}, err
	}
	if roster.Count == 0 || len(projects) == 0 {
		return models.WeeklyPendenciesData{}, nil
	}

	currentProjects := dueWithin(projects, currentWeek)
	previousProjects := dueWithin(projects, previousWeek)

	projectIDs := make([]string, 0, len(currentProjects)+len(previousProjects))
	for _, p := range currentProjects {
		projectIDs = append(projectIDs, p.ID)
	}
	for _, p := range previousProjects {
		projectIDs = append(projectIDs, p.ID)
	}
	if len(projectIDs) == 0 {
		return models.WeeklyPendenciesData{}, nil
	}

	deliveries, err := gw.GetDeliveriesForProjects(ctx, projectIDs)
	if err != nil {
		return models.WeeklyPendenciesData{}, err
	}
	deliveryCount := make(map[string]int, len(projectIDs))
	for _, d := range deliveries {
		deliveryCount[d.ProjectID]++
	}

	current := pendencyPercentage(currentProjects, deliveryCount, roster.Count)
	previous := pendencyPercentage(previousProjects, deliveryCount, roster.Count)

	return models.WeeklyPendenciesData{
		Percentage: current,
		Trend:      Trend(float64(current), float64(previous)),
	}, nil
}

// dueWithin keeps the projects whose end date falls inside the week.
func dueWithin(projects []models.ScheduledProject, week Week) []models.ScheduledProject {
	var out []models.ScheduledProject
	for _, p := range projects {
		if end, ok := p.EndDate(); ok && week.Contains(end) {
			out = append(out, p)
		}
	}
	return out
}

// pendencyPercentage is the share of expected deliveries (one per student
// per project) that are missing. Surplus deliveries never push it below 0.
func pendencyPercentage(projects []models.ScheduledProject, deliveryCount map[string]int, totalStudents int) int {
	expected := len(projects) * totalStudents
	actual := 0
	for _, p := range projects {
		actual += deliveryCount[p.ID]
	}
	// Deliveries beyond one per student per project are not counted, so the
	// share stays within [0, 100].
	if actual > expected {
		actual = expected
	}
	return Percentage(expected-actual, expected)
}

func (s *Service) activeProject(ctx context.Context, gw Gateway, classroomID string) (*models.ActiveProjectData, error) {
	projects, err := gw.GetProjectsWithSchedule(ctx, classroomID)
	if err != nil {
		return nil, err
	}

	active, ok := findActiveProject(projects, s.now())
	if !ok {
		return nil, nil
	}

	var (
		roster    models.Roster
		delivered int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(recovered(func() error {
		var err error
		roster, err = gw.GetRosterByClassroom(gctx, classroomID)
		return err
	}))
	g.Go(recovered(func() error {
		var err error
		delivered, err = gw.GetDeliveryCountForProject(gctx, active.ID)
		return err
	}))
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if roster.Count == 0 {
		return nil, nil
	}
	// Delivered is capped at the roster size; pending is never negative.
	if delivered > roster.Count {
		delivered = roster.Count
	}

	return &models.ActiveProjectData{
		ID:                 active.ID,
		Title:              orDefault(active.Title, untitledProject),
		Module:             orDefault(active.Module, unknownModule),
		DeliveryPercentage: Percentage(delivered, roster.Count),
		PendingDeliveries:  roster.Count - delivered,
	}, nil
}

// findActiveProject picks the first project, in gateway order, whose window
// contains now. Projects missing either bound are skipped.
func findActiveProject(projects []models.ScheduledProject, now time.Time) (models.ScheduledProject, bool) {
	for _, p := range projects {
		if p.Schedule == nil || p.Schedule.Start == nil || p.Schedule.End == nil {
			continue
		}
		if InRange(now, *p.Schedule.Start, *p.Schedule.End) {
			return p, true
		}
	}
	return models.ScheduledProject{}, false
}

func (s *Service) studentsWithConsecutiveAbsences(ctx context.Context, gw Gateway, classroomID string) ([]models.StudentAbsence, error) {
	var (
		roster   models.Roster
		meetings []models.Meeting
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(recovered(func() error {
		var err error
		roster, err = gw.GetRosterByClassroom(gctx, classroomID)
		return err
	}))
	g.Go(recovered(func() error {
		var err error
		meetings, err = gw.GetRecentMeetings(gctx, classroomID, s.recentMeetingsLimit)
		return err
	}))
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := []models.StudentAbsence{}
	if len(roster.Students) == 0 || len(meetings) == 0 {
		return out, nil
	}

	for _, student := range roster.Students {
		ref := student.Ref()
		streak := MissStreak(meetings, func(m models.Meeting) bool { return m.Attended(ref) })
		if streak < MinStreak {
			continue
		}
		out = append(out, models.StudentAbsence{
			Name:                orDefault(student.FullName, unknownName),
			Email:               orDefault(student.Email, unknownEmail),
			ConsecutiveAbsences: streak,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ConsecutiveAbsences > out[j].ConsecutiveAbsences
	})
	return out, nil
}

func (s *Service) studentsWithConsecutivePendencies(ctx context.Context, gw Gateway, classroomID string) ([]models.StudentPendency, error) {
	var (
		roster   models.Roster
		projects []models.ScheduledProject
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(recovered(func() error {
		var err error
		roster, err = gw.GetRosterByClassroom(gctx, classroomID)
		return err
	}))
	g.Go(recovered(func() error {
		var err error
		projects, err = gw.GetEndedProjects(gctx, classroomID, s.now(), s.endedProjectsLimit)
		return err
	}))
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := []models.StudentPendency{}
	if len(roster.Students) == 0 || len(projects) == 0 {
		return out, nil
	}

	projectIDs := make([]string, len(projects))
	for i, p := range projects {
		projectIDs[i] = p.ID
	}
	deliveries, err := gw.GetDeliveriesForProjects(ctx, projectIDs)
	if err != nil {
		return nil, err
	}
	index := indexDeliveries(deliveries)

	for _, student := range roster.Students {
		byID, byEmail := index[student.ID], index[student.Email]
		streak := MissStreak(projects, func(p models.ScheduledProject) bool {
			return byID.has(p.ID) || (student.Email != "" && byEmail.has(p.ID))
		})
		if streak < MinStreak {
			continue
		}
		out = append(out, models.StudentPendency{
			Name:                  orDefault(student.FullName, unknownName),
			Email:                 orDefault(student.Email, unknownEmail),
			ConsecutivePendencies: streak,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ConsecutivePendencies > out[j].ConsecutivePendencies
	})
	return out, nil
}

type projectSet map[string]struct{}

func (s projectSet) has(projectID string) bool {
	_, ok := s[projectID]
	return ok
}

// indexDeliveries maps every member entry (id or email) to the projects it
// delivered.
func indexDeliveries(deliveries []models.Delivery) map[string]projectSet {
	index := make(map[string]projectSet)
	for _, d := range deliveries {
		for _, member := range d.Members {
			if member == "" {
				continue
			}
			set, ok := index[member]
			if !ok {
				set = make(projectSet)
				index[member] = set
			}
			set[d.ProjectID] = struct{}{}
		}
	}
	return index
}

func (s *Service) studentPresence(ctx context.Context, gw Gateway, classroomID, studentID string) (models.PresenceByType, error) {
	var (
		roster   models.Roster
		meetings []models.Meeting
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(recovered(func() error {
		var err error
		roster, err = gw.GetRosterByClassroom(gctx, classroomID)
		return err
	}))
	g.Go(recovered(func() error {
		var err error
		meetings, err = gw.GetVisibleMeetings(gctx, classroomID)
		return err
	}))
	if err := g.Wait(); err != nil {
		return models.PresenceByType{}, err
	}

	ref, ok := findStudent(roster, studentID)
	if !ok {
		return models.PresenceByType{}, nil
	}
	return PresenceByType(ref, meetings), nil
}

func findStudent(roster models.Roster, studentID string) (models.StudentRef, bool) {
	for _, student := range roster.Students {
		if student.ID == studentID {
			return student.Ref(), true
		}
	}
	return models.StudentRef{}, false
}

// PresenceByType groups meetings by class type and computes the share the
// student attended in each group. Types other than programming, english and
// soft-skills all report into General; when several do, the last one in
// sorted order wins.
func PresenceByType(ref models.StudentRef, meetings []models.Meeting) models.PresenceByType {
	byType := make(map[string][]models.Meeting)
	for _, m := range meetings {
		byType[m.ClassType] = append(byType[m.ClassType], m)
	}

	types := make([]string, 0, len(byType))
	for classType := range byType {
		types = append(types, classType)
	}
	sort.Strings(types)

	var presence models.PresenceByType
	for _, classType := range types {
		instances := byType[classType]
		attended := 0
		for _, m := range instances {
			if m.Attended(ref) {
				attended++
			}
		}
		pct := Percentage(attended, len(instances))

		switch classType {
		case models.ClassTypeProgramming:
			presence.Programming = pct
		case models.ClassTypeEnglish:
			presence.English = pct
		case models.ClassTypeSoftSkills:
			presence.SoftSkills = pct
		default:
			presence.General = pct
		}
	}
	return presence
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
