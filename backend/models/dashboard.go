package models

import "time"

// Student is a roster entry as seen by the dashboard.
type Student struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

func (s Student) Ref() StudentRef {
	return StudentRef{ID: s.ID, Email: s.Email}
}

// StudentRef identifies a student by id or email. Upstream records are not
// keyed consistently, so either one is enough for a match.
type StudentRef struct {
	ID    string
	Email string
}

// Matches reports whether the candidate id or email belongs to the student.
// Empty values never match.
func (r StudentRef) Matches(candidateID, candidateEmail string) bool {
	if candidateID != "" && candidateID == r.ID {
		return true
	}
	return candidateEmail != "" && candidateEmail == r.Email
}

type Roster struct {
	Students []Student
	Count    int
}

type Participant struct {
	UserID string
	Email  string
}

// Meeting is a past meeting instance with its attendance list.
type Meeting struct {
	ClassType    string
	StartTime    time.Time
	Participants []Participant
}

// Attended reports whether the student is in the participant list.
func (m Meeting) Attended(ref StudentRef) bool {
	for _, p := range m.Participants {
		if ref.Matches(p.UserID, p.Email) {
			return true
		}
	}
	return false
}

// DateWindow is a project schedule; either bound may be missing.
type DateWindow struct {
	Start *time.Time
	End   *time.Time
}

type ScheduledProject struct {
	ID       string
	Title    string
	Module   string
	Schedule *DateWindow
}

// EndDate returns the end of the schedule window, if any.
func (p ScheduledProject) EndDate() (time.Time, bool) {
	if p.Schedule == nil || p.Schedule.End == nil {
		return time.Time{}, false
	}
	return *p.Schedule.End, true
}

type Delivery struct {
	ProjectID string
	Members   []string
}

type WeeklyAttendanceData struct {
	Percentage int     `json:"percentage"`
	Trend      float64 `json:"trend"`
}

// WeeklyPendenciesData carries the share of expected deliveries that did not
// happen. A negative trend is the favorable direction.
type WeeklyPendenciesData struct {
	Percentage int     `json:"percentage"`
	Trend      float64 `json:"trend"`
}

type StudentAbsence struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	ConsecutiveAbsences int    `json:"consecutiveAbsences"`
}

type StudentPendency struct {
	Name                  string `json:"name"`
	Email                 string `json:"email"`
	ConsecutivePendencies int    `json:"consecutivePendencies"`
}

type ActiveProjectData struct {
	ID                 string `json:"id"`
	Title              string `json:"title"`
	Module             string `json:"module"`
	DeliveryPercentage int    `json:"deliveryPercentage"`
	PendingDeliveries  int    `json:"pendingDeliveries"`
}

// PresenceByType holds one student's attendance percentage per class type.
type PresenceByType struct {
	General     int `json:"general"`
	Programming int `json:"programming"`
	English     int `json:"english"`
	SoftSkills  int `json:"softSkills"`
}

// Dashboard bundles every view of the classroom home page.
type Dashboard struct {
	Attendance      WeeklyAttendanceData `json:"attendance"`
	Pendencies      WeeklyPendenciesData `json:"pendencies"`
	ActiveProject   *ActiveProjectData   `json:"activeProject"`
	Absences        []StudentAbsence     `json:"absences"`
	PendingStudents []StudentPendency    `json:"pendingStudents"`
}
