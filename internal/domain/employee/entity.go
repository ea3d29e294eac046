package employee

import "time"

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusResigned Status = "resigned"
)

type Employee struct {
	ID           int64
	UserID       *string
	FirstName    string
	LastName     string
	Email        string
	PhoneNumber  *string
	Position     *string
	Department   *string
	JobStartTime *string // "15:04:05" clock string, nil means system default
	JobEndTime   *string
	WorkingDays  *string // e.g. "Mon,Tue,Wed,Thu,Fri"
	Status       Status
	HireDate     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (e Employee) FullName() string {
	if e.LastName == "" {
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// JobTimings is the schedule configuration the attendance reconstructor
// consumes. Zero-value fields mean "not configured" and callers fall back to
// the system defaults (09:00-18:00, 8-hour standard).
type JobTimings struct {
	StartTime   *string
	EndTime     *string
	WorkingDays *string
}
