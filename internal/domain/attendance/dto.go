package attendance

import (
	"github.com/emsuite/ems-backend-go/internal/pkg/validator"
)

// RecordActivityRequest is the generic activity-append operation used by
// producers that record arbitrary tracked activity (calls, tasks, breaks).
// The raw type string is stored as received; normalization happens on read.
type RecordActivityRequest struct {
	ActivityType    string `json:"activity_type"`
	Description     string `json:"description,omitempty"`
	DurationMinutes *int   `json:"duration_minutes,omitempty"`
	ActivityTime    string `json:"activity_time,omitempty"` // RFC3339, defaults to now
}

func (r *RecordActivityRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ActivityType) {
		errs = append(errs, validator.ValidationError{
			Field:   "activity_type",
			Message: "activity_type is required",
		})
	}

	if r.DurationMinutes != nil && *r.DurationMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "duration_minutes",
			Message: "duration_minutes must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ActivityResponse struct {
	ActivityID      int64  `json:"activity_id"`
	EmployeeID      int64  `json:"employee_id"`
	ActivityType    string `json:"activity_type"` // normalized
	RawType         string `json:"raw_type,omitempty"`
	Description     string `json:"description,omitempty"`
	ActivityTime    string `json:"activity_time"`
	DurationMinutes *int   `json:"duration_minutes,omitempty"`
}

// DailyHoursResponse is the external shape of one reconstructed day. All
// values are hours rounded to 2 decimal places.
type DailyHoursResponse struct {
	Date         string  `json:"date"`
	WorkingHours float64 `json:"working_hours"`
	BreakTime    float64 `json:"break_time"`
	Overtime     float64 `json:"overtime"`
	ManHours     float64 `json:"man_hours"`
}

type StatusResponse struct {
	AttendanceStatus string  `json:"attendance_status"`
	BreakStatus      string  `json:"break_status"`
	ArrivalStatus    string  `json:"arrival_status"`
	LastActivityTime *string `json:"last_activity_time"`
	RunningHours     float64 `json:"running_hours"`
}
