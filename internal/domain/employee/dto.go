package employee

import (
	"strings"

	"github.com/emsuite/ems-backend-go/internal/pkg/validator"
)

type ProfileResponse struct {
	EmployeeID   int64   `json:"employee_id"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	Position     *string `json:"position,omitempty"`
	Department   *string `json:"department,omitempty"`
	JobStartTime string  `json:"job_start_time"`
	JobEndTime   string  `json:"job_end_time"`
	WorkingDays  string  `json:"working_days"`
	Status       string  `json:"status"`
	HireDate     *string `json:"hire_date,omitempty"`
}

type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
	Position    *string `json:"position,omitempty"`
	Department  *string `json:"department,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FirstName != nil && validator.IsEmpty(*r.FirstName) {
		errs = append(errs, validator.ValidationError{
			Field:   "first_name",
			Message: "first_name must not be blank",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type JobTimingsResponse struct {
	EmployeeID   int64  `json:"employee_id"`
	JobStartTime string `json:"job_start_time"`
	JobEndTime   string `json:"job_end_time"`
	WorkingDays  string `json:"working_days"`
}

type Filter struct {
	Search     *string `json:"search,omitempty"`
	Department *string `json:"department,omitempty"`
	Status     *string `json:"status,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{Field: "page", Message: "page must be a positive number"})
	}
	if f.Page == 0 {
		f.Page = 1
	}

	if f.Limit < 0 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must be a positive number"})
	}
	if f.Limit == 0 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		errs = append(errs, validator.ValidationError{Field: "limit", Message: "limit must not exceed 100"})
	}

	if f.Status != nil {
		if !validator.IsInSlice(strings.ToLower(*f.Status), []string{"active", "inactive", "resigned"}) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: active, inactive, resigned",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Employees  []ProfileResponse `json:"employees"`
}

// ActiveEmployeeResponse is one row of the "who is in right now" listing.
type ActiveEmployeeResponse struct {
	EmployeeID       int64   `json:"employee_id"`
	FullName         string  `json:"full_name"`
	Position         *string `json:"position,omitempty"`
	AttendanceStatus string  `json:"attendance_status"`
	BreakStatus      string  `json:"break_status"`
	LastActivityTime *string `json:"last_activity_time"`
}
