package employee

import "context"

type EmployeeService interface {
	// GetMyProfile returns the profile of the authenticated employee.
	GetMyProfile(ctx context.Context) (ProfileResponse, error)
	UpdateMyProfile(ctx context.Context, req UpdateProfileRequest) (ProfileResponse, error)

	GetJobTimings(ctx context.Context, employeeID int64) (JobTimingsResponse, error)
	List(ctx context.Context, filter Filter) (ListResponse, error)

	// ListActive reports employees whose attendance state today is anything
	// other than checked-out or absent, derived from the activity log.
	ListActive(ctx context.Context) ([]ActiveEmployeeResponse, error)
}
