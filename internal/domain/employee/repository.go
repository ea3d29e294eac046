package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, e Employee) (Employee, error)
	GetByID(ctx context.Context, id int64) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	List(ctx context.Context, filter Filter) ([]Employee, int64, error)
	Update(ctx context.Context, e Employee) error

	// GetJobTimings returns the configured schedule for one employee. Missing
	// configuration comes back as nil fields, not an error.
	GetJobTimings(ctx context.Context, id int64) (JobTimings, error)
}
