package leave

import "context"

type LeaveRepository interface {
	Create(ctx context.Context, req LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID int64, filter Filter) ([]LeaveRequest, int64, error)
	List(ctx context.Context, filter Filter) ([]LeaveRequest, int64, error)
	Update(ctx context.Context, req LeaveRequest) error
}
