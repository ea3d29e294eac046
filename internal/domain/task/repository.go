package task

import (
	"context"
	"time"
)

type TaskRepository interface {
	Create(ctx context.Context, t Task) (Task, error)
	GetByID(ctx context.Context, id string) (Task, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]Task, error)
	ListDueOn(ctx context.Context, employeeID int64, day time.Time) ([]Task, error)
	UpdateStatus(ctx context.Context, id string, status TaskStatus) error

	// CountByEmployeeAndDay tallies tasks created for an employee on one
	// calendar day, feeding the range reporter's daily breakdown.
	CountByEmployeeAndDay(ctx context.Context, employeeID int64, day time.Time) (DayCounts, error)
}

type ProjectRepository interface {
	Create(ctx context.Context, p Project) (Project, error)
	GetByID(ctx context.Context, id string) (Project, error)
	List(ctx context.Context) ([]Project, error)
}
