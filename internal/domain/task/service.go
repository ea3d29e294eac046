package task

import "context"

type TaskService interface {
	Create(ctx context.Context, req CreateTaskRequest) (TaskResponse, error)
	ListMine(ctx context.Context) ([]TaskResponse, error)
	ListMineToday(ctx context.Context) ([]TaskResponse, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (TaskResponse, error)

	CreateProject(ctx context.Context, req CreateProjectRequest) (ProjectResponse, error)
	ListProjects(ctx context.Context) ([]ProjectResponse, error)
}
