package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/emsuite/ems-backend-go/internal/domain/auth"
	"github.com/emsuite/ems-backend-go/internal/domain/task"
	"github.com/emsuite/ems-backend-go/internal/pkg/validator"
)

type Service struct {
	tasks    task.TaskRepository
	projects task.ProjectRepository
	logger   *slog.Logger

	now func() time.Time
}

func NewService(tasks task.TaskRepository, projects task.ProjectRepository, logger *slog.Logger) *Service {
	return &Service{
		tasks:    tasks,
		projects: projects,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) Create(ctx context.Context, req task.CreateTaskRequest) (task.TaskResponse, error) {
	if _, _, err := auth.UserFromContext(ctx); err != nil {
		return task.TaskResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	if req.ProjectID != nil {
		if _, err := s.projects.GetByID(ctx, *req.ProjectID); err != nil {
			if errors.Is(err, task.ErrProjectNotFound) {
				return task.TaskResponse{}, task.ErrProjectNotFound
			}
			return task.TaskResponse{}, fmt.Errorf("failed to load project: %w", err)
		}
	}

	t := task.Task{
		ID:          uuid.NewString(),
		ProjectID:   req.ProjectID,
		AssignedTo:  req.AssignedTo,
		Title:       req.Title,
		Description: req.Description,
		Status:      task.StatusPending,
		CreatedAt:   s.now(),
		UpdatedAt:   s.now(),
	}
	if req.DueDate != nil {
		due, _ := validator.IsValidDate(*req.DueDate)
		t.DueDate = &due
	}

	created, err := s.tasks.Create(ctx, t)
	if err != nil {
		return task.TaskResponse{}, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info("task created",
		slog.String("task_id", created.ID),
		slog.Int64("assigned_to", created.AssignedTo),
	)
	return toTaskResponse(created), nil
}

func (s *Service) ListMine(ctx context.Context) ([]task.TaskResponse, error) {
	employeeID, err := auth.EmployeeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tasks, err := s.tasks.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return toTaskResponses(tasks), nil
}

func (s *Service) ListMineToday(ctx context.Context) ([]task.TaskResponse, error) {
	employeeID, err := auth.EmployeeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	y, m, d := now.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, now.Location())

	tasks, err := s.tasks.ListDueOn(ctx, employeeID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return toTaskResponses(tasks), nil
}

func (s *Service) UpdateStatus(ctx context.Context, req task.UpdateStatusRequest) (task.TaskResponse, error) {
	employeeID, err := auth.EmployeeFromContext(ctx)
	if err != nil {
		return task.TaskResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return task.TaskResponse{}, err
	}

	t, err := s.tasks.GetByID(ctx, req.ID)
	if err != nil {
		return task.TaskResponse{}, err
	}

	// Only the assignee moves a task through its lifecycle.
	if t.AssignedTo != employeeID {
		return task.TaskResponse{}, task.ErrTaskNotFound
	}

	status := task.TaskStatus(req.Status)
	if err := s.tasks.UpdateStatus(ctx, t.ID, status); err != nil {
		return task.TaskResponse{}, fmt.Errorf("failed to update task status: %w", err)
	}

	t.Status = status
	t.UpdatedAt = s.now()

	s.logger.Info("task status updated",
		slog.String("task_id", t.ID),
		slog.String("status", string(status)),
	)
	return toTaskResponse(t), nil
}

func (s *Service) CreateProject(ctx context.Context, req task.CreateProjectRequest) (task.ProjectResponse, error) {
	if _, _, err := auth.UserFromContext(ctx); err != nil {
		return task.ProjectResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return task.ProjectResponse{}, err
	}

	created, err := s.projects.Create(ctx, task.Project{
		ID:          uuid.NewString(),
		Name:        req.Name,
		ClientName:  req.ClientName,
		Description: req.Description,
		Status:      "active",
		CreatedAt:   s.now(),
		UpdatedAt:   s.now(),
	})
	if err != nil {
		return task.ProjectResponse{}, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("project created", slog.String("project_id", created.ID))
	return toProjectResponse(created), nil
}

func (s *Service) ListProjects(ctx context.Context) ([]task.ProjectResponse, error) {
	projects, err := s.projects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	out := make([]task.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectResponse(p))
	}
	return out, nil
}

func toTaskResponse(t task.Task) task.TaskResponse {
	resp := task.TaskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		ProjectName: t.ProjectName,
		AssignedTo:  t.AssignedTo,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
	if t.DueDate != nil {
		due := t.DueDate.Format("2006-01-02")
		resp.DueDate = &due
	}
	return resp
}

func toTaskResponses(tasks []task.Task) []task.TaskResponse {
	out := make([]task.TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out
}

func toProjectResponse(p task.Project) task.ProjectResponse {
	return task.ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		ClientName:  p.ClientName,
		Description: p.Description,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}
