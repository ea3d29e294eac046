package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/emsuite/ems-backend-go/internal/domain/task"
	"github.com/emsuite/ems-backend-go/internal/pkg/database"
)

type taskRepositoryImpl struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) task.TaskRepository {
	return &taskRepositoryImpl{db: db}
}

// Create implements task.TaskRepository.
func (r *taskRepositoryImpl) Create(ctx context.Context, t task.Task) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tasks (id, project_id, assigned_to, title, description, status, due_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, project_id, assigned_to, title, description, status, due_date, created_at, updated_at
	`

	var created task.Task
	err := q.QueryRow(ctx, query,
		t.ID,
		t.ProjectID,
		t.AssignedTo,
		t.Title,
		t.Description,
		string(t.Status),
		t.DueDate,
	).Scan(
		&created.ID,
		&created.ProjectID,
		&created.AssignedTo,
		&created.Title,
		&created.Description,
		&created.Status,
		&created.DueDate,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return task.Task{}, err
	}

	return created, nil
}

// GetByID implements task.TaskRepository.
func (r *taskRepositoryImpl) GetByID(ctx context.Context, id string) (task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.project_id, t.assigned_to, t.title, t.description, t.status, t.due_date,
		       t.created_at, t.updated_at, p.name AS project_name
		FROM tasks t
		LEFT JOIN projects p ON p.id = t.project_id
		WHERE t.id = $1
	`

	var t task.Task
	err := q.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.ProjectID,
		&t.AssignedTo,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.DueDate,
		&t.CreatedAt,
		&t.UpdatedAt,
		&t.ProjectName,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return task.Task{}, task.ErrTaskNotFound
		}
		return task.Task{}, err
	}

	return t, nil
}

// ListByEmployee implements task.TaskRepository.
func (r *taskRepositoryImpl) ListByEmployee(ctx context.Context, employeeID int64) ([]task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.project_id, t.assigned_to, t.title, t.description, t.status, t.due_date,
		       t.created_at, t.updated_at, p.name AS project_name
		FROM tasks t
		LEFT JOIN projects p ON p.id = t.project_id
		WHERE t.assigned_to = $1
		ORDER BY t.created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

// ListDueOn implements task.TaskRepository.
func (r *taskRepositoryImpl) ListDueOn(ctx context.Context, employeeID int64, day time.Time) ([]task.Task, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT t.id, t.project_id, t.assigned_to, t.title, t.description, t.status, t.due_date,
		       t.created_at, t.updated_at, p.name AS project_name
		FROM tasks t
		LEFT JOIN projects p ON p.id = t.project_id
		WHERE t.assigned_to = $1 AND t.due_date = $2
		ORDER BY t.created_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID, day)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanTasks(rows)
}

// UpdateStatus implements task.TaskRepository.
func (r *taskRepositoryImpl) UpdateStatus(ctx context.Context, id string, status task.TaskStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE tasks SET status = $1, updated_at = NOW() WHERE id = $2`

	tag, err := q.Exec(ctx, query, string(status), id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return task.ErrTaskNotFound
	}

	return nil
}

// CountByEmployeeAndDay implements task.TaskRepository.
func (r *taskRepositoryImpl) CountByEmployeeAndDay(ctx context.Context, employeeID int64, day time.Time) (task.DayCounts, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'completed')
		FROM tasks
		WHERE assigned_to = $1 AND created_at::date = $2::date
	`

	var counts task.DayCounts
	if err := q.QueryRow(ctx, query, employeeID, day).Scan(&counts.Total, &counts.Completed); err != nil {
		return task.DayCounts{}, err
	}

	return counts, nil
}

func scanTasks(rows pgx.Rows) ([]task.Task, error) {
	var tasks []task.Task
	for rows.Next() {
		var t task.Task
		if err := rows.Scan(
			&t.ID,
			&t.ProjectID,
			&t.AssignedTo,
			&t.Title,
			&t.Description,
			&t.Status,
			&t.DueDate,
			&t.CreatedAt,
			&t.UpdatedAt,
			&t.ProjectName,
		); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tasks, nil
}
