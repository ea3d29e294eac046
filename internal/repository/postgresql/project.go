package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/emsuite/ems-backend-go/internal/domain/task"
	"github.com/emsuite/ems-backend-go/internal/pkg/database"
)

type projectRepositoryImpl struct {
	db *database.DB
}

func NewProjectRepository(db *database.DB) task.ProjectRepository {
	return &projectRepositoryImpl{db: db}
}

// Create implements task.ProjectRepository.
func (r *projectRepositoryImpl) Create(ctx context.Context, p task.Project) (task.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO projects (id, name, client_name, description, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, client_name, description, status, created_at, updated_at
	`

	var created task.Project
	err := q.QueryRow(ctx, query,
		p.ID,
		p.Name,
		p.ClientName,
		p.Description,
		p.Status,
	).Scan(
		&created.ID,
		&created.Name,
		&created.ClientName,
		&created.Description,
		&created.Status,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return task.Project{}, err
	}

	return created, nil
}

// GetByID implements task.ProjectRepository.
func (r *projectRepositoryImpl) GetByID(ctx context.Context, id string) (task.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, client_name, description, status, created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	var p task.Project
	err := q.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.ClientName,
		&p.Description,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return task.Project{}, task.ErrProjectNotFound
		}
		return task.Project{}, err
	}

	return p, nil
}

// List implements task.ProjectRepository.
func (r *projectRepositoryImpl) List(ctx context.Context) ([]task.Project, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, client_name, description, status, created_at, updated_at
		FROM projects
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []task.Project
	for rows.Next() {
		var p task.Project
		if err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.ClientName,
			&p.Description,
			&p.Status,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return projects, nil
}
