package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/emsuite/ems-backend-go/internal/domain/attendance"
	"github.com/emsuite/ems-backend-go/internal/pkg/database"
)

type activityEventRepositoryImpl struct {
	db *database.DB
}

func NewActivityEventRepository(db *database.DB) attendance.ActivityEventRepository {
	return &activityEventRepositoryImpl{db: db}
}

// Create implements attendance.ActivityEventRepository. The raw type string
// is stored exactly as received; normalization happens on read.
func (r *activityEventRepositoryImpl) Create(ctx context.Context, event attendance.ActivityEvent) (attendance.ActivityEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO activity_events (employee_id, activity_type, activity_time, duration_minutes, description, log)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, employee_id, activity_type, activity_time, duration_minutes, description, log, created_at
	`

	var created attendance.ActivityEvent
	err := q.QueryRow(ctx, query,
		event.EmployeeID,
		event.RawType,
		event.Time,
		event.DurationMinutes,
		event.Description,
		event.Log,
	).Scan(
		&created.ID,
		&created.EmployeeID,
		&created.RawType,
		&created.Time,
		&created.DurationMinutes,
		&created.Description,
		&created.Log,
		&created.CreatedAt,
	)
	if err != nil {
		return attendance.ActivityEvent{}, err
	}

	created.Type = attendance.ParseActivityType(created.RawType)
	return created, nil
}

// ListByEmployeeAndRange implements attendance.ActivityEventRepository.
func (r *activityEventRepositoryImpl) ListByEmployeeAndRange(ctx context.Context, employeeID int64, start, end time.Time) ([]attendance.ActivityEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, activity_type, activity_time, duration_minutes, description, log, created_at
		FROM activity_events
		WHERE employee_id = $1 AND activity_time BETWEEN $2 AND $3
		ORDER BY activity_time ASC
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivityEvents(rows)
}

// ListRecent implements attendance.ActivityEventRepository.
func (r *activityEventRepositoryImpl) ListRecent(ctx context.Context, employeeID int64, limit int) ([]attendance.ActivityEvent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, activity_type, activity_time, duration_minutes, description, log, created_at
		FROM activity_events
		WHERE employee_id = $1
		ORDER BY activity_time DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, employeeID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanActivityEvents(rows)
}

func scanActivityEvents(rows pgx.Rows) ([]attendance.ActivityEvent, error) {
	var events []attendance.ActivityEvent
	for rows.Next() {
		var ev attendance.ActivityEvent
		if err := rows.Scan(
			&ev.ID,
			&ev.EmployeeID,
			&ev.RawType,
			&ev.Time,
			&ev.DurationMinutes,
			&ev.Description,
			&ev.Log,
			&ev.CreatedAt,
		); err != nil {
			return nil, err
		}
		ev.Type = attendance.ParseActivityType(ev.RawType)
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
