package attendance

import (
	"context"
	"time"
)

// ActivityEventRepository is the append-only query surface over the activity
// log. There is no update or delete: events are immutable once recorded.
type ActivityEventRepository interface {
	// Create appends one activity event and returns it with its assigned ID.
	Create(ctx context.Context, event ActivityEvent) (ActivityEvent, error)

	// ListByEmployeeAndRange returns all events with an activity date between
	// start and end inclusive, ordered by activity_time ascending.
	ListByEmployeeAndRange(ctx context.Context, employeeID int64, start, end time.Time) ([]ActivityEvent, error)

	// ListRecent returns the newest events first, capped at limit.
	ListRecent(ctx context.Context, employeeID int64, limit int) ([]ActivityEvent, error)
}
