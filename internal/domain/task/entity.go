package task

import "time"

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

type Task struct {
	ID          string
	ProjectID   *string
	AssignedTo  int64
	Title       string
	Description *string
	Status      TaskStatus
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined for listings
	ProjectName *string
}

type Project struct {
	ID          string
	Name        string
	ClientName  *string
	Description *string
	Status      string // active, on_hold, completed
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// DayCounts is the per-day task tally the range reporter folds into its
// daily breakdown.
type DayCounts struct {
	Total     int
	Completed int
}
