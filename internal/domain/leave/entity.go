package leave

import "time"

type LeaveType string

const (
	TypeAnnual LeaveType = "annual"
	TypeSick   LeaveType = "sick"
	TypeUnpaid LeaveType = "unpaid"
	TypeOther  LeaveType = "other"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type LeaveRequest struct {
	ID         string
	EmployeeID int64
	Type       LeaveType
	StartDate  time.Time
	EndDate    time.Time
	Days       int
	Reason     string
	Status     Status
	ReviewedBy *string
	ReviewedAt *time.Time
	ReviewNote *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined for listings
	EmployeeName *string
}
