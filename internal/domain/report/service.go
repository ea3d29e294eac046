package report

import "context"

type ReportService interface {
	Hours(ctx context.Context, employeeID int64, q Query) (HoursReport, error)
	ManHours(ctx context.Context, employeeID int64, q Query) (ManHoursReport, error)
}
