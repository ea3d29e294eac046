package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	attendancedomain "github.com/emsuite/ems-backend-go/internal/domain/attendance"
	"github.com/emsuite/ems-backend-go/internal/domain/employee"
	attendanceservice "github.com/emsuite/ems-backend-go/internal/service/attendance"
)

// AttendanceJobs audits the activity log on a schedule. Reconstruction never
// persists derived state, so the audit only reconstructs and reports: missed
// check-outs, orphan events and duplicate check-ins surface in the logs where
// an operator can follow up.
type AttendanceJobs struct {
	activityRepo  attendancedomain.ActivityEventRepository
	employeeRepo  employee.EmployeeRepository
	standardHours int

	now func() time.Time
}

func NewAttendanceJobs(
	activityRepo attendancedomain.ActivityEventRepository,
	employeeRepo employee.EmployeeRepository,
	standardHours int,
) *AttendanceJobs {
	return &AttendanceJobs{
		activityRepo:  activityRepo,
		employeeRepo:  employeeRepo,
		standardHours: standardHours,
		now:           time.Now,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("audit_attendance_anomalies", 1*time.Hour, j.AuditAnomalies)
}

// AuditAnomalies reconstructs yesterday's sessions for every active employee
// and logs whatever could not be paired.
func (j *AttendanceJobs) AuditAnomalies(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if j.now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting attendance anomaly audit")

	active := "active"
	filter := employee.Filter{Status: &active, Page: 1, Limit: 100}
	var employees []employee.Employee
	for {
		page, total, err := j.employeeRepo.List(ctx, filter)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		employees = append(employees, page...)
		if len(page) == 0 || int64(len(employees)) >= total {
			break
		}
		filter.Page++
	}

	now := j.now().UTC()
	y, m, d := now.Date()
	yesterday := time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	dayEnd := yesterday.Add(24*time.Hour - time.Second)

	rec := attendanceservice.NewReconstructor()
	rec.StandardSeconds = int64(j.standardHours) * 3600

	anomalyCount := 0
	for _, e := range employees {
		events, err := j.activityRepo.ListByEmployeeAndRange(ctx, e.ID, yesterday, dayEnd)
		if err != nil {
			slog.Error("Cron: Failed to load activity for employee",
				"employee_id", e.ID, "error", err)
			continue
		}
		if len(events) == 0 {
			continue
		}

		session := rec.Reconstruct(yesterday, events, now)
		for _, anomaly := range session.Anomalies {
			anomalyCount++
			slog.Warn("Cron: Attendance anomaly detected",
				"employee_id", e.ID,
				"date", yesterday.Format("2006-01-02"),
				"activity_type", string(anomaly.Type),
				"activity_time", anomaly.Time.Format(time.RFC3339),
				"reason", anomaly.Reason,
			)
		}
	}

	slog.Info("Cron: Attendance anomaly audit completed",
		"employees_checked", len(employees),
		"anomalies", anomalyCount,
	)
	return nil
}
