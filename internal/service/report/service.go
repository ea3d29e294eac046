package report

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	attendancedomain "github.com/emsuite/ems-backend-go/internal/domain/attendance"
	"github.com/emsuite/ems-backend-go/internal/domain/employee"
	"github.com/emsuite/ems-backend-go/internal/domain/report"
	"github.com/emsuite/ems-backend-go/internal/domain/task"
	attendanceservice "github.com/emsuite/ems-backend-go/internal/service/attendance"
)

type Service struct {
	activities attendancedomain.ActivityEventRepository
	employees  employee.EmployeeRepository
	tasks      task.TaskRepository
	standard   int // standard workday hours
	logger     *slog.Logger

	now func() time.Time
}

func NewService(
	activities attendancedomain.ActivityEventRepository,
	employees employee.EmployeeRepository,
	tasks task.TaskRepository,
	standardHours int,
	logger *slog.Logger,
) *Service {
	return &Service{
		activities: activities,
		employees:  employees,
		tasks:      tasks,
		standard:   standardHours,
		logger:     logger,
		now:        time.Now,
	}
}

// dayFigures is one reconstructed day inside a report range.
type dayFigures struct {
	date     time.Time
	session  attendancedomain.WorkSession
	work     float64
	breakHrs float64
	overtime float64
}

// Hours builds the daily-breakdown report over the resolved range. Days with
// no recorded hours and no tasks are excluded entirely so averages reflect
// worked days, not calendar days.
func (s *Service) Hours(ctx context.Context, employeeID int64, q report.Query) (report.HoursReport, error) {
	if err := q.Validate(); err != nil {
		return report.HoursReport{}, err
	}

	now := s.now()
	start, end := q.Range(now)

	days, err := s.reconstructRange(ctx, employeeID, start, end, now)
	if err != nil {
		return report.HoursReport{}, err
	}

	rep := report.HoursReport{
		EmployeeID:     employeeID,
		Period:         q.Label(),
		StartDate:      start.Format("2006-01-02"),
		EndDate:        end.Format("2006-01-02"),
		DailyBreakdown: make([]report.DailyBreakdown, 0, len(days)),
	}

	for _, day := range days {
		counts, err := s.tasks.CountByEmployeeAndDay(ctx, employeeID, day.date)
		if err != nil {
			s.logger.Warn("failed to count tasks for day",
				slog.Int64("employee_id", employeeID),
				slog.String("date", day.date.Format("2006-01-02")),
				slog.Any("error", err),
			)
		}

		if day.work == 0 && day.breakHrs == 0 && counts.Total == 0 {
			continue
		}

		rep.DailyBreakdown = append(rep.DailyBreakdown, report.DailyBreakdown{
			Date:           day.date.Format("2006-01-02"),
			WorkingHours:   day.work,
			BreakTime:      day.breakHrs,
			Overtime:       day.overtime,
			ManHours:       attendanceservice.ManHours(day.work, attendanceservice.Productivity(day.work, day.breakHrs)),
			TasksCompleted: counts.Completed,
			TotalTasks:     counts.Total,
		})

		rep.TotalWorkingHours += day.work
		rep.TotalBreakTime += day.breakHrs
		rep.TotalOvertime += day.overtime
	}

	rep.DaysAnalyzed = len(rep.DailyBreakdown)
	rep.TotalWorkingHours = round2(rep.TotalWorkingHours)
	rep.TotalBreakTime = round2(rep.TotalBreakTime)
	rep.TotalOvertime = round2(rep.TotalOvertime)
	if rep.DaysAnalyzed > 0 {
		rep.AvgBreakTime = round2(rep.TotalBreakTime / float64(rep.DaysAnalyzed))
		rep.AvgOvertime = round2(rep.TotalOvertime / float64(rep.DaysAnalyzed))
	}
	return rep, nil
}

// ManHours builds the productivity-weighted effort report. Overtime here is
// range-level: total worked hours beyond the standard-day allotment for the
// days actually worked.
func (s *Service) ManHours(ctx context.Context, employeeID int64, q report.Query) (report.ManHoursReport, error) {
	if err := q.Validate(); err != nil {
		return report.ManHoursReport{}, err
	}

	now := s.now()
	start, end := q.Range(now)

	days, err := s.reconstructRange(ctx, employeeID, start, end, now)
	if err != nil {
		return report.ManHoursReport{}, err
	}

	rep := report.ManHoursReport{
		EmployeeID:   employeeID,
		EmployeeName: s.employeeName(ctx, employeeID),
		Period:       q.Label(),
		StartDate:    start.Format("2006-01-02"),
		EndDate:      end.Format("2006-01-02"),
		Entries:      make([]report.ManHoursEntry, 0, len(days)),
	}

	var productivitySum float64
	for _, day := range days {
		if day.work == 0 && day.breakHrs == 0 {
			continue
		}

		productivity := attendanceservice.Productivity(day.work, day.breakHrs)
		rep.Entries = append(rep.Entries, report.ManHoursEntry{
			Date:         day.date.Format("2006-01-02"),
			WorkingHours: day.work,
			BreakTime:    day.breakHrs,
			Productivity: productivity,
			Utilization:  attendanceservice.Utilization(day.work, float64(s.standard)),
			ManHours:     attendanceservice.ManHours(day.work, productivity),
		})

		rep.TotalWorkingHours += day.work
		productivitySum += productivity
	}

	rep.DaysAnalyzed = len(rep.Entries)
	rep.TotalWorkingHours = round2(rep.TotalWorkingHours)
	for _, e := range rep.Entries {
		rep.TotalManHours += e.ManHours
	}
	rep.TotalManHours = round2(rep.TotalManHours)

	if rep.DaysAnalyzed > 0 {
		rep.AvgProductivity = round2(productivitySum / float64(rep.DaysAnalyzed))

		allotted := float64(rep.DaysAnalyzed * s.standard)
		utilization := rep.TotalWorkingHours / allotted * 100
		if utilization > 100 {
			utilization = 100
		}
		rep.OverallUtilization = round2(utilization)

		if over := rep.TotalWorkingHours - allotted; over > 0 {
			rep.TotalOvertime = round2(over)
		}
	}
	return rep, nil
}

// reconstructRange loads every event in [start, end], buckets by calendar day
// and reconstructs each day once. One query for the whole range, not one per
// day.
func (s *Service) reconstructRange(ctx context.Context, employeeID int64, start, end, now time.Time) ([]dayFigures, error) {
	events, err := s.activities.ListByEmployeeAndRange(ctx, employeeID, start, end.Add(24*time.Hour-time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}

	byDay := make(map[string][]attendancedomain.ActivityEvent)
	for _, ev := range events {
		key := ev.Time.Format("2006-01-02")
		byDay[key] = append(byDay[key], ev)
	}

	rec := s.reconstructorFor(ctx, employeeID)

	var out []dayFigures
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		dayEvents := byDay[day.Format("2006-01-02")]
		if len(dayEvents) == 0 {
			out = append(out, dayFigures{date: day})
			continue
		}

		session := rec.Reconstruct(day, dayEvents, now)
		out = append(out, dayFigures{
			date:     day,
			session:  session,
			work:     attendanceservice.RoundHours(session.NetSeconds),
			breakHrs: attendanceservice.RoundHours(session.BreakSeconds),
			overtime: attendanceservice.RoundHours(session.OvertimeSeconds),
		})
	}
	return out, nil
}

func (s *Service) employeeName(ctx context.Context, employeeID int64) string {
	e, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		s.logger.Warn("failed to load employee for report header",
			slog.Int64("employee_id", employeeID),
			slog.Any("error", err),
		)
		return ""
	}
	return e.FullName()
}

func (s *Service) reconstructorFor(ctx context.Context, employeeID int64) attendanceservice.Reconstructor {
	rec := attendanceservice.NewReconstructor()
	rec.StandardSeconds = int64(s.standard) * 3600

	timings, err := s.employees.GetJobTimings(ctx, employeeID)
	if err != nil {
		s.logger.Warn("failed to load job timings, using defaults",
			slog.Int64("employee_id", employeeID),
			slog.Any("error", err),
		)
		return rec
	}

	if timings.StartTime != nil {
		if d, ok := parseClock(*timings.StartTime); ok {
			rec.ScheduledStart = d
		}
	}
	if timings.EndTime != nil {
		if d, ok := parseClock(*timings.EndTime); ok {
			rec.ScheduledEnd = &d
		}
	}
	return rec
}

func parseClock(s string) (time.Duration, bool) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second, true
		}
	}
	return 0, false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
