package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emsuite/ems-backend-go/internal/config"
	"github.com/emsuite/ems-backend-go/internal/domain/attendance"
	"github.com/emsuite/ems-backend-go/internal/domain/auth"
	"github.com/emsuite/ems-backend-go/internal/domain/employee"
)

type Service struct {
	activities attendance.ActivityEventRepository
	employees  employee.EmployeeRepository
	workday    config.WorkdayConfig
	logger     *slog.Logger

	// now is swappable in tests.
	now func() time.Time
}

func NewService(
	activities attendance.ActivityEventRepository,
	employees employee.EmployeeRepository,
	workday config.WorkdayConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		activities: activities,
		employees:  employees,
		workday:    workday,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *Service) CheckIn(ctx context.Context) (attendance.ActivityResponse, error) {
	return s.recordGuarded(ctx, attendance.ActivityCheckIn, func(st attendance.LiveStatus) error {
		if st.AttendanceStatus == attendance.StatusCheckedIn || st.AttendanceStatus == attendance.StatusOnBreak {
			return attendance.ErrAlreadyCheckedIn
		}
		return nil
	})
}

func (s *Service) CheckOut(ctx context.Context) (attendance.ActivityResponse, error) {
	return s.recordGuarded(ctx, attendance.ActivityCheckOut, func(st attendance.LiveStatus) error {
		if st.AttendanceStatus != attendance.StatusCheckedIn && st.AttendanceStatus != attendance.StatusOnBreak {
			return attendance.ErrNotCheckedIn
		}
		return nil
	})
}

func (s *Service) StartBreak(ctx context.Context) (attendance.ActivityResponse, error) {
	return s.recordGuarded(ctx, attendance.ActivityBreakStart, func(st attendance.LiveStatus) error {
		if st.AttendanceStatus == attendance.StatusOnBreak {
			return attendance.ErrAlreadyOnBreak
		}
		if st.AttendanceStatus != attendance.StatusCheckedIn {
			return attendance.ErrNotCheckedIn
		}
		return nil
	})
}

func (s *Service) EndBreak(ctx context.Context) (attendance.ActivityResponse, error) {
	return s.recordGuarded(ctx, attendance.ActivityBreakEnd, func(st attendance.LiveStatus) error {
		if st.AttendanceStatus != attendance.StatusOnBreak {
			return attendance.ErrNotOnBreak
		}
		return nil
	})
}

// recordGuarded appends one canonical activity event after checking the
// employee's live status against the action's precondition. The guard is
// advisory: even if a stale event slips through, reconstruction tolerates it
// as an anomaly rather than corrupting totals.
func (s *Service) recordGuarded(
	ctx context.Context,
	activityType attendance.ActivityType,
	guard func(attendance.LiveStatus) error,
) (attendance.ActivityResponse, error) {
	employeeID, err := auth.EmployeeFromContext(ctx)
	if err != nil {
		return attendance.ActivityResponse{}, err
	}

	now := s.now()
	events, err := s.todayEvents(ctx, employeeID, now)
	if err != nil {
		return attendance.ActivityResponse{}, err
	}

	rec := s.reconstructorFor(ctx, employeeID)
	if err := guard(rec.LiveStatus(events, now)); err != nil {
		return attendance.ActivityResponse{}, err
	}

	created, err := s.activities.Create(ctx, attendance.ActivityEvent{
		EmployeeID: employeeID,
		RawType:    string(activityType),
		Type:       activityType,
		Time:       now,
	})
	if err != nil {
		return attendance.ActivityResponse{}, fmt.Errorf("failed to record activity: %w", err)
	}

	s.logger.Info("activity recorded",
		slog.Int64("employee_id", employeeID),
		slog.String("activity_type", string(activityType)),
	)

	return toActivityResponse(created), nil
}

func (s *Service) RecordActivity(ctx context.Context, req attendance.RecordActivityRequest) (attendance.ActivityResponse, error) {
	employeeID, err := auth.EmployeeFromContext(ctx)
	if err != nil {
		return attendance.ActivityResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return attendance.ActivityResponse{}, err
	}

	activityTime := s.now()
	if req.ActivityTime != "" {
		parsed, err := time.Parse(time.RFC3339, req.ActivityTime)
		if err != nil {
			return attendance.ActivityResponse{}, fmt.Errorf("invalid activity_time: %w", err)
		}
		activityTime = parsed
	}

	created, err := s.activities.Create(ctx, attendance.ActivityEvent{
		EmployeeID:      employeeID,
		RawType:         req.ActivityType,
		Type:            attendance.ParseActivityType(req.ActivityType),
		Time:            activityTime,
		DurationMinutes: req.DurationMinutes,
		Description:     req.Description,
	})
	if err != nil {
		return attendance.ActivityResponse{}, fmt.Errorf("failed to record activity: %w", err)
	}

	return toActivityResponse(created), nil
}

func (s *Service) ListActivity(ctx context.Context, limit int) ([]attendance.ActivityResponse, error) {
	employeeID, err := auth.EmployeeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}

	events, err := s.activities.ListRecent(ctx, employeeID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}

	responses := make([]attendance.ActivityResponse, 0, len(events))
	for _, ev := range events {
		responses = append(responses, toActivityResponse(ev))
	}
	return responses, nil
}

func (s *Service) GetStatus(ctx context.Context) (attendance.StatusResponse, error) {
	employeeID, err := auth.EmployeeFromContext(ctx)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	now := s.now()
	events, err := s.todayEvents(ctx, employeeID, now)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	status := s.reconstructorFor(ctx, employeeID).LiveStatus(events, now)

	resp := attendance.StatusResponse{
		AttendanceStatus: status.AttendanceStatus,
		BreakStatus:      status.BreakStatus,
		ArrivalStatus:    status.ArrivalStatus,
		RunningHours:     RoundHours(status.RunningSeconds),
	}
	if status.LastActivityTime != nil {
		formatted := status.LastActivityTime.Format(time.RFC3339)
		resp.LastActivityTime = &formatted
	}
	return resp, nil
}

func (s *Service) GetDailyHours(ctx context.Context, date string) (attendance.DailyHoursResponse, error) {
	employeeID, err := auth.EmployeeFromContext(ctx)
	if err != nil {
		return attendance.DailyHoursResponse{}, err
	}

	now := s.now()
	day := startOfDay(now)
	if date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, now.Location())
		if err != nil {
			return attendance.DailyHoursResponse{}, fmt.Errorf("invalid date: %w", err)
		}
		day = parsed
	}

	events, err := s.activities.ListByEmployeeAndRange(ctx, employeeID, day, endOfDay(day))
	if err != nil {
		return attendance.DailyHoursResponse{}, fmt.Errorf("failed to load activity: %w", err)
	}

	session := s.reconstructorFor(ctx, employeeID).Reconstruct(day, events, now)

	workHours := RoundHours(session.NetSeconds)
	breakHours := RoundHours(session.BreakSeconds)
	return attendance.DailyHoursResponse{
		Date:         day.Format("2006-01-02"),
		WorkingHours: workHours,
		BreakTime:    breakHours,
		Overtime:     RoundHours(session.OvertimeSeconds),
		ManHours:     ManHours(workHours, Productivity(workHours, breakHours)),
	}, nil
}

// reconstructorFor builds a per-employee Reconstructor from the configured job
// timings. Missing or unparseable configuration falls back to the system
// workday defaults; a configured end time switches the overtime rule over.
func (s *Service) reconstructorFor(ctx context.Context, employeeID int64) Reconstructor {
	rec := NewReconstructor()
	rec.StandardSeconds = int64(s.workday.StandardHours) * 3600
	if d, ok := parseClock(s.workday.DefaultStart); ok {
		rec.ScheduledStart = d
	}

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

func (s *Service) todayEvents(ctx context.Context, employeeID int64, now time.Time) ([]attendance.ActivityEvent, error) {
	day := startOfDay(now)
	events, err := s.activities.ListByEmployeeAndRange(ctx, employeeID, day, endOfDay(day))
	if err != nil {
		return nil, fmt.Errorf("failed to load activity: %w", err)
	}
	return events, nil
}

func toActivityResponse(ev attendance.ActivityEvent) attendance.ActivityResponse {
	return attendance.ActivityResponse{
		ActivityID:      ev.ID,
		EmployeeID:      ev.EmployeeID,
		ActivityType:    string(ev.Type),
		RawType:         ev.RawType,
		Description:     ev.Description,
		ActivityTime:    ev.Time.Format(time.RFC3339),
		DurationMinutes: ev.DurationMinutes,
	}
}

// parseClock reads a "15:04" or "15:04:05" clock string as an offset from
// midnight.
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

func endOfDay(day time.Time) time.Time {
	return day.Add(24*time.Hour - time.Second)
}
