package employee

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/emsuite/ems-backend-go/internal/config"
	attendancedomain "github.com/emsuite/ems-backend-go/internal/domain/attendance"
	"github.com/emsuite/ems-backend-go/internal/domain/auth"
	"github.com/emsuite/ems-backend-go/internal/domain/employee"
	attendanceservice "github.com/emsuite/ems-backend-go/internal/service/attendance"
)

type Service struct {
	employees  employee.EmployeeRepository
	activities attendancedomain.ActivityEventRepository
	workday    config.WorkdayConfig
	logger     *slog.Logger

	now func() time.Time
}

func NewService(
	employees employee.EmployeeRepository,
	activities attendancedomain.ActivityEventRepository,
	workday config.WorkdayConfig,
	logger *slog.Logger,
) *Service {
	return &Service{
		employees:  employees,
		activities: activities,
		workday:    workday,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *Service) GetMyProfile(ctx context.Context) (employee.ProfileResponse, error) {
	employeeID, err := auth.EmployeeFromContext(ctx)
	if err != nil {
		return employee.ProfileResponse{}, err
	}

	e, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return employee.ProfileResponse{}, err
	}
	return s.toProfileResponse(e), nil
}

func (s *Service) UpdateMyProfile(ctx context.Context, req employee.UpdateProfileRequest) (employee.ProfileResponse, error) {
	employeeID, err := auth.EmployeeFromContext(ctx)
	if err != nil {
		return employee.ProfileResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return employee.ProfileResponse{}, err
	}

	e, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		return employee.ProfileResponse{}, err
	}

	if req.FirstName != nil {
		e.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		e.LastName = *req.LastName
	}
	if req.PhoneNumber != nil {
		e.PhoneNumber = req.PhoneNumber
	}
	if req.Position != nil {
		e.Position = req.Position
	}
	if req.Department != nil {
		e.Department = req.Department
	}

	if err := s.employees.Update(ctx, e); err != nil {
		return employee.ProfileResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	s.logger.Info("employee profile updated", slog.Int64("employee_id", employeeID))
	return s.toProfileResponse(e), nil
}

func (s *Service) GetJobTimings(ctx context.Context, employeeID int64) (employee.JobTimingsResponse, error) {
	if _, err := s.employees.GetByID(ctx, employeeID); err != nil {
		return employee.JobTimingsResponse{}, err
	}

	timings, err := s.employees.GetJobTimings(ctx, employeeID)
	if err != nil {
		return employee.JobTimingsResponse{}, fmt.Errorf("failed to load job timings: %w", err)
	}

	resp := employee.JobTimingsResponse{
		EmployeeID:   employeeID,
		JobStartTime: s.workday.DefaultStart,
		JobEndTime:   s.workday.DefaultEnd,
		WorkingDays:  "Mon,Tue,Wed,Thu,Fri",
	}
	if timings.StartTime != nil {
		resp.JobStartTime = *timings.StartTime
	}
	if timings.EndTime != nil {
		resp.JobEndTime = *timings.EndTime
	}
	if timings.WorkingDays != nil {
		resp.WorkingDays = *timings.WorkingDays
	}
	return resp, nil
}

func (s *Service) List(ctx context.Context, filter employee.Filter) (employee.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListResponse{}, err
	}

	employees, total, err := s.employees.List(ctx, filter)
	if err != nil {
		return employee.ListResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	resp := employee.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Employees:  make([]employee.ProfileResponse, 0, len(employees)),
	}
	for _, e := range employees {
		resp.Employees = append(resp.Employees, s.toProfileResponse(e))
	}
	return resp, nil
}

// ListActive derives "who is in right now" from today's activity log. An
// employee appears when their latest recognized event leaves them checked in
// or on break; there is no presence table to drift out of sync.
func (s *Service) ListActive(ctx context.Context) ([]employee.ActiveEmployeeResponse, error) {
	active := "active"
	employees, _, err := s.employees.List(ctx, employee.Filter{Status: &active, Page: 1, Limit: 100})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	now := s.now()
	y, m, d := now.Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Second)

	rec := attendanceservice.NewReconstructor()
	rec.StandardSeconds = int64(s.workday.StandardHours) * 3600

	out := make([]employee.ActiveEmployeeResponse, 0)
	for _, e := range employees {
		events, err := s.activities.ListByEmployeeAndRange(ctx, e.ID, dayStart, dayEnd)
		if err != nil {
			s.logger.Warn("failed to load activity for employee",
				slog.Int64("employee_id", e.ID),
				slog.Any("error", err),
			)
			continue
		}

		status := rec.LiveStatus(events, now)
		if status.AttendanceStatus != attendancedomain.StatusCheckedIn &&
			status.AttendanceStatus != attendancedomain.StatusOnBreak {
			continue
		}

		row := employee.ActiveEmployeeResponse{
			EmployeeID:       e.ID,
			FullName:         e.FullName(),
			Position:         e.Position,
			AttendanceStatus: status.AttendanceStatus,
			BreakStatus:      status.BreakStatus,
		}
		if status.LastActivityTime != nil {
			formatted := status.LastActivityTime.Format(time.RFC3339)
			row.LastActivityTime = &formatted
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *Service) toProfileResponse(e employee.Employee) employee.ProfileResponse {
	resp := employee.ProfileResponse{
		EmployeeID:   e.ID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		FullName:     e.FullName(),
		Email:        e.Email,
		PhoneNumber:  e.PhoneNumber,
		Position:     e.Position,
		Department:   e.Department,
		JobStartTime: s.workday.DefaultStart,
		JobEndTime:   s.workday.DefaultEnd,
		WorkingDays:  "Mon,Tue,Wed,Thu,Fri",
		Status:       string(e.Status),
	}
	if e.JobStartTime != nil {
		resp.JobStartTime = *e.JobStartTime
	}
	if e.JobEndTime != nil {
		resp.JobEndTime = *e.JobEndTime
	}
	if e.WorkingDays != nil {
		resp.WorkingDays = *e.WorkingDays
	}
	if e.HireDate != nil {
		hired := e.HireDate.Format("2006-01-02")
		resp.HireDate = &hired
	}
	return resp
}
