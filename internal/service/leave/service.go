package leave

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/emsuite/ems-backend-go/internal/domain/auth"
	"github.com/emsuite/ems-backend-go/internal/domain/leave"
	"github.com/emsuite/ems-backend-go/internal/pkg/validator"
)

type Service struct {
	leaves leave.LeaveRepository
	logger *slog.Logger

	now func() time.Time
}

func NewService(leaves leave.LeaveRepository, logger *slog.Logger) *Service {
	return &Service{
		leaves: leaves,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) Apply(ctx context.Context, req leave.ApplyRequest) (leave.LeaveResponse, error) {
	employeeID, err := auth.EmployeeFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)
	if end.Before(start) {
		return leave.LeaveResponse{}, leave.ErrInvalidDateRange
	}

	created, err := s.leaves.Create(ctx, leave.LeaveRequest{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Type:       leave.LeaveType(req.Type),
		StartDate:  start,
		EndDate:    end,
		Days:       int(end.Sub(start).Hours()/24) + 1,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
		CreatedAt:  s.now(),
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	s.logger.Info("leave request submitted",
		slog.Int64("employee_id", employeeID),
		slog.String("leave_id", created.ID),
		slog.Int("days", created.Days),
	)
	return toResponse(created), nil
}

func (s *Service) ListMine(ctx context.Context, filter leave.Filter) (leave.ListResponse, error) {
	employeeID, err := auth.EmployeeFromContext(ctx)
	if err != nil {
		return leave.ListResponse{}, err
	}

	if err := filter.Validate(); err != nil {
		return leave.ListResponse{}, err
	}

	leaves, total, err := s.leaves.ListByEmployee(ctx, employeeID, filter)
	if err != nil {
		return leave.ListResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return toListResponse(leaves, total, filter), nil
}

func (s *Service) ListAll(ctx context.Context, filter leave.Filter) (leave.ListResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListResponse{}, err
	}

	leaves, total, err := s.leaves.List(ctx, filter)
	if err != nil {
		return leave.ListResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return toListResponse(leaves, total, filter), nil
}

func (s *Service) Approve(ctx context.Context, req leave.ReviewRequest) (leave.LeaveResponse, error) {
	return s.review(ctx, req, leave.StatusApproved)
}

func (s *Service) Reject(ctx context.Context, req leave.ReviewRequest) (leave.LeaveResponse, error) {
	return s.review(ctx, req, leave.StatusRejected)
}

// review moves a pending request to its final status. Processed requests are
// immutable: approving twice or flipping a rejection is refused.
func (s *Service) review(ctx context.Context, req leave.ReviewRequest, status leave.Status) (leave.LeaveResponse, error) {
	reviewerID, _, err := auth.UserFromContext(ctx)
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	lr, err := s.leaves.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if lr.Status != leave.StatusPending {
		return leave.LeaveResponse{}, leave.ErrLeaveAlreadyProcessed
	}

	now := s.now()
	lr.Status = status
	lr.ReviewedBy = &reviewerID
	lr.ReviewedAt = &now
	lr.ReviewNote = req.Note

	if err := s.leaves.Update(ctx, lr); err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to update leave request: %w", err)
	}

	s.logger.Info("leave request reviewed",
		slog.String("leave_id", lr.ID),
		slog.String("status", string(status)),
		slog.String("reviewed_by", reviewerID),
	)
	return toResponse(lr), nil
}

func toResponse(lr leave.LeaveRequest) leave.LeaveResponse {
	resp := leave.LeaveResponse{
		ID:           lr.ID,
		EmployeeID:   lr.EmployeeID,
		EmployeeName: lr.EmployeeName,
		Type:         string(lr.Type),
		StartDate:    lr.StartDate.Format("2006-01-02"),
		EndDate:      lr.EndDate.Format("2006-01-02"),
		Days:         lr.Days,
		Reason:       lr.Reason,
		Status:       string(lr.Status),
		ReviewedBy:   lr.ReviewedBy,
		ReviewNote:   lr.ReviewNote,
		CreatedAt:    lr.CreatedAt.Format(time.RFC3339),
	}
	if lr.ReviewedAt != nil {
		reviewed := lr.ReviewedAt.Format(time.RFC3339)
		resp.ReviewedAt = &reviewed
	}
	return resp
}

func toListResponse(leaves []leave.LeaveRequest, total int64, filter leave.Filter) leave.ListResponse {
	resp := leave.ListResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Leaves:     make([]leave.LeaveResponse, 0, len(leaves)),
	}
	for _, lr := range leaves {
		resp.Leaves = append(resp.Leaves, toResponse(lr))
	}
	return resp
}
