package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/emsuite/ems-backend-go/internal/domain/auth"
	"github.com/emsuite/ems-backend-go/internal/domain/payroll"
)

type Service struct {
	payslips payroll.PayrollRepository
	logger   *slog.Logger

	now func() time.Time
}

func NewService(payslips payroll.PayrollRepository, logger *slog.Logger) *Service {
	return &Service{
		payslips: payslips,
		logger:   logger,
		now:      time.Now,
	}
}

// Generate creates the payslip for one employee-period from the salary on
// file. Generation is idempotent per period: a second attempt for the same
// month is refused rather than silently duplicated. The existence check and
// the insert run in one transaction so concurrent requests cannot both pass
// the check.
func (s *Service) Generate(ctx context.Context, req payroll.GenerateRequest) (payroll.PayslipResponse, error) {
	if _, _, err := auth.UserFromContext(ctx); err != nil {
		return payroll.PayslipResponse{}, err
	}

	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	var created payroll.Payslip
	err := s.payslips.WithinTransaction(ctx, func(txCtx context.Context) error {
		existing, err := s.payslips.GetByEmployeeAndPeriod(txCtx, req.EmployeeID, req.PeriodYear, req.PeriodMonth)
		if err != nil && !errors.Is(err, payroll.ErrPayslipNotFound) {
			return fmt.Errorf("failed to check existing payslip: %w", err)
		}
		if existing != nil {
			return payroll.ErrPayslipExists
		}

		basic, allowances, deductions, err := s.payslips.GetBaseSalary(txCtx, req.EmployeeID)
		if err != nil {
			return err
		}

		created, err = s.payslips.Create(txCtx, payroll.Payslip{
			ID:          uuid.NewString(),
			EmployeeID:  req.EmployeeID,
			PeriodYear:  req.PeriodYear,
			PeriodMonth: req.PeriodMonth,
			BasicSalary: basic,
			Allowances:  allowances,
			Deductions:  deductions,
			NetPay:      basic.Add(allowances).Sub(deductions),
			GeneratedAt: s.now(),
		})
		if err != nil {
			return fmt.Errorf("failed to create payslip: %w", err)
		}
		return nil
	})
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	s.logger.Info("payslip generated",
		slog.Int64("employee_id", created.EmployeeID),
		slog.String("payslip_id", created.ID),
		slog.String("period", periodString(created)),
	)
	return toResponse(created), nil
}

func (s *Service) ListMine(ctx context.Context) ([]payroll.PayslipResponse, error) {
	employeeID, err := auth.EmployeeFromContext(ctx)
	if err != nil {
		return nil, err
	}

	payslips, err := s.payslips.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}

	out := make([]payroll.PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		out = append(out, toResponse(p))
	}
	return out, nil
}

func toResponse(p payroll.Payslip) payroll.PayslipResponse {
	return payroll.PayslipResponse{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		EmployeeName: p.EmployeeName,
		Period:       periodString(p),
		BasicSalary:  p.BasicSalary.StringFixed(2),
		Allowances:   p.Allowances.StringFixed(2),
		Deductions:   p.Deductions.StringFixed(2),
		NetPay:       p.NetPay.StringFixed(2),
		GeneratedAt:  p.GeneratedAt.Format(time.RFC3339),
	}
}

func periodString(p payroll.Payslip) string {
	return fmt.Sprintf("%04d-%02d", p.PeriodYear, p.PeriodMonth)
}
