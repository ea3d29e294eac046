package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

type PayrollRepository interface {
	Create(ctx context.Context, p Payslip) (Payslip, error)
	GetByEmployeeAndPeriod(ctx context.Context, employeeID int64, year, month int) (*Payslip, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]Payslip, error)

	// WithinTransaction runs fn with a context bound to one database
	// transaction; repository calls made through that context share it and
	// commit or roll back together.
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// GetBaseSalary reads the employee's configured monthly salary and
	// allowance/deduction rates. Returns ErrNoSalaryOnFile when unset.
	GetBaseSalary(ctx context.Context, employeeID int64) (basic, allowances, deductions decimal.Decimal, err error)
}
