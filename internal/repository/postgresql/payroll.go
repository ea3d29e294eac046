package postgresql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"github.com/emsuite/ems-backend-go/internal/domain/payroll"
	"github.com/emsuite/ems-backend-go/internal/pkg/database"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

// Create implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) Create(ctx context.Context, p payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (id, employee_id, period_year, period_month, basic_salary, allowances, deductions, net_pay)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, employee_id, period_year, period_month, basic_salary, allowances, deductions, net_pay, generated_at
	`

	var created payroll.Payslip
	err := q.QueryRow(ctx, query,
		p.ID,
		p.EmployeeID,
		p.PeriodYear,
		p.PeriodMonth,
		p.BasicSalary,
		p.Allowances,
		p.Deductions,
		p.NetPay,
	).Scan(
		&created.ID,
		&created.EmployeeID,
		&created.PeriodYear,
		&created.PeriodMonth,
		&created.BasicSalary,
		&created.Allowances,
		&created.Deductions,
		&created.NetPay,
		&created.GeneratedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return payroll.Payslip{}, payroll.ErrPayslipExists
		}
		return payroll.Payslip{}, err
	}

	return created, nil
}

// WithinTransaction implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, "tx", tx))
	})
}

// GetByEmployeeAndPeriod implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetByEmployeeAndPeriod(ctx context.Context, employeeID int64, year, month int) (*payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, period_year, period_month, basic_salary, allowances, deductions, net_pay, generated_at
		FROM payslips
		WHERE employee_id = $1 AND period_year = $2 AND period_month = $3
	`

	var p payroll.Payslip
	err := q.QueryRow(ctx, query, employeeID, year, month).Scan(
		&p.ID,
		&p.EmployeeID,
		&p.PeriodYear,
		&p.PeriodMonth,
		&p.BasicSalary,
		&p.Allowances,
		&p.Deductions,
		&p.NetPay,
		&p.GeneratedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, payroll.ErrPayslipNotFound
		}
		return nil, err
	}

	return &p, nil
}

// ListByEmployee implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) ListByEmployee(ctx context.Context, employeeID int64) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.employee_id, p.period_year, p.period_month, p.basic_salary, p.allowances,
		       p.deductions, p.net_pay, p.generated_at,
		       e.first_name || ' ' || e.last_name AS employee_name
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.employee_id = $1
		ORDER BY p.period_year DESC, p.period_month DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payslips []payroll.Payslip
	for rows.Next() {
		var p payroll.Payslip
		if err := rows.Scan(
			&p.ID,
			&p.EmployeeID,
			&p.PeriodYear,
			&p.PeriodMonth,
			&p.BasicSalary,
			&p.Allowances,
			&p.Deductions,
			&p.NetPay,
			&p.GeneratedAt,
			&p.EmployeeName,
		); err != nil {
			return nil, err
		}
		payslips = append(payslips, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return payslips, nil
}

// GetBaseSalary implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetBaseSalary(ctx context.Context, employeeID int64) (basic, allowances, deductions decimal.Decimal, err error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT basic_salary, allowances, deductions
		FROM employee_salaries
		WHERE employee_id = $1
	`

	err = q.QueryRow(ctx, query, employeeID).Scan(&basic, &allowances, &deductions)
	if err != nil {
		if err == pgx.ErrNoRows {
			return decimal.Zero, decimal.Zero, decimal.Zero, payroll.ErrNoSalaryOnFile
		}
		return decimal.Zero, decimal.Zero, decimal.Zero, err
	}

	return basic, allowances, deductions, nil
}
