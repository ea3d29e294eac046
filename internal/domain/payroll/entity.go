package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type Payslip struct {
	ID          string
	EmployeeID  int64
	PeriodYear  int
	PeriodMonth int
	BasicSalary decimal.Decimal
	Allowances  decimal.Decimal
	Deductions  decimal.Decimal
	NetPay      decimal.Decimal
	GeneratedAt time.Time

	// Joined for listings
	EmployeeName *string
}
