package payroll

import (
	"time"

	"github.com/emsuite/ems-backend-go/internal/pkg/validator"
)

type GenerateRequest struct {
	EmployeeID  int64 `json:"employee_id"`
	PeriodYear  int   `json:"period_year"`
	PeriodMonth int   `json:"period_month"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID <= 0 {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	}
	if r.PeriodYear < 2000 || r.PeriodYear > time.Now().Year()+1 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "period_year is out of range"})
	}
	if r.PeriodMonth < 1 || r.PeriodMonth > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "period_month must be between 1 and 12"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayslipResponse struct {
	ID           string  `json:"id"`
	EmployeeID   int64   `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Period       string  `json:"period"` // YYYY-MM
	BasicSalary  string  `json:"basic_salary"`
	Allowances   string  `json:"allowances"`
	Deductions   string  `json:"deductions"`
	NetPay       string  `json:"net_pay"`
	GeneratedAt  string  `json:"generated_at"`
}
