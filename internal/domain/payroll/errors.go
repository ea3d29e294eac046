package payroll

import "errors"

var (
	ErrPayslipNotFound = errors.New("payslip not found")
	ErrPayslipExists   = errors.New("payslip already generated for this period")
	ErrNoSalaryOnFile  = errors.New("no salary configured for this employee")
)
