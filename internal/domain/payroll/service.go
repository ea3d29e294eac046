package payroll

import "context"

type PayrollService interface {
	Generate(ctx context.Context, req GenerateRequest) (PayslipResponse, error)
	ListMine(ctx context.Context) ([]PayslipResponse, error)
}
