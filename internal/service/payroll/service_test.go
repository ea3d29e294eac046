package payroll

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-chi/jwtauth/v5"

	"github.com/emsuite/ems-backend-go/internal/domain/payroll"
)

type fakePayrollRepo struct {
	mu       sync.Mutex
	payslips map[string]payroll.Payslip // keyed by employee/period
	salaries map[int64][3]decimal.Decimal
	txCalls  int
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		payslips: make(map[string]payroll.Payslip),
		salaries: make(map[int64][3]decimal.Decimal),
	}
}

func periodKey(employeeID int64, year, month int) string {
	return fmt.Sprintf("%d/%04d-%02d", employeeID, year, month)
}

func (f *fakePayrollRepo) Create(_ context.Context, p payroll.Payslip) (payroll.Payslip, error) {
	key := periodKey(p.EmployeeID, p.PeriodYear, p.PeriodMonth)
	if _, exists := f.payslips[key]; exists {
		return payroll.Payslip{}, payroll.ErrPayslipExists
	}
	f.payslips[key] = p
	return p, nil
}

func (f *fakePayrollRepo) GetByEmployeeAndPeriod(_ context.Context, employeeID int64, year, month int) (*payroll.Payslip, error) {
	p, ok := f.payslips[periodKey(employeeID, year, month)]
	if !ok {
		return nil, payroll.ErrPayslipNotFound
	}
	return &p, nil
}

func (f *fakePayrollRepo) ListByEmployee(_ context.Context, employeeID int64) ([]payroll.Payslip, error) {
	var out []payroll.Payslip
	for _, p := range f.payslips {
		if p.EmployeeID == employeeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePayrollRepo) GetBaseSalary(_ context.Context, employeeID int64) (decimal.Decimal, decimal.Decimal, decimal.Decimal, error) {
	s, ok := f.salaries[employeeID]
	if !ok {
		return decimal.Zero, decimal.Zero, decimal.Zero, payroll.ErrNoSalaryOnFile
	}
	return s[0], s[1], s[2], nil
}

// WithinTransaction serializes callers the way row-level locks do on the
// real database.
func (f *fakePayrollRepo) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txCalls++
	return fn(ctx)
}

func seedSalary(repo *fakePayrollRepo, employeeID int64, basic, allowances, deductions string) {
	repo.salaries[employeeID] = [3]decimal.Decimal{
		decimal.RequireFromString(basic),
		decimal.RequireFromString(allowances),
		decimal.RequireFromString(deductions),
	}
}

func authedContext(t *testing.T) context.Context {
	t.Helper()
	token, err := jwt.NewBuilder().
		Claim("user_id", "user-1").
		Claim("employee_id", int64(7)).
		Claim("role", "admin").
		Build()
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(repo *fakePayrollRepo) *Service {
	svc := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return time.Date(2026, 8, 31, 18, 0, 0, 0, time.UTC) }
	return svc
}

func TestGenerate_Success(t *testing.T) {
	repo := newFakePayrollRepo()
	seedSalary(repo, 7, "5000.00", "750.50", "320.25")
	svc := newTestService(repo)

	resp, err := svc.Generate(authedContext(t), payroll.GenerateRequest{
		EmployeeID:  7,
		PeriodYear:  2026,
		PeriodMonth: 8,
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-08", resp.Period)
	assert.Equal(t, "5000.00", resp.BasicSalary)
	assert.Equal(t, "750.50", resp.Allowances)
	assert.Equal(t, "320.25", resp.Deductions)
	assert.Equal(t, "5430.25", resp.NetPay)
	assert.Equal(t, 1, repo.txCalls)
}

func TestGenerate_DuplicatePeriod(t *testing.T) {
	repo := newFakePayrollRepo()
	seedSalary(repo, 7, "5000.00", "0", "0")
	svc := newTestService(repo)

	_, err := svc.Generate(authedContext(t), payroll.GenerateRequest{
		EmployeeID:  7,
		PeriodYear:  2026,
		PeriodMonth: 8,
	})
	require.NoError(t, err)

	_, err = svc.Generate(authedContext(t), payroll.GenerateRequest{
		EmployeeID:  7,
		PeriodYear:  2026,
		PeriodMonth: 8,
	})
	assert.ErrorIs(t, err, payroll.ErrPayslipExists)
	assert.Len(t, repo.payslips, 1)
}

func TestGenerate_ConcurrentSamePeriod(t *testing.T) {
	repo := newFakePayrollRepo()
	seedSalary(repo, 7, "5000.00", "0", "0")
	svc := newTestService(repo)

	req := payroll.GenerateRequest{EmployeeID: 7, PeriodYear: 2026, PeriodMonth: 8}
	ctx := authedContext(t)

	errs := make(chan error, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Generate(ctx, req)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var failures int
	for err := range errs {
		if err != nil {
			assert.ErrorIs(t, err, payroll.ErrPayslipExists)
			failures++
		}
	}
	assert.Equal(t, 1, failures)
	assert.Len(t, repo.payslips, 1)
}

func TestGenerate_NoSalaryOnFile(t *testing.T) {
	repo := newFakePayrollRepo()
	svc := newTestService(repo)

	_, err := svc.Generate(authedContext(t), payroll.GenerateRequest{
		EmployeeID:  7,
		PeriodYear:  2026,
		PeriodMonth: 8,
	})
	assert.ErrorIs(t, err, payroll.ErrNoSalaryOnFile)
	assert.Empty(t, repo.payslips)
}

func TestGenerate_InvalidPeriod(t *testing.T) {
	svc := newTestService(newFakePayrollRepo())

	_, err := svc.Generate(authedContext(t), payroll.GenerateRequest{
		EmployeeID:  7,
		PeriodYear:  2026,
		PeriodMonth: 13,
	})
	assert.Error(t, err)
}

func TestListMine(t *testing.T) {
	repo := newFakePayrollRepo()
	seedSalary(repo, 7, "5000.00", "0", "0")
	svc := newTestService(repo)

	_, err := svc.Generate(authedContext(t), payroll.GenerateRequest{
		EmployeeID:  7,
		PeriodYear:  2026,
		PeriodMonth: 7,
	})
	require.NoError(t, err)

	out, err := svc.ListMine(authedContext(t))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "2026-07", out[0].Period)
}
