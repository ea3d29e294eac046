package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emsuite/ems-backend-go/internal/domain/attendance"
	"github.com/emsuite/ems-backend-go/internal/domain/employee"
)

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, _ int64) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) GetByUserID(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context, filter employee.Filter) ([]employee.Employee, int64, error) {
	offset := (filter.Page - 1) * filter.Limit
	if offset >= len(f.employees) {
		return nil, int64(len(f.employees)), nil
	}
	end := offset + filter.Limit
	if end > len(f.employees) {
		end = len(f.employees)
	}
	return f.employees[offset:end], int64(len(f.employees)), nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, _ employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepo) GetJobTimings(_ context.Context, _ int64) (employee.JobTimings, error) {
	return employee.JobTimings{}, nil
}

type fakeActivityRepo struct {
	events  map[int64][]attendance.ActivityEvent
	queried map[int64]bool
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{
		events:  make(map[int64][]attendance.ActivityEvent),
		queried: make(map[int64]bool),
	}
}

func (f *fakeActivityRepo) Create(_ context.Context, ev attendance.ActivityEvent) (attendance.ActivityEvent, error) {
	f.events[ev.EmployeeID] = append(f.events[ev.EmployeeID], ev)
	return ev, nil
}

func (f *fakeActivityRepo) ListByEmployeeAndRange(_ context.Context, employeeID int64, _, _ time.Time) ([]attendance.ActivityEvent, error) {
	f.queried[employeeID] = true
	return f.events[employeeID], nil
}

func (f *fakeActivityRepo) ListRecent(_ context.Context, _ int64, _ int) ([]attendance.ActivityEvent, error) {
	return nil, nil
}

func activeEmployees(n int) []employee.Employee {
	out := make([]employee.Employee, n)
	for i := range out {
		out[i] = employee.Employee{ID: int64(i + 1), Status: employee.StatusActive}
	}
	return out
}

func TestAuditAnomalies_CoversAllPages(t *testing.T) {
	employees := &fakeEmployeeRepo{employees: activeEmployees(150)}
	activities := newFakeActivityRepo()
	// An unterminated check-in yesterday for an employee beyond the first
	// page of 100.
	activities.events[142] = []attendance.ActivityEvent{{
		EmployeeID: 142,
		RawType:    "CHECK-IN",
		Time:       time.Date(2025, 3, 9, 9, 0, 0, 0, time.UTC),
	}}

	jobs := NewAttendanceJobs(activities, employees, 8)
	jobs.now = func() time.Time { return time.Date(2025, 3, 10, 0, 15, 0, 0, time.UTC) }

	require.NoError(t, jobs.AuditAnomalies(context.Background()))

	assert.Len(t, activities.queried, 150)
	assert.True(t, activities.queried[142])
	assert.True(t, activities.queried[150])
}

func TestAuditAnomalies_SkipsOutsideMidnightWindow(t *testing.T) {
	employees := &fakeEmployeeRepo{employees: activeEmployees(3)}
	activities := newFakeActivityRepo()

	jobs := NewAttendanceJobs(activities, employees, 8)
	jobs.now = func() time.Time { return time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC) }

	require.NoError(t, jobs.AuditAnomalies(context.Background()))
	assert.Empty(t, activities.queried)
}
