package report

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emsuite/ems-backend-go/internal/domain/attendance"
	"github.com/emsuite/ems-backend-go/internal/domain/employee"
	"github.com/emsuite/ems-backend-go/internal/domain/report"
	"github.com/emsuite/ems-backend-go/internal/domain/task"
)

const testEmployeeID = int64(42)

type fakeActivityRepo struct {
	events []attendance.ActivityEvent
}

func (f *fakeActivityRepo) Create(_ context.Context, ev attendance.ActivityEvent) (attendance.ActivityEvent, error) {
	f.events = append(f.events, ev)
	return ev, nil
}

func (f *fakeActivityRepo) ListByEmployeeAndRange(_ context.Context, employeeID int64, start, end time.Time) ([]attendance.ActivityEvent, error) {
	var out []attendance.ActivityEvent
	for _, ev := range f.events {
		if ev.EmployeeID != employeeID || ev.Time.Before(start) || ev.Time.After(end) {
			continue
		}
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, nil
}

func (f *fakeActivityRepo) ListRecent(_ context.Context, _ int64, _ int) ([]attendance.ActivityEvent, error) {
	return nil, nil
}

type fakeEmployeeRepo struct {
	timings employee.JobTimings
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id int64) (employee.Employee, error) {
	if id != testEmployeeID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id, FirstName: "Dana", LastName: "Reyes"}, nil
}

func (f *fakeEmployeeRepo) GetByUserID(_ context.Context, _ string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context, _ employee.Filter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, _ employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepo) GetJobTimings(_ context.Context, _ int64) (employee.JobTimings, error) {
	return f.timings, nil
}

type fakeTaskRepo struct {
	counts map[string]task.DayCounts
}

func (f *fakeTaskRepo) Create(_ context.Context, t task.Task) (task.Task, error) { return t, nil }

func (f *fakeTaskRepo) GetByID(_ context.Context, _ string) (task.Task, error) {
	return task.Task{}, task.ErrTaskNotFound
}

func (f *fakeTaskRepo) ListByEmployee(_ context.Context, _ int64) ([]task.Task, error) {
	return nil, nil
}

func (f *fakeTaskRepo) ListDueOn(_ context.Context, _ int64, _ time.Time) ([]task.Task, error) {
	return nil, nil
}

func (f *fakeTaskRepo) UpdateStatus(_ context.Context, _ string, _ task.TaskStatus) error {
	return nil
}

func (f *fakeTaskRepo) CountByEmployeeAndDay(_ context.Context, _ int64, day time.Time) (task.DayCounts, error) {
	return f.counts[day.Format("2006-01-02")], nil
}

func seedDay(repo *fakeActivityRepo, date string, pairs ...[2]string) {
	day, _ := time.Parse("2006-01-02", date)
	add := func(rawType, clock string) {
		t, _ := time.Parse("15:04", clock)
		repo.events = append(repo.events, attendance.ActivityEvent{
			EmployeeID: testEmployeeID,
			RawType:    rawType,
			Time:       day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute),
		})
	}
	for _, p := range pairs {
		add(p[0], p[1])
	}
}

func newTestService(activities *fakeActivityRepo, tasks *fakeTaskRepo, now time.Time) *Service {
	svc := NewService(activities, &fakeEmployeeRepo{}, tasks, 8, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return now }
	return svc
}

func TestHours_TrailingWeekWithSparseDays(t *testing.T) {
	now := time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC)
	activities := &fakeActivityRepo{}
	// Two worked days inside the trailing week; the rest are empty.
	seedDay(activities, "2025-03-11",
		[2]string{"CHECK-IN", "09:00"},
		[2]string{"BREAK START", "12:00"},
		[2]string{"BREAK END", "13:00"},
		[2]string{"CHECK-OUT", "18:00"},
	)
	seedDay(activities, "2025-03-13",
		[2]string{"CHECK-IN", "09:00"},
		[2]string{"CHECK-OUT", "19:00"},
	)
	tasks := &fakeTaskRepo{counts: map[string]task.DayCounts{
		"2025-03-11": {Total: 3, Completed: 2},
	}}
	svc := newTestService(activities, tasks, now)

	rep, err := svc.Hours(context.Background(), testEmployeeID, report.Query{Period: report.PeriodWeek})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", rep.StartDate)
	assert.Equal(t, "2025-03-16", rep.EndDate)
	require.Len(t, rep.DailyBreakdown, 2)
	assert.Equal(t, 2, rep.DaysAnalyzed)

	first := rep.DailyBreakdown[0]
	assert.Equal(t, "2025-03-11", first.Date)
	assert.InDelta(t, 8.0, first.WorkingHours, 0.001)
	assert.InDelta(t, 1.0, first.BreakTime, 0.001)
	assert.Zero(t, first.Overtime)
	assert.Equal(t, 3, first.TotalTasks)
	assert.Equal(t, 2, first.TasksCompleted)

	second := rep.DailyBreakdown[1]
	assert.Equal(t, "2025-03-13", second.Date)
	assert.InDelta(t, 10.0, second.WorkingHours, 0.001)
	assert.InDelta(t, 2.0, second.Overtime, 0.001)

	assert.InDelta(t, 18.0, rep.TotalWorkingHours, 0.001)
	assert.InDelta(t, 1.0, rep.TotalBreakTime, 0.001)
	assert.InDelta(t, 2.0, rep.TotalOvertime, 0.001)
	assert.InDelta(t, 0.5, rep.AvgBreakTime, 0.001)
	assert.InDelta(t, 1.0, rep.AvgOvertime, 0.001)
}

func TestHours_TaskOnlyDayIncluded(t *testing.T) {
	now := time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC)
	tasks := &fakeTaskRepo{counts: map[string]task.DayCounts{
		"2025-03-12": {Total: 1, Completed: 1},
	}}
	svc := newTestService(&fakeActivityRepo{}, tasks, now)

	rep, err := svc.Hours(context.Background(), testEmployeeID, report.Query{Period: report.PeriodWeek})
	require.NoError(t, err)

	require.Len(t, rep.DailyBreakdown, 1)
	assert.Equal(t, "2025-03-12", rep.DailyBreakdown[0].Date)
	assert.Zero(t, rep.DailyBreakdown[0].WorkingHours)
	assert.Equal(t, 1, rep.DailyBreakdown[0].TotalTasks)
}

func TestHours_ExplicitRangeWinsOverPeriod(t *testing.T) {
	now := time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeActivityRepo{}, &fakeTaskRepo{}, now)

	rep, err := svc.Hours(context.Background(), testEmployeeID, report.Query{
		Period:    report.PeriodQuarter,
		StartDate: "2025-03-01",
		EndDate:   "2025-03-05",
	})
	require.NoError(t, err)

	assert.Equal(t, "2025-03-01", rep.StartDate)
	assert.Equal(t, "2025-03-05", rep.EndDate)
	assert.Equal(t, "custom", rep.Period)
	assert.Zero(t, rep.DaysAnalyzed)
}

func TestHours_InvalidQuery(t *testing.T) {
	now := time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeActivityRepo{}, &fakeTaskRepo{}, now)

	_, err := svc.Hours(context.Background(), testEmployeeID, report.Query{Period: "fortnight"})
	assert.Error(t, err)

	_, err = svc.Hours(context.Background(), testEmployeeID, report.Query{
		StartDate: "2025-03-10",
		EndDate:   "2025-03-01",
	})
	assert.Error(t, err)
}

func TestManHours_ProductivityAndUtilization(t *testing.T) {
	now := time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC)
	activities := &fakeActivityRepo{}
	// Day one: 10h clocked, 1h break -> 9h net, productivity 87.
	seedDay(activities, "2025-03-11",
		[2]string{"CHECK-IN", "09:00"},
		[2]string{"BREAK START", "12:00"},
		[2]string{"BREAK END", "13:00"},
		[2]string{"CHECK-OUT", "19:00"},
	)
	// Day two: 8.5h clocked, 0.5h break -> 8h net, productivity 85.
	seedDay(activities, "2025-03-12",
		[2]string{"CHECK-IN", "09:00"},
		[2]string{"BREAK START", "12:00"},
		[2]string{"BREAK END", "12:30"},
		[2]string{"CHECK-OUT", "17:30"},
	)
	svc := newTestService(activities, &fakeTaskRepo{}, now)

	rep, err := svc.ManHours(context.Background(), testEmployeeID, report.Query{Period: report.PeriodWeek})
	require.NoError(t, err)

	require.Len(t, rep.Entries, 2)
	assert.Equal(t, 2, rep.DaysAnalyzed)
	assert.Equal(t, "Dana Reyes", rep.EmployeeName)
	assert.Equal(t, "week", rep.Period)

	first := rep.Entries[0]
	assert.InDelta(t, 9.0, first.WorkingHours, 0.001)
	assert.InDelta(t, 87.0, first.Productivity, 0.001)
	assert.InDelta(t, 100.0, first.Utilization, 0.001)
	assert.InDelta(t, 7.83, first.ManHours, 0.001)

	second := rep.Entries[1]
	assert.InDelta(t, 8.0, second.WorkingHours, 0.001)
	assert.InDelta(t, 85.0, second.Productivity, 0.001)
	assert.InDelta(t, 6.8, second.ManHours, 0.001)

	assert.InDelta(t, 17.0, rep.TotalWorkingHours, 0.001)
	assert.InDelta(t, 14.63, rep.TotalManHours, 0.001)
	assert.InDelta(t, 86.0, rep.AvgProductivity, 0.001)
	// 17h worked against 16h allotted across two standard days.
	assert.InDelta(t, 100.0, rep.OverallUtilization, 0.001)
	assert.InDelta(t, 1.0, rep.TotalOvertime, 0.001)
}

func TestManHours_LongBreaksDragProductivity(t *testing.T) {
	now := time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC)
	activities := &fakeActivityRepo{}
	// 4h net with 4h of breaks: productivity floors at 60.
	seedDay(activities, "2025-03-11",
		[2]string{"CHECK-IN", "09:00"},
		[2]string{"BREAK START", "11:00"},
		[2]string{"BREAK END", "15:00"},
		[2]string{"CHECK-OUT", "17:00"},
	)
	svc := newTestService(activities, &fakeTaskRepo{}, now)

	rep, err := svc.ManHours(context.Background(), testEmployeeID, report.Query{Period: report.PeriodWeek})
	require.NoError(t, err)

	require.Len(t, rep.Entries, 1)
	assert.InDelta(t, 60.0, rep.Entries[0].Productivity, 0.001)
	assert.InDelta(t, 50.0, rep.Entries[0].Utilization, 0.001)
	assert.InDelta(t, 2.4, rep.Entries[0].ManHours, 0.001)
	assert.Zero(t, rep.TotalOvertime)
}

func TestManHours_NoActivity(t *testing.T) {
	now := time.Date(2025, 3, 16, 12, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeActivityRepo{}, &fakeTaskRepo{}, now)

	rep, err := svc.ManHours(context.Background(), testEmployeeID, report.Query{Period: report.PeriodMonth})
	require.NoError(t, err)

	assert.Empty(t, rep.Entries)
	assert.Zero(t, rep.DaysAnalyzed)
	assert.Zero(t, rep.OverallUtilization)
}
