package attendance

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-chi/jwtauth/v5"

	"github.com/emsuite/ems-backend-go/internal/config"
	"github.com/emsuite/ems-backend-go/internal/domain/attendance"
	"github.com/emsuite/ems-backend-go/internal/domain/employee"
)

type fakeActivityRepo struct {
	events []attendance.ActivityEvent
	nextID int64
}

func (f *fakeActivityRepo) Create(_ context.Context, ev attendance.ActivityEvent) (attendance.ActivityEvent, error) {
	f.nextID++
	ev.ID = f.nextID
	ev.CreatedAt = ev.Time
	f.events = append(f.events, ev)
	return ev, nil
}

func (f *fakeActivityRepo) ListByEmployeeAndRange(_ context.Context, employeeID int64, start, end time.Time) ([]attendance.ActivityEvent, error) {
	var out []attendance.ActivityEvent
	for _, ev := range f.events {
		if ev.EmployeeID != employeeID {
			continue
		}
		if ev.Time.Before(start) || ev.Time.After(end) {
			continue
		}
		out = append(out, ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })
	return out, nil
}

func (f *fakeActivityRepo) ListRecent(_ context.Context, employeeID int64, limit int) ([]attendance.ActivityEvent, error) {
	var out []attendance.ActivityEvent
	for _, ev := range f.events {
		if ev.EmployeeID == employeeID {
			out = append(out, ev)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time.After(out[j].Time) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	timings employee.JobTimings
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

func (f *fakeEmployeeRepo) List(_ context.Context, _ employee.Filter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, _ employee.Employee) error {
	return nil
}

func (f *fakeEmployeeRepo) GetJobTimings(_ context.Context, _ int64) (employee.JobTimings, error) {
	return f.timings, nil
}

const testEmployeeID = int64(7)

func authedContext(t *testing.T) context.Context {
	t.Helper()
	token, err := jwt.NewBuilder().
		Claim("user_id", "user-1").
		Claim("employee_id", testEmployeeID).
		Claim("role", "employee").
		Build()
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(activities *fakeActivityRepo, employees *fakeEmployeeRepo, now time.Time) *Service {
	svc := NewService(activities, employees, config.WorkdayConfig{
		StandardHours: 8,
		DefaultStart:  "09:00",
		DefaultEnd:    "18:00",
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return now }
	return svc
}

func seedEvent(repo *fakeActivityRepo, rawType string, day time.Time, clock string) {
	t, _ := time.Parse("15:04", clock)
	repo.nextID++
	repo.events = append(repo.events, attendance.ActivityEvent{
		ID:         repo.nextID,
		EmployeeID: testEmployeeID,
		RawType:    rawType,
		Type:       attendance.ParseActivityType(rawType),
		Time:       day.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute),
	})
}

func TestCheckIn_FirstOfDay(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	activities := &fakeActivityRepo{}
	svc := newTestService(activities, &fakeEmployeeRepo{}, day.Add(9*time.Hour))

	resp, err := svc.CheckIn(authedContext(t))
	require.NoError(t, err)

	assert.Equal(t, string(attendance.ActivityCheckIn), resp.ActivityType)
	assert.Equal(t, testEmployeeID, resp.EmployeeID)
	assert.Len(t, activities.events, 1)
}

func TestCheckIn_AlreadyCheckedIn(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	activities := &fakeActivityRepo{}
	seedEvent(activities, "CHECK-IN", day, "09:00")
	svc := newTestService(activities, &fakeEmployeeRepo{}, day.Add(10*time.Hour))

	_, err := svc.CheckIn(authedContext(t))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckOut_NotCheckedIn(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeActivityRepo{}, &fakeEmployeeRepo{}, day.Add(10*time.Hour))

	_, err := svc.CheckOut(authedContext(t))
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestBreakLifecycle(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	activities := &fakeActivityRepo{}
	seedEvent(activities, "CHECK-IN", day, "09:00")
	svc := newTestService(activities, &fakeEmployeeRepo{}, day.Add(12*time.Hour))
	ctx := authedContext(t)

	_, err := svc.EndBreak(ctx)
	assert.ErrorIs(t, err, attendance.ErrNotOnBreak)

	_, err = svc.StartBreak(ctx)
	require.NoError(t, err)

	_, err = svc.StartBreak(ctx)
	assert.ErrorIs(t, err, attendance.ErrAlreadyOnBreak)

	_, err = svc.EndBreak(ctx)
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx)
	require.NoError(t, err)

	_, err = svc.CheckOut(ctx)
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestGetStatus_LateArrivalWithRunningTime(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	activities := &fakeActivityRepo{}
	seedEvent(activities, "Check In", day, "09:30")
	svc := newTestService(activities, &fakeEmployeeRepo{}, day.Add(10*time.Hour))

	status, err := svc.GetStatus(authedContext(t))
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusCheckedIn, status.AttendanceStatus)
	assert.Equal(t, attendance.ArrivalLate, status.ArrivalStatus)
	assert.Equal(t, attendance.BreakStatusOff, status.BreakStatus)
	assert.InDelta(t, 0.5, status.RunningHours, 0.001)
	require.NotNil(t, status.LastActivityTime)
}

func TestGetStatus_NoActivity(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeActivityRepo{}, &fakeEmployeeRepo{}, day.Add(10*time.Hour))

	status, err := svc.GetStatus(authedContext(t))
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusNotCheckedIn, status.AttendanceStatus)
	assert.Equal(t, attendance.ArrivalNotCheckedIn, status.ArrivalStatus)
	assert.Nil(t, status.LastActivityTime)
	assert.Zero(t, status.RunningHours)
}

func TestGetDailyHours_StandardOvertimeRule(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	activities := &fakeActivityRepo{}
	seedEvent(activities, "CHECK-IN", day, "09:00")
	seedEvent(activities, "BREAK START", day, "12:00")
	seedEvent(activities, "BREAK END", day, "13:00")
	seedEvent(activities, "CHECK-OUT", day, "19:00")
	svc := newTestService(activities, &fakeEmployeeRepo{}, day.Add(48*time.Hour))

	resp, err := svc.GetDailyHours(authedContext(t), "2025-03-10")
	require.NoError(t, err)

	// 10h on the clock minus 1h break = 9h net, 1h beyond the standard day.
	assert.Equal(t, "2025-03-10", resp.Date)
	assert.InDelta(t, 9.0, resp.WorkingHours, 0.001)
	assert.InDelta(t, 1.0, resp.BreakTime, 0.001)
	assert.InDelta(t, 1.0, resp.Overtime, 0.001)
	// productivity 85 + 2 for the extra hour = 87 -> 9h * 0.87
	assert.InDelta(t, 7.83, resp.ManHours, 0.001)
}

func TestGetDailyHours_ConfiguredShiftEnd(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	activities := &fakeActivityRepo{}
	seedEvent(activities, "CHECK-IN", day, "09:00")
	seedEvent(activities, "CHECK-OUT", day, "19:00")

	start, end := "09:00:00", "17:00:00"
	employees := &fakeEmployeeRepo{timings: employee.JobTimings{StartTime: &start, EndTime: &end}}
	svc := newTestService(activities, employees, day.Add(48*time.Hour))

	resp, err := svc.GetDailyHours(authedContext(t), "2025-03-10")
	require.NoError(t, err)

	// Shift ends 17:00, checkout 19:00: two hours past the scheduled end.
	assert.InDelta(t, 10.0, resp.WorkingHours, 0.001)
	assert.InDelta(t, 2.0, resp.Overtime, 0.001)
}

func TestGetDailyHours_InvalidDate(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	svc := newTestService(&fakeActivityRepo{}, &fakeEmployeeRepo{}, day.Add(10*time.Hour))

	_, err := svc.GetDailyHours(authedContext(t), "10-03-2025")
	assert.Error(t, err)
}

func TestRecordActivity_NormalizesRawType(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	activities := &fakeActivityRepo{}
	svc := newTestService(activities, &fakeEmployeeRepo{}, day.Add(9*time.Hour))

	resp, err := svc.RecordActivity(authedContext(t), attendance.RecordActivityRequest{
		ActivityType: "clock in",
	})
	require.NoError(t, err)

	assert.Equal(t, "clock in", resp.RawType)
	assert.Equal(t, string(attendance.ActivityCheckIn), resp.ActivityType)
}

func TestRecordActivity_UnknownTypeAccepted(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	activities := &fakeActivityRepo{}
	svc := newTestService(activities, &fakeEmployeeRepo{}, day.Add(9*time.Hour))

	resp, err := svc.RecordActivity(authedContext(t), attendance.RecordActivityRequest{
		ActivityType: "CLIENT CALL",
		Description:  "weekly sync",
	})
	require.NoError(t, err)

	assert.Equal(t, string(attendance.ActivityUnknown), resp.ActivityType)
	assert.Len(t, activities.events, 1)
}

func TestListActivity_NewestFirst(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	activities := &fakeActivityRepo{}
	seedEvent(activities, "CHECK-IN", day, "09:00")
	seedEvent(activities, "CHECK-OUT", day, "17:00")
	svc := newTestService(activities, &fakeEmployeeRepo{}, day.Add(18*time.Hour))

	list, err := svc.ListActivity(authedContext(t), 10)
	require.NoError(t, err)

	require.Len(t, list, 2)
	assert.Equal(t, string(attendance.ActivityCheckOut), list[0].ActivityType)
	assert.Equal(t, string(attendance.ActivityCheckIn), list[1].ActivityType)
}
