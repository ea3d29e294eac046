package leave

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-chi/jwtauth/v5"

	"github.com/emsuite/ems-backend-go/internal/domain/leave"
)

type fakeLeaveRepo struct {
	byID map[string]leave.LeaveRequest
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{byID: make(map[string]leave.LeaveRequest)}
}

func (f *fakeLeaveRepo) Create(_ context.Context, req leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.byID[req.ID] = req
	return req, nil
}

func (f *fakeLeaveRepo) GetByID(_ context.Context, id string) (leave.LeaveRequest, error) {
	lr, ok := f.byID[id]
	if !ok {
		return leave.LeaveRequest{}, leave.ErrLeaveNotFound
	}
	return lr, nil
}

func (f *fakeLeaveRepo) ListByEmployee(_ context.Context, employeeID int64, filter leave.Filter) ([]leave.LeaveRequest, int64, error) {
	var out []leave.LeaveRequest
	for _, lr := range f.byID {
		if lr.EmployeeID == employeeID {
			out = append(out, lr)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeLeaveRepo) List(_ context.Context, filter leave.Filter) ([]leave.LeaveRequest, int64, error) {
	var out []leave.LeaveRequest
	for _, lr := range f.byID {
		if filter.Status != nil && string(lr.Status) != *filter.Status {
			continue
		}
		out = append(out, lr)
	}
	return out, int64(len(out)), nil
}

func (f *fakeLeaveRepo) Update(_ context.Context, req leave.LeaveRequest) error {
	if _, ok := f.byID[req.ID]; !ok {
		return leave.ErrLeaveNotFound
	}
	f.byID[req.ID] = req
	return nil
}

func authedContext(t *testing.T, role string) context.Context {
	t.Helper()
	token, err := jwt.NewBuilder().
		Claim("user_id", "user-1").
		Claim("employee_id", int64(7)).
		Claim("role", role).
		Build()
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(repo *fakeLeaveRepo) *Service {
	svc := NewService(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestApply_CountsInclusiveDays(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := newTestService(repo)

	resp, err := svc.Apply(authedContext(t, "employee"), leave.ApplyRequest{
		Type:      "annual",
		StartDate: "2025-04-01",
		EndDate:   "2025-04-03",
		Reason:    "family trip",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Days)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, int64(7), resp.EmployeeID)
}

func TestApply_SingleDay(t *testing.T) {
	svc := newTestService(newFakeLeaveRepo())

	resp, err := svc.Apply(authedContext(t, "employee"), leave.ApplyRequest{
		Type:      "sick",
		StartDate: "2025-04-01",
		EndDate:   "2025-04-01",
		Reason:    "flu",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Days)
}

func TestApply_EndBeforeStart(t *testing.T) {
	svc := newTestService(newFakeLeaveRepo())

	_, err := svc.Apply(authedContext(t, "employee"), leave.ApplyRequest{
		Type:      "annual",
		StartDate: "2025-04-03",
		EndDate:   "2025-04-01",
		Reason:    "family trip",
	})
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestApply_ValidationFailure(t *testing.T) {
	svc := newTestService(newFakeLeaveRepo())

	_, err := svc.Apply(authedContext(t, "employee"), leave.ApplyRequest{
		Type:      "sabbatical",
		StartDate: "2025-04-01",
		EndDate:   "2025-04-03",
		Reason:    "",
	})
	assert.Error(t, err)
}

func TestApprove_PendingRequest(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := newTestService(repo)

	created, err := svc.Apply(authedContext(t, "employee"), leave.ApplyRequest{
		Type:      "annual",
		StartDate: "2025-04-01",
		EndDate:   "2025-04-03",
		Reason:    "family trip",
	})
	require.NoError(t, err)

	note := "enjoy"
	resp, err := svc.Approve(authedContext(t, "team_lead"), leave.ReviewRequest{ID: created.ID, Note: &note})
	require.NoError(t, err)

	assert.Equal(t, "approved", resp.Status)
	require.NotNil(t, resp.ReviewedBy)
	assert.Equal(t, "user-1", *resp.ReviewedBy)
	require.NotNil(t, resp.ReviewNote)
	assert.Equal(t, "enjoy", *resp.ReviewNote)
	require.NotNil(t, resp.ReviewedAt)
}

func TestReview_AlreadyProcessed(t *testing.T) {
	repo := newFakeLeaveRepo()
	svc := newTestService(repo)

	created, err := svc.Apply(authedContext(t, "employee"), leave.ApplyRequest{
		Type:      "annual",
		StartDate: "2025-04-01",
		EndDate:   "2025-04-03",
		Reason:    "family trip",
	})
	require.NoError(t, err)

	_, err = svc.Approve(authedContext(t, "team_lead"), leave.ReviewRequest{ID: created.ID})
	require.NoError(t, err)

	_, err = svc.Reject(authedContext(t, "team_lead"), leave.ReviewRequest{ID: created.ID})
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}

func TestReview_NotFound(t *testing.T) {
	svc := newTestService(newFakeLeaveRepo())

	_, err := svc.Approve(authedContext(t, "team_lead"), leave.ReviewRequest{ID: "missing"})
	assert.ErrorIs(t, err, leave.ErrLeaveNotFound)
}
