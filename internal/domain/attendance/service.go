package attendance

import "context"

// AttendanceService covers the check-in/check-out/break actions (the only
// writers of activity events) and the on-demand reconstruction reads. The
// caller's employee identity comes from the request context, never from
// ambient state.
type AttendanceService interface {
	CheckIn(ctx context.Context) (ActivityResponse, error)
	CheckOut(ctx context.Context) (ActivityResponse, error)
	StartBreak(ctx context.Context) (ActivityResponse, error)
	EndBreak(ctx context.Context) (ActivityResponse, error)

	RecordActivity(ctx context.Context, req RecordActivityRequest) (ActivityResponse, error)
	ListActivity(ctx context.Context, limit int) ([]ActivityResponse, error)

	GetStatus(ctx context.Context) (StatusResponse, error)
	GetDailyHours(ctx context.Context, date string) (DailyHoursResponse, error)
}
