package leave

import "context"

type LeaveService interface {
	Apply(ctx context.Context, req ApplyRequest) (LeaveResponse, error)
	ListMine(ctx context.Context, filter Filter) (ListResponse, error)
	ListAll(ctx context.Context, filter Filter) (ListResponse, error)
	Approve(ctx context.Context, req ReviewRequest) (LeaveResponse, error)
	Reject(ctx context.Context, req ReviewRequest) (LeaveResponse, error)
}
