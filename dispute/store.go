package dispute

import (
	"context"
	"time"
)

// Store is the persistence the engine requires. Implementations must apply
// UpdateDispute as a compare-and-set on Version: the write succeeds only when
// the stored version equals the version the caller read, and bumps it by one.
// Two concurrent transitions over the same dispute therefore cannot both
// commit against a stale read; the loser gets ErrConflict.
type Store interface {
	CreateWorkflow(ctx context.Context, w Workflow) error
	GetWorkflow(ctx context.Context, id string) (Workflow, error)
	UpdateWorkflow(ctx context.Context, w Workflow) error

	CreateDispute(ctx context.Context, d Dispute) error
	GetDispute(ctx context.Context, id string) (Dispute, error)
	UpdateDispute(ctx context.Context, d Dispute) (Dispute, error)
	ListDisputesByWorkflow(ctx context.Context, workflowID string) ([]Dispute, error)

	CreateLetter(ctx context.Context, l Letter) error
	UpdateLetter(ctx context.Context, l Letter) error
	ListLettersByDispute(ctx context.Context, disputeID string) ([]Letter, error)

	AppendResponse(ctx context.Context, r Response) error
	ListResponsesByDispute(ctx context.Context, disputeID string) ([]Response, error)

	// ListDueFollowUps returns non-terminal disputes whose follow-up
	// deadline is at or before asOf.
	ListDueFollowUps(ctx context.Context, asOf time.Time) ([]Dispute, error)
}
