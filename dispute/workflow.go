package dispute

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// sweepParallelism bounds how many overdue disputes one sweep works at once.
// Disputes belong to different clients and share no state, so they advance
// independently.
const sweepParallelism = 4

// SweepFollowUps advances every dispute whose investigation deadline has
// passed without a response, treating the silence as a verified-without-change
// outcome. The sweep is idempotent: a dispute already advanced, resolved, or
// claimed by a concurrent transition is skipped, not failed. Returns the
// number of disputes it moved.
func (e *Engine) SweepFollowUps(ctx context.Context) (int, error) {
	due, err := e.store.ListDueFollowUps(ctx, e.now())
	if err != nil {
		return 0, fmt.Errorf("dispute: sweep follow-ups: %w", err)
	}

	var moved atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(sweepParallelism)
	for _, d := range due {
		g.Go(func() error {
			ok, err := e.sweepOne(gctx, d)
			if err != nil {
				return err
			}
			if ok {
				moved.Add(1)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return int(moved.Load()), fmt.Errorf("dispute: sweep follow-ups: %w", err)
	}
	return int(moved.Load()), nil
}

// sweepOne applies the timeout policy to a single overdue dispute. A conflict
// or illegal transition means another actor got there first; the sweeper
// treats that as already handled.
func (e *Engine) sweepOne(ctx context.Context, d Dispute) (bool, error) {
	if d.Status.Terminal() || d.FollowUpAt == nil || d.FollowUpAt.After(e.now()) {
		return false, nil
	}

	if err := e.store.AppendResponse(ctx, Response{
		ID:         e.idGenerator(),
		DisputeID:  d.ID,
		Outcome:    OutcomeVerified,
		Metadata:   map[string]string{"source": "follow_up_timeout"},
		ReceivedAt: e.now(),
	}); err != nil {
		return false, fmt.Errorf("record timeout for %s: %w", d.ID, err)
	}

	if _, err := e.escalate(ctx, d); err != nil {
		if errors.Is(err, ErrIllegalTransition) {
			e.logger.Info("follow-up already handled elsewhere", "dispute_id", d.ID)
			return false, nil
		}
		if errors.Is(err, ErrDeliveryFailed) {
			// The dispute stays stuck with its failed letter for the
			// operator; the rest of the sweep continues.
			e.logger.Error("follow-up letter failed to send", "dispute_id", d.ID, "err", err)
			return false, nil
		}
		return false, err
	}

	e.metrics.SweptFollowUp()
	return true, nil
}

// WorkflowProgress summarizes a workflow for reporting: counts per terminal
// bucket, completion percentage, and the average success probability across
// its disputes.
func (e *Engine) WorkflowProgress(ctx context.Context, workflowID string) (Progress, error) {
	w, err := e.store.GetWorkflow(ctx, workflowID)
	if err != nil {
		return Progress{}, fmt.Errorf("dispute: workflow progress %s: %w", workflowID, err)
	}
	ds, err := e.store.ListDisputesByWorkflow(ctx, workflowID)
	if err != nil {
		return Progress{}, fmt.Errorf("dispute: workflow progress %s: %w", workflowID, err)
	}

	p := Progress{
		WorkflowID:          w.ID,
		Total:               len(ds),
		EstimatedCompletion: w.EstimatedCompletion,
		Completed:           w.Status == WorkflowCompleted,
	}
	var probSum float64
	for _, d := range ds {
		probSum += d.SuccessProbability
		switch d.Status {
		case StatusResolved:
			p.Resolved++
		case StatusRejected:
			p.Rejected++
		default:
			p.Pending++
		}
	}
	if p.Total > 0 {
		p.ProgressPercent = (p.Resolved + p.Rejected) * 100 / p.Total
		p.AvgSuccessProbability = probSum / float64(p.Total)
	}
	return p, nil
}

// maybeCompleteWorkflow marks the workflow completed once every owned dispute
// is terminal.
func (e *Engine) maybeCompleteWorkflow(ctx context.Context, workflowID string) error {
	ds, err := e.store.ListDisputesByWorkflow(ctx, workflowID)
	if err != nil {
		return fmt.Errorf("dispute: complete workflow %s: %w", workflowID, err)
	}
	for _, d := range ds {
		if !d.Status.Terminal() {
			return nil
		}
	}

	w, err := e.store.GetWorkflow(ctx, workflowID)
	if err != nil {
		return fmt.Errorf("dispute: complete workflow %s: %w", workflowID, err)
	}
	if w.Status == WorkflowCompleted {
		return nil
	}

	now := e.now()
	w.Status = WorkflowCompleted
	w.CompletedAt = &now
	w.UpdatedAt = now
	if err := e.store.UpdateWorkflow(ctx, w); err != nil {
		return fmt.Errorf("dispute: complete workflow %s: %w", workflowID, err)
	}
	e.logger.Info("workflow completed", "workflow_id", workflowID, "disputes", len(ds))
	return nil
}
