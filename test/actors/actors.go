// Package actors holds the concurrent workloads the stress test races
// against one set of disputes. Actors tolerate every engine rejection: the
// point is that rejections happen instead of corrupt state, and the oracles
// verify the surviving rows.
package actors

import (
	"context"
	"math/rand"
	"time"

	"creditflow/dispute"
)

// Escalator hammers a dispute with verified-without-change responses, which
// advance it stage by stage until escalation is exhausted.
func Escalator(ctx context.Context, engine *dispute.Engine, disputeID string, stop <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-stop:
			return nil
		default:
		}
		_, _ = engine.ProcessResponse(ctx, disputeID, dispute.OutcomeVerified, nil)
		sleepJitter(ctx, stop, 50*time.Millisecond)
	}
}

// Resolver occasionally reports a deletion, racing the escalators to the
// terminal state.
func Resolver(ctx context.Context, engine *dispute.Engine, disputeID string, stop <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-stop:
			return nil
		default:
		}
		if rand.Intn(4) == 0 {
			_, _ = engine.ProcessResponse(ctx, disputeID, dispute.OutcomeDeleted, map[string]string{"actor": "resolver"})
		}
		sleepJitter(ctx, stop, 150*time.Millisecond)
	}
}

// Advancer reads the dispute and tries the explicit single-step advance,
// racing the response-driven transitions over the same version column.
func Advancer(ctx context.Context, engine *dispute.Engine, store dispute.Store, disputeID string, stop <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-stop:
			return nil
		default:
		}
		if d, err := store.GetDispute(ctx, disputeID); err == nil {
			if next, ok := d.Stage.NextRemediation(); ok {
				_, _ = engine.AdvanceToStage(ctx, disputeID, next)
			}
		}
		sleepJitter(ctx, stop, 80*time.Millisecond)
	}
}

// Sweeper runs the follow-up reconciliation pass in a tight loop. With the
// stress policy's short investigation window it fires constantly.
func Sweeper(ctx context.Context, engine *dispute.Engine, stop <-chan struct{}) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-stop:
			return nil
		default:
		}
		_, _ = engine.SweepFollowUps(ctx)
		sleepJitter(ctx, stop, 200*time.Millisecond)
	}
}

func sleepJitter(ctx context.Context, stop <-chan struct{}, base time.Duration) {
	d := base + time.Duration(rand.Int63n(int64(base)))
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-stop:
	case <-t.C:
	}
}
