package ai

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
)

type stubScorer struct {
	p     float64
	err   error
	delay time.Duration
}

func (s stubScorer) EstimateSuccessProbability(ctx context.Context, f DisputeFeatures) (float64, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	return s.p, s.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBoundedScorerPassesThrough(t *testing.T) {
	b := NewBoundedScorer(stubScorer{p: 0.73}, time.Second, quietLogger())
	if got := b.Estimate(context.Background(), DisputeFeatures{}); got != 0.73 {
		t.Fatalf("estimate = %v, want 0.73", got)
	}
}

func TestBoundedScorerFallsBackOnError(t *testing.T) {
	b := NewBoundedScorer(stubScorer{err: errors.New("service down")}, time.Second, quietLogger())
	if got := b.Estimate(context.Background(), DisputeFeatures{}); got != NeutralProbability {
		t.Fatalf("estimate = %v, want neutral", got)
	}
}

func TestBoundedScorerFallsBackOnTimeout(t *testing.T) {
	b := NewBoundedScorer(stubScorer{p: 0.9, delay: time.Second}, 10*time.Millisecond, quietLogger())
	if got := b.Estimate(context.Background(), DisputeFeatures{}); got != NeutralProbability {
		t.Fatalf("estimate = %v, want neutral on timeout", got)
	}
}

func TestBoundedScorerRejectsOutOfRange(t *testing.T) {
	for _, p := range []float64{-0.1, 1.1} {
		b := NewBoundedScorer(stubScorer{p: p}, time.Second, quietLogger())
		if got := b.Estimate(context.Background(), DisputeFeatures{}); got != NeutralProbability {
			t.Errorf("estimate(%v) = %v, want neutral", p, got)
		}
	}
}

func TestBoundedScorerNilInner(t *testing.T) {
	b := NewBoundedScorer(nil, time.Second, quietLogger())
	if got := b.Estimate(context.Background(), DisputeFeatures{}); got != NeutralProbability {
		t.Fatalf("estimate = %v, want neutral", got)
	}
}

type stubEnhancer struct {
	out   string
	err   error
	delay time.Duration
}

func (s stubEnhancer) Enhance(ctx context.Context, draft string, meta map[string]string) (string, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return s.out, s.err
}

func TestBoundedEnhancerPassesThrough(t *testing.T) {
	b := NewBoundedEnhancer(stubEnhancer{out: "improved"}, time.Second)
	got, err := b.Enhance(context.Background(), "draft", nil)
	if err != nil {
		t.Fatalf("enhance: %v", err)
	}
	if got != "improved" {
		t.Fatalf("enhance = %q", got)
	}
}

func TestBoundedEnhancerTimesOut(t *testing.T) {
	b := NewBoundedEnhancer(stubEnhancer{out: "late", delay: time.Second}, 10*time.Millisecond)
	_, err := b.Enhance(context.Background(), "draft", nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
}

func TestBoundedEnhancerNilInnerReturnsDraft(t *testing.T) {
	b := NewBoundedEnhancer(nil, time.Second)
	got, err := b.Enhance(context.Background(), "draft", nil)
	if err != nil || got != "draft" {
		t.Fatalf("enhance = %q, %v; want draft passthrough", got, err)
	}
}
