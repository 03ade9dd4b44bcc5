// Package ai declares the external estimation collaborators the engine
// consumes. Both are best effort: a slow or failing service must never block
// dispute progression, so the bounded wrappers enforce caller-side timeouts
// and defined fallbacks.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NeutralProbability is the fallback when no estimate is available.
const NeutralProbability = 0.5

// DefaultTimeout bounds a single collaborator call.
const DefaultTimeout = 5 * time.Second

// DisputeFeatures is the feature vector handed to the scoring collaborator.
type DisputeFeatures struct {
	ViolationCount    int
	HighSeverityCount int
	ComplianceScore   int
	DisputeType       string
	Bureau            string
	AccountStatus     string
}

// Scorer estimates the probability that a dispute succeeds.
type Scorer interface {
	EstimateSuccessProbability(ctx context.Context, f DisputeFeatures) (float64, error)
}

// Enhancer rewrites a drafted letter body. The composer decides whether the
// result is usable.
type Enhancer interface {
	Enhance(ctx context.Context, draft string, meta map[string]string) (string, error)
}

// BoundedScorer wraps a Scorer with a timeout and the neutral-probability
// fallback. Estimate never fails and always returns a value in [0,1].
type BoundedScorer struct {
	inner   Scorer
	timeout time.Duration
	logger  *slog.Logger
}

func NewBoundedScorer(inner Scorer, timeout time.Duration, logger *slog.Logger) *BoundedScorer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &BoundedScorer{inner: inner, timeout: timeout, logger: logger}
}

// Estimate returns the collaborator's probability, or the neutral default
// when the collaborator is absent, slow, failing, or out of range.
func (b *BoundedScorer) Estimate(ctx context.Context, f DisputeFeatures) float64 {
	if b == nil || b.inner == nil {
		return NeutralProbability
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	p, err := b.inner.EstimateSuccessProbability(ctx, f)
	if err != nil {
		b.logger.Warn("success probability estimate failed, using neutral default", "err", err)
		return NeutralProbability
	}
	if p < 0 || p > 1 {
		b.logger.Warn("success probability out of range, using neutral default", "value", p)
		return NeutralProbability
	}
	return p
}

// BoundedEnhancer wraps an Enhancer with a timeout. Errors propagate so the
// composer can fall back to the templated text.
type BoundedEnhancer struct {
	inner   Enhancer
	timeout time.Duration
}

func NewBoundedEnhancer(inner Enhancer, timeout time.Duration) *BoundedEnhancer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &BoundedEnhancer{inner: inner, timeout: timeout}
}

func (b *BoundedEnhancer) Enhance(ctx context.Context, draft string, meta map[string]string) (string, error) {
	if b == nil || b.inner == nil {
		return draft, nil
	}

	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	type result struct {
		text string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		text, err := b.inner.Enhance(ctx, draft, meta)
		done <- result{text, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return "", fmt.Errorf("ai: enhance: %w", r.err)
		}
		return r.text, nil
	case <-ctx.Done():
		return "", fmt.Errorf("ai: enhance: %w", ctx.Err())
	}
}
