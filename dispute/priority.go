package dispute

import (
	"creditflow/letters"
	"creditflow/metro2"
)

// Priority weights. High-severity findings dominate ordering so the worst
// tradelines get worked first.
const (
	weightHigh   = 10
	weightMedium = 5
	weightLow    = 1
)

// priorityFor derives a deterministic work priority from the violation set.
func priorityFor(violations []metro2.Violation) int {
	p := 0
	for _, v := range violations {
		switch v.Severity {
		case metro2.SeverityHigh:
			p += weightHigh
		case metro2.SeverityMedium:
			p += weightMedium
		default:
			p += weightLow
		}
	}
	return p
}

// classifyDisputeType picks the dispute reason a violation set supports best.
// Date-logic findings outrank monetary ones because a provably impossible
// date is the strongest deletion argument; everything else files under the
// generic reason.
func classifyDisputeType(violations []metro2.Violation) letters.DisputeType {
	var (
		hasDate   bool
		hasAmount bool
	)
	for _, v := range violations {
		switch v.Type {
		case metro2.FutureDateOpened,
			metro2.InvalidDateSequence,
			metro2.InvalidDelinquencyDate,
			metro2.InvalidLastPaymentDate:
			hasDate = true
		case metro2.InconsistentPastDue,
			metro2.InconsistentStatusRating:
			hasAmount = true
		}
	}
	switch {
	case hasDate:
		return letters.DisputeIncorrectDate
	case hasAmount:
		return letters.DisputeIncorrectAmount
	default:
		return letters.DisputeOther
	}
}
