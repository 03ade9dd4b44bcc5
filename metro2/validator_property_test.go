//go:build property
// +build property

package metro2

import (
	"reflect"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: validation is a pure function of the record. Same input, same
// findings and score, for arbitrary (including garbage) field values.
func TestValidateDeterminism(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	clock := func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }

	properties.Property("same record yields same result", prop.ForAll(
		func(status, rating, history, dateOpened, pastDue, ecoa string) bool {
			rec := cleanRecord()
			rec.AccountStatus = status
			rec.PaymentRating = rating
			rec.PaymentHistoryProfile = history
			rec.DateOpened = dateOpened
			rec.AmountPastDue = pastDue
			rec.ECOACode = ecoa

			v := NewValidator().WithClock(clock)
			return reflect.DeepEqual(v.Validate(rec), v.Validate(rec))
		},
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.Property("score stays within 0..100", prop.ForAll(
		func(status, rating, history, ecoa string) bool {
			rec := cleanRecord()
			rec.AccountStatus = status
			rec.PaymentRating = rating
			rec.PaymentHistoryProfile = history
			rec.ECOACode = ecoa

			res := NewValidator().WithClock(clock).Validate(rec)
			return res.ComplianceScore >= 0 && res.ComplianceScore <= 100
		},
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
		gen.AnyString(),
	))

	properties.TestingRun(t)
}
