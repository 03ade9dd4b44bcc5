package metro2

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Validator applies the schema registry and the cross-field consistency rules
// to one tradeline record. It holds no mutable state; the injectable clock
// exists only so "date in the future" stays deterministic under test.
type Validator struct {
	now func() time.Time
}

func NewValidator() *Validator {
	return &Validator{now: time.Now}
}

// WithClock overrides the reference time used for future-date checks.
func (v *Validator) WithClock(now func() time.Time) *Validator {
	v.now = now
	return v
}

// Validate inspects one record and returns every finding plus the recomputed
// compliance score. It never fails: malformed input is reported as findings.
// Identical input always yields identical output.
func (v *Validator) Validate(rec TradelineRecord) Result {
	var violations []Violation

	violations = append(violations, checkRequiredFields(rec)...)
	violations = append(violations, checkFieldFormats(rec)...)
	violations = append(violations, v.checkDateLogic(rec)...)
	violations = append(violations, checkStatusConsistency(rec)...)
	violations = append(violations, checkPaymentHistory(rec)...)
	violations = append(violations, checkECOA(rec)...)

	return Result{
		Violations:      violations,
		ComplianceScore: score(violations),
	}
}

// checkRequiredFields flags every required schema field that is empty. A date
// field whose value cannot be parsed counts as absent here; the format pass
// reports the malformed value separately.
func checkRequiredFields(rec TradelineRecord) []Violation {
	var out []Violation
	for _, f := range fieldOrder {
		spec := fieldTable[f]
		if !spec.Required {
			continue
		}
		value := strings.TrimSpace(rec.fieldValue(f))
		missing := value == ""
		if !missing && spec.Type == TypeDate {
			if _, ok := parseDate(value); !ok {
				missing = true
			}
		}
		if missing {
			out = append(out, Violation{
				Field:          f,
				Type:           MissingRequiredField,
				Description:    fmt.Sprintf("required field %s is missing or empty", f),
				Severity:       SeverityHigh,
				CitedAuthority: citeAccuracyDuty,
			})
		}
	}
	return out
}

var (
	alphaRe        = regexp.MustCompile(`^[A-Za-z\s]*$`)
	numericRe      = regexp.MustCompile(`^[0-9]*$`)
	alphanumericRe = regexp.MustCompile(`^[A-Za-z0-9\s]*$`)
)

// checkFieldFormats verifies length and type class for every present field.
func checkFieldFormats(rec TradelineRecord) []Violation {
	var out []Violation
	for _, f := range fieldOrder {
		spec := fieldTable[f]
		value := strings.TrimSpace(rec.fieldValue(f))
		if value == "" {
			continue
		}
		if overlong(value, spec) {
			out = append(out, Violation{
				Field:          f,
				Type:           FieldLengthExceeded,
				Description:    fmt.Sprintf("field %s exceeds maximum length of %d characters", f, spec.MaxLen),
				Severity:       SeverityMedium,
				CitedAuthority: citeReportingDuty,
			})
		}
		if !typeMatches(value, spec.Type) {
			out = append(out, Violation{
				Field:          f,
				Type:           InvalidFieldFormat,
				Description:    fmt.Sprintf("field %s has invalid format, expected %s", f, spec.Type),
				Severity:       SeverityHigh,
				CitedAuthority: citeReportingDuty,
			})
		}
	}
	return out
}

// checkDateLogic enforces cross-field date ordering. Unparseable dates are
// skipped here; the format pass already reported them.
func (v *Validator) checkDateLogic(rec TradelineRecord) []Violation {
	var out []Violation

	opened, openedOK := parseDate(rec.DateOpened)
	closed, closedOK := parseDate(rec.DateClosed)
	firstDelinquency, delinquencyOK := parseDate(rec.DateOfFirstDelinquency)
	lastPayment, lastPaymentOK := parseDate(rec.DateOfLastPayment)

	if openedOK && opened.After(v.now()) {
		out = append(out, Violation{
			Field:          FieldDateOpened,
			Type:           FutureDateOpened,
			Description:    "date opened cannot be in the future",
			Severity:       SeverityHigh,
			CitedAuthority: citeReportingDuty,
		})
	}
	if openedOK && closedOK && closed.Before(opened) {
		out = append(out, Violation{
			Field:          FieldDateClosed,
			Type:           InvalidDateSequence,
			Description:    "date closed cannot be before date opened",
			Severity:       SeverityHigh,
			CitedAuthority: citeReportingDuty,
		})
	}
	if openedOK && delinquencyOK && firstDelinquency.Before(opened) {
		out = append(out, Violation{
			Field:          FieldDateOfFirstDelinquency,
			Type:           InvalidDelinquencyDate,
			Description:    "date of first delinquency cannot be before date opened",
			Severity:       SeverityHigh,
			CitedAuthority: citeReportingDuty,
		})
	}
	if openedOK && lastPaymentOK && lastPayment.Before(opened) {
		out = append(out, Violation{
			Field:          FieldDateOfLastPayment,
			Type:           InvalidLastPaymentDate,
			Description:    "date of last payment cannot be before date opened",
			Severity:       SeverityMedium,
			CitedAuthority: citeReportingDuty,
		})
	}

	return out
}

// checkStatusConsistency verifies the status code sets and the pairings
// between account status, payment rating, and past-due amount.
func checkStatusConsistency(rec TradelineRecord) []Violation {
	var out []Violation

	status := strings.TrimSpace(rec.AccountStatus)
	rating := strings.TrimSpace(rec.PaymentRating)

	if status != "" {
		if _, ok := accountStatusCodes[status]; !ok {
			out = append(out, Violation{
				Field:          FieldAccountStatus,
				Type:           InvalidAccountStatus,
				Description:    fmt.Sprintf("invalid account status code: %s", status),
				Severity:       SeverityHigh,
				CitedAuthority: citeReportingDuty,
			})
		}
	}
	if rating != "" {
		if _, ok := paymentRatingCodes[rating]; !ok {
			out = append(out, Violation{
				Field:          FieldPaymentRating,
				Type:           InvalidPaymentRating,
				Description:    fmt.Sprintf("invalid payment rating code: %s", rating),
				Severity:       SeverityHigh,
				CitedAuthority: citeReportingDuty,
			})
		}
	}

	if status == statusChargedOff && rating != ratingBadDebt {
		out = append(out, Violation{
			Field:          FieldPaymentRating,
			Type:           InconsistentStatusRating,
			Description:    "payment rating inconsistent with charged-off account status",
			Severity:       SeverityHigh,
			CitedAuthority: citeReportingDuty,
		})
	}

	pastDue, _ := strconv.ParseFloat(strings.TrimSpace(rec.AmountPastDue), 64)
	if pastDue > 0 && !delinquentStatusCodes[status] {
		out = append(out, Violation{
			Field:          FieldAmountPastDue,
			Type:           InconsistentPastDue,
			Description:    "past due amount reported without corresponding delinquent status",
			Severity:       SeverityMedium,
			CitedAuthority: citeReportingDuty,
		})
	}

	return out
}

// checkPaymentHistory validates each of the 24 position codes and the
// agreement between recent history and the claimed account status.
func checkPaymentHistory(rec TradelineRecord) []Violation {
	var out []Violation

	history := strings.TrimSpace(rec.PaymentHistoryProfile)
	if len(history) != 24 {
		return out
	}

	for i := 0; i < len(history); i++ {
		if !paymentHistoryCodes[history[i]] {
			out = append(out, Violation{
				Field:          FieldPaymentHistoryProfile,
				Type:           InvalidPaymentHistoryCode,
				Description:    fmt.Sprintf("invalid payment history code %q at position %d", history[i], i+1),
				Severity:       SeverityMedium,
				CitedAuthority: citeReportingDuty,
			})
		}
	}

	// Positions 1-3 are the most recent months.
	if strings.TrimSpace(rec.AccountStatus) == statusPaidAsAgreed {
		for i := 0; i < 3; i++ {
			if isDelinquencyMarker(history[i]) {
				out = append(out, Violation{
					Field:          FieldPaymentHistoryProfile,
					Type:           InconsistentPaymentHistory,
					Description:    `payment history shows delinquency but account status is "Paid as agreed"`,
					Severity:       SeverityHigh,
					CitedAuthority: citeReportingDuty,
				})
				break
			}
		}
	}

	return out
}

func checkECOA(rec TradelineRecord) []Violation {
	code := strings.TrimSpace(rec.ECOACode)
	if code == "" {
		return nil
	}
	if _, ok := ecoaCodes[code]; ok {
		return nil
	}
	return []Violation{{
		Field:          FieldECOACode,
		Type:           InvalidECOACode,
		Description:    fmt.Sprintf("invalid ECOA code: %s", code),
		Severity:       SeverityHigh,
		CitedAuthority: citeReportingDuty,
	}}
}

// overlong measures a value against the schema's packed-form width. Date and
// timestamp fields are capped at their packed spelling (MMDDYYYY is 8), so a
// value that parses under an accepted layout is within bounds regardless of
// how many separator characters the furnisher spelled it with.
func overlong(value string, spec FieldSpec) bool {
	if len(value) <= spec.MaxLen {
		return false
	}
	switch spec.Type {
	case TypeDate, TypeTimestamp:
		return !typeMatches(value, spec.Type)
	}
	return true
}

func typeMatches(value string, t FieldType) bool {
	switch t {
	case TypeAlpha:
		return alphaRe.MatchString(value)
	case TypeNumeric:
		return numericRe.MatchString(value)
	case TypeAlphanumeric:
		return alphanumericRe.MatchString(value)
	case TypeDate:
		_, ok := parseDate(value)
		return ok
	case TypeTimestamp:
		_, ok := parseTimestamp(value)
		return ok
	}
	return true
}

var dateLayouts = []string{"01022006", "01/02/2006", "2006-01-02", "01-02-2006"}

// parseDate accepts the date spellings furnishers actually use.
func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"01022006150405",
}

func parseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	if t, ok := parseDate(value); ok {
		return t, true
	}
	return time.Time{}, false
}
