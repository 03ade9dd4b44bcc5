package metro2

// Severity grades how strongly a violation supports a dispute.
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// penalty is the compliance-score deduction per violation of this severity.
func (s Severity) penalty() int {
	switch s {
	case SeverityHigh:
		return 15
	case SeverityMedium:
		return 10
	case SeverityLow:
		return 5
	}
	return 0
}

// ViolationType enumerates every finding the validator can produce.
type ViolationType string

const (
	MissingRequiredField        ViolationType = "MISSING_REQUIRED_FIELD"
	FieldLengthExceeded         ViolationType = "FIELD_LENGTH_EXCEEDED"
	InvalidFieldFormat          ViolationType = "INVALID_FIELD_FORMAT"
	FutureDateOpened            ViolationType = "FUTURE_DATE_OPENED"
	InvalidDateSequence         ViolationType = "INVALID_DATE_SEQUENCE"
	InvalidDelinquencyDate      ViolationType = "INVALID_DELINQUENCY_DATE"
	InvalidLastPaymentDate      ViolationType = "INVALID_LAST_PAYMENT_DATE"
	InvalidAccountStatus        ViolationType = "INVALID_ACCOUNT_STATUS"
	InvalidPaymentRating        ViolationType = "INVALID_PAYMENT_RATING"
	InconsistentStatusRating    ViolationType = "INCONSISTENT_STATUS_RATING"
	InconsistentPastDue         ViolationType = "INCONSISTENT_PAST_DUE"
	InvalidPaymentHistoryCode   ViolationType = "INVALID_PAYMENT_HISTORY_CODE"
	InconsistentPaymentHistory  ViolationType = "INCONSISTENT_PAYMENT_HISTORY"
	InvalidECOACode             ViolationType = "INVALID_ECOA_CODE"
)

// Statutory citations attached to findings.
const (
	citeAccuracyDuty  = "FCRA 623(a)(1)"
	citeReportingDuty = "FCRA 623(a)(2)"
)

// Violation is a single reportable finding. Findings are outcomes, not
// errors: Validate returns them and never fails.
type Violation struct {
	Field          Field
	Type           ViolationType
	Description    string
	Severity       Severity
	CitedAuthority string
}

// Result is the outcome of validating one tradeline record.
type Result struct {
	Violations      []Violation
	ComplianceScore int
}

// HasViolations reports whether the record produced any findings.
func (r Result) HasViolations() bool {
	return len(r.Violations) > 0
}

// score recomputes the compliance score from scratch: 100 minus the per
// severity penalties, floored at zero.
func score(violations []Violation) int {
	s := 100
	for _, v := range violations {
		s -= v.Severity.penalty()
	}
	if s < 0 {
		s = 0
	}
	return s
}
