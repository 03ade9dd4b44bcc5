package metro2

import "fmt"

// DisputeReasons turns validator findings into the consumer-facing reasons a
// dispute letter cites.
func DisputeReasons(violations []Violation) []string {
	reasons := make([]string, 0, len(violations))
	for _, v := range violations {
		switch v.Type {
		case MissingRequiredField:
			reasons = append(reasons, fmt.Sprintf("Missing required reporting field: %s", v.Field))
		case FieldLengthExceeded:
			reasons = append(reasons, fmt.Sprintf("Field length violation: %s exceeds maximum length", v.Field))
		case InvalidFieldFormat:
			reasons = append(reasons, fmt.Sprintf("Invalid field format: %s does not meet reporting standards", v.Field))
		case FutureDateOpened:
			reasons = append(reasons, "Date opened is in the future, violating logical date sequence")
		case InvalidDateSequence, InvalidDelinquencyDate, InvalidLastPaymentDate:
			reasons = append(reasons, "Date sequence violation: dates are logically inconsistent")
		case InvalidAccountStatus:
			reasons = append(reasons, "Invalid account status code not recognized by reporting standards")
		case InvalidPaymentRating:
			reasons = append(reasons, "Invalid payment rating code not recognized by reporting standards")
		case InconsistentStatusRating:
			reasons = append(reasons, "Account status and payment rating are inconsistent")
		case InconsistentPaymentHistory, InvalidPaymentHistoryCode:
			reasons = append(reasons, "Payment history is inconsistent with current account status")
		case InvalidECOACode:
			reasons = append(reasons, "Invalid ECOA code violating Equal Credit Opportunity Act requirements")
		default:
			reasons = append(reasons, fmt.Sprintf("Reporting compliance violation: %s", v.Description))
		}
	}
	return reasons
}
