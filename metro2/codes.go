package metro2

// Account status codes recognized by the reporting format.
var accountStatusCodes = map[string]string{
	"11": "Too new to rate",
	"13": "Paid as agreed",
	"61": "30 days past due date",
	"62": "60 days past due date",
	"63": "90 days past due date",
	"64": "120 days past due date",
	"71": "150 days past due date",
	"78": "180+ days past due date",
	"80": "Repossession",
	"82": "Bad debt/Placed for collection",
	"83": "No payment history available",
	"84": "Voluntary surrender",
	"89": "Charged off to bad debt",
	"93": "Account closed by consumer",
	"94": "Account closed by credit grantor",
	"95": "Paid or paying under a partial payment agreement",
	"96": "Voluntary surrender",
	"97": "Unpaid balance reported as a loss by credit grantor",
}

const (
	statusPaidAsAgreed = "13"
	statusChargedOff   = "89"

	ratingPaysAsAgreed = "1"
	ratingBadDebt      = "9"
)

// delinquentStatusCodes are the statuses that justify a nonzero past-due amount.
var delinquentStatusCodes = map[string]bool{
	"61": true,
	"62": true,
	"63": true,
	"64": true,
	"71": true,
	"78": true,
}

// Payment rating codes.
var paymentRatingCodes = map[string]string{
	"0": "Too new to rate; approved but not used",
	"1": "Pays as agreed",
	"2": "30-59 days past due",
	"3": "60-89 days past due",
	"4": "90-119 days past due",
	"5": "120-149 days past due",
	"6": "150-179 days past due",
	"7": "180+ days past due",
	"8": "Repossession",
	"9": "Bad debt/Placed for collection/Skip",
}

// Codes valid in each of the 24 payment-history profile positions.
var paymentHistoryCodes = map[byte]bool{
	'0': true, '1': true, '2': true, '3': true, '4': true,
	'5': true, '6': true, '7': true, '8': true, '9': true,
	'B': true, 'D': true, 'E': true, 'G': true, 'H': true,
	'J': true, 'K': true, 'L': true,
}

// ECOA codes describing a consumer's relationship to the account.
var ecoaCodes = map[string]string{
	"1": "Individual",
	"2": "Joint",
	"3": "Authorized user",
	"4": "Terminated",
	"5": "Shared",
	"6": "On behalf of another person",
	"7": "Maker",
	"8": "Co-maker",
	"9": "Co-signer",
	"X": "Deceased",
	"Z": "Delete entire account (for CRA use only)",
}

// AccountStatusDescription returns the human label for a status code.
func AccountStatusDescription(code string) (string, bool) {
	desc, ok := accountStatusCodes[code]
	return desc, ok
}

// isDelinquencyMarker reports whether a payment-history position code
// indicates a past-due state.
func isDelinquencyMarker(c byte) bool {
	return c >= '2' && c <= '9'
}
