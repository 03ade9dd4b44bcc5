package metro2

// TradelineRecord is one reported account as currently known. Values are kept
// as the raw reported text; the validator decides what parses and what does
// not. A record is immutable per validation pass; a furnisher update replaces
// the whole record.
type TradelineRecord struct {
	ProcessingIndicator          string
	TimeStamp                    string
	IdentificationNumber         string
	CycleIdentifier              string
	AccountNumber                string
	PortfolioType                string
	AccountType                  string
	DateOpened                   string
	CreditLimit                  string
	HighestCredit                string
	TermsDuration                string
	TermsFrequency               string
	ScheduledMonthlyPayment      string
	ActualPaymentAmount          string
	AccountStatus                string
	PaymentRating                string
	PaymentHistoryProfile        string
	SpecialComment               string
	ComplianceConditionCode      string
	CurrentBalance               string
	AmountPastDue                string
	OriginalChargeOffAmount      string
	DateReported                 string
	DateOfFirstDelinquency       string
	DateClosed                   string
	DateOfLastPayment            string
	InterestTypeIndicator        string
	Surname                      string
	FirstName                    string
	MiddleName                   string
	GenerationCode               string
	SSN                          string
	DateOfBirth                  string
	TelephoneNumber              string
	ECOACode                     string
	ConsumerInformationIndicator string
	CountryCode                  string
	Address1                     string
	Address2                     string
	City                         string
	State                        string
	ZipCode                      string
}

// fieldValue maps a schema field to the record attribute carrying it.
func (r TradelineRecord) fieldValue(f Field) string {
	switch f {
	case FieldProcessingIndicator:
		return r.ProcessingIndicator
	case FieldTimeStamp:
		return r.TimeStamp
	case FieldIdentificationNumber:
		return r.IdentificationNumber
	case FieldCycleIdentifier:
		return r.CycleIdentifier
	case FieldConsumerAccountNumber:
		return r.AccountNumber
	case FieldPortfolioType:
		return r.PortfolioType
	case FieldAccountType:
		return r.AccountType
	case FieldDateOpened:
		return r.DateOpened
	case FieldCreditLimit:
		return r.CreditLimit
	case FieldHighestCredit:
		return r.HighestCredit
	case FieldTermsDuration:
		return r.TermsDuration
	case FieldTermsFrequency:
		return r.TermsFrequency
	case FieldScheduledMonthlyPayment:
		return r.ScheduledMonthlyPayment
	case FieldActualPaymentAmount:
		return r.ActualPaymentAmount
	case FieldAccountStatus:
		return r.AccountStatus
	case FieldPaymentRating:
		return r.PaymentRating
	case FieldPaymentHistoryProfile:
		return r.PaymentHistoryProfile
	case FieldSpecialComment:
		return r.SpecialComment
	case FieldComplianceConditionCode:
		return r.ComplianceConditionCode
	case FieldCurrentBalance:
		return r.CurrentBalance
	case FieldAmountPastDue:
		return r.AmountPastDue
	case FieldOriginalChargeOffAmount:
		return r.OriginalChargeOffAmount
	case FieldDateReported:
		return r.DateReported
	case FieldDateOfFirstDelinquency:
		return r.DateOfFirstDelinquency
	case FieldDateClosed:
		return r.DateClosed
	case FieldDateOfLastPayment:
		return r.DateOfLastPayment
	case FieldInterestTypeIndicator:
		return r.InterestTypeIndicator
	case FieldSurname:
		return r.Surname
	case FieldFirstName:
		return r.FirstName
	case FieldMiddleName:
		return r.MiddleName
	case FieldGenerationCode:
		return r.GenerationCode
	case FieldSocialSecurityNumber:
		return r.SSN
	case FieldDateOfBirth:
		return r.DateOfBirth
	case FieldTelephoneNumber:
		return r.TelephoneNumber
	case FieldECOACode:
		return r.ECOACode
	case FieldConsumerInformationIndicator:
		return r.ConsumerInformationIndicator
	case FieldCountryCode:
		return r.CountryCode
	case FieldFirstLineOfAddress:
		return r.Address1
	case FieldSecondLineOfAddress:
		return r.Address2
	case FieldCity:
		return r.City
	case FieldState:
		return r.State
	case FieldPostalZipCode:
		return r.ZipCode
	}
	return ""
}
