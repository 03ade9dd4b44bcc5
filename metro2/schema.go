package metro2

// Field names the base-segment fields of a fixed-format consumer tradeline
// record as furnishers report them to the bureaus.
type Field string

const (
	FieldProcessingIndicator          Field = "PROCESSING_INDICATOR"
	FieldTimeStamp                    Field = "TIME_STAMP"
	FieldIdentificationNumber         Field = "IDENTIFICATION_NUMBER"
	FieldCycleIdentifier              Field = "CYCLE_IDENTIFIER"
	FieldConsumerAccountNumber        Field = "CONSUMER_ACCOUNT_NUMBER"
	FieldPortfolioType                Field = "PORTFOLIO_TYPE"
	FieldAccountType                  Field = "ACCOUNT_TYPE"
	FieldDateOpened                   Field = "DATE_OPENED"
	FieldCreditLimit                  Field = "CREDIT_LIMIT"
	FieldHighestCredit                Field = "HIGHEST_CREDIT"
	FieldTermsDuration                Field = "TERMS_DURATION"
	FieldTermsFrequency               Field = "TERMS_FREQUENCY"
	FieldScheduledMonthlyPayment      Field = "SCHEDULED_MONTHLY_PAYMENT"
	FieldActualPaymentAmount          Field = "ACTUAL_PAYMENT_AMOUNT"
	FieldAccountStatus                Field = "ACCOUNT_STATUS"
	FieldPaymentRating                Field = "PAYMENT_RATING"
	FieldPaymentHistoryProfile        Field = "PAYMENT_HISTORY_PROFILE"
	FieldSpecialComment               Field = "SPECIAL_COMMENT"
	FieldComplianceConditionCode      Field = "COMPLIANCE_CONDITION_CODE"
	FieldCurrentBalance               Field = "CURRENT_BALANCE"
	FieldAmountPastDue                Field = "AMOUNT_PAST_DUE"
	FieldOriginalChargeOffAmount      Field = "ORIGINAL_CHARGE_OFF_AMOUNT"
	FieldDateReported                 Field = "DATE_ACCOUNT_INFORMATION_REPORTED"
	FieldDateOfFirstDelinquency       Field = "DATE_OF_FIRST_DELINQUENCY"
	FieldDateClosed                   Field = "DATE_CLOSED"
	FieldDateOfLastPayment            Field = "DATE_OF_LAST_PAYMENT"
	FieldInterestTypeIndicator        Field = "INTEREST_TYPE_INDICATOR"
	FieldSurname                      Field = "SURNAME"
	FieldFirstName                    Field = "FIRST_NAME"
	FieldMiddleName                   Field = "MIDDLE_NAME"
	FieldGenerationCode               Field = "GENERATION_CODE"
	FieldSocialSecurityNumber         Field = "SOCIAL_SECURITY_NUMBER"
	FieldDateOfBirth                  Field = "DATE_OF_BIRTH"
	FieldTelephoneNumber              Field = "TELEPHONE_NUMBER"
	FieldECOACode                     Field = "ECOA_CODE"
	FieldConsumerInformationIndicator Field = "CONSUMER_INFORMATION_INDICATOR"
	FieldCountryCode                  Field = "COUNTRY_CODE"
	FieldFirstLineOfAddress           Field = "FIRST_LINE_OF_ADDRESS"
	FieldSecondLineOfAddress          Field = "SECOND_LINE_OF_ADDRESS"
	FieldCity                         Field = "CITY"
	FieldState                        Field = "STATE"
	FieldPostalZipCode                Field = "POSTAL_ZIP_CODE"
)

// FieldType is the declared type class a field value must match.
type FieldType string

const (
	TypeAlpha        FieldType = "alpha"
	TypeNumeric      FieldType = "numeric"
	TypeAlphanumeric FieldType = "alphanumeric"
	TypeDate         FieldType = "date"
	TypeTimestamp    FieldType = "timestamp"
)

// FieldSpec describes one schema entry: whether the field must be reported,
// its maximum length, and its type class.
type FieldSpec struct {
	Required bool
	MaxLen   int
	Type     FieldType
}

// fieldTable is the fixed-format compliance schema for the base segment.
var fieldTable = map[Field]FieldSpec{
	FieldProcessingIndicator:          {Required: true, MaxLen: 1, Type: TypeAlpha},
	FieldTimeStamp:                    {Required: true, MaxLen: 26, Type: TypeTimestamp},
	FieldIdentificationNumber:         {Required: true, MaxLen: 20, Type: TypeAlphanumeric},
	FieldCycleIdentifier:              {Required: true, MaxLen: 2, Type: TypeNumeric},
	FieldConsumerAccountNumber:        {Required: true, MaxLen: 30, Type: TypeAlphanumeric},
	FieldPortfolioType:                {Required: true, MaxLen: 1, Type: TypeAlpha},
	FieldAccountType:                  {Required: true, MaxLen: 2, Type: TypeAlphanumeric},
	FieldDateOpened:                   {Required: true, MaxLen: 8, Type: TypeDate},
	FieldCreditLimit:                  {Required: false, MaxLen: 9, Type: TypeNumeric},
	FieldHighestCredit:                {Required: false, MaxLen: 9, Type: TypeNumeric},
	FieldTermsDuration:                {Required: false, MaxLen: 3, Type: TypeNumeric},
	FieldTermsFrequency:               {Required: false, MaxLen: 1, Type: TypeAlpha},
	FieldScheduledMonthlyPayment:      {Required: false, MaxLen: 9, Type: TypeNumeric},
	FieldActualPaymentAmount:          {Required: false, MaxLen: 9, Type: TypeNumeric},
	FieldAccountStatus:                {Required: true, MaxLen: 2, Type: TypeAlphanumeric},
	FieldPaymentRating:                {Required: true, MaxLen: 1, Type: TypeAlphanumeric},
	FieldPaymentHistoryProfile:        {Required: false, MaxLen: 24, Type: TypeAlphanumeric},
	FieldSpecialComment:               {Required: false, MaxLen: 2, Type: TypeAlphanumeric},
	FieldComplianceConditionCode:      {Required: false, MaxLen: 2, Type: TypeAlphanumeric},
	FieldCurrentBalance:               {Required: false, MaxLen: 9, Type: TypeNumeric},
	FieldAmountPastDue:                {Required: false, MaxLen: 9, Type: TypeNumeric},
	FieldOriginalChargeOffAmount:      {Required: false, MaxLen: 9, Type: TypeNumeric},
	FieldDateReported:                 {Required: true, MaxLen: 8, Type: TypeDate},
	FieldDateOfFirstDelinquency:       {Required: false, MaxLen: 8, Type: TypeDate},
	FieldDateClosed:                   {Required: false, MaxLen: 8, Type: TypeDate},
	FieldDateOfLastPayment:            {Required: false, MaxLen: 8, Type: TypeDate},
	FieldInterestTypeIndicator:        {Required: false, MaxLen: 1, Type: TypeAlpha},
	FieldSurname:                      {Required: true, MaxLen: 25, Type: TypeAlpha},
	FieldFirstName:                    {Required: true, MaxLen: 20, Type: TypeAlpha},
	FieldMiddleName:                   {Required: false, MaxLen: 20, Type: TypeAlpha},
	FieldGenerationCode:               {Required: false, MaxLen: 1, Type: TypeAlpha},
	FieldSocialSecurityNumber:         {Required: true, MaxLen: 9, Type: TypeNumeric},
	FieldDateOfBirth:                  {Required: false, MaxLen: 8, Type: TypeDate},
	FieldTelephoneNumber:              {Required: false, MaxLen: 10, Type: TypeNumeric},
	FieldECOACode:                     {Required: true, MaxLen: 1, Type: TypeAlphanumeric},
	FieldConsumerInformationIndicator: {Required: false, MaxLen: 2, Type: TypeAlphanumeric},
	FieldCountryCode:                  {Required: false, MaxLen: 2, Type: TypeAlpha},
	FieldFirstLineOfAddress:           {Required: true, MaxLen: 32, Type: TypeAlphanumeric},
	FieldSecondLineOfAddress:          {Required: false, MaxLen: 32, Type: TypeAlphanumeric},
	FieldCity:                         {Required: true, MaxLen: 20, Type: TypeAlpha},
	FieldState:                        {Required: true, MaxLen: 2, Type: TypeAlpha},
	FieldPostalZipCode:                {Required: true, MaxLen: 9, Type: TypeAlphanumeric},
}

// Schema returns the spec for a field, reporting whether the field is part of
// the registry at all.
func Schema(f Field) (FieldSpec, bool) {
	spec, ok := fieldTable[f]
	return spec, ok
}

// Fields returns every field in the registry in a stable order.
func Fields() []Field {
	out := make([]Field, 0, len(fieldOrder))
	out = append(out, fieldOrder...)
	return out
}

// fieldOrder keeps validation output deterministic; map iteration is not.
var fieldOrder = []Field{
	FieldProcessingIndicator,
	FieldTimeStamp,
	FieldIdentificationNumber,
	FieldCycleIdentifier,
	FieldConsumerAccountNumber,
	FieldPortfolioType,
	FieldAccountType,
	FieldDateOpened,
	FieldCreditLimit,
	FieldHighestCredit,
	FieldTermsDuration,
	FieldTermsFrequency,
	FieldScheduledMonthlyPayment,
	FieldActualPaymentAmount,
	FieldAccountStatus,
	FieldPaymentRating,
	FieldPaymentHistoryProfile,
	FieldSpecialComment,
	FieldComplianceConditionCode,
	FieldCurrentBalance,
	FieldAmountPastDue,
	FieldOriginalChargeOffAmount,
	FieldDateReported,
	FieldDateOfFirstDelinquency,
	FieldDateClosed,
	FieldDateOfLastPayment,
	FieldInterestTypeIndicator,
	FieldSurname,
	FieldFirstName,
	FieldMiddleName,
	FieldGenerationCode,
	FieldSocialSecurityNumber,
	FieldDateOfBirth,
	FieldTelephoneNumber,
	FieldECOACode,
	FieldConsumerInformationIndicator,
	FieldCountryCode,
	FieldFirstLineOfAddress,
	FieldSecondLineOfAddress,
	FieldCity,
	FieldState,
	FieldPostalZipCode,
}
