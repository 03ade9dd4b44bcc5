// Package letters holds the correspondence template catalog and the composer
// that binds templates to client and dispute data.
package letters

import "errors"

var (
	ErrTemplateNotFound = errors.New("letters: template not found")
	ErrUnknownBureau    = errors.New("letters: unknown bureau")
	ErrUnresolvedToken  = errors.New("letters: unresolved template token")
)

// DisputeType is the enumerated reason a tradeline is being challenged. It is
// one half of a template key.
type DisputeType string

const (
	DisputeNotMine         DisputeType = "not_mine"
	DisputePaidInFull      DisputeType = "paid_in_full"
	DisputeIncorrectAmount DisputeType = "incorrect_amount"
	DisputeIncorrectDate   DisputeType = "incorrect_date"
	DisputeDuplicate       DisputeType = "duplicate"
	DisputeIdentityTheft   DisputeType = "identity_theft"
	DisputeMixedFile       DisputeType = "mixed_file"
	DisputeOutdated        DisputeType = "outdated"
	DisputeOther           DisputeType = "other"
)

// Stage is the correspondence stage, the other half of a template key. Only
// the initial stage differentiates by dispute type; later stages share one
// template across all types.
type Stage string

const (
	StageInitial      Stage = "initial"
	StageFollowUp     Stage = "follow_up"
	StageFurnisher    Stage = "furnisher"
	StageVerification Stage = "verification"
	StageEscalation   Stage = "escalation"
	StageFinal        Stage = "final"
)

// TemplateKey addresses one template in the catalog.
type TemplateKey struct {
	DisputeType DisputeType
	Stage       Stage
}

// RecipientClass decides where a composed letter is addressed.
type RecipientClass string

const (
	RecipientBureau    RecipientClass = "bureau"
	RecipientFurnisher RecipientClass = "furnisher"
)

// Bureau identifies one of the three consumer reporting agencies.
type Bureau string

const (
	BureauExperian   Bureau = "Experian"
	BureauEquifax    Bureau = "Equifax"
	BureauTransUnion Bureau = "TransUnion"
)

// Draft is a composed letter: finished body text plus the metadata a separate
// rendering/delivery layer needs. The body is final once composed.
type Draft struct {
	Subject          string
	Body             string
	Recipient        string
	RecipientAddress string
	CitedSection     string
	Stage            Stage
	DisputeType      DisputeType
}

// Binding carries the values substituted into a template. Tokens a template
// declares must be present here or composition fails.
type Binding struct {
	Bureau           Bureau
	FurnisherName    string
	FurnisherAddress string

	ConsumerName    string
	ConsumerAddress string
	SSNLastFour     string

	AccountName   string
	AccountNumber string
	DisputeReason string

	// Prior-correspondence context for follow-up and escalation stages.
	OriginalDate     string
	FollowUpDate     string
	EscalationDate   string
	DaysSinceDispute string
}
