// Package dispute implements the enforcement workflow: per-client dispute
// state machines that sequence tradeline challenges through ordered
// escalation stages, generate stage correspondence, and settle on external
// responses.
package dispute

import (
	"errors"
	"time"

	"creditflow/letters"
	"creditflow/metro2"
)

var (
	ErrNotFound          = errors.New("dispute: not found")
	ErrConflict          = errors.New("dispute: concurrent update conflict")
	ErrIllegalTransition = errors.New("dispute: illegal transition")
	ErrUnknownOutcome    = errors.New("dispute: unknown response outcome")
	ErrNoSentLetter      = errors.New("dispute: no letter has been sent")
	ErrDeliveryFailed    = errors.New("dispute: letter delivery failed")
)

// Status is a dispute's sub-state within its current enforcement stage.
type Status string

const (
	StatusPending       Status = "pending"
	StatusSubmitted     Status = "submitted"
	StatusInvestigating Status = "investigating"
	StatusResolved      Status = "resolved"
	StatusRejected      Status = "rejected"
)

// Terminal reports whether the status absorbs all further transitions.
func (s Status) Terminal() bool {
	return s == StatusResolved || s == StatusRejected
}

// Client is one consumer with the tradelines reported against them.
type Client struct {
	ID      string
	Name    string
	Address string
	SSN     string

	Tradelines []ReportedTradeline
}

// ReportedTradeline couples a raw tradeline record with where it was seen and
// who furnished it.
type ReportedTradeline struct {
	ID               string
	Bureau           letters.Bureau
	FurnisherName    string
	FurnisherAddress string
	Record           metro2.TradelineRecord
}

// StageTransition is one entry in a dispute's stage history.
type StageTransition struct {
	Stage Stage
	At    time.Time
}

// Dispute is one client's challenge to one tradeline at one recipient. It is
// mutated only by the engine's transition functions; Version carries the
// optimistic concurrency token the store checks on every write.
type Dispute struct {
	ID         string
	WorkflowID string
	ClientID   string

	ClientName    string
	ClientAddress string
	SSNLastFour   string

	TradelineID      string
	Bureau           letters.Bureau
	FurnisherName    string
	FurnisherAddress string
	AccountName      string
	AccountNumber    string

	Type               letters.DisputeType
	Status             Status
	Stage              Stage
	Priority           int
	SuccessProbability float64
	Reasons            []string
	Violations         []metro2.Violation

	FollowUpAt   *time.Time
	StageHistory []StageTransition

	Version    int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
	ResolvedAt *time.Time
}

// LetterStatus is a letter's delivery lifecycle.
type LetterStatus string

const (
	LetterDraft     LetterStatus = "draft"
	LetterGenerated LetterStatus = "generated"
	LetterSent      LetterStatus = "sent"
	LetterDelivered LetterStatus = "delivered"
	LetterFailed    LetterStatus = "failed"
)

// Letter is one piece of stage correspondence. The body is immutable once
// generated; a retry creates a new letter rather than editing this one.
type Letter struct {
	ID        string
	DisputeID string
	Stage     Stage

	Subject          string
	Body             string
	Recipient        string
	RecipientAddress string
	CitedSection     string

	Status     LetterStatus
	Method     string
	DeliveryID string

	CreatedAt time.Time
	SentAt    *time.Time
}

// Outcome classifies an inbound bureau or furnisher response.
type Outcome string

const (
	OutcomeDeleted      Outcome = "deleted"
	OutcomeCorrected    Outcome = "corrected"
	OutcomeVerified     Outcome = "verified"
	OutcomeAcknowledged Outcome = "acknowledged"
)

// Response is one inbound event on a dispute's audit trail. Responses are
// append-only and recorded even when they trigger no transition.
type Response struct {
	ID         string
	DisputeID  string
	Outcome    Outcome
	Metadata   map[string]string
	ReceivedAt time.Time
}

// WorkflowStatus is the lifecycle of a client workflow.
type WorkflowStatus string

const (
	WorkflowActive    WorkflowStatus = "active"
	WorkflowCompleted WorkflowStatus = "completed"
)

// Workflow owns a client's disputes. It completes when every owned dispute is
// terminal.
type Workflow struct {
	ID       string
	ClientID string
	Status   WorkflowStatus

	EstimatedCompletion time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
	CompletedAt         *time.Time
}

// Progress is the reporting view of a workflow.
type Progress struct {
	WorkflowID            string
	Total                 int
	Resolved              int
	Rejected              int
	Pending               int
	ProgressPercent       int
	AvgSuccessProbability float64
	EstimatedCompletion   time.Time
	Completed             bool
}
