package dispute

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"creditflow/ai"
	"creditflow/delivery"
	"creditflow/letters"
	"creditflow/metrics"
	"creditflow/metro2"
	"creditflow/pii"
)

// validateParallelism bounds the fan-out when a client carries many
// tradelines.
const validateParallelism = 8

// LetterComposer abstracts the letters.Composer for the engine.
type LetterComposer interface {
	Compose(ctx context.Context, key letters.TemplateKey, b letters.Binding) (letters.Draft, error)
}

// Scorer abstracts the success-probability collaborator. A nil scorer means
// every dispute gets the neutral default.
type Scorer interface {
	Estimate(ctx context.Context, f ai.DisputeFeatures) float64
}

// Policy carries the workflow timing rules.
type Policy struct {
	FollowUpWindow   time.Duration
	CompletionWindow time.Duration
}

// DefaultPolicy is the FCRA-shaped default: a 30 day investigation window and
// a 120 day estimated program length.
func DefaultPolicy() Policy {
	return Policy{
		FollowUpWindow:   30 * 24 * time.Hour,
		CompletionWindow: 120 * 24 * time.Hour,
	}
}

// Engine drives the enforcement workflow. All mutations of disputes and
// workflows go through its transition functions.
type Engine struct {
	store     Store
	validator *metro2.Validator
	composer  LetterComposer
	scorer    Scorer
	sender    delivery.Sender
	metrics   *metrics.Set
	logger    *slog.Logger
	policy    Policy
	method    delivery.Method

	idGenerator func() string
	now         func() time.Time
}

// NewEngine builds an engine over the given store, composer and delivery
// channel. The scorer and metrics set are optional.
func NewEngine(store Store, composer LetterComposer, sender delivery.Sender, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:       store,
		validator:   metro2.NewValidator(),
		composer:    composer,
		sender:      sender,
		logger:      logger,
		policy:      DefaultPolicy(),
		method:      delivery.MethodPostal,
		idGenerator: uuid.NewString,
		now:         time.Now,
	}
}

func (e *Engine) WithScorer(s Scorer) *Engine {
	e.scorer = s
	return e
}

func (e *Engine) WithMetrics(m *metrics.Set) *Engine {
	e.metrics = m
	return e
}

func (e *Engine) WithPolicy(p Policy) *Engine {
	e.policy = p
	return e
}

func (e *Engine) WithDeliveryMethod(m delivery.Method) *Engine {
	e.method = m
	return e
}

func (e *Engine) WithIDGenerator(gen func() string) *Engine {
	e.idGenerator = gen
	return e
}

func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	e.validator = e.validator.WithClock(now)
	return e
}

// Initialize validates every tradeline the client owns and opens a dispute
// for each one that produced violations. The owning workflow is created with
// the policy's estimated completion date.
func (e *Engine) Initialize(ctx context.Context, client Client) (Workflow, []Dispute, error) {
	if client.ID == "" {
		return Workflow{}, nil, fmt.Errorf("dispute: initialize: missing client id")
	}

	// Validation is pure, so tradelines fan out freely.
	results := make([]metro2.Result, len(client.Tradelines))
	var g errgroup.Group
	g.SetLimit(validateParallelism)
	for i, tl := range client.Tradelines {
		g.Go(func() error {
			results[i] = e.validator.Validate(tl.Record)
			return nil
		})
	}
	_ = g.Wait() // validation goroutines only return nil

	now := e.now()
	w := Workflow{
		ID:                  e.idGenerator(),
		ClientID:            client.ID,
		Status:              WorkflowActive,
		EstimatedCompletion: now.Add(e.policy.CompletionWindow),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := e.store.CreateWorkflow(ctx, w); err != nil {
		return Workflow{}, nil, fmt.Errorf("dispute: initialize: create workflow: %w", err)
	}

	var disputes []Dispute
	for i, tl := range client.Tradelines {
		res := results[i]
		e.metrics.ValidatedRecord(severityCounts(res.Violations))
		if !res.HasViolations() {
			continue
		}

		disputeType := classifyDisputeType(res.Violations)
		d := Dispute{
			ID:                 e.idGenerator(),
			WorkflowID:         w.ID,
			ClientID:           client.ID,
			ClientName:         client.Name,
			ClientAddress:      client.Address,
			SSNLastFour:        pii.LastFour(client.SSN),
			TradelineID:        tl.ID,
			Bureau:             tl.Bureau,
			FurnisherName:      tl.FurnisherName,
			FurnisherAddress:   tl.FurnisherAddress,
			AccountName:        tl.FurnisherName,
			AccountNumber:      tl.Record.AccountNumber,
			Type:               disputeType,
			Status:             StatusPending,
			Stage:              StageDisputePreparation,
			Priority:           priorityFor(res.Violations),
			SuccessProbability: e.estimate(ctx, disputeType, tl, res),
			Reasons:            metro2.DisputeReasons(res.Violations),
			Violations:         res.Violations,
			StageHistory:       []StageTransition{{Stage: StageDisputePreparation, At: now}},
			Version:            1,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := e.store.CreateDispute(ctx, d); err != nil {
			return Workflow{}, nil, fmt.Errorf("dispute: initialize: create dispute for tradeline %s: %w", tl.ID, err)
		}
		e.metrics.OpenedDispute()
		disputes = append(disputes, d)
	}

	e.logger.Info("workflow initialized",
		"workflow_id", w.ID, "client_id", client.ID,
		"tradelines", len(client.Tradelines), "disputes", len(disputes))
	return w, disputes, nil
}

// AdvanceToStage moves the dispute to the immediately following enforcement
// stage, composing and dispatching the stage letter. Skips, repeats,
// transitions out of terminal states, and stale reads are all rejected with
// ErrIllegalTransition.
func (e *Engine) AdvanceToStage(ctx context.Context, disputeID string, next Stage) (Dispute, error) {
	d, err := e.store.GetDispute(ctx, disputeID)
	if err != nil {
		return Dispute{}, fmt.Errorf("dispute: advance %s: %w", disputeID, err)
	}
	if d.Status.Terminal() {
		return Dispute{}, fmt.Errorf("dispute: advance %s: status %s is terminal: %w", d.ID, d.Status, ErrIllegalTransition)
	}
	want, ok := d.Stage.NextRemediation()
	if !ok {
		return Dispute{}, fmt.Errorf("dispute: advance %s: escalation exhausted at %s: %w", d.ID, d.Stage, ErrIllegalTransition)
	}
	if next != want {
		return Dispute{}, fmt.Errorf("dispute: advance %s: %s -> %s skips %s: %w", d.ID, d.Stage, next, want, ErrIllegalTransition)
	}
	updated, _, err := e.advance(ctx, d, next)
	return updated, err
}

// advance composes, dispatches and commits a single-stage transition. The
// caller has already established that next is the legal successor.
func (e *Engine) advance(ctx context.Context, d Dispute, next Stage) (Dispute, Letter, error) {
	ls, ok := next.letterStage()
	if !ok {
		return Dispute{}, Letter{}, fmt.Errorf("dispute: advance %s: stage %s has no correspondence: %w", d.ID, next, ErrIllegalTransition)
	}

	draft, err := e.composer.Compose(ctx, letters.TemplateKey{DisputeType: d.Type, Stage: ls}, e.bindingFor(d))
	if err != nil {
		return Dispute{}, Letter{}, fmt.Errorf("dispute: advance %s: %w", d.ID, err)
	}

	now := e.now()
	letter := Letter{
		ID:               e.idGenerator(),
		DisputeID:        d.ID,
		Stage:            next,
		Subject:          draft.Subject,
		Body:             draft.Body,
		Recipient:        draft.Recipient,
		RecipientAddress: draft.RecipientAddress,
		CitedSection:     draft.CitedSection,
		Status:           LetterGenerated,
		Method:           string(e.method),
		CreatedAt:        now,
	}
	if err := e.store.CreateLetter(ctx, letter); err != nil {
		return Dispute{}, Letter{}, fmt.Errorf("dispute: advance %s: persist letter: %w", d.ID, err)
	}

	receipt, err := e.sender.Send(ctx, delivery.Letter{
		ID:               letter.ID,
		Subject:          letter.Subject,
		Body:             letter.Body,
		Recipient:        letter.Recipient,
		RecipientAddress: letter.RecipientAddress,
	}, e.method)
	if err != nil {
		// The dispute stays put. The failed letter is kept visible so an
		// operator can retry instead of seeing false progress.
		letter.Status = LetterFailed
		if uerr := e.store.UpdateLetter(ctx, letter); uerr != nil {
			e.logger.Error("failed to flag letter after send failure", "letter_id", letter.ID, "err", uerr)
		}
		e.metrics.SendFailed()
		return Dispute{}, letter, fmt.Errorf("dispute: advance %s: send letter %s: %v: %w", d.ID, letter.ID, err, ErrDeliveryFailed)
	}

	sentAt := receipt.SentAt
	letter.Status = LetterSent
	letter.DeliveryID = receipt.DeliveryID
	letter.SentAt = &sentAt
	if err := e.store.UpdateLetter(ctx, letter); err != nil {
		return Dispute{}, Letter{}, fmt.Errorf("dispute: advance %s: mark letter sent: %w", d.ID, err)
	}

	d.Stage = next
	d.Status = StatusSubmitted
	d.StageHistory = append(d.StageHistory, StageTransition{Stage: next, At: now})
	if next.FollowUpEligible() {
		deadline := now.Add(e.policy.FollowUpWindow)
		d.FollowUpAt = &deadline
	} else {
		d.FollowUpAt = nil
	}
	d.UpdatedAt = now

	updated, err := e.store.UpdateDispute(ctx, d)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return Dispute{}, Letter{}, fmt.Errorf("dispute: advance %s: concurrent transition: %w", d.ID, ErrIllegalTransition)
		}
		return Dispute{}, Letter{}, fmt.Errorf("dispute: advance %s: commit: %w", d.ID, err)
	}

	e.metrics.ComposedLetter(string(next))
	e.logger.Info("dispute advanced",
		"dispute_id", d.ID, "stage", next, "letter_id", letter.ID,
		"recipient", letter.Recipient)
	return updated, letter, nil
}

// ProcessResponse applies an inbound bureau or furnisher response. The
// response is recorded on the audit trail unconditionally; terminal disputes
// absorb it without transitioning.
func (e *Engine) ProcessResponse(ctx context.Context, disputeID string, outcome Outcome, metadata map[string]string) (Dispute, error) {
	switch outcome {
	case OutcomeDeleted, OutcomeCorrected, OutcomeVerified, OutcomeAcknowledged:
	default:
		return Dispute{}, fmt.Errorf("dispute: process response for %s: outcome %q: %w", disputeID, outcome, ErrUnknownOutcome)
	}

	d, err := e.store.GetDispute(ctx, disputeID)
	if err != nil {
		return Dispute{}, fmt.Errorf("dispute: process response for %s: %w", disputeID, err)
	}

	if err := e.store.AppendResponse(ctx, Response{
		ID:         e.idGenerator(),
		DisputeID:  d.ID,
		Outcome:    outcome,
		Metadata:   metadata,
		ReceivedAt: e.now(),
	}); err != nil {
		return Dispute{}, fmt.Errorf("dispute: process response for %s: record: %w", disputeID, err)
	}

	if d.Status.Terminal() {
		e.logger.Info("response recorded on terminal dispute", "dispute_id", d.ID, "outcome", outcome)
		return d, nil
	}

	switch outcome {
	case OutcomeAcknowledged:
		d.Status = StatusInvestigating
		d.UpdatedAt = e.now()
		updated, err := e.store.UpdateDispute(ctx, d)
		if err != nil {
			return Dispute{}, e.commitErr(d.ID, err)
		}
		return updated, nil

	case OutcomeDeleted, OutcomeCorrected:
		return e.resolve(ctx, d)

	default: // OutcomeVerified
		return e.escalate(ctx, d)
	}
}

// resolve closes a dispute as successful. Resolution requires that at least
// one letter actually went out.
func (e *Engine) resolve(ctx context.Context, d Dispute) (Dispute, error) {
	sent, err := e.hasSentLetter(ctx, d.ID)
	if err != nil {
		return Dispute{}, fmt.Errorf("dispute: resolve %s: %w", d.ID, err)
	}
	if !sent {
		return Dispute{}, fmt.Errorf("dispute: resolve %s: %w", d.ID, ErrNoSentLetter)
	}

	now := e.now()
	d.Status = StatusResolved
	d.FollowUpAt = nil
	d.ResolvedAt = &now
	d.UpdatedAt = now

	updated, err := e.store.UpdateDispute(ctx, d)
	if err != nil {
		return Dispute{}, e.commitErr(d.ID, err)
	}

	e.metrics.ResolvedDispute(string(StatusResolved))
	e.logger.Info("dispute resolved", "dispute_id", d.ID, "stage", d.Stage)
	if err := e.maybeCompleteWorkflow(ctx, d.WorkflowID); err != nil {
		return Dispute{}, err
	}
	return updated, nil
}

// escalate handles a verified-without-change outcome: advance to the next
// remediation stage, or reject when escalation is exhausted.
func (e *Engine) escalate(ctx context.Context, d Dispute) (Dispute, error) {
	if next, ok := d.Stage.NextRemediation(); ok {
		updated, _, err := e.advance(ctx, d, next)
		return updated, err
	}

	now := e.now()
	d.Status = StatusRejected
	d.FollowUpAt = nil
	d.UpdatedAt = now

	updated, err := e.store.UpdateDispute(ctx, d)
	if err != nil {
		return Dispute{}, e.commitErr(d.ID, err)
	}

	e.metrics.ResolvedDispute(string(StatusRejected))
	e.logger.Info("dispute rejected, escalation exhausted", "dispute_id", d.ID, "stage", d.Stage)
	if err := e.maybeCompleteWorkflow(ctx, d.WorkflowID); err != nil {
		return Dispute{}, err
	}
	return updated, nil
}

func (e *Engine) hasSentLetter(ctx context.Context, disputeID string) (bool, error) {
	ls, err := e.store.ListLettersByDispute(ctx, disputeID)
	if err != nil {
		return false, err
	}
	for _, l := range ls {
		if l.Status == LetterSent || l.Status == LetterDelivered {
			return true, nil
		}
	}
	return false, nil
}

func (e *Engine) commitErr(disputeID string, err error) error {
	if errors.Is(err, ErrConflict) {
		return fmt.Errorf("dispute: commit %s: concurrent transition: %w", disputeID, ErrIllegalTransition)
	}
	return fmt.Errorf("dispute: commit %s: %w", disputeID, err)
}

// estimate asks the scoring collaborator for a success probability, falling
// back to the neutral default when no scorer is wired.
func (e *Engine) estimate(ctx context.Context, dt letters.DisputeType, tl ReportedTradeline, res metro2.Result) float64 {
	if e.scorer == nil {
		return ai.NeutralProbability
	}
	high := 0
	for _, v := range res.Violations {
		if v.Severity == metro2.SeverityHigh {
			high++
		}
	}
	return e.scorer.Estimate(ctx, ai.DisputeFeatures{
		ViolationCount:    len(res.Violations),
		HighSeverityCount: high,
		ComplianceScore:   res.ComplianceScore,
		DisputeType:       string(dt),
		Bureau:            string(tl.Bureau),
		AccountStatus:     tl.Record.AccountStatus,
	})
}

// bindingFor projects a dispute onto the composer's token namespace.
func (e *Engine) bindingFor(d Dispute) letters.Binding {
	now := e.now()
	reason := strings.Join(d.Reasons, "; ")
	if reason == "" {
		reason = "The reported information is inaccurate and unverifiable"
	}
	days := int(now.Sub(d.CreatedAt).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return letters.Binding{
		Bureau:           d.Bureau,
		FurnisherName:    d.FurnisherName,
		FurnisherAddress: d.FurnisherAddress,
		ConsumerName:     d.ClientName,
		ConsumerAddress:  d.ClientAddress,
		SSNLastFour:      d.SSNLastFour,
		AccountName:      d.AccountName,
		AccountNumber:    d.AccountNumber,
		DisputeReason:    reason,
		OriginalDate:     d.CreatedAt.Format("January 2, 2006"),
		FollowUpDate:     now.Add(e.policy.FollowUpWindow).Format("January 2, 2006"),
		EscalationDate:   now.Add(2 * e.policy.FollowUpWindow).Format("January 2, 2006"),
		DaysSinceDispute: strconv.Itoa(days),
	}
}

func severityCounts(violations []metro2.Violation) map[string]int {
	if len(violations) == 0 {
		return nil
	}
	out := make(map[string]int, 3)
	for _, v := range violations {
		out[string(v.Severity)]++
	}
	return out
}
