package letters

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Enhancer is an optional external text-enhancement collaborator. It is best
// effort: a failed or degenerate enhancement never blocks composition.
type Enhancer interface {
	Enhance(ctx context.Context, draft string, meta map[string]string) (string, error)
}

// enhancementMinRatio guards against a failing external call silently
// corrupting output: an enhanced body shorter than this share of the
// templated original is discarded.
const enhancementMinRatio = 0.8

// Composer binds templates to client/dispute data and produces finished
// drafts. It holds the immutable catalog and directory by construction and is
// safe for concurrent use.
type Composer struct {
	enhancer Enhancer
	logger   *slog.Logger
	now      func() time.Time
}

// NewComposer builds a composer. The enhancer may be nil, in which case the
// templated text ships untouched.
func NewComposer(enhancer Enhancer, logger *slog.Logger) *Composer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Composer{
		enhancer: enhancer,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the date stamped onto composed letters.
func (c *Composer) WithClock(now func() time.Time) *Composer {
	c.now = now
	return c
}

// Compose looks up the template for key, substitutes the binding values, and
// returns an addressed draft. Every token the template declares must resolve
// to a non-empty value; a leftover {token} literal is a composition failure,
// not a shippable letter.
func (c *Composer) Compose(ctx context.Context, key TemplateKey, b Binding) (Draft, error) {
	tpl, err := Lookup(key)
	if err != nil {
		return Draft{}, fmt.Errorf("compose %s/%s: %w", key.DisputeType, key.Stage, err)
	}

	recipient, recipientAddress, err := resolveRecipient(tpl.Recipient, b)
	if err != nil {
		return Draft{}, err
	}

	values := b.tokenValues()
	body := tpl.Body
	for _, token := range tpl.Tokens {
		value, ok := values[token]
		if !ok || strings.TrimSpace(value) == "" {
			return Draft{}, fmt.Errorf("compose %s/%s: token %q: %w", key.DisputeType, key.Stage, token, ErrUnresolvedToken)
		}
		body = strings.ReplaceAll(body, "{"+token+"}", value)
	}
	for _, token := range tpl.Tokens {
		if strings.Contains(body, "{"+token+"}") {
			return Draft{}, fmt.Errorf("compose %s/%s: token %q survived substitution: %w", key.DisputeType, key.Stage, token, ErrUnresolvedToken)
		}
	}

	date := c.now().Format("January 2, 2006")
	body = date + "\n\n" + recipientAddress + "\n\n" + body

	body = c.maybeEnhance(ctx, key, body)

	return Draft{
		Subject:          tpl.Subject,
		Body:             body,
		Recipient:        recipient,
		RecipientAddress: recipientAddress,
		CitedSection:     tpl.CitedSection,
		Stage:            key.Stage,
		DisputeType:      key.DisputeType,
	}, nil
}

// maybeEnhance forwards the draft to the enhancement collaborator and keeps
// the original unless the returned text passes the length guard.
func (c *Composer) maybeEnhance(ctx context.Context, key TemplateKey, body string) string {
	if c.enhancer == nil {
		return body
	}

	meta := map[string]string{
		"dispute_type": string(key.DisputeType),
		"stage":        string(key.Stage),
	}
	enhanced, err := c.enhancer.Enhance(ctx, body, meta)
	if err != nil {
		c.logger.Warn("letter enhancement failed, using template",
			"dispute_type", key.DisputeType, "stage", key.Stage, "err", err)
		return body
	}
	if float64(len(enhanced)) < float64(len(body))*enhancementMinRatio {
		c.logger.Warn("letter enhancement implausibly short, discarded",
			"dispute_type", key.DisputeType, "stage", key.Stage,
			"original_len", len(body), "enhanced_len", len(enhanced))
		return body
	}
	return enhanced
}

func resolveRecipient(class RecipientClass, b Binding) (string, string, error) {
	switch class {
	case RecipientBureau:
		contact, ok := BureauInfo(b.Bureau)
		if !ok {
			return "", "", fmt.Errorf("resolve recipient %q: %w", b.Bureau, ErrUnknownBureau)
		}
		return contact.Name, contact.Address, nil
	case RecipientFurnisher:
		if strings.TrimSpace(b.FurnisherName) == "" || strings.TrimSpace(b.FurnisherAddress) == "" {
			return "", "", fmt.Errorf("letters: furnisher recipient incomplete")
		}
		return b.FurnisherName, b.FurnisherAddress, nil
	}
	return "", "", fmt.Errorf("letters: unknown recipient class %q", class)
}

// tokenValues flattens the binding into the declared token namespace.
func (b Binding) tokenValues() map[string]string {
	return map[string]string{
		"bureau":           string(b.Bureau),
		"furnisherName":    b.FurnisherName,
		"clientName":       b.ConsumerName,
		"clientAddress":    b.ConsumerAddress,
		"lastFourSSN":      b.SSNLastFour,
		"accountName":      b.AccountName,
		"accountNumber":    b.AccountNumber,
		"disputeReason":    b.DisputeReason,
		"originalDate":     b.OriginalDate,
		"followUpDate":     b.FollowUpDate,
		"escalationDate":   b.EscalationDate,
		"daysSinceDispute": b.DaysSinceDispute,
	}
}
