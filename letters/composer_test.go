package letters

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func testClock() time.Time {
	return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
}

func baseBinding() Binding {
	return Binding{
		Bureau:           BureauExperian,
		FurnisherName:    "First National Bank",
		FurnisherAddress: "First National Bank\n1 Bank Plaza\nChicago, IL 60601",
		ConsumerName:     "Dana Walker",
		ConsumerAddress:  "100 Main St\nDallas, TX 75201",
		SSNLastFour:      "6789",
		AccountName:      "First National Bank",
		AccountNumber:    "4000123412341234",
		DisputeReason:    "Date opened is in the future, violating logical date sequence",
		OriginalDate:     "February 1, 2026",
		FollowUpDate:     "March 5, 2026",
		EscalationDate:   "April 8, 2026",
		DaysSinceDispute: "37",
	}
}

func TestComposeInitialLetter(t *testing.T) {
	c := NewComposer(nil, nil).WithClock(testClock)

	draft, err := c.Compose(context.Background(), TemplateKey{DisputeNotMine, StageInitial}, baseBinding())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	if draft.Subject != "Dispute - Account Not Mine" {
		t.Errorf("subject = %q", draft.Subject)
	}
	if draft.Recipient != "Experian" {
		t.Errorf("recipient = %q, want Experian", draft.Recipient)
	}
	if !strings.Contains(draft.RecipientAddress, "P.O. Box 4500") {
		t.Errorf("recipient address = %q", draft.RecipientAddress)
	}
	if !strings.Contains(draft.Body, "Dana Walker") {
		t.Errorf("body missing consumer name")
	}
	if !strings.Contains(draft.Body, "March 10, 2026") {
		t.Errorf("body missing composition date")
	}
	if strings.Contains(draft.Body, "{") {
		t.Errorf("body contains unresolved placeholder: %q", draft.Body)
	}
	if draft.CitedSection != "FCRA 611(a)(1)(A)" {
		t.Errorf("cited section = %q", draft.CitedSection)
	}
}

func TestComposeFallsBackToGenericTemplate(t *testing.T) {
	c := NewComposer(nil, nil).WithClock(testClock)

	draft, err := c.Compose(context.Background(), TemplateKey{DisputeType("unheard_of"), StageInitial}, baseBinding())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if draft.Subject != "Credit Report Dispute" {
		t.Errorf("subject = %q, want generic template subject", draft.Subject)
	}
	if draft.DisputeType != DisputeType("unheard_of") {
		t.Errorf("dispute type = %q, want preserved key", draft.DisputeType)
	}
	if !strings.Contains(draft.Body, baseBinding().DisputeReason) {
		t.Errorf("generic template must carry the dispute reason")
	}
}

func TestComposeFurnisherLetterUsesFurnisherRecipient(t *testing.T) {
	c := NewComposer(nil, nil).WithClock(testClock)

	draft, err := c.Compose(context.Background(), TemplateKey{DisputeNotMine, StageFurnisher}, baseBinding())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if draft.Recipient != "First National Bank" {
		t.Errorf("recipient = %q, want furnisher", draft.Recipient)
	}
	if !strings.Contains(draft.Body, "XXX-XX-6789") {
		t.Errorf("body must mask SSN to last four: %q", draft.Body)
	}
	if draft.CitedSection != "FCRA 623(a)(8)" {
		t.Errorf("cited section = %q", draft.CitedSection)
	}
}

func TestComposeRejectsMissingToken(t *testing.T) {
	c := NewComposer(nil, nil).WithClock(testClock)
	b := baseBinding()
	b.AccountNumber = ""

	_, err := c.Compose(context.Background(), TemplateKey{DisputeNotMine, StageInitial}, b)
	if !errors.Is(err, ErrUnresolvedToken) {
		t.Fatalf("err = %v, want ErrUnresolvedToken", err)
	}
}

func TestComposeRejectsUnknownBureau(t *testing.T) {
	c := NewComposer(nil, nil).WithClock(testClock)
	b := baseBinding()
	b.Bureau = Bureau("Innovis")

	_, err := c.Compose(context.Background(), TemplateKey{DisputeNotMine, StageInitial}, b)
	if !errors.Is(err, ErrUnknownBureau) {
		t.Fatalf("err = %v, want ErrUnknownBureau", err)
	}
}

func TestComposeRejectsUnknownStage(t *testing.T) {
	c := NewComposer(nil, nil).WithClock(testClock)

	_, err := c.Compose(context.Background(), TemplateKey{DisputeNotMine, Stage("mediation")}, baseBinding())
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("err = %v, want ErrTemplateNotFound", err)
	}
}

type fakeEnhancer struct {
	out   string
	err   error
	calls int
}

func (f *fakeEnhancer) Enhance(ctx context.Context, draft string, meta map[string]string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if f.out == "append" {
		return draft + "\n\nAdditionally, I reserve all rights under applicable law.", nil
	}
	return f.out, nil
}

func TestComposeKeepsAcceptableEnhancement(t *testing.T) {
	enh := &fakeEnhancer{out: "append"}
	c := NewComposer(enh, nil).WithClock(testClock)

	draft, err := c.Compose(context.Background(), TemplateKey{DisputeNotMine, StageInitial}, baseBinding())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if enh.calls != 1 {
		t.Fatalf("enhancer calls = %d, want 1", enh.calls)
	}
	if !strings.Contains(draft.Body, "reserve all rights") {
		t.Errorf("enhanced text was not kept")
	}
}

func TestComposeDiscardsDegenerateEnhancement(t *testing.T) {
	enh := &fakeEnhancer{out: "ok"}
	c := NewComposer(enh, nil).WithClock(testClock)

	draft, err := c.Compose(context.Background(), TemplateKey{DisputeNotMine, StageInitial}, baseBinding())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if draft.Body == "ok" {
		t.Fatalf("degenerate enhancement must be discarded")
	}
	if !strings.Contains(draft.Body, "Dana Walker") {
		t.Errorf("original templated body must be kept")
	}
}

func TestComposeSurvivesEnhancerError(t *testing.T) {
	enh := &fakeEnhancer{err: errors.New("upstream timeout")}
	c := NewComposer(enh, nil).WithClock(testClock)

	draft, err := c.Compose(context.Background(), TemplateKey{DisputeNotMine, StageInitial}, baseBinding())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if !strings.Contains(draft.Body, "Dana Walker") {
		t.Errorf("original templated body must be kept on enhancer failure")
	}
}

func TestEveryTemplateComposesWithFullBinding(t *testing.T) {
	c := NewComposer(nil, nil).WithClock(testClock)

	for _, tpl := range Templates() {
		key := tpl.Key
		if key.Stage == "" {
			key.Stage = StageInitial
		}
		if key.DisputeType == "" {
			key.DisputeType = DisputeOther
		}
		draft, err := c.Compose(context.Background(), key, baseBinding())
		if err != nil {
			t.Errorf("compose %s/%s: %v", key.DisputeType, key.Stage, err)
			continue
		}
		for _, token := range tpl.Tokens {
			if strings.Contains(draft.Body, "{"+token+"}") {
				t.Errorf("template %s/%s leaked token %q", key.DisputeType, key.Stage, token)
			}
		}
	}
}
