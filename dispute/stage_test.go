package dispute

import "testing"

func TestStageOrdering(t *testing.T) {
	stages := Stages()
	if len(stages) != 10 {
		t.Fatalf("stage count = %d, want 10", len(stages))
	}
	if stages[0] != StageCreditAnalysis || stages[len(stages)-1] != StageWealthProtection {
		t.Fatalf("unexpected endpoints: %v", stages)
	}
	for i := 0; i < len(stages)-1; i++ {
		if !stages[i].Before(stages[i+1]) {
			t.Errorf("%s must precede %s", stages[i], stages[i+1])
		}
		next, ok := stages[i].Next()
		if !ok || next != stages[i+1] {
			t.Errorf("Next(%s) = %s, %v", stages[i], next, ok)
		}
	}
	if _, ok := StageWealthProtection.Next(); ok {
		t.Errorf("final stage must have no successor")
	}
}

func TestRemediationBoundary(t *testing.T) {
	remediation := []Stage{
		StageCreditAnalysis, StageDisputePreparation, StageBureauDispute,
		StageFurnisherDispute, StageVerificationChallenge, StageLegalEscalation,
	}
	for _, s := range remediation {
		if !s.Remediation() {
			t.Errorf("%s must be a remediation stage", s)
		}
	}
	advisory := []Stage{
		StageComplianceEnforcement, StageScoreOptimization,
		StageCreditBuilding, StageWealthProtection,
	}
	for _, s := range advisory {
		if s.Remediation() {
			t.Errorf("%s must be advisory", s)
		}
	}

	if _, ok := StageLegalEscalation.NextRemediation(); ok {
		t.Errorf("escalation must be exhausted at %s", StageLegalEscalation)
	}
	if next, ok := StageVerificationChallenge.NextRemediation(); !ok || next != StageLegalEscalation {
		t.Errorf("NextRemediation(%s) = %s, %v", StageVerificationChallenge, next, ok)
	}
}

func TestFollowUpEligibility(t *testing.T) {
	if !StageBureauDispute.FollowUpEligible() || !StageVerificationChallenge.FollowUpEligible() {
		t.Errorf("bureau-facing stages must schedule follow-ups")
	}
	if StageLegalEscalation.FollowUpEligible() {
		t.Errorf("legal escalation must not auto-schedule a follow-up")
	}
}

func TestUnknownStage(t *testing.T) {
	s := Stage("MEDIATION")
	if s.Valid() {
		t.Errorf("unknown stage reported valid")
	}
	if _, ok := s.Next(); ok {
		t.Errorf("unknown stage has a successor")
	}
	if s.Before(StageBureauDispute) || StageBureauDispute.Before(s) {
		t.Errorf("unknown stage must compare false")
	}
}
