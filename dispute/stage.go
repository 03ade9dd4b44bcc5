package dispute

import "creditflow/letters"

// Stage is one step in the ordered escalation sequence.
type Stage string

const (
	StageCreditAnalysis        Stage = "CREDIT_ANALYSIS"
	StageDisputePreparation    Stage = "DISPUTE_PREPARATION"
	StageBureauDispute         Stage = "BUREAU_DISPUTE"
	StageFurnisherDispute      Stage = "FURNISHER_DISPUTE"
	StageVerificationChallenge Stage = "VERIFICATION_CHALLENGE"
	StageLegalEscalation       Stage = "LEGAL_ESCALATION"
	StageComplianceEnforcement Stage = "COMPLIANCE_ENFORCEMENT"
	StageScoreOptimization     Stage = "SCORE_OPTIMIZATION"
	StageCreditBuilding        Stage = "CREDIT_BUILDING"
	StageWealthProtection      Stage = "WEALTH_PROTECTION"
)

// stageOrder fixes the strict escalation ordering.
var stageOrder = []Stage{
	StageCreditAnalysis,
	StageDisputePreparation,
	StageBureauDispute,
	StageFurnisherDispute,
	StageVerificationChallenge,
	StageLegalEscalation,
	StageComplianceEnforcement,
	StageScoreOptimization,
	StageCreditBuilding,
	StageWealthProtection,
}

var stageIndex = func() map[Stage]int {
	m := make(map[Stage]int, len(stageOrder))
	for i, s := range stageOrder {
		m[s] = i
	}
	return m
}()

// Stages lists every stage in escalation order.
func Stages() []Stage {
	out := make([]Stage, len(stageOrder))
	copy(out, stageOrder)
	return out
}

// Valid reports whether s names a known stage.
func (s Stage) Valid() bool {
	_, ok := stageIndex[s]
	return ok
}

// Next returns the immediately following stage, or false at the end.
func (s Stage) Next() (Stage, bool) {
	i, ok := stageIndex[s]
	if !ok || i+1 >= len(stageOrder) {
		return "", false
	}
	return stageOrder[i+1], true
}

// Before reports whether s strictly precedes other. Unknown stages compare
// false.
func (s Stage) Before(other Stage) bool {
	i, ok := stageIndex[s]
	j, jok := stageIndex[other]
	return ok && jok && i < j
}

// Remediation reports whether a dispute traverses s automatically. Later
// stages are advisory and reached only through workflow reporting.
func (s Stage) Remediation() bool {
	i, ok := stageIndex[s]
	return ok && i <= stageIndex[StageLegalEscalation]
}

// NextRemediation returns the next stage a dispute may advance to, or false
// when escalation is exhausted.
func (s Stage) NextRemediation() (Stage, bool) {
	next, ok := s.Next()
	if !ok || !next.Remediation() {
		return "", false
	}
	return next, true
}

// FollowUpEligible reports whether advancing to s schedules an investigation
// deadline. The statutory window applies through the verification challenge;
// legal escalation is handled on operator cadence.
func (s Stage) FollowUpEligible() bool {
	i, ok := stageIndex[s]
	return ok && i <= stageIndex[StageVerificationChallenge]
}

// letterStage maps an enforcement stage to the template stage its
// correspondence draws from. Stages before the first bureau contact generate
// no letters.
func (s Stage) letterStage() (letters.Stage, bool) {
	switch s {
	case StageBureauDispute:
		return letters.StageInitial, true
	case StageFurnisherDispute:
		return letters.StageFurnisher, true
	case StageVerificationChallenge:
		return letters.StageVerification, true
	case StageLegalEscalation:
		return letters.StageEscalation, true
	}
	return "", false
}
