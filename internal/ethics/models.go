package ethics

// Recommendation is the scorer's advisory verdict. It never blocks on its
// own; arbitration decides how it combines with regulatory validation.
type Recommendation string

const (
	RecommendProceedWithCaution Recommendation = "PROCEED_WITH_CAUTION"
	RecommendSupervisorApproval Recommendation = "REQUIRE_SUPERVISOR_APPROVAL"
	RecommendDoNotProceed       Recommendation = "DO_NOT_PROCEED"
)

// RiskBreakdown holds the per-dimension scores, each on a 0 to 100 scale.
type RiskBreakdown struct {
	HarassmentRisk            float64 `json:"harassment_risk"`
	PsychologicalPressureRisk float64 `json:"psychological_pressure_risk"`
	VulnerableDebtorRisk      float64 `json:"vulnerable_debtor_risk"`
}

// Alternative is a lower-harm substitute action with its estimated risk.
type Alternative struct {
	Action       string  `json:"action"`
	ExpectedRisk float64 `json:"expected_risk"`
	Rationale    string  `json:"rationale"`
}

// Assessment is the complete ethical risk evaluation for one proposed action.
type Assessment struct {
	TotalScore     float64        `json:"total_score"`
	Recommendation Recommendation `json:"recommendation"`
	RiskBreakdown  RiskBreakdown  `json:"risk_breakdown"`
	RiskFactors    []string       `json:"risk_factors"`

	// HarmMinimizingAlternative is always populated; even low-risk actions
	// have a gentler fallback.
	HarmMinimizingAlternative Alternative `json:"harm_minimizing_alternative"`
}

// Weights combine the risk dimensions into the total score. They sum to 1.
type Weights struct {
	Harassment            float64
	PsychologicalPressure float64
	VulnerableDebtor      float64
}

// Thresholds map the total score to a recommendation. Scores at or above
// Medium yield DO_NOT_PROCEED; at or above Low, REQUIRE_SUPERVISOR_APPROVAL.
type Thresholds struct {
	Low    float64
	Medium float64
}

// DefaultWeights weight harassment heaviest: repeated unwanted contact is the
// most commonly litigated harm.
func DefaultWeights() Weights {
	return Weights{
		Harassment:            0.40,
		PsychologicalPressure: 0.35,
		VulnerableDebtor:      0.25,
	}
}

func DefaultThresholds() Thresholds {
	return Thresholds{Low: 40, Medium: 70}
}
