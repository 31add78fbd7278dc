package verification

// The eight scoring dimensions, in wire order. Reveal payloads carry one
// byte per dimension in exactly this order.
const (
	DimInitiative     = "Initiative"
	DimCollaboration  = "Collaboration"
	DimReasoningDepth = "Reasoning Depth"
	DimCompliance     = "Compliance"
	DimEfficiency     = "Efficiency"
	DimAccuracy       = "Accuracy"
	DimRiskAssessment = "Risk Assessment"
	DimDocumentation  = "Documentation"
)

// NumDimensions is the fixed width of every score vector.
const NumDimensions = 8

// Dimensions lists the dimension names in wire order.
var Dimensions = [NumDimensions]string{
	DimInitiative,
	DimCollaboration,
	DimReasoningDepth,
	DimCompliance,
	DimEfficiency,
	DimAccuracy,
	DimRiskAssessment,
	DimDocumentation,
}

// Weights used by consensus when collapsing the vector into a single score.
// Accuracy, risk judgment, and documentation quality count for more than the
// behavioral dimensions.
var Weights = [NumDimensions]float64{1, 1, 1, 1, 1, 2.0, 1.5, 1.2}

// Scores for dimensions the audit cannot observe from a single decision
// record. Collaboration and efficiency need multi-turn conversation and
// timing data that the record does not carry, so the assessors return these
// declared constants rather than pretending to measure them.
const (
	StubCollaborationScore = 85
	StubEfficiencyScore    = 82
)
