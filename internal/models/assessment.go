package models

import "time"

type SuitabilityStatus string

const (
	StatusHighlySuitable      SuitabilityStatus = "HIGHLY_SUITABLE"
	StatusSuitableWithCaution SuitabilityStatus = "SUITABLE_WITH_CAUTION"
	StatusNotRecommended      SuitabilityStatus = "NOT_RECOMMENDED"
)

// Limitation is an informational constraint attached to an assessment.
type Limitation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// SuitabilityAssessment is the immutable output record of one evaluation.
// Status and ProtocolEligible are derived from SuitabilityScore (and
// PermitStatus) at build time and are never stored independently of it.
type SuitabilityAssessment struct {
	ID                  string            `json:"id"`
	CountyID            string            `json:"county_id"`
	SuitabilityScore    int               `json:"suitability_score"`
	Status              SuitabilityStatus `json:"status"`
	Limitations         []Limitation      `json:"limitations"`
	Recommendations     []string          `json:"recommendations"`
	ProtocolEligible    bool              `json:"protocol_eligible"`
	PermitStatus        PermitStatus      `json:"permit_status"`
	AssessmentTimestamp time.Time         `json:"assessment_timestamp"`
}
