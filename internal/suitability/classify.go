package suitability

import "github.com/burnai/go-burn-suitability/internal/models"

// Classification thresholds, matching the dashboard's traffic-light bands.
const (
	ThresholdHighlySuitable = 80
	ThresholdEligible       = 60
)

// Classify maps a score to its qualitative status. Total over all ints.
func Classify(score int) models.SuitabilityStatus {
	switch {
	case score >= ThresholdHighlySuitable:
		return models.StatusHighlySuitable
	case score >= ThresholdEligible:
		return models.StatusSuitableWithCaution
	default:
		return models.StatusNotRecommended
	}
}

// ProtocolEligible gates the "initiate burn protocol" action on score alone.
// Permit status is surfaced on the assessment but does not block the action;
// product has been asked to confirm whether a Denied permit should.
func ProtocolEligible(score int, permit models.PermitStatus) bool {
	_ = permit
	return score >= ThresholdEligible
}
