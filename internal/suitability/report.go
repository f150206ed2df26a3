package suitability

import (
	"time"

	"github.com/google/uuid"

	"github.com/burnai/go-burn-suitability/internal/models"
)

// Fixed policy lists attached to every assessment. These are informational
// and not derived from the input signals; a rules engine may replace them
// later.
var policyLimitations = []models.Limitation{
	{
		Title:       "Weather Window",
		Description: "Conditions can shift rapidly; re-verify weather within 2 hours of ignition.",
	},
	{
		Title:       "Smoke Management",
		Description: "Smoke dispersal toward populated areas must be evaluated before ignition.",
	},
	{
		Title:       "Containment Resources",
		Description: "Standby suppression resources are required for the full burn duration.",
	},
}

var policyRecommendations = []string{
	"Notify local fire authorities at least 24 hours before ignition.",
	"Establish containment lines along the downwind perimeter first.",
	"Maintain continuous weather monitoring throughout the burn.",
	"Suspend operations if wind speed exceeds the permitted maximum.",
}

// BuildAssessment runs the scoring pipeline and assembles the immutable
// output record. Status and eligibility are always recomputed from the score
// produced here; they never drift from it.
func BuildAssessment(s *models.CountySignals, now time.Time) (*models.SuitabilityAssessment, error) {
	score, err := Score(s)
	if err != nil {
		return nil, err
	}

	return &models.SuitabilityAssessment{
		ID:                  uuid.NewString(),
		CountyID:            s.CountyID,
		SuitabilityScore:    score,
		Status:              Classify(score),
		Limitations:         policyLimitations,
		Recommendations:     policyRecommendations,
		ProtocolEligible:    ProtocolEligible(score, s.PermitStatus),
		PermitStatus:        s.PermitStatus,
		AssessmentTimestamp: now.UTC(),
	}, nil
}
