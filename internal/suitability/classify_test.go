package suitability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/burnai/go-burn-suitability/internal/models"
)

func TestClassify_Thresholds(t *testing.T) {
	tests := []struct {
		score int
		want  models.SuitabilityStatus
	}{
		{0, models.StatusNotRecommended},
		{59, models.StatusNotRecommended},
		{60, models.StatusSuitableWithCaution},
		{79, models.StatusSuitableWithCaution},
		{80, models.StatusHighlySuitable},
		{100, models.StatusHighlySuitable},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.score), "classify(%d)", tt.score)
	}
}

func TestProtocolEligible_ScoreOnly(t *testing.T) {
	// Eligibility is gated on score alone; permit status is surfaced but
	// does not block the action.
	assert.False(t, ProtocolEligible(59, models.PermitApproved))
	assert.True(t, ProtocolEligible(60, models.PermitDenied))
	assert.True(t, ProtocolEligible(85, models.PermitPending))
	assert.False(t, ProtocolEligible(0, models.PermitApproved))
}
