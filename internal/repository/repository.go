package repository

import (
	"context"

	"github.com/burnai/go-burn-suitability/internal/models"
)

// LatestAssessment pairs the signal snapshot an assessment was computed from
// with the assessment itself.
type LatestAssessment struct {
	Signals    *models.CountySignals
	Assessment *models.SuitabilityAssessment
}

// AssessmentRepository caches the latest signals and assessment per county.
// The cache holds exactly one row per county; a fresh assessment replaces the
// previous one.
type AssessmentRepository interface {
	Save(ctx context.Context, signals *models.CountySignals, assessment *models.SuitabilityAssessment) error
	GetLatest(ctx context.Context, countyID string) (*LatestAssessment, error)
	ListLatest(ctx context.Context) (map[string]*models.SuitabilityAssessment, error)
}
