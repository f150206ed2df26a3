// Package signals collects per-county input snapshots from the external
// collaborators: the weather service, the hazard/GIS service, the resource
// management system and the permitting system.
package signals

import (
	"context"

	"github.com/burnai/go-burn-suitability/internal/models"
)

// Source names used in SourceError and logs.
const (
	SourceWeather   = "weather"
	SourceHazard    = "hazard"
	SourceResources = "resources"
	SourcePermits   = "permits"
)

type WeatherSource interface {
	Current(ctx context.Context, countyID string) (models.Weather, error)
}

// HazardSource reports structure/infrastructure proximity risk together with
// the historical fire frequency for the county, both derived from the same
// GIS dataset upstream.
type HazardSource interface {
	Proximity(ctx context.Context, countyID string) (models.HazardProximity, float64, error)
}

type ResourceSource interface {
	Readiness(ctx context.Context, countyID string) (int, models.EquipmentStatus, error)
}

type PermitSource interface {
	Status(ctx context.Context, countyID string) (models.PermitStatus, error)
}
