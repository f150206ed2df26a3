package api

import (
	"github.com/burnai/go-burn-suitability/internal/models"
)

type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Geometry is either a Point (county centroid) or a Polygon (boundary ring).
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

// toGeoJSON renders the county catalog as static boundary geometry with the
// latest assessment attached as feature properties. Counties without a
// boundary ring fall back to their centroid point.
func toGeoJSON(counties []models.County, latest map[string]*models.SuitabilityAssessment) FeatureCollection {
	features := make([]Feature, 0, len(counties))

	for _, county := range counties {
		var geom Geometry
		if len(county.Boundary) > 0 {
			geom = Geometry{
				Type:        "Polygon",
				Coordinates: [][][]float64{county.Boundary},
			}
		} else {
			geom = Geometry{
				Type:        "Point",
				Coordinates: []float64{county.Coordinates.Longitude, county.Coordinates.Latitude},
			}
		}

		props := map[string]any{
			"id":    county.ID,
			"name":  county.Name,
			"state": county.State,
		}
		if a, ok := latest[county.ID]; ok {
			props["suitability_score"] = a.SuitabilityScore
			props["status"] = a.Status
			props["protocol_eligible"] = a.ProtocolEligible
			props["assessed_at"] = a.AssessmentTimestamp
		}

		features = append(features, Feature{
			Type:       "Feature",
			Geometry:   geom,
			Properties: props,
		})
	}

	return FeatureCollection{
		Type:     "FeatureCollection",
		Features: features,
	}
}
