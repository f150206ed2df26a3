package suitability

import (
	"math"

	"github.com/burnai/go-burn-suitability/internal/models"
)

// Sub-score weights. The exact split is policy; the hard requirement is that
// Score stays monotone in every input, which holds because each sub-score is
// monotone and all weights are positive.
const (
	weightWeather    = 0.35
	weightHazard     = 0.25
	weightReadiness  = 0.25
	weightHistorical = 0.15
)

// Normalization caps for raw inputs.
const (
	fullPersonnelCrew = 15.0 // personnel at or above a full crew score 1.0
	maxFiresPerWeek   = 10.0 // historical frequency at or above this scores 0.0
	maxWindMph        = 20.0
)

// Score computes the 0-100 burn suitability score for a signal snapshot.
// Pure function; validates its input and never substitutes defaults.
func Score(s *models.CountySignals) (int, error) {
	if err := s.Validate(); err != nil {
		return 0, err
	}

	total := weightWeather*weatherScore(s.Weather) +
		weightHazard*hazardScore(s.HazardProximity) +
		weightReadiness*readinessScore(s.FirePersonnelReady, s.EquipmentStatus) +
		weightHistorical*historicalScore(s.HistoricalFireFrequency)

	return int(math.Round(100 * total)), nil
}

// weatherScore favors cool, humid, calm conditions. Each component is
// monotone: lower temperature, higher humidity and lower wind never reduce
// the result.
func weatherScore(w models.Weather) float64 {
	temp := clamp01((100 - w.TemperatureF) / 50) // 50F -> 1.0, 100F -> 0.0
	humidity := w.HumidityPct / 100
	wind := clamp01(1 - w.WindSpeedMph/maxWindMph)

	return 0.3*temp + 0.4*humidity + 0.3*wind
}

func hazardScore(h models.HazardProximity) float64 {
	switch h {
	case models.HazardProximityLow:
		return 1.0
	case models.HazardProximityMedium:
		return 0.5
	default:
		return 0.0
	}
}

func readinessScore(personnel int, equipment models.EquipmentStatus) float64 {
	crew := clamp01(float64(personnel) / fullPersonnelCrew)

	var equip float64
	switch equipment {
	case models.EquipmentReady:
		equip = 1.0
	case models.EquipmentPartial:
		equip = 0.5
	default:
		equip = 0.0
	}

	return 0.6*equip + 0.4*crew
}

func historicalScore(firesPerWeek float64) float64 {
	return clamp01(1 - firesPerWeek/maxFiresPerWeek)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
