package suitability

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burnai/go-burn-suitability/internal/models"
)

// baselineSignals returns a mid-range snapshot that individual tests mutate.
func baselineSignals() *models.CountySignals {
	return &models.CountySignals{
		CountyID: "la",
		Weather: models.Weather{
			TemperatureF:  75,
			HumidityPct:   55,
			WindSpeedMph:  8,
			WindDirection: "NW",
		},
		HazardProximity:         models.HazardProximityMedium,
		FirePersonnelReady:      10,
		EquipmentStatus:         models.EquipmentPartial,
		PermitStatus:            models.PermitPending,
		HistoricalFireFrequency: 4,
	}
}

func TestScore_Range(t *testing.T) {
	s := baselineSignals()
	score, err := Score(s)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, score, 0)
	assert.LessOrEqual(t, score, 100)
}

func TestScore_Monotonicity(t *testing.T) {
	tests := []struct {
		name    string
		improve func(*models.CountySignals)
	}{
		{"lower hazard proximity", func(s *models.CountySignals) {
			s.HazardProximity = models.HazardProximityLow
		}},
		{"more personnel", func(s *models.CountySignals) {
			s.FirePersonnelReady = 15
		}},
		{"equipment ready", func(s *models.CountySignals) {
			s.EquipmentStatus = models.EquipmentReady
		}},
		{"higher humidity", func(s *models.CountySignals) {
			s.Weather.HumidityPct = 80
		}},
		{"lower temperature", func(s *models.CountySignals) {
			s.Weather.TemperatureF = 60
		}},
		{"calmer wind", func(s *models.CountySignals) {
			s.Weather.WindSpeedMph = 2
		}},
		{"fewer historical fires", func(s *models.CountySignals) {
			s.HistoricalFireFrequency = 1
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := baselineSignals()
			baseScore, err := Score(base)
			require.NoError(t, err)

			improved := baselineSignals()
			tt.improve(improved)
			improvedScore, err := Score(improved)
			require.NoError(t, err)

			assert.GreaterOrEqual(t, improvedScore, baseScore,
				"improving %q must never decrease the score", tt.name)
		})
	}
}

func TestScore_HazardHighVsLow(t *testing.T) {
	high := baselineSignals()
	high.HazardProximity = models.HazardProximityHigh

	low := baselineSignals()
	low.HazardProximity = models.HazardProximityLow

	highScore, err := Score(high)
	require.NoError(t, err)
	lowScore, err := Score(low)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, lowScore, highScore)
}

func TestScore_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.CountySignals)
		field  string
	}{
		{"humidity above 100", func(s *models.CountySignals) {
			s.Weather.HumidityPct = 101
		}, "weather.humidity_pct"},
		{"negative wind speed", func(s *models.CountySignals) {
			s.Weather.WindSpeedMph = -1
		}, "weather.wind_speed_mph"},
		{"negative personnel", func(s *models.CountySignals) {
			s.FirePersonnelReady = -3
		}, "fire_personnel_ready"},
		{"negative fire frequency", func(s *models.CountySignals) {
			s.HistoricalFireFrequency = -0.5
		}, "historical_fire_frequency"},
		{"unknown hazard proximity", func(s *models.CountySignals) {
			s.HazardProximity = "ADJACENT"
		}, "hazard_proximity"},
		{"unknown permit status", func(s *models.CountySignals) {
			s.PermitStatus = "EXPIRED"
		}, "permit_status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := baselineSignals()
			tt.mutate(s)

			_, err := Score(s)
			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr), "expected ValidationError, got %v", err)
			assert.Equal(t, tt.field, verr.Field)
		})
	}
}

// Mirrors the San Francisco reference conditions from the dashboard.
func TestScore_SanFranciscoReference(t *testing.T) {
	s := &models.CountySignals{
		CountyID: "sf",
		Weather: models.Weather{
			TemperatureF:  68,
			HumidityPct:   52,
			WindSpeedMph:  5,
			WindDirection: "W",
		},
		HazardProximity:         models.HazardProximityLow,
		FirePersonnelReady:      15,
		EquipmentStatus:         models.EquipmentReady,
		PermitStatus:            models.PermitApproved,
		HistoricalFireFrequency: 2,
	}

	score, err := Score(s)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, score, ThresholdHighlySuitable)
	assert.Equal(t, models.StatusHighlySuitable, Classify(score))
	assert.True(t, ProtocolEligible(score, s.PermitStatus))
}
