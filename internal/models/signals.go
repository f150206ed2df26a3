package models

import "strings"

type HazardProximity string

const (
	HazardProximityLow    HazardProximity = "LOW"
	HazardProximityMedium HazardProximity = "MEDIUM"
	HazardProximityHigh   HazardProximity = "HIGH"
)

type EquipmentStatus string

const (
	EquipmentReady       EquipmentStatus = "READY"
	EquipmentPartial     EquipmentStatus = "PARTIAL"
	EquipmentUnavailable EquipmentStatus = "UNAVAILABLE"
)

type PermitStatus string

const (
	PermitApproved PermitStatus = "APPROVED"
	PermitPending  PermitStatus = "PENDING"
	PermitDenied   PermitStatus = "DENIED"
)

// Weather is the current-conditions snapshot for a county.
type Weather struct {
	TemperatureF  float64 `json:"temperature_f"`
	HumidityPct   float64 `json:"humidity_pct"`
	WindSpeedMph  float64 `json:"wind_speed_mph"`
	WindDirection string  `json:"wind_direction"`
}

// CountySignals is the per-assessment input snapshot, assembled fresh from
// the external collaborators on every collection. It is never persisted as
// anything other than the latest cached copy.
type CountySignals struct {
	CountyID                string          `json:"county_id"`
	Weather                 Weather         `json:"weather"`
	HazardProximity         HazardProximity `json:"hazard_proximity"`
	FirePersonnelReady      int             `json:"fire_personnel_ready"`
	EquipmentStatus         EquipmentStatus `json:"equipment_status"`
	PermitStatus            PermitStatus    `json:"permit_status"`
	HistoricalFireFrequency float64         `json:"historical_fire_frequency"` // fires/week
}

// Validate rejects out-of-range numeric fields and unknown enum values.
// A zero WindDirection is allowed; compass direction is informational.
func (s *CountySignals) Validate() error {
	if s.CountyID == "" {
		return &ValidationError{Field: "county_id", Reason: "must not be empty"}
	}
	if s.Weather.HumidityPct < 0 || s.Weather.HumidityPct > 100 {
		return &ValidationError{Field: "weather.humidity_pct", Reason: "must be within [0,100]"}
	}
	if s.Weather.WindSpeedMph < 0 {
		return &ValidationError{Field: "weather.wind_speed_mph", Reason: "must not be negative"}
	}
	if s.FirePersonnelReady < 0 {
		return &ValidationError{Field: "fire_personnel_ready", Reason: "must not be negative"}
	}
	if s.HistoricalFireFrequency < 0 {
		return &ValidationError{Field: "historical_fire_frequency", Reason: "must not be negative"}
	}
	switch s.HazardProximity {
	case HazardProximityLow, HazardProximityMedium, HazardProximityHigh:
	default:
		return &ValidationError{Field: "hazard_proximity", Reason: "unknown value " + string(s.HazardProximity)}
	}
	switch s.EquipmentStatus {
	case EquipmentReady, EquipmentPartial, EquipmentUnavailable:
	default:
		return &ValidationError{Field: "equipment_status", Reason: "unknown value " + string(s.EquipmentStatus)}
	}
	switch s.PermitStatus {
	case PermitApproved, PermitPending, PermitDenied:
	default:
		return &ValidationError{Field: "permit_status", Reason: "unknown value " + string(s.PermitStatus)}
	}
	return nil
}

func ParseHazardProximity(s string) (HazardProximity, bool) {
	switch strings.ToUpper(s) {
	case "LOW":
		return HazardProximityLow, true
	case "MEDIUM":
		return HazardProximityMedium, true
	case "HIGH":
		return HazardProximityHigh, true
	default:
		return "", false
	}
}

func ParseEquipmentStatus(s string) (EquipmentStatus, bool) {
	switch strings.ToUpper(s) {
	case "READY":
		return EquipmentReady, true
	case "PARTIAL":
		return EquipmentPartial, true
	case "UNAVAILABLE":
		return EquipmentUnavailable, true
	default:
		return "", false
	}
}

func ParsePermitStatus(s string) (PermitStatus, bool) {
	switch strings.ToUpper(s) {
	case "APPROVED":
		return PermitApproved, true
	case "PENDING":
		return PermitPending, true
	case "DENIED":
		return PermitDenied, true
	default:
		return "", false
	}
}
