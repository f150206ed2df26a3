package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/burnai/go-burn-suitability/internal/models"
)

func newTestDB(t *testing.T) *SQLiteDB {
	t.Helper()

	db, err := NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func testSignals(countyID string) *models.CountySignals {
	return &models.CountySignals{
		CountyID: countyID,
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
}

func testAssessment(countyID string, score int) *models.SuitabilityAssessment {
	return &models.SuitabilityAssessment{
		ID:                  "assess_" + countyID,
		CountyID:            countyID,
		SuitabilityScore:    score,
		Status:              models.StatusHighlySuitable,
		Limitations:         []models.Limitation{{Title: "Weather Window", Description: "Re-verify before ignition"}},
		Recommendations:     []string{"Notify local fire authorities"},
		ProtocolEligible:    true,
		PermitStatus:        models.PermitApproved,
		AssessmentTimestamp: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}
}

func TestSQLiteDB_SaveAndGetLatest(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	signals := testSignals("sf")
	assessment := testAssessment("sf", 85)

	if err := db.Save(ctx, signals, assessment); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	latest, err := db.GetLatest(ctx, "sf")
	if err != nil {
		t.Fatalf("get latest failed: %v", err)
	}

	if latest.Assessment.SuitabilityScore != 85 {
		t.Errorf("expected score 85, got %d", latest.Assessment.SuitabilityScore)
	}
	if latest.Assessment.Status != models.StatusHighlySuitable {
		t.Errorf("expected status HIGHLY_SUITABLE, got %s", latest.Assessment.Status)
	}
	if latest.Signals.Weather.TemperatureF != 68 {
		t.Errorf("expected temperature 68, got %f", latest.Signals.Weather.TemperatureF)
	}
	if !latest.Assessment.AssessmentTimestamp.Equal(assessment.AssessmentTimestamp) {
		t.Errorf("timestamp mismatch: %v vs %v", latest.Assessment.AssessmentTimestamp, assessment.AssessmentTimestamp)
	}
}

func TestSQLiteDB_SaveReplacesLatest(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.Save(ctx, testSignals("sf"), testAssessment("sf", 85)); err != nil {
		t.Fatalf("first save failed: %v", err)
	}

	second := testAssessment("sf", 62)
	second.ID = "assess_sf_2"
	second.Status = models.StatusSuitableWithCaution
	if err := db.Save(ctx, testSignals("sf"), second); err != nil {
		t.Fatalf("second save failed: %v", err)
	}

	latest, err := db.GetLatest(ctx, "sf")
	if err != nil {
		t.Fatalf("get latest failed: %v", err)
	}
	if latest.Assessment.SuitabilityScore != 62 {
		t.Errorf("expected replaced score 62, got %d", latest.Assessment.SuitabilityScore)
	}
	if latest.Assessment.ID != "assess_sf_2" {
		t.Errorf("expected replaced assessment id, got %s", latest.Assessment.ID)
	}

	all, err := db.ListLatest(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("expected single row per county, got %d", len(all))
	}
}

func TestSQLiteDB_GetLatest_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetLatest(context.Background(), "unknown")
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteDB_ListLatest(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if err := db.Save(ctx, testSignals("sf"), testAssessment("sf", 85)); err != nil {
		t.Fatalf("save sf failed: %v", err)
	}
	la := testAssessment("la", 55)
	la.Status = models.StatusNotRecommended
	la.ProtocolEligible = false
	if err := db.Save(ctx, testSignals("la"), la); err != nil {
		t.Fatalf("save la failed: %v", err)
	}

	all, err := db.ListLatest(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 assessments, got %d", len(all))
	}
	if all["sf"].SuitabilityScore != 85 {
		t.Errorf("expected sf score 85, got %d", all["sf"].SuitabilityScore)
	}
	if all["la"].ProtocolEligible {
		t.Error("expected la to be ineligible")
	}
}
