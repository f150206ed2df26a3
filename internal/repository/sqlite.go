package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/burnai/go-burn-suitability/internal/models"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error while pinging database: %w", err)
	}

	s := &SQLiteDB{
		db: db,
	}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("error while migrating to database: %w", err)
	}

	return s, nil
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS assessments (
			county_id TEXT PRIMARY KEY,
			assessment_id TEXT NOT NULL,
			suitability_score INTEGER NOT NULL,
			status TEXT NOT NULL,
			permit_status TEXT NOT NULL,
			protocol_eligible INTEGER NOT NULL,
			signals TEXT NOT NULL,
			assessment TEXT NOT NULL,
			assessed_at DATETIME NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_assessments_assessed_at ON assessments(assessed_at);
  	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteDB) Save(ctx context.Context, signals *models.CountySignals, assessment *models.SuitabilityAssessment) error {
	signalsJSON, err := json.Marshal(signals)
	if err != nil {
		return fmt.Errorf("error marshaling signals: %w", err)
	}
	assessmentJSON, err := json.Marshal(assessment)
	if err != nil {
		return fmt.Errorf("error marshaling assessment: %w", err)
	}

	query := `
		INSERT INTO assessments (
			county_id, assessment_id, suitability_score, status, permit_status,
			protocol_eligible, signals, assessment, assessed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(county_id) DO UPDATE SET
			assessment_id = excluded.assessment_id,
			suitability_score = excluded.suitability_score,
			status = excluded.status,
			permit_status = excluded.permit_status,
			protocol_eligible = excluded.protocol_eligible,
			signals = excluded.signals,
			assessment = excluded.assessment,
			assessed_at = excluded.assessed_at
	`

	_, err = s.db.ExecContext(ctx, query,
		assessment.CountyID,
		assessment.ID,
		assessment.SuitabilityScore,
		string(assessment.Status),
		string(assessment.PermitStatus),
		assessment.ProtocolEligible,
		string(signalsJSON),
		string(assessmentJSON),
		assessment.AssessmentTimestamp,
	)
	if err != nil {
		return fmt.Errorf("error saving assessment for %s: %w", assessment.CountyID, err)
	}
	return nil
}

func (s *SQLiteDB) GetLatest(ctx context.Context, countyID string) (*LatestAssessment, error) {
	query := `SELECT signals, assessment FROM assessments WHERE county_id = ?`

	var signalsJSON, assessmentJSON string
	err := s.db.QueryRowContext(ctx, query, countyID).Scan(&signalsJSON, &assessmentJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error querying assessment for %s: %w", countyID, err)
	}

	var signals models.CountySignals
	if err := json.Unmarshal([]byte(signalsJSON), &signals); err != nil {
		return nil, fmt.Errorf("error unmarshaling signals for %s: %w", countyID, err)
	}
	var assessment models.SuitabilityAssessment
	if err := json.Unmarshal([]byte(assessmentJSON), &assessment); err != nil {
		return nil, fmt.Errorf("error unmarshaling assessment for %s: %w", countyID, err)
	}

	return &LatestAssessment{Signals: &signals, Assessment: &assessment}, nil
}

func (s *SQLiteDB) ListLatest(ctx context.Context) (map[string]*models.SuitabilityAssessment, error) {
	query := `SELECT county_id, assessment FROM assessments`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing assessments: %w", err)
	}
	defer rows.Close()

	out := make(map[string]*models.SuitabilityAssessment)
	for rows.Next() {
		var countyID, assessmentJSON string
		if err := rows.Scan(&countyID, &assessmentJSON); err != nil {
			return nil, fmt.Errorf("error scanning assessment row: %w", err)
		}
		var assessment models.SuitabilityAssessment
		if err := json.Unmarshal([]byte(assessmentJSON), &assessment); err != nil {
			return nil, fmt.Errorf("error unmarshaling assessment for %s: %w", countyID, err)
		}
		out[countyID] = &assessment
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assessment rows: %w", err)
	}

	return out, nil
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}
