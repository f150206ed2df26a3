package suitability

import (
	"encoding/json"
	"fmt"

	"github.com/burnai/go-burn-suitability/internal/models"
)

// exportVersion tags the export document so older downloads stay readable if
// the assessment shape changes.
const exportVersion = 1

type exportDocument struct {
	Version    int                           `json:"version"`
	Assessment *models.SuitabilityAssessment `json:"assessment"`
}

// EncodeExport serializes an assessment to its downloadable document form.
// The encoding is deterministic (fixed field order, UTC RFC3339 timestamps)
// and lossless.
func EncodeExport(a *models.SuitabilityAssessment) ([]byte, error) {
	doc := exportDocument{Version: exportVersion, Assessment: a}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("error encoding assessment %s: %w", a.ID, err)
	}
	return data, nil
}

// DecodeExport parses a document produced by EncodeExport.
func DecodeExport(data []byte) (*models.SuitabilityAssessment, error) {
	var doc exportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("error decoding export document: %w", err)
	}
	if doc.Version != exportVersion {
		return nil, fmt.Errorf("unsupported export version: %d", doc.Version)
	}
	if doc.Assessment == nil {
		return nil, fmt.Errorf("export document missing assessment")
	}
	return doc.Assessment, nil
}
