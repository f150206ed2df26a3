package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/burnai/go-burn-suitability/internal/broadcast"
	"github.com/burnai/go-burn-suitability/internal/catalog"
	"github.com/burnai/go-burn-suitability/internal/models"
	"github.com/burnai/go-burn-suitability/internal/repository"
	"github.com/burnai/go-burn-suitability/internal/suitability"
)

type Handler struct {
	cat         *catalog.Catalog
	repo        repository.AssessmentRepository
	broadcaster *broadcast.Broadcaster
}

func NewHandler(cat *catalog.Catalog, repo repository.AssessmentRepository, broadcaster *broadcast.Broadcaster) *Handler {
	return &Handler{
		cat:         cat,
		repo:        repo,
		broadcaster: broadcaster,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/api/counties", h.listCounties)
	r.GET("/api/counties/:id", h.getCounty)
	r.GET("/api/weather/:id", h.getWeather)
	r.GET("/api/burn-assessment/:id", h.getAssessment)
	r.GET("/api/burn-assessment/export/:id", h.exportAssessment)
	r.POST("/api/burn-protocol/initiate", h.initiateProtocol)
	r.GET("/api/map/counties", h.mapCounties)
	r.GET("/api/assessments/stream", h.streamAssessments)
	r.GET("/health", h.health)
}

type coordinatesResponse struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type countySummary struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	State            string              `json:"state"`
	Coordinates      coordinatesResponse `json:"coordinates"`
	SuitabilityScore *int                `json:"suitability_score"`
	PermitStatus     *string             `json:"permit_status"`
}

func (h *Handler) listCounties(c *gin.Context) {
	latest, err := h.repo.ListLatest(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	counties := h.cat.List()
	out := make([]countySummary, 0, len(counties))
	for _, county := range counties {
		summary := countySummary{
			ID:    county.ID,
			Name:  county.Name,
			State: county.State,
			Coordinates: coordinatesResponse{
				Lat: county.Coordinates.Latitude,
				Lon: county.Coordinates.Longitude,
			},
		}
		if a, ok := latest[county.ID]; ok {
			score := a.SuitabilityScore
			permit := string(a.PermitStatus)
			summary.SuitabilityScore = &score
			summary.PermitStatus = &permit
		}
		out = append(out, summary)
	}

	c.JSON(http.StatusOK, gin.H{"counties": out})
}

type countyDetail struct {
	ID          string                        `json:"id"`
	Name        string                        `json:"name"`
	State       string                        `json:"state"`
	Coordinates coordinatesResponse           `json:"coordinates"`
	Signals     *models.CountySignals         `json:"signals"`
	Assessment  *models.SuitabilityAssessment `json:"assessment"`
}

func (h *Handler) getCounty(c *gin.Context) {
	county, err := h.cat.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	detail := countyDetail{
		ID:    county.ID,
		Name:  county.Name,
		State: county.State,
		Coordinates: coordinatesResponse{
			Lat: county.Coordinates.Latitude,
			Lon: county.Coordinates.Longitude,
		},
	}

	// Signals and assessment stay null until the first refresh completes.
	latest, err := h.repo.GetLatest(c.Request.Context(), county.ID)
	if err != nil && !errors.Is(err, models.ErrNotFound) {
		respondError(c, err)
		return
	}
	if latest != nil {
		detail.Signals = latest.Signals
		detail.Assessment = latest.Assessment
	}

	c.JSON(http.StatusOK, detail)
}

func (h *Handler) getWeather(c *gin.Context) {
	if _, err := h.cat.Get(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	latest, err := h.repo.GetLatest(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"county_id": c.Param("id"),
		"weather":   latest.Signals.Weather,
		"as_of":     latest.Assessment.AssessmentTimestamp,
	})
}

func (h *Handler) getAssessment(c *gin.Context) {
	if _, err := h.cat.Get(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	latest, err := h.repo.GetLatest(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, latest.Assessment)
}

func (h *Handler) exportAssessment(c *gin.Context) {
	if _, err := h.cat.Get(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	latest, err := h.repo.GetLatest(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	doc, err := suitability.EncodeExport(latest.Assessment)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("burn-assessment-%s.json", c.Param("id"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/json", doc)
}

type initiateRequest struct {
	CountyID string `json:"county_id"`
}

func (h *Handler) initiateProtocol(c *gin.Context) {
	var req initiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &models.ValidationError{Field: "body", Reason: "malformed request"})
		return
	}
	if req.CountyID == "" {
		respondError(c, &models.ValidationError{Field: "county_id", Reason: "must not be empty"})
		return
	}

	if _, err := h.cat.Get(req.CountyID); err != nil {
		respondError(c, err)
		return
	}

	latest, err := h.repo.GetLatest(c.Request.Context(), req.CountyID)
	if err != nil {
		respondError(c, err)
		return
	}

	a := latest.Assessment
	if !suitability.ProtocolEligible(a.SuitabilityScore, a.PermitStatus) {
		respondError(c, &models.NotEligibleError{CountyID: req.CountyID, Score: a.SuitabilityScore})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"initiated":     true,
		"county_id":     req.CountyID,
		"score":         a.SuitabilityScore,
		"status":        a.Status,
		"permit_status": a.PermitStatus,
		"assessed_at":   a.AssessmentTimestamp,
	})
}

func (h *Handler) mapCounties(c *gin.Context) {
	latest, err := h.repo.ListLatest(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	fc := toGeoJSON(h.cat.List(), latest)
	c.Header("Content-Type", "application/geo+json")
	c.JSON(http.StatusOK, fc)
}

func (h *Handler) streamAssessments(c *gin.Context) {
	if h.broadcaster == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "streaming not enabled"})
		return
	}

	id, ch := h.broadcaster.Subscribe()
	defer h.broadcaster.Unsubscribe(id)

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case a, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("assessment", a)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
