package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/burnai/go-burn-suitability/internal/models"
)

// respondError maps domain errors to HTTP status codes. Every error carries
// its kind; nothing is collapsed into a bare 500 unless genuinely unknown.
func respondError(c *gin.Context, err error) {
	var verr *models.ValidationError
	var serr *models.SourceError
	var nerr *models.NotEligibleError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": verr.Error(),
			"kind":  "validation",
			"field": verr.Field,
		})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "not found",
			"kind":  "not_found",
		})
	case errors.As(err, &nerr):
		c.JSON(http.StatusConflict, gin.H{
			"error":  nerr.Error(),
			"kind":   "not_eligible",
			"county": nerr.CountyID,
			"score":  nerr.Score,
		})
	case errors.As(err, &serr):
		c.JSON(http.StatusBadGateway, gin.H{
			"error":  serr.Error(),
			"kind":   "upstream_unavailable",
			"source": serr.Source,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "internal server error",
			"kind":  "internal",
		})
	}
}
