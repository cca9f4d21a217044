package http

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/relatedbrands/generator/internal/domain"
	"github.com/relatedbrands/generator/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	relatedBrands *usecase.RelatedBrandsService
	artifactPath  string
	version       string
}

// NewHandler creates a new HTTP handler. service may be nil, in which case
// lookups answer 503.
func NewHandler(service *usecase.RelatedBrandsService, artifactPath, version string) *Handler {
	return &Handler{
		relatedBrands: service,
		artifactPath:  artifactPath,
		version:       version,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	_, err := os.Stat(h.artifactPath)
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"service":       "related-brands",
		"version":       h.version,
		"artifactReady": err == nil,
	})
}

// ServeArtifact serves the published artifact the storefront widget fetches
func (h *Handler) ServeArtifact(c *gin.Context) {
	if _, err := os.Stat(h.artifactPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "artifact has not been built yet",
		})
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.File(h.artifactPath)
}

// GetRelatedBrands returns the related list of a single brand
func (h *Handler) GetRelatedBrands(c *gin.Context) {
	if h.relatedBrands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "related brands lookup not configured",
		})
		return
	}

	brandID, err := strconv.Atoi(c.Param("id"))
	if err != nil || brandID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "brand id must be a positive integer",
		})
		return
	}

	records, err := h.relatedBrands.RelatedBrands(c.Request.Context(), brandID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{
			"brandId": brandID,
			"related": records,
		})
	case errors.Is(err, domain.ErrBrandNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "no related brands for this brand",
		})
	case errors.Is(err, fs.ErrNotExist):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "artifact has not been built yet",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to read artifact",
		})
	}
}
