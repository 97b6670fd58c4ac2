package extract

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/tiktok-to-trip/internal/app/models"
)

// Version is reported by the root endpoint.
const Version = "0.1.0"

type Handler struct {
	service Service
	log     *zap.Logger
}

func NewHandler(service Service, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		service: service,
		log:     log,
	}
}

// Root describes the API.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "TikTok-to-Trip API",
		"version": Version,
		"status":  "running",
		"endpoints": gin.H{
			"POST /api/extract":      "Extract itinerary from social media URL",
			"POST /api/extract/demo": "Sample itinerary",
			"GET /api/health":        "Health check",
		},
	})
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Health())
}

// Extract handles POST /api/extract.
func (h *Handler) Extract(c *gin.Context) {
	var req models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug("Invalid extract body", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Detail: "Invalid request body"})
		return
	}

	it, err := h.service.Extract(c.Request.Context(), req)
	if err != nil {
		var httpErr *models.HTTPError
		if errors.As(err, &httpErr) {
			c.JSON(httpErr.Status, models.ErrorResponse{Detail: httpErr.Detail})
			return
		}
		h.log.Error("Unexpected extract failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Detail: DetailProcessingFail})
		return
	}

	c.JSON(http.StatusOK, it)
}

// Demo handles GET and POST /api/extract/demo.
func (h *Handler) Demo(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Demo(c.Request.Context()))
}

// RegisterRoutes mounts the API on r.
func (h *Handler) RegisterRoutes(r gin.IRouter, extractMiddleware ...gin.HandlerFunc) {
	r.GET("/", h.Root)

	api := r.Group("/api")
	api.GET("/health", h.Health)
	api.POST("/extract", append(extractMiddleware, h.Extract)...)
	api.GET("/extract/demo", h.Demo)
	api.POST("/extract/demo", h.Demo)
}
