package handlers

import (
	"context"
	"net/http"
	"time"

	"course-finder/internal/infrastructure/database"
	interfaces "course-finder/internal/interfaces/infrastructure"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	db      *gorm.DB
	cache   interfaces.CacheService
	version string
}

// NewHealthHandler creates a new health handler. cache may be nil when caching is disabled.
func NewHealthHandler(db *gorm.DB, cache interfaces.CacheService, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		cache:   cache,
		version: version,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
}

func (h *HealthHandler) checkServices(ctx context.Context) (map[string]string, bool) {
	services := make(map[string]string)
	healthy := true

	if err := database.HealthCheck(h.db); err != nil {
		services["database"] = "unhealthy: " + err.Error()
		healthy = false
	} else {
		services["database"] = "healthy"
	}

	// The cache is optional, so a failing cache degrades but does not fail the service
	switch {
	case h.cache == nil:
		services["cache"] = "disabled"
	case h.cache.Health(ctx) != nil:
		services["cache"] = "degraded"
	default:
		services["cache"] = "healthy"
	}

	return services, healthy
}

// HealthCheck handles GET /health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	services, healthy := h.checkServices(ctx)

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   h.version,
		Services:  services,
	}

	status := http.StatusOK
	if !healthy {
		response.Status = "unhealthy"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, response)
}

// ReadinessCheck handles GET /ready
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	ready := database.HealthCheck(h.db) == nil

	status := http.StatusOK
	if !ready {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, map[string]interface{}{
		"ready":     ready,
		"timestamp": time.Now(),
	})
}

// LivenessCheck handles GET /live
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	response := map[string]interface{}{
		"alive":     true,
		"timestamp": time.Now(),
	}

	c.JSON(http.StatusOK, response)
}
