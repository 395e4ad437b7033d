package main

import (
	"net/http"
	"time"

	"github.com/essomba/schoolhub/cache"
	"github.com/essomba/schoolhub/model"
	"github.com/essomba/schoolhub/repository"
	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	repo  repository.UserRepository
	store cache.Store
}

func NewHealthHandler(repo repository.UserRepository, store cache.Store) *HealthHandler {
	return &HealthHandler{repo: repo, store: store}
}

// HealthCheck verifies database connectivity. The cache is checked too but
// only degrades the report; the service can serve without it.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	sqlDB, err := h.repo.GetDB().DB()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, model.ErrorResponse{
			Error:   "service_unavailable",
			Message: "Database connection failed",
		})
		return
	}
	if err := sqlDB.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable, model.ErrorResponse{
			Error:   "service_unavailable",
			Message: "Database ping failed",
		})
		return
	}

	status := "healthy"
	if err := h.store.Ping(c.Request.Context()); err != nil {
		status = "degraded"
	}

	c.JSON(http.StatusOK, model.HealthResponse{
		Status:    status,
		Service:   "schoolhub-api",
		Timestamp: time.Now(),
	})
}
