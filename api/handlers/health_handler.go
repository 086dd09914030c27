package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/mediafetch-go/internal/app"
	"github.com/yourusername/mediafetch-go/internal/domain"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	sessions *app.SessionManager
	ledger   domain.SaveRepository
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(sessions *app.SessionManager, ledger domain.SaveRepository) *HealthHandler {
	return &HealthHandler{
		sessions: sessions,
		ledger:   ledger,
	}
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Sessions int    `json:"sessions"`
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:   "ok",
		Version:  "1.0.0",
		Sessions: h.sessions.Count(),
	})
}

// Ready handles GET /ready
func (h *HealthHandler) Ready(c *gin.Context) {
	if h.ledger != nil {
		if _, err := h.ledger.Count(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"reason": "ledger unavailable",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
