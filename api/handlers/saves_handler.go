package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/mediafetch-go/internal/domain"
)

// SavesHandler exposes the saved-asset ledger
type SavesHandler struct {
	ledger domain.SaveRepository
	logger *zap.Logger
}

// NewSavesHandler creates a new saves handler
func NewSavesHandler(ledger domain.SaveRepository, logger *zap.Logger) *SavesHandler {
	return &SavesHandler{
		ledger: ledger,
		logger: logger,
	}
}

// ListSaves handles GET /api/v1/saves
func (h *SavesHandler) ListSaves(c *gin.Context) {
	filters := make(map[string]interface{})

	if platform := c.Query("platform"); platform != "" {
		filters["platform"] = platform
	}
	if kind := c.Query("content_kind"); kind != "" {
		filters["content_kind"] = kind
	}

	saves, err := h.ledger.FindAll(filters)
	if err != nil {
		h.logger.Error("Failed to list saves", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, saves)
}

// GetSave handles GET /api/v1/saves/:id
func (h *SavesHandler) GetSave(c *gin.Context) {
	save, err := h.ledger.FindByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "save not found"})
		return
	}
	c.JSON(http.StatusOK, save)
}

// DeleteSave handles DELETE /api/v1/saves/:id
func (h *SavesHandler) DeleteSave(c *gin.Context) {
	id := c.Param("id")

	if _, err := h.ledger.FindByID(id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "save not found"})
		return
	}
	if err := h.ledger.Delete(id); err != nil {
		h.logger.Error("Failed to delete save", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "save deleted"})
}
