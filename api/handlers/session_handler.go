package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yourusername/mediafetch-go/internal/app"
	"github.com/yourusername/mediafetch-go/internal/domain"
)

// SessionHandler handles retrieval-session HTTP requests
type SessionHandler struct {
	sessions *app.SessionManager
	logger   *zap.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(sessions *app.SessionManager, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
		logger:   logger,
	}
}

// CreateSessionRequest represents a request to open a retrieval session
type CreateSessionRequest struct {
	Platform string `json:"platform" binding:"required"`
}

// SubmitURLRequest carries the raw URL to search
type SubmitURLRequest struct {
	URL string `json:"url" binding:"required"`
}

// ContentTypeRequest carries the photo/reel selection
type ContentTypeRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

// QualityRequest carries a quality selection
type QualityRequest struct {
	Quality string `json:"quality" binding:"required"`
}

// DownloadRequest optionally overrides the selected quality
type DownloadRequest struct {
	Quality string `json:"quality,omitempty"`
}

// CreateSession handles POST /api/v1/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessions.Create(domain.Platform(req.Platform))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, session.Snapshot())
}

// GetSession handles GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// DeleteSession handles DELETE /api/v1/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Remove(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "session removed"})
}

// SubmitURL handles POST /api/v1/sessions/:id/url
func (h *SessionHandler) SubmitURL(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	var req SubmitURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := session.SubmitURL(c.Request.Context(), req.URL); err != nil {
		h.renderError(c, session, err)
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// SelectContentType handles POST /api/v1/sessions/:id/content-type
func (h *SessionHandler) SelectContentType(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	var req ContentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := session.SelectContentType(domain.ContentKind(req.ContentType)); err != nil {
		h.renderError(c, session, err)
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// SelectQuality handles POST /api/v1/sessions/:id/quality
func (h *SessionHandler) SelectQuality(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	var req QualityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := session.SelectQuality(req.Quality); err != nil {
		h.renderError(c, session, err)
		return
	}
	c.JSON(http.StatusOK, session.Snapshot())
}

// StartDownload handles POST /api/v1/sessions/:id/download
func (h *SessionHandler) StartDownload(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}

	var req DownloadRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	asset, err := session.StartDownload(c.Request.Context(), req.Quality)
	if err != nil {
		h.renderError(c, session, err)
		return
	}
	if asset == nil {
		// The session was reset while the fetch was in flight.
		c.JSON(http.StatusOK, session.Snapshot())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"asset":   asset,
		"session": session.Snapshot(),
	})
}

// Reset handles POST /api/v1/sessions/:id/reset
func (h *SessionHandler) Reset(c *gin.Context) {
	session, ok := h.lookup(c)
	if !ok {
		return
	}
	session.EditURL()
	c.JSON(http.StatusOK, session.Snapshot())
}

func (h *SessionHandler) lookup(c *gin.Context) (*app.Session, bool) {
	session, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return session, true
}

// renderError maps the error taxonomy onto HTTP statuses. Validation errors
// are the caller's fault, busy and invalid-state conflicts mean try later,
// and everything upstream surfaces as a bad gateway.
func (h *SessionHandler) renderError(c *gin.Context, session *app.Session, err error) {
	kind := domain.KindOf(err)

	status := http.StatusBadGateway
	switch kind {
	case domain.KindValidation:
		status = http.StatusBadRequest
	case domain.KindBusy, domain.KindInvalidState:
		status = http.StatusConflict
	case domain.KindUnknown:
		status = http.StatusInternalServerError
	}

	h.logger.Warn("Session operation failed",
		zap.String("session", session.ID),
		zap.String("kind", string(kind)),
		zap.Error(err))

	c.JSON(status, gin.H{
		"error":   err.Error(),
		"kind":    kind,
		"session": session.Snapshot(),
	})
}
