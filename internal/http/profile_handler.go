package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/simply1git/vibe-check/internal/domain"
	"github.com/simply1git/vibe-check/internal/service"
)

// ProfileHandler mantiene dependencias para endpoints de perfiles y vibra.
type ProfileHandler struct {
	logger      *zap.Logger
	profileServ *service.ProfileService
}

func NewProfileHandler(logger *zap.Logger, profileServ *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		logger:      logger,
		profileServ: profileServ,
	}
}

// SaveAnswers maneja PUT /profile/answers. El miembro sale del token: nadie
// escribe respuestas ajenas.
func (h *ProfileHandler) SaveAnswers(c *gin.Context) {
	claims, ok := requireAuthClaims(c)
	if !ok {
		return
	}

	var req struct {
		Answers          domain.AnswerMap `json:"answers" binding:"required"`
		CompletedChapter int              `json:"completed_chapter"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid save answers request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	profile, err := h.profileServ.SaveAnswers(c.Request.Context(), claims.MemberID, req.Answers, req.CompletedChapter)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		h.logger.Error("save answers failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save answers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer_count": len(profile.Answers), "updated_at": profile.UpdatedAt})
}

// GetVibe maneja GET /members/:id/vibe.
func (h *ProfileHandler) GetVibe(c *gin.Context) {
	claims, ok := requireAuthClaims(c)
	if !ok {
		return
	}

	vibeProfile, err := h.profileServ.GetVibe(c.Request.Context(), claims.GroupID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		h.logger.Error("get vibe failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get vibe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"vibe": vibeProfile})
}

// Compatibility maneja GET /members/:id/compatibility/:otherID.
func (h *ProfileHandler) Compatibility(c *gin.Context) {
	claims, ok := requireAuthClaims(c)
	if !ok {
		return
	}

	score, err := h.profileServ.Compatibility(c.Request.Context(), claims.GroupID, c.Param("id"), c.Param("otherID"))
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		h.logger.Error("compatibility failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not compute compatibility"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"compatibility": score})
}

// VibeTwin maneja GET /members/:id/twin.
func (h *ProfileHandler) VibeTwin(c *gin.Context) {
	claims, ok := requireAuthClaims(c)
	if !ok {
		return
	}

	twin, err := h.profileServ.VibeTwin(c.Request.Context(), claims.GroupID, c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		case errors.Is(err, service.ErrNoTwin):
			c.JSON(http.StatusNotFound, gin.H{"error": "no twin yet"})
			return
		default:
			h.logger.Error("vibe twin failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not find twin"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"twin": toMemberView(twin)})
}
