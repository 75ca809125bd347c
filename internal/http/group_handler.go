package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/simply1git/vibe-check/internal/domain"
	"github.com/simply1git/vibe-check/internal/service"
)

// GroupHandler mantiene dependencias para endpoints de grupos y auth.
type GroupHandler struct {
	logger    *zap.Logger
	groupServ *service.GroupService
	jwtServ   *service.JWTService
}

// NewGroupHandler crea una instancia de GroupHandler con dependencias necesarias.
func NewGroupHandler(logger *zap.Logger, groupServ *service.GroupService, jwtServ *service.JWTService) *GroupHandler {
	return &GroupHandler{
		logger:    logger,
		groupServ: groupServ,
		jwtServ:   jwtServ,
	}
}

type memberView struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	CompletedChapters int    `json:"completed_chapters"`
}

func toMemberView(m domain.Member) memberView {
	return memberView{ID: m.ID, Name: m.Name, CompletedChapters: m.CompletedChapters}
}

// CreateGroup maneja POST /groups.
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
		Pin  string `json:"pin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create group request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	group, err := h.groupServ.CreateGroup(c.Request.Context(), req.Name, req.Pin)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidName):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid group name"})
			return
		case errors.Is(err, service.ErrInvalidPin):
			c.JSON(http.StatusBadRequest, gin.H{"error": "pin must be 4 digits"})
			return
		default:
			h.logger.Error("create group failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create group"})
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"group": gin.H{
		"id":   group.ID,
		"slug": group.Slug,
		"name": group.Name,
	}})
}

// Join maneja POST /groups/:slug/join.
func (h *GroupHandler) Join(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
		Pin  string `json:"pin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid join request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	group, member, err := h.groupServ.Join(c.Request.Context(), c.Param("slug"), req.Name, req.Pin, c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrGroupNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
			return
		case errors.Is(err, service.ErrInvalidPin):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "wrong pin"})
			return
		case errors.Is(err, service.ErrInvalidName):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid member name"})
			return
		case errors.Is(err, service.ErrRateLimited):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many attempts"})
			return
		default:
			h.logger.Error("join failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not join group"})
			return
		}
	}

	tokens, err := h.issueTokens(member, group.Slug)
	if err != nil {
		h.logger.Error("jwt issue failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not issue tokens"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"member": toMemberView(member), "tokens": tokens})
}

// GetGroup maneja GET /groups/:slug.
func (h *GroupHandler) GetGroup(c *gin.Context) {
	claims, ok := requireAuthClaims(c)
	if !ok {
		return
	}

	slug := c.Param("slug")
	if claims.GroupSlug != slug {
		c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		return
	}

	group, members, err := h.groupServ.GetGroup(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
			return
		}
		h.logger.Error("get group failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get group"})
		return
	}

	views := make([]memberView, 0, len(members))
	for _, m := range members {
		views = append(views, toMemberView(m))
	}
	c.JSON(http.StatusOK, gin.H{"group": gin.H{
		"id":   group.ID,
		"slug": group.Slug,
		"name": group.Name,
	}, "members": views})
}

// RefreshToken maneja POST /auth/refresh.
func (h *GroupHandler) RefreshToken(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid refresh request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if h.jwtServ == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "jwt not configured"})
		return
	}
	tokens, err := h.jwtServ.RefreshPair(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

func (h *GroupHandler) issueTokens(member domain.Member, groupSlug string) (service.TokenPair, error) {
	if h.jwtServ == nil {
		return service.TokenPair{}, errors.New("jwt not configured")
	}
	return h.jwtServ.GeneratePair(member, groupSlug)
}
