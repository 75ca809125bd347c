package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/simply1git/vibe-check/internal/service"
)

// QuizHandler mantiene dependencias para endpoints del quiz de amigos.
type QuizHandler struct {
	logger   *zap.Logger
	quizServ *service.QuizService
}

func NewQuizHandler(logger *zap.Logger, quizServ *service.QuizService) *QuizHandler {
	return &QuizHandler{
		logger:   logger,
		quizServ: quizServ,
	}
}

// Generate maneja POST /members/:id/quiz/generate. Solo el propio miembro
// regenera su quiz; el resto lo juega.
func (h *QuizHandler) Generate(c *gin.Context) {
	claims, ok := requireAuthClaims(c)
	if !ok {
		return
	}
	if c.Param("id") != claims.MemberID {
		c.JSON(http.StatusForbidden, gin.H{"error": "can only generate your own quiz"})
		return
	}

	count, err := h.quizServ.GenerateForMember(c.Request.Context(), claims.GroupID, claims.MemberID)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		h.logger.Error("quiz generate failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate quiz"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"question_count": count})
}

// GetQuiz maneja GET /members/:id/quiz.
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	claims, ok := requireAuthClaims(c)
	if !ok {
		return
	}

	items, err := h.quizServ.GetQuiz(c.Request.Context(), claims.GroupID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "member not found"})
			return
		}
		h.logger.Error("get quiz failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get quiz"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": items})
}
