package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/simply1git/vibe-check/internal/catalog"
	"github.com/simply1git/vibe-check/internal/service"
)

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	cat *catalog.Catalog,
	jwtServ *service.JWTService,
	groupH *GroupHandler,
	profileH *ProfileHandler,
	quizH *QuizHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	// Rutas publicas.
	r.GET("/catalog/questions", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"questions": cat.Questions()})
	})
	r.POST("/groups", groupH.CreateGroup)
	r.POST("/groups/:slug/join", groupH.Join)
	r.POST("/auth/refresh", groupH.RefreshToken)

	// Rutas autenticadas: todo lo que lee o escribe dentro de un grupo.
	auth := r.Group("/", JWTAuthMiddleware(jwtServ))
	auth.GET("/groups/:slug", groupH.GetGroup)
	auth.PUT("/profile/answers", profileH.SaveAnswers)

	members := auth.Group("/members")
	members.GET("/:id/vibe", profileH.GetVibe)
	members.GET("/:id/compatibility/:otherID", profileH.Compatibility)
	members.GET("/:id/twin", profileH.VibeTwin)
	members.POST("/:id/quiz/generate", quizH.Generate)
	members.GET("/:id/quiz", quizH.GetQuiz)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
