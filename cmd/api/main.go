package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/simply1git/vibe-check/internal/catalog"
	"github.com/simply1git/vibe-check/internal/config"
	"github.com/simply1git/vibe-check/internal/db"
	apihttp "github.com/simply1git/vibe-check/internal/http"
	"github.com/simply1git/vibe-check/internal/repository"
	"github.com/simply1git/vibe-check/internal/service"
	"github.com/simply1git/vibe-check/internal/vibe"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	cat, err := catalog.Load()
	if err != nil {
		logger.Fatal("load question catalog", zap.Error(err))
	}

	groupRepo := repository.NewPgGroupRepository(pool)
	memberRepo := repository.NewPgMemberRepository(pool)
	profileRepo := repository.NewPgProfileRepository(pool)
	quizRepo := repository.NewPgQuizRepository(pool)

	var (
		joinLimiter service.JoinRateLimiter
		tokenStore  service.RefreshTokenStore
		redisClient *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			joinLimiter = service.NewRedisJoinRateLimiter(redisClient, 10*time.Minute, 5)
			tokenStore = service.NewRedisRefreshTokenStore(redisClient)
		}
		cancel()
	}

	jwtSvc := service.NewJWTServiceWithStore(
		cfg.JWTSecret,
		time.Duration(cfg.JWTAccessTTLMinutes)*time.Minute,
		time.Duration(cfg.JWTRefreshTTLMinutes)*time.Minute,
		tokenStore,
	)

	engine := vibe.NewEngine(cat)
	groupSvc := service.NewGroupService(logger, groupRepo, memberRepo, joinLimiter)
	profileSvc := service.NewProfileService(logger, memberRepo, profileRepo, engine)
	quizSvc := service.NewQuizService(logger, cat, memberRepo, profileRepo, quizRepo)

	groupHandler := apihttp.NewGroupHandler(logger, groupSvc, jwtSvc)
	profileHandler := apihttp.NewProfileHandler(logger, profileSvc)
	quizHandler := apihttp.NewQuizHandler(logger, quizSvc)
	router := apihttp.NewRouter(logger, cat, jwtSvc, groupHandler, profileHandler, quizHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
