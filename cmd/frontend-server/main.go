package main

import (
	"fmt"
	"log"
	"log/slog"

	"github.com/gin-gonic/gin"

	"libraryhub/internal/config"
	"libraryhub/internal/database"
	"libraryhub/internal/frontend/handler"
	"libraryhub/internal/frontend/service"
	"libraryhub/internal/logger"
	"libraryhub/internal/middleware"
	"libraryhub/internal/repository"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	slogger := logger.SetupDefault(cfg.LogFormat, cfg.LogLevel)

	db, err := database.ConnectDB(cfg.FrontendDatabaseURL, slogger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	if err := database.MigrateFrontend(db, slogger); err != nil {
		log.Fatalf("could not migrate database: %v", err)
	}

	bookRepo := repository.NewBookRepo(db)
	userRepo := repository.NewUserRepo(db)

	bookSvc := service.NewBookService(bookRepo, userRepo)
	userSvc := service.NewUserService(userRepo)
	syncSvc := service.NewSyncService(bookRepo, slogger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.RequestID())

	// only the service-to-service sync surface is rate limited
	limiter := middleware.NewRateLimiter(cfg.SyncRateLimit, cfg.SyncRateBurst)
	defer limiter.Stop()

	handler.NewBookHandler(bookSvc).RegisterRoutes(r)
	handler.NewUserHandler(userSvc).RegisterRoutes(r)
	handler.NewSyncHandler(syncSvc).RegisterRoutes(r, limiter.Middleware())

	addr := fmt.Sprintf(":%d", cfg.FrontendHTTPPort)
	slogger.Info("frontend service listening", slog.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
