package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"libraryhub/internal/admin/handler"
	"libraryhub/internal/admin/service"
	"libraryhub/internal/config"
	"libraryhub/internal/database"
	"libraryhub/internal/logger"
	"libraryhub/internal/middleware"
	"libraryhub/internal/replication"
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

	db, err := database.ConnectDB(cfg.AdminDatabaseURL, slogger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}
	if err := database.MigrateAdmin(db, slogger); err != nil {
		log.Fatalf("could not migrate database: %v", err)
	}

	bookRepo := repository.NewBookRepo(db)
	borrowRepo := repository.NewBorrowedBookRepo(db)

	httpClient := &http.Client{Timeout: cfg.SyncTimeout}
	var notifier replication.Notifier = replication.NewHTTPNotifier(cfg.FrontendAPIURL, httpClient)
	if cfg.SyncBreakerEnabled {
		notifier = replication.NewBreaker(notifier, cfg.SyncFailMax, cfg.SyncResetTimeout)
	}

	bookSvc := service.NewBookService(bookRepo, borrowRepo, notifier, cfg.DeletePolicy, slogger)
	userProxy := service.NewUserProxy(cfg.FrontendAPIURL, httpClient)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.RequestID())

	rg := r.Group("/admin")
	handler.NewAdminHandler(bookSvc, userProxy).RegisterRoutes(rg)

	addr := fmt.Sprintf(":%d", cfg.AdminHTTPPort)
	slogger.Info("admin service listening", slog.String("addr", addr))
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
