package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/govbudget/budget-portal/internal/api"
	"github.com/govbudget/budget-portal/internal/auth"
	"github.com/govbudget/budget-portal/internal/config"
	"github.com/govbudget/budget-portal/internal/report"
	"github.com/govbudget/budget-portal/internal/repository"
	"github.com/govbudget/budget-portal/internal/workflow"
	"github.com/govbudget/budget-portal/pkg/database"
	"github.com/govbudget/budget-portal/pkg/utils"
)

func main() {
	// Load .env if present, then configuration
	gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Government Budget Portal",
		zap.String("version", "1.0.0"),
		zap.Int("port", cfg.Server.Port))

	// Initialize database
	db, err := database.New(database.Config{
		Path:            cfg.Database.Path,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	migrator := database.NewMigrator(db, logger)
	if err := migrator.RunMigrations(context.Background(), cfg.Database.MigrationsDir); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db, logger)
	ministryRepo := repository.NewMinistryRepository(db, logger)
	departmentRepo := repository.NewDepartmentRepository(db, logger)
	schemeRepo := repository.NewSchemeRepository(db, logger)
	proposalRepo := repository.NewProposalRepository(db, logger)
	expenditureRepo := repository.NewExpenditureRepository(db, logger)
	allocationRepo := repository.NewAllocationRepository(db, logger)
	workflowRepo := repository.NewWorkflowRepository(db, logger)
	historyRepo := repository.NewHistoryRepository(db, logger)
	statsRepo := repository.NewStatsRepository(db, logger)

	// Initialize workflow engine
	engine := workflow.NewEngine(db, workflowRepo, historyRepo, proposalRepo, expenditureRepo, logger)

	// Initialize auth
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	authService := auth.NewService(userRepo, tokens, logger)

	// Initialize report exporter
	exporter := report.NewExporter(statsRepo, logger)

	// Set Gin mode based on logger level
	if cfg.Logger.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	server := api.NewServer(api.Deps{
		Auth:         authService,
		Engine:       engine,
		Tx:           db,
		Users:        userRepo,
		Ministries:   ministryRepo,
		Departments:  departmentRepo,
		Schemes:      schemeRepo,
		Proposals:    proposalRepo,
		Expenditures: expenditureRepo,
		Allocations:  allocationRepo,
		History:      historyRepo,
		Stats:        statsRepo,
		Exporter:     exporter,
		Logger:       logger,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}
