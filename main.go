package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"student_admin_backend/config"
	"student_admin_backend/db"
	"student_admin_backend/logger"
	"student_admin_backend/middleware"
	"student_admin_backend/repository"
	"student_admin_backend/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer zl.Sync() //nolint:errcheck

	ctx := context.Background()

	// Connect to database
	database, err := db.Initialize(ctx, cfg.DSN())
	if err != nil {
		zl.Fatal("Error connecting to the database", zap.Error(err))
	}
	defer database.Close()

	// Initialize database schema
	if err := db.InitSchema(ctx, database); err != nil {
		zl.Fatal("Error initializing database schema", zap.Error(err))
	}

	created, err := db.SeedAdmin(ctx, database, "Administrator", cfg.AdminEmail, cfg.AdminPassword)
	if err != nil {
		zl.Warn("Error seeding admin account", zap.Error(err))
	} else if created {
		zl.Info("Admin account created", zap.String("email", cfg.AdminEmail))
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(zl))

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.CORSOrigins
	}
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
		middleware.RequestIDHeader,
	}
	corsConfig.AllowMethods = []string{
		"GET",
		"POST",
		"PUT",
		"DELETE",
	}
	corsConfig.ExposeHeaders = []string{"Content-Disposition", middleware.RequestIDHeader}
	r.Use(cors.New(corsConfig))

	repo := repository.New(database)
	repo.Attendance.WithLogger(zl.Named("attendance"))
	tokens := middleware.NewTokenService(database, []byte(cfg.JWTSecret))

	// Setup routes
	routes.SetupRoutes(r, repo, tokens, database, []byte(cfg.JWTSecret), zl)

	// Run server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		zl.Info("Server starting", zap.String("port", cfg.ServerPort), zap.String("environment", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("listen", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zl.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zl.Fatal("Server forced to shutdown", zap.Error(err))
	}
}
