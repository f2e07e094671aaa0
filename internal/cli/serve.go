package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ihor-Prokopenko/teams-app/internal/errs"
	"github.com/Ihor-Prokopenko/teams-app/internal/handler"
	"github.com/Ihor-Prokopenko/teams-app/internal/oauth"
	"github.com/Ihor-Prokopenko/teams-app/internal/repository"
	"github.com/Ihor-Prokopenko/teams-app/internal/retry"
	"github.com/Ihor-Prokopenko/teams-app/internal/router"
	"github.com/Ihor-Prokopenko/teams-app/internal/service"
	"github.com/Ihor-Prokopenko/teams-app/internal/session"
	"github.com/Ihor-Prokopenko/teams-app/pkg/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) {
	// Load configuration
	cfg, err := config.Load(envFiles()...)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogFormat)

	// Connect to database
	pool, err := config.MustInitDB(context.Background(), *cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Connect to redis
	rdb, err := config.MustInitRedis(context.Background(), *cfg)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer rdb.Close()

	slog.Info("successfully connected to database and redis")

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool)
	teamRepo := repository.NewTeamRepository(pool)
	memberRepo := repository.NewMemberRepository(pool)

	// Initialize validator
	validate := newValidator()

	// Shared retry policy for store mutations
	policy := retry.Policy{
		MaxAttempts: cfg.RetryMaxAttempts,
		Delay:       cfg.RetryWaitFixed,
		Retryable:   errs.IsTransient,
	}

	// Initialize services
	sessions := session.NewStore(rdb, cfg.SessionSecret, cfg.SessionTTL)
	googleClient := oauth.NewGoogleClient(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	userService := service.NewUserService(userRepo, policy)
	teamService := service.NewTeamService(teamRepo, memberRepo, policy)
	memberService := service.NewMemberService(memberRepo, policy)
	oauthService := service.NewOAuthService(googleClient, userRepo, rdb, policy)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userService, sessions, cfg.SessionTTL, validate)
	teamHandler := handler.NewTeamHandler(teamService, validate)
	memberHandler := handler.NewMemberHandler(memberService, validate)
	oauthHandler := handler.NewOAuthHandler(oauthService, userHandler)
	healthHandler := handler.NewHealthHandler()

	slog.Info("successfully configured services and handlers")

	// Setup router
	r := router.SetupRouter(
		userHandler,
		teamHandler,
		memberHandler,
		oauthHandler,
		healthHandler,
		sessions,
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	slog.Info("server stopped")
}
