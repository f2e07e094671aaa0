package cli

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/Ihor-Prokopenko/teams-app/internal/domain"
	"github.com/Ihor-Prokopenko/teams-app/internal/repository"
	"github.com/Ihor-Prokopenko/teams-app/pkg/config"
)

var (
	adminEmail    string
	adminPassword string
	adminFullName string
)

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	Run:   runCreateAdmin,
}

func init() {
	createAdminCmd.Flags().StringVar(&adminEmail, "email", "", "admin email")
	createAdminCmd.Flags().StringVar(&adminPassword, "password", "", "admin password")
	createAdminCmd.Flags().StringVar(&adminFullName, "full-name", "", "admin full name")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("password")
	_ = createAdminCmd.MarkFlagRequired("full-name")
	rootCmd.AddCommand(createAdminCmd)
}

func runCreateAdmin(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(envFiles()...)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogFormat)

	pool, err := config.MustInitDB(context.Background(), *cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		os.Exit(1)
	}

	user := &domain.User{
		Email:              strings.ToLower(strings.TrimSpace(adminEmail)),
		PasswordHash:       string(hash),
		RegistrationMethod: domain.RegistrationEmail,
		IsAdmin:            true,
	}
	if err := user.SetFullName(adminFullName); err != nil {
		slog.Error("invalid full name", "error", err)
		os.Exit(1)
	}

	userRepo := repository.NewUserRepository(pool)
	if err := userRepo.CreateUser(context.Background(), user); err != nil {
		slog.Error("failed to create admin", "error", err)
		os.Exit(1)
	}

	slog.Info("admin created", "id", user.ID, "email", user.Email)
}
