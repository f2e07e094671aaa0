package cli

import (
	"log/slog"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var (
	envFile string
	isDebug bool
)

var rootCmd = &cobra.Command{
	Use:   "teams-app",
	Short: "Teams management service",
	Long:  `HTTP backend for managing teams and members with session auth and Google OAuth login.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", "", "env file to load (defaults to .env)")
	rootCmd.PersistentFlags().BoolVar(&isDebug, "debug", false, "enable debug logging")
}

func setupLogger(format string) {
	level := slog.LevelInfo
	if isDebug {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if format == "console" {
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.RFC3339,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	}

	slog.SetDefault(slog.New(handler))
}

// newValidator builds the request validator reporting json field names
// so validation failures match the request body keys.
func newValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

func envFiles() []string {
	if envFile == "" {
		return nil
	}
	return []string{envFile}
}
