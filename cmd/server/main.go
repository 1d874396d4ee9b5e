package main

import (
	"os"

	"github.com/St1cky1/task-manager/internal/config"
	"github.com/St1cky1/task-manager/internal/infrastructure/logger"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:   "task-manager",
	Short: "Task manager REST API",
	Long: `Task manager REST API backed by PostgreSQL.

Without a subcommand the HTTP server is started (same as "serve").`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "path to the .env file")
}

// loadConfig читает конфигурацию и настраивает глобальный логгер
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, err
	}

	logger.Setup(logger.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
	})
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
