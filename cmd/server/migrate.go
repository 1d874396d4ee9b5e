package main

import (
	"github.com/St1cky1/task-manager/internal/infrastructure/client"
	"github.com/St1cky1/task-manager/migrations"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *client.Migrator) error { return m.Up() })
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the last applied migration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *client.Migrator) error { return m.Down() })
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}

func withMigrator(fn func(m *client.Migrator) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	m, err := client.NewMigrator(migrations.FS, cfg.Database.URL())
	if err != nil {
		return err
	}
	defer m.Close()

	return fn(m)
}
