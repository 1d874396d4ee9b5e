package main

import (
	"errors"

	"github.com/St1cky1/task-manager/internal/infrastructure/client"
	"github.com/St1cky1/task-manager/internal/repository"
	"github.com/St1cky1/task-manager/internal/usecase"
	"github.com/St1cky1/task-manager/internal/worker"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Publish reminders for tasks due soon once and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.RabbitMQ.URL == "" {
			return errors.New("RABBITMQ_URL is required")
		}

		ctx := cmd.Context()
		db, err := client.NewPostgresClient(ctx, cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()

		rabbit, err := client.NewRabbitMQClient(cfg.RabbitMQ.URL, cfg.RabbitMQ.ReminderQueue)
		if err != nil {
			return err
		}
		defer rabbit.Close()

		reminderService := usecase.NewReminderService(repository.NewTaskRepository(db.Pool), rabbit, cfg.Reminder.Window)
		reminderWorker, err := worker.NewReminderWorker(reminderService, cfg.Reminder.Schedule, 0)
		if err != nil {
			return err
		}

		sent, err := reminderWorker.RunOnce(ctx)
		if err != nil {
			return err
		}
		log.Info().Int("sent", sent).Msg("reminders dispatched")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(remindCmd)
}
