package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/St1cky1/task-manager/internal/api"
	"github.com/St1cky1/task-manager/internal/config"
	"github.com/St1cky1/task-manager/internal/infrastructure/auth"
	"github.com/St1cky1/task-manager/internal/infrastructure/client"
	"github.com/St1cky1/task-manager/internal/repository"
	"github.com/St1cky1/task-manager/internal/usecase"
	"github.com/St1cky1/task-manager/internal/worker"
	"github.com/St1cky1/task-manager/migrations"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API and the reminder worker",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return serve(ctx, cfg)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply migrations on start")
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg *config.Config) error {
	if !skipMigrations {
		if err := runMigrations(cfg.Database.URL()); err != nil {
			return err
		}
	}

	db, err := client.NewPostgresClient(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Info().Str("host", cfg.Database.Host).Str("db", cfg.Database.DBName).Msg("connected to postgres")

	jwtManager, err := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.TokenTTL)
	if err != nil {
		return err
	}

	// Репозитории
	taskRepo := repository.NewTaskRepository(db.Pool)
	categoryRepo := repository.NewCategoryRepository(db.Pool)
	userRepo := repository.NewUserRepository(db.Pool)

	// Сервисы
	taskService := usecase.NewTaskService(taskRepo)
	categoryService := usecase.NewCategoryService(categoryRepo)
	authService := usecase.NewAuthService(userRepo, auth.NewPasswordManager(0), jwtManager)

	if cfg.ReminderActive() {
		reminders, err := startReminders(ctx, cfg, taskRepo)
		if err != nil {
			return err
		}
		defer reminders()
	} else {
		log.Warn().Msg("reminder worker disabled: RABBITMQ_URL is empty or REMINDER_ENABLED=false")
	}

	router := api.NewRouter(api.Deps{
		Tasks:          taskService,
		Categories:     categoryService,
		Auth:           authService,
		Health:         db,
		Logger:         log.Logger,
		RequestTimeout: cfg.Server.RequestTimeout,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Server.Environment).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}

// startReminders поднимает RabbitMQ и cron-воркер; возвращает функцию остановки
func startReminders(ctx context.Context, cfg *config.Config, taskRepo repository.ITaskRepository) (func(), error) {
	rabbit, err := client.NewRabbitMQClient(cfg.RabbitMQ.URL, cfg.RabbitMQ.ReminderQueue)
	if err != nil {
		return nil, err
	}
	log.Info().Str("queue", rabbit.QueueName()).Msg("connected to rabbitmq")

	reminderService := usecase.NewReminderService(taskRepo, rabbit, cfg.Reminder.Window)
	reminderWorker, err := worker.NewReminderWorker(reminderService, cfg.Reminder.Schedule, 0)
	if err != nil {
		_ = rabbit.Close()
		return nil, err
	}
	reminderWorker.Start(ctx)

	return func() {
		reminderWorker.Stop()
		if err := rabbit.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close rabbitmq connection")
		}
	}, nil
}

func runMigrations(dbURL string) error {
	m, err := client.NewMigrator(migrations.FS, dbURL)
	if err != nil {
		return err
	}
	defer m.Close()

	return m.Up()
}
