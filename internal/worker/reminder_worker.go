package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Dispatcher - один проход по задачам со скорым сроком
type Dispatcher interface {
	DispatchDue(ctx context.Context) (int, error)
}

type ReminderWorker struct {
	dispatcher Dispatcher
	cron       *cron.Cron
	timeout    time.Duration

	ctx    context.Context
	cancel context.CancelFunc
}

// NewReminderWorker - schedule в формате cron или @every 1m.
// Проход, не успевший завершиться до следующего тика, не дублируется.
func NewReminderWorker(dispatcher Dispatcher, schedule string, timeout time.Duration) (*ReminderWorker, error) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	logger := cronLogger{}
	w := &ReminderWorker{
		dispatcher: dispatcher,
		timeout:    timeout,
		cron: cron.New(
			cron.WithLogger(logger),
			cron.WithChain(cron.Recover(logger), cron.SkipIfStillRunning(logger)),
		),
	}
	w.ctx, w.cancel = context.WithCancel(context.Background())

	if _, err := w.cron.AddFunc(schedule, w.tick); err != nil {
		return nil, fmt.Errorf("invalid reminder schedule %q: %w", schedule, err)
	}
	return w, nil
}

func (w *ReminderWorker) Start(ctx context.Context) {
	w.ctx, w.cancel = context.WithCancel(ctx)
	w.cron.Start()
	log.Info().Msg("reminder worker started")
}

// Stop отменяет текущий проход и ждёт его завершения
func (w *ReminderWorker) Stop() {
	w.cancel()
	<-w.cron.Stop().Done()
	log.Info().Msg("reminder worker stopped")
}

// RunOnce - один проход с ограничением по времени
func (w *ReminderWorker) RunOnce(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()
	return w.dispatcher.DispatchDue(ctx)
}

func (w *ReminderWorker) tick() {
	sent, err := w.RunOnce(w.ctx)
	if err != nil {
		log.Error().Err(err).Int("sent", sent).Msg("reminder dispatch failed")
		return
	}
	if sent > 0 {
		log.Info().Int("sent", sent).Msg("reminders dispatched")
	}
}

// cronLogger пишет события cron в zerolog
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Debug().Fields(keysAndValues).Msg(msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
