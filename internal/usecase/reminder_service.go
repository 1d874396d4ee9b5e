package usecase

import (
	"context"
	"time"

	"github.com/St1cky1/task-manager/internal/entity"
	"github.com/St1cky1/task-manager/internal/repository"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const DefaultReminderWindow = 24 * time.Hour

// ReminderPublisher интерфейс для публикации напоминаний в RabbitMQ
type ReminderPublisher interface {
	PublishReminder(ctx context.Context, message *entity.ReminderMessage) error
}

type ReminderService struct {
	taskRepo  repository.ITaskRepository
	publisher ReminderPublisher
	window    time.Duration
	now       func() time.Time
}

func NewReminderService(taskRepo repository.ITaskRepository, publisher ReminderPublisher, window time.Duration) *ReminderService {
	if window <= 0 {
		window = DefaultReminderWindow
	}
	return &ReminderService{
		taskRepo:  taskRepo,
		publisher: publisher,
		window:    window,
		now:       time.Now,
	}
}

// DispatchDue публикует напоминание по каждой задаче со сроком в окне.
// Флаг reminder_sent ставится только после успешной публикации,
// неотправленные задачи попадут в следующий проход.
func (s *ReminderService) DispatchDue(ctx context.Context) (int, error) {
	tasks, err := s.taskRepo.FindDueSoon(ctx, s.window)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range tasks {
		if ctx.Err() != nil {
			return sent, ctx.Err()
		}

		task := &tasks[i]
		message := s.newMessage(task)

		if err := s.publisher.PublishReminder(ctx, message); err != nil {
			log.Warn().Err(err).Int("task_id", task.ID).Msg("failed to publish reminder")
			continue
		}

		if err := s.taskRepo.MarkReminderSent(ctx, task.ID); err != nil {
			log.Error().Err(err).Int("task_id", task.ID).Str("message_id", message.ID).
				Msg("reminder published but flag not updated")
			continue
		}
		sent++
	}

	return sent, nil
}

func (s *ReminderService) newMessage(task *entity.Task) *entity.ReminderMessage {
	categories := make([]string, 0, len(task.Categories))
	for _, c := range task.Categories {
		categories = append(categories, c.Name)
	}

	message := &entity.ReminderMessage{
		ID:         uuid.NewString(),
		TaskID:     task.ID,
		UserID:     task.UserID,
		Title:      task.Title,
		Categories: categories,
		Timestamp:  s.now().UTC(),
	}
	if task.DueDate != nil {
		message.DueDate = *task.DueDate
	}
	return message
}
