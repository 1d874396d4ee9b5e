package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/St1cky1/task-manager/internal/entity"
	"github.com/St1cky1/task-manager/internal/repository"
)

const maxTitleLength = 255

type TaskService struct {
	taskRepo repository.ITaskRepository
}

func NewTaskService(taskRepo repository.ITaskRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
	}
}

// ListTasks - страница задач владельца; total считается по тому же фильтру
func (s *TaskService) ListTasks(ctx context.Context, userID int, filter entity.TaskFilter) (*entity.TaskPage, error) {
	if filter.Status != "" && !entity.TaskStatus(filter.Status).Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", entity.ErrValidation, filter.Status)
	}
	if filter.Priority != "" && !entity.TaskPriority(filter.Priority).Valid() {
		return nil, fmt.Errorf("%w: unknown priority %q", entity.ErrValidation, filter.Priority)
	}

	return s.taskRepo.List(ctx, userID, filter)
}

func (s *TaskService) GetTask(ctx context.Context, taskID, userID int) (*entity.Task, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskService) CreateTask(ctx context.Context, userID int, req *entity.CreateTaskRequest) (*entity.Task, error) {
	// 1. Валидация запроса
	if err := entity.Validate(req); err != nil {
		return nil, err
	}

	// 2. Срок разбираем до любой записи в БД
	in := &entity.NewTask{
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		CategoryIDs: req.CategoryIDs,
	}
	if req.DueDate != nil && strings.TrimSpace(*req.DueDate) != "" {
		dueDate, err := entity.ParseDueDate(*req.DueDate)
		if err != nil {
			return nil, err
		}
		in.DueDate = dueDate
	}

	// 3. Владелец всегда из контекста
	return s.taskRepo.Create(ctx, userID, in)
}

func (s *TaskService) UpdateTask(ctx context.Context, taskID, userID int, req *entity.UpdateTaskRequest) (*entity.Task, error) {
	if req.Empty() {
		return nil, entity.ErrNoFieldsToUpdate
	}

	patch, err := buildTaskPatch(req)
	if err != nil {
		return nil, err
	}

	task, err := s.taskRepo.Update(ctx, taskID, userID, patch)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, entity.ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, taskID, userID int) error {
	deleted, err := s.taskRepo.Delete(ctx, taskID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return entity.ErrTaskNotFound
	}
	return nil
}

// buildTaskPatch проверяет переданные поля и переводит запрос в набор колонок.
// due_date: null или "" сбрасывает срок, description: null пишет NULL,
// category_ids: null снимает все категории. Отсутствие ключа оставляет поле как есть.
func buildTaskPatch(req *entity.UpdateTaskRequest) (*entity.TaskPatch, error) {
	patch := &entity.TaskPatch{}

	if req.Description.Set {
		patch.DescriptionSet = true
		patch.Description = req.Description.Value
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be blank", entity.ErrValidation)
		}
		if utf8.RuneCountInString(title) > maxTitleLength {
			return nil, fmt.Errorf("%w: title longer than %d characters", entity.ErrValidation, maxTitleLength)
		}
		patch.Title = &title
	}

	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", entity.ErrValidation, *req.Status)
		}
		patch.Status = req.Status
	}

	if req.Priority != nil {
		if !req.Priority.Valid() {
			return nil, fmt.Errorf("%w: unknown priority %q", entity.ErrValidation, *req.Priority)
		}
		patch.Priority = req.Priority
	}

	if req.DueDate.Set {
		patch.DueDateSet = true
		if req.DueDate.Value != nil && strings.TrimSpace(*req.DueDate.Value) != "" {
			dueDate, err := entity.ParseDueDate(*req.DueDate.Value)
			if err != nil {
				return nil, err
			}
			patch.DueDate = dueDate
		}
	}

	if req.CategoryIDs.Set {
		ids := []int{}
		if req.CategoryIDs.Value != nil {
			ids = *req.CategoryIDs.Value
		}
		for _, id := range ids {
			if id <= 0 {
				return nil, fmt.Errorf("%w: category id %d", entity.ErrValidation, id)
			}
		}
		patch.CategoryIDs = &ids
	}

	return patch, nil
}
