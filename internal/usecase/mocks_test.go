package usecase

import (
	"context"
	"time"

	"github.com/St1cky1/task-manager/internal/entity"
	"github.com/St1cky1/task-manager/internal/repository"
)

// MockTaskRepository - мок для ITaskRepository
type MockTaskRepository struct {
	ListFunc             func(ctx context.Context, userID int, filter entity.TaskFilter) (*entity.TaskPage, error)
	GetByIDFunc          func(ctx context.Context, taskID, userID int) (*entity.Task, error)
	CreateFunc           func(ctx context.Context, userID int, in *entity.NewTask) (*entity.Task, error)
	UpdateFunc           func(ctx context.Context, taskID, userID int, patch *entity.TaskPatch) (*entity.Task, error)
	DeleteFunc           func(ctx context.Context, taskID, userID int) (bool, error)
	FindDueSoonFunc      func(ctx context.Context, window time.Duration) ([]entity.Task, error)
	MarkReminderSentFunc func(ctx context.Context, taskID int) error
}

var _ repository.ITaskRepository = (*MockTaskRepository)(nil)

func (m *MockTaskRepository) List(ctx context.Context, userID int, filter entity.TaskFilter) (*entity.TaskPage, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, filter)
	}
	return &entity.TaskPage{Tasks: []entity.Task{}}, nil
}

func (m *MockTaskRepository) GetByID(ctx context.Context, taskID, userID int) (*entity.Task, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, taskID, userID)
	}
	return nil, nil
}

func (m *MockTaskRepository) Create(ctx context.Context, userID int, in *entity.NewTask) (*entity.Task, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, in)
	}
	return nil, nil
}

func (m *MockTaskRepository) Update(ctx context.Context, taskID, userID int, patch *entity.TaskPatch) (*entity.Task, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, taskID, userID, patch)
	}
	return nil, nil
}

func (m *MockTaskRepository) Delete(ctx context.Context, taskID, userID int) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, taskID, userID)
	}
	return false, nil
}

func (m *MockTaskRepository) FindDueSoon(ctx context.Context, window time.Duration) ([]entity.Task, error) {
	if m.FindDueSoonFunc != nil {
		return m.FindDueSoonFunc(ctx, window)
	}
	return nil, nil
}

func (m *MockTaskRepository) MarkReminderSent(ctx context.Context, taskID int) error {
	if m.MarkReminderSentFunc != nil {
		return m.MarkReminderSentFunc(ctx, taskID)
	}
	return nil
}

// MockCategoryRepository - мок для ICategoryRepository
type MockCategoryRepository struct {
	CreateFunc     func(ctx context.Context, userID int, name string) (*entity.Category, error)
	GetByIDFunc    func(ctx context.Context, categoryID, userID int) (*entity.Category, error)
	ListByUserFunc func(ctx context.Context, userID int) ([]entity.Category, error)
	UpdateFunc     func(ctx context.Context, categoryID, userID int, name string) (*entity.Category, error)
	DeleteFunc     func(ctx context.Context, categoryID, userID int) (bool, error)
}

var _ repository.ICategoryRepository = (*MockCategoryRepository)(nil)

func (m *MockCategoryRepository) Create(ctx context.Context, userID int, name string) (*entity.Category, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, userID, name)
	}
	return nil, nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, categoryID, userID int) (*entity.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, categoryID, userID)
	}
	return nil, nil
}

func (m *MockCategoryRepository) ListByUser(ctx context.Context, userID int) ([]entity.Category, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return []entity.Category{}, nil
}

func (m *MockCategoryRepository) Update(ctx context.Context, categoryID, userID int, name string) (*entity.Category, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, categoryID, userID, name)
	}
	return nil, nil
}

func (m *MockCategoryRepository) Delete(ctx context.Context, categoryID, userID int) (bool, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, categoryID, userID)
	}
	return false, nil
}

// MockUserRepository - мок для IUserRepository
type MockUserRepository struct {
	CreateFunc     func(ctx context.Context, email, name, passwordHash string) (*entity.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*entity.User, error)
	GetByIDFunc    func(ctx context.Context, id int) (*entity.User, error)
}

var _ repository.IUserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) Create(ctx context.Context, email, name, passwordHash string) (*entity.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, email, name, passwordHash)
	}
	return nil, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int) (*entity.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

// MockReminderPublisher - мок для ReminderPublisher
type MockReminderPublisher struct {
	PublishReminderFunc func(ctx context.Context, message *entity.ReminderMessage) error
}

var _ ReminderPublisher = (*MockReminderPublisher)(nil)

func (m *MockReminderPublisher) PublishReminder(ctx context.Context, message *entity.ReminderMessage) error {
	if m.PublishReminderFunc != nil {
		return m.PublishReminderFunc(ctx, message)
	}
	return nil
}
