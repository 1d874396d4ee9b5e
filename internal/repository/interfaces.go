package repository

import (
	"context"
	"time"

	"github.com/St1cky1/task-manager/internal/entity"
)

// ITaskRepository - интерфейс для TaskRepository
type ITaskRepository interface {
	List(ctx context.Context, userID int, filter entity.TaskFilter) (*entity.TaskPage, error)
	GetByID(ctx context.Context, taskID, userID int) (*entity.Task, error)
	Create(ctx context.Context, userID int, in *entity.NewTask) (*entity.Task, error)
	Update(ctx context.Context, taskID, userID int, patch *entity.TaskPatch) (*entity.Task, error)
	Delete(ctx context.Context, taskID, userID int) (bool, error)
	FindDueSoon(ctx context.Context, window time.Duration) ([]entity.Task, error)
	MarkReminderSent(ctx context.Context, taskID int) error
}

// ICategoryRepository - интерфейс для CategoryRepository
type ICategoryRepository interface {
	Create(ctx context.Context, userID int, name string) (*entity.Category, error)
	GetByID(ctx context.Context, categoryID, userID int) (*entity.Category, error)
	ListByUser(ctx context.Context, userID int) ([]entity.Category, error)
	Update(ctx context.Context, categoryID, userID int, name string) (*entity.Category, error)
	Delete(ctx context.Context, categoryID, userID int) (bool, error)
}

// IUserRepository - интерфейс для UserRepository
type IUserRepository interface {
	Create(ctx context.Context, email, name, passwordHash string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByID(ctx context.Context, id int) (*entity.User, error)
}

var (
	_ ITaskRepository     = (*TaskRepository)(nil)
	_ ICategoryRepository = (*CategoryRepository)(nil)
	_ IUserRepository     = (*UserRepository)(nil)
)
