package entity

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// PriorityRank - порядковый номер приоритета для сортировки (high=1, medium=2, low=3)
var PriorityRank = map[TaskPriority]int{
	PriorityHigh:   1,
	PriorityMedium: 2,
	PriorityLow:    3,
}

type Task struct {
	ID           int          `json:"id"`
	Title        string       `json:"title"`
	Description  *string      `json:"description"`
	Status       TaskStatus   `json:"status"`
	Priority     TaskPriority `json:"priority"`
	DueDate      *time.Time   `json:"due_date"`
	ReminderSent bool         `json:"reminder_sent"`
	UserID       int          `json:"user_id"`
	Categories   []Category   `json:"categories"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// TaskPage - страница задач и общее количество по тому же фильтру
type TaskPage struct {
	Tasks []Task `json:"tasks"`
	Total int    `json:"total"`
}

// валидация
type CreateTaskRequest struct {
	Title       string       `json:"title" validate:"required,notblank,max=255"`
	Description *string      `json:"description"`
	Status      TaskStatus   `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Priority    TaskPriority `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *string      `json:"due_date"`
	CategoryIDs []int        `json:"category_ids" validate:"omitempty,dive,gt=0"`
}

// UpdateTaskRequest - частичное обновление, nil означает "поле не передано".
// У description, due_date и category_ids явный null отличается от отсутствия ключа.
type UpdateTaskRequest struct {
	Title       *string          `json:"title"`
	Description Optional[string] `json:"description"`
	Status      *TaskStatus      `json:"status"`
	Priority    *TaskPriority    `json:"priority"`
	DueDate     Optional[string] `json:"due_date"`
	CategoryIDs Optional[[]int]  `json:"category_ids"`
}

func (r *UpdateTaskRequest) Empty() bool {
	return r.Title == nil && !r.Description.Set && r.Status == nil &&
		r.Priority == nil && !r.DueDate.Set && !r.CategoryIDs.Set
}

// NewTask - данные для вставки, уже провалидированные
type NewTask struct {
	Title       string
	Description *string
	Status      TaskStatus
	Priority    TaskPriority
	DueDate     *time.Time
	CategoryIDs []int
}

// TaskPatch - набор полей для UPDATE. DescriptionSet и DueDateSet отличают
// "записать NULL" от "не трогать".
type TaskPatch struct {
	Title          *string
	DescriptionSet bool
	Description    *string
	Status      *TaskStatus
	Priority    *TaskPriority
	DueDateSet  bool
	DueDate     *time.Time
	CategoryIDs *[]int
}

// TaskFilter - параметры списка задач
type TaskFilter struct {
	Status    string
	Priority  string
	DateRange string
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

var dueDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseDueDate разбирает срок из внешнего представления
func ParseDueDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dueDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, ErrInvalidDueDate
}
