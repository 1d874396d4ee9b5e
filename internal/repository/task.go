package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/St1cky1/task-manager/internal/entity"
	"github.com/jackc/pgx/v5"
)

type TaskRepository struct {
	db DB
}

func NewTaskRepository(db DB) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

// errTaskMissing - внутренний сигнал для отката транзакции обновления
var errTaskMissing = errors.New("task missing")

// List - страница задач пользователя и общее количество по тому же WHERE
func (r *TaskRepository) List(ctx context.Context, userID int, filter entity.TaskFilter) (*entity.TaskPage, error) {
	if err := validateIDs(userID); err != nil {
		return nil, err
	}

	q, err := buildTaskListQuery(userID, filter)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := r.db.QueryRow(ctx, q.countSQL(), q.args...).Scan(&total); err != nil {
		return nil, classify("count tasks", err)
	}

	rows, err := r.db.Query(ctx, q.selectSQL(), q.args...)
	if err != nil {
		return nil, classify("query tasks", err)
	}

	tasks, err := collectTasks(rows)
	if err != nil {
		return nil, classify("scan tasks", err)
	}

	return &entity.TaskPage{Tasks: tasks, Total: int(total)}, nil
}

// GetByID - задача владельца вместе с категориями, (nil, nil) если не найдена
func (r *TaskRepository) GetByID(ctx context.Context, taskID, userID int) (*entity.Task, error) {
	if err := validateIDs(taskID, userID); err != nil {
		return nil, err
	}

	query := "SELECT " + taskSelectColumns + "\n" + taskFromJoins + `
	WHERE t.id = $1 AND t.user_id = $2
	GROUP BY t.id`

	task, err := scanTask(r.db.QueryRow(ctx, query, taskID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get task", err)
	}

	return task, nil
}

// Create - вставка задачи и связей с категориями в одной транзакции
func (r *TaskRepository) Create(ctx context.Context, userID int, in *entity.NewTask) (*entity.Task, error) {
	if err := validateIDs(userID); err != nil {
		return nil, err
	}
	if err := validateIDs(in.CategoryIDs...); err != nil {
		return nil, err
	}

	status := in.Status
	if status == "" {
		status = entity.StatusPending
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityMedium
	}

	var taskID int
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
		INSERT INTO tasks (title, description, status, priority, due_date, user_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
		`
		err := tx.QueryRow(ctx, query,
			in.Title,
			in.Description,
			string(status),
			string(priority),
			in.DueDate,
			userID,
		).Scan(&taskID)
		if err != nil {
			return classify("insert task", err)
		}

		return insertTaskCategories(ctx, tx, taskID, in.CategoryIDs)
	})
	if err != nil {
		return nil, err
	}

	return r.refetch(ctx, taskID, userID)
}

// Update - частичное обновление. Категории заменяются целиком, если ключ передан
// (в том числе пустым списком); (nil, nil) если задачи нет у этого владельца.
func (r *TaskRepository) Update(ctx context.Context, taskID, userID int, patch *entity.TaskPatch) (*entity.Task, error) {
	if err := validateIDs(taskID, userID); err != nil {
		return nil, err
	}
	if patch.CategoryIDs != nil {
		if err := validateIDs(*patch.CategoryIDs...); err != nil {
			return nil, err
		}
	}

	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		var existingID int
		err := tx.QueryRow(ctx,
			`SELECT id FROM tasks WHERE id = $1 AND user_id = $2`,
			taskID, userID,
		).Scan(&existingID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return errTaskMissing
			}
			return classify("lookup task", err)
		}

		query, args, err := buildTaskUpdate(taskID, userID, patch)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return classify("update task", err)
		}

		if patch.CategoryIDs == nil {
			return nil
		}
		if _, err := tx.Exec(ctx, `DELETE FROM task_categories WHERE task_id = $1`, taskID); err != nil {
			return classify("clear task categories", err)
		}
		return insertTaskCategories(ctx, tx, taskID, *patch.CategoryIDs)
	})
	if err != nil {
		if errors.Is(err, errTaskMissing) {
			return nil, nil
		}
		return nil, err
	}

	return r.refetch(ctx, taskID, userID)
}

// Delete - удаление задачи владельца; false если удалять было нечего
func (r *TaskRepository) Delete(ctx context.Context, taskID, userID int) (bool, error) {
	if err := validateIDs(taskID, userID); err != nil {
		return false, err
	}

	result, err := r.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1 AND user_id = $2`, taskID, userID)
	if err != nil {
		return false, classify("delete task", err)
	}
	return result.RowsAffected() > 0, nil
}

// FindDueSoon - задачи всех пользователей со сроком в ближайшем окне и без отправленного напоминания
func (r *TaskRepository) FindDueSoon(ctx context.Context, window time.Duration) ([]entity.Task, error) {
	query := "SELECT " + taskSelectColumns + "\n" + taskFromJoins + `
	WHERE t.due_date > NOW()
	  AND t.due_date <= NOW() + ($1 * INTERVAL '1 second')
	  AND t.reminder_sent = false
	GROUP BY t.id
	ORDER BY t.due_date ASC`

	rows, err := r.db.Query(ctx, query, window.Seconds())
	if err != nil {
		return nil, classify("query due tasks", err)
	}

	tasks, err := collectTasks(rows)
	if err != nil {
		return nil, classify("scan due tasks", err)
	}
	return tasks, nil
}

// MarkReminderSent - единственная запись без фильтра по владельцу, для диспетчера напоминаний
func (r *TaskRepository) MarkReminderSent(ctx context.Context, taskID int) error {
	if err := validateIDs(taskID); err != nil {
		return err
	}

	result, err := r.db.Exec(ctx, `UPDATE tasks SET reminder_sent = true WHERE id = $1`, taskID)
	if err != nil {
		return classify("mark reminder sent", err)
	}
	if result.RowsAffected() == 0 {
		return entity.ErrTaskNotFound
	}
	return nil
}

func (r *TaskRepository) refetch(ctx context.Context, taskID, userID int) (*entity.Task, error) {
	task, err := r.GetByID(ctx, taskID, userID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		// задачу удалили между коммитом и чтением
		return nil, entity.ErrTaskNotFound
	}
	return task, nil
}

type setField struct {
	column string
	value  any
}

// buildTaskUpdate строит UPDATE только по переданным полям; updated_at трогается всегда
func buildTaskUpdate(taskID, userID int, patch *entity.TaskPatch) (string, []any, error) {
	var fields []setField
	if patch.Title != nil {
		fields = append(fields, setField{"title", *patch.Title})
	}
	if patch.DescriptionSet {
		fields = append(fields, setField{"description", patch.Description})
	}
	if patch.Status != nil {
		fields = append(fields, setField{"status", string(*patch.Status)})
	}
	if patch.Priority != nil {
		fields = append(fields, setField{"priority", string(*patch.Priority)})
	}
	if patch.DueDateSet {
		fields = append(fields, setField{"due_date", patch.DueDate})
	}

	setClause := make([]string, 0, len(fields)+2)
	args := make([]any, 0, len(fields)+2)
	for _, f := range fields {
		col, err := ValidateIdentifier(f.column)
		if err != nil {
			return "", nil, err
		}
		args = append(args, f.value)
		setClause = append(setClause, col+" = $"+strconv.Itoa(len(args)))
	}
	if patch.DueDateSet {
		// новый срок - новое напоминание
		setClause = append(setClause, "reminder_sent = false")
	}
	setClause = append(setClause, "updated_at = GREATEST(CURRENT_TIMESTAMP, updated_at + INTERVAL '1 microsecond')")

	args = append(args, taskID, userID)
	query := fmt.Sprintf(
		"UPDATE tasks SET %s WHERE id = $%d AND user_id = $%d",
		strings.Join(setClause, ", "), len(args)-1, len(args),
	)
	return query, args, nil
}

// insertTaskCategories - одна вставка всех связей; дубликаты id отбрасываются
func insertTaskCategories(ctx context.Context, tx pgx.Tx, taskID int, categoryIDs []int) error {
	ids := uniqueIDs(categoryIDs)
	if len(ids) == 0 {
		return nil
	}

	_, err := tx.Exec(ctx,
		`INSERT INTO task_categories (task_id, category_id) SELECT $1, UNNEST($2::int[])`,
		taskID, ids,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("link categories: %w: %w", entity.ErrUnknownCategory, err)
		}
		return classify("link categories", err)
	}
	return nil
}

func uniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func scanTask(row pgx.Row) (*entity.Task, error) {
	var (
		task           entity.Task
		categoriesJSON []byte
	)

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Status,
		&task.Priority,
		&task.DueDate,
		&task.ReminderSent,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
		&categoriesJSON,
	)
	if err != nil {
		return nil, err
	}

	task.Categories = []entity.Category{}
	if len(categoriesJSON) > 0 {
		if err := json.Unmarshal(categoriesJSON, &task.Categories); err != nil {
			return nil, fmt.Errorf("decode categories: %w", err)
		}
	}

	return &task, nil
}

func collectTasks(rows pgx.Rows) ([]entity.Task, error) {
	defer rows.Close()

	tasks := []entity.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}
