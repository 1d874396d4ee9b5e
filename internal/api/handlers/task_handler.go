package handlers

import (
	"context"
	"net/http"

	"github.com/St1cky1/task-manager/internal/entity"
	"github.com/St1cky1/task-manager/internal/repository"
)

type TaskUsecase interface {
	ListTasks(ctx context.Context, userID int, filter entity.TaskFilter) (*entity.TaskPage, error)
	GetTask(ctx context.Context, taskID, userID int) (*entity.Task, error)
	CreateTask(ctx context.Context, userID int, req *entity.CreateTaskRequest) (*entity.Task, error)
	UpdateTask(ctx context.Context, taskID, userID int, req *entity.UpdateTaskRequest) (*entity.Task, error)
	DeleteTask(ctx context.Context, taskID, userID int) error
}

type TaskHandler struct {
	taskService TaskUsecase
}

func NewTaskHandler(taskService TaskUsecase) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

type taskResponse struct {
	Message string       `json:"message,omitempty"`
	Task    *entity.Task `json:"task"`
}

type taskListResponse struct {
	Tasks      []entity.Task `json:"tasks"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"total_pages"`
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	page, err := queryInt(r, "page")
	if err != nil {
		writeError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, err)
		return
	}

	q := r.URL.Query()
	filter := entity.TaskFilter{
		Status:    q.Get("status"),
		Priority:  q.Get("priority"),
		DateRange: firstNonEmpty(q.Get("dateRange"), q.Get("date_range")),
		SortBy:    firstNonEmpty(q.Get("sortBy"), q.Get("sort_by")),
		SortOrder: firstNonEmpty(q.Get("sortOrder"), q.Get("sort_order")),
		Page:      page,
		Limit:     limit,
	}

	result, err := h.taskService.ListTasks(r.Context(), userID, filter)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// отдаём клиенту фактически применённые page/limit
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = repository.DefaultPageSize
	}

	writeJSON(w, http.StatusOK, taskListResponse{
		Tasks:      result.Tasks,
		Total:      result.Total,
		Page:       page,
		Limit:      limit,
		TotalPages: (result.Total + limit - 1) / limit,
	})
}

// создаем новую задачу
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req entity.CreateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), userID, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, taskResponse{Message: "task created", Task: task})
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	taskID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.taskService.GetTask(r.Context(), taskID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, taskResponse{Task: task})
}

// UpdateTask - PUT и PATCH ведут себя одинаково: меняются только переданные поля
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	taskID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req entity.UpdateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.taskService.UpdateTask(r.Context(), taskID, userID, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, taskResponse{Message: "task updated", Task: task})
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	taskID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), taskID, userID); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "task deleted"})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
