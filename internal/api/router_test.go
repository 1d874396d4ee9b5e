package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/St1cky1/task-manager/internal/entity"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTasks struct {
	lastUser int
	updates  int
}

func (s *stubTasks) ListTasks(_ context.Context, userID int, _ entity.TaskFilter) (*entity.TaskPage, error) {
	s.lastUser = userID
	return &entity.TaskPage{Tasks: []entity.Task{}}, nil
}

func (s *stubTasks) GetTask(context.Context, int, int) (*entity.Task, error) {
	return nil, entity.ErrTaskNotFound
}

func (s *stubTasks) CreateTask(context.Context, int, *entity.CreateTaskRequest) (*entity.Task, error) {
	return &entity.Task{ID: 1}, nil
}

func (s *stubTasks) UpdateTask(_ context.Context, taskID, _ int, _ *entity.UpdateTaskRequest) (*entity.Task, error) {
	s.updates++
	return &entity.Task{ID: taskID}, nil
}

func (s *stubTasks) DeleteTask(context.Context, int, int) error { return nil }

type stubCategories struct{}

func (stubCategories) ListCategories(context.Context, int) ([]entity.Category, error) {
	return []entity.Category{}, nil
}

func (stubCategories) GetCategory(context.Context, int, int) (*entity.Category, error) {
	return nil, entity.ErrCategoryNotFound
}

func (stubCategories) CreateCategory(context.Context, int, *entity.CategoryRequest) (*entity.Category, error) {
	return &entity.Category{ID: 1}, nil
}

func (stubCategories) UpdateCategory(context.Context, int, int, *entity.CategoryRequest) (*entity.Category, error) {
	return &entity.Category{ID: 1}, nil
}

func (stubCategories) DeleteCategory(context.Context, int, int) error { return nil }

type stubAuth struct{}

func (stubAuth) Register(context.Context, *entity.RegisterRequest) (*entity.AuthResponse, error) {
	return &entity.AuthResponse{Token: "t", User: &entity.User{ID: 1}}, nil
}

func (stubAuth) Login(context.Context, *entity.LoginRequest) (*entity.AuthResponse, error) {
	return nil, entity.ErrInvalidCredentials
}

func (stubAuth) Profile(_ context.Context, userID int) (*entity.User, error) {
	return &entity.User{ID: userID}, nil
}

func (stubAuth) Authenticate(token string) (*entity.JWTClaims, error) {
	if token == "good" {
		return &entity.JWTClaims{UserID: 7, Email: "a@b.c"}, nil
	}
	return nil, entity.ErrUnauthorized
}

type stubPinger struct{ err error }

func (p stubPinger) HealthCheck(context.Context) error { return p.err }

func newTestRouter(tasks *stubTasks, health Pinger) http.Handler {
	return NewRouter(Deps{
		Tasks:          tasks,
		Categories:     stubCategories{},
		Auth:           stubAuth{},
		Health:         health,
		Logger:         zerolog.Nop(),
		RequestTimeout: time.Second,
		AllowedOrigins: []string{"http://localhost:3000"},
	})
}

func do(h http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouterProtectsTaskRoutes(t *testing.T) {
	tasks := &stubTasks{}
	h := newTestRouter(tasks, stubPinger{})

	rec := do(h, http.MethodGet, "/api/tasks", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "access token required")

	rec = do(h, http.MethodGet, "/api/tasks", "bad", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid token")

	rec = do(h, http.MethodGet, "/api/tasks", "good", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, tasks.lastUser)
}

func TestRouterPutAndPatchShareHandler(t *testing.T) {
	tasks := &stubTasks{}
	h := newTestRouter(tasks, stubPinger{})

	assert.Equal(t, http.StatusOK, do(h, http.MethodPut, "/api/tasks/3", "good", `{"title":"x"}`).Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodPatch, "/api/tasks/3", "good", `{"title":"x"}`).Code)
	assert.Equal(t, 2, tasks.updates)
}

func TestRouterPublicAuthRoutes(t *testing.T) {
	h := newTestRouter(&stubTasks{}, stubPinger{})

	rec := do(h, http.MethodPost, "/api/auth/register", "", `{"email":"a@b.c","password":"secret1","name":"A"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = do(h, http.MethodPost, "/api/auth/login", "", `{"email":"a@b.c","password":"nope"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodGet, "/api/auth/profile", "", "").Code)
	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/api/auth/profile", "good", "").Code)
}

func TestRouterCategoryRoutes(t *testing.T) {
	h := newTestRouter(&stubTasks{}, stubPinger{})

	assert.Equal(t, http.StatusOK, do(h, http.MethodGet, "/api/categories", "good", "").Code)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/api/categories/5", "good", "").Code)
}

func TestRouterHealth(t *testing.T) {
	rec := do(newTestRouter(&stubTasks{}, stubPinger{}), http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	rec = do(newTestRouter(&stubTasks{}, stubPinger{err: errors.New("down")}), http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouterCORSPreflight(t *testing.T) {
	h := newTestRouter(&stubTasks{}, stubPinger{})

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
