package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/St1cky1/task-manager/internal/api/handlers"
	"github.com/St1cky1/task-manager/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

// Pinger - проверка доступности хранилища для /healthz
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

type Deps struct {
	Tasks      handlers.TaskUsecase
	Categories handlers.CategoryUsecase
	Auth       interface {
		handlers.AuthUsecase
		middleware.TokenValidator
	}
	Health Pinger

	Logger         zerolog.Logger
	RequestTimeout time.Duration
	AllowedOrigins []string
}

func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(hlog.NewHandler(deps.Logger))
	r.Use(requestIDLogger)
	r.Use(hlog.RemoteAddrHandler("ip"))
	r.Use(hlog.UserAgentHandler("user_agent"))
	r.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Stringer("url", r.URL).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	r.Use(chimw.Recoverer)
	if deps.RequestTimeout > 0 {
		r.Use(chimw.Timeout(deps.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	taskHandler := handlers.NewTaskHandler(deps.Tasks)
	categoryHandler := handlers.NewCategoryHandler(deps.Categories)
	authHandler := handlers.NewAuthHandler(deps.Auth)
	requireAuth := middleware.Authenticate(deps.Auth)

	r.Get("/healthz", healthHandler(deps.Health))

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.With(requireAuth).Get("/profile", authHandler.Profile)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.ListTasks)
				r.Post("/", taskHandler.CreateTask)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", taskHandler.GetTask)
					r.Put("/", taskHandler.UpdateTask)
					r.Patch("/", taskHandler.UpdateTask)
					r.Delete("/", taskHandler.DeleteTask)
				})
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", categoryHandler.ListCategories)
				r.Post("/", categoryHandler.CreateCategory)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", categoryHandler.GetCategory)
					r.Put("/", categoryHandler.UpdateCategory)
					r.Delete("/", categoryHandler.DeleteCategory)
				})
			})
		})
	})

	return r
}

// requestIDLogger добавляет id запроса от chi в контекст логгера
func requestIDLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Str("req_id", id)
			})
			w.Header().Set(chimw.RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}

func healthHandler(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, body := http.StatusOK, "ok"
		if p != nil {
			if err := p.HealthCheck(r.Context()); err != nil {
				hlog.FromRequest(r).Warn().Err(err).Msg("health check failed")
				status, body = http.StatusServiceUnavailable, "unavailable"
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": body})
	}
}
