package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/St1cky1/task-manager/internal/entity"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

type ctxKey struct{}

// TokenValidator проверяет bearer-токен
type TokenValidator interface {
	Authenticate(token string) (*entity.JWTClaims, error)
}

// Authenticate пропускает запрос дальше только с валидным токеном и кладёт user id в контекст
func Authenticate(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w, "access token required")
				return
			}

			claims, err := validator.Authenticate(token)
			if err != nil {
				hlog.FromRequest(r).Debug().Err(err).Msg("rejected token")
				unauthorized(w, "invalid token")
				return
			}

			hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
				return c.Int("user_id", claims.UserID)
			})
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), claims.UserID)))
		})
	}
}

// BearerToken достаёт токен из заголовка "Bearer <token>"
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// UserID - id аутентифицированного пользователя из контекста запроса
func UserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(ctxKey{}).(int)
	return id, ok && id > 0
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
