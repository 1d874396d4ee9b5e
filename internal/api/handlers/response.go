package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/St1cky1/task-manager/internal/api/middleware"
	"github.com/St1cky1/task-manager/internal/entity"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"
)

const maxBodyBytes = 1 << 20

type messageResponse struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor переводит ошибку в HTTP-статус и текст для клиента.
// Для 500 текст непрозрачный, подробности только в логе.
func statusFor(err error) (int, string, string) {
	switch {
	case errors.Is(err, entity.ErrStorageUnavailable):
		return http.StatusServiceUnavailable, "service temporarily unavailable", ""
	case errors.Is(err, entity.ErrNoFieldsToUpdate):
		return http.StatusBadRequest, entity.ErrNoFieldsToUpdate.Error(), ""
	case errors.Is(err, entity.ErrValidation),
		errors.Is(err, entity.ErrInvalidIdentifier),
		errors.Is(err, entity.ErrInvalidSortDirection),
		errors.Is(err, entity.ErrInvalidNumber),
		errors.Is(err, entity.ErrInvalidDueDate):
		return http.StatusBadRequest, "validation error", err.Error()
	case errors.Is(err, entity.ErrUnknownCategory):
		return http.StatusBadRequest, entity.ErrUnknownCategory.Error(), ""
	case errors.Is(err, entity.ErrInvalidCredentials):
		return http.StatusUnauthorized, entity.ErrInvalidCredentials.Error(), ""
	case errors.Is(err, entity.ErrUnauthorized):
		return http.StatusUnauthorized, entity.ErrUnauthorized.Error(), ""
	case errors.Is(err, entity.ErrTaskNotFound):
		return http.StatusNotFound, entity.ErrTaskNotFound.Error(), ""
	case errors.Is(err, entity.ErrCategoryNotFound):
		return http.StatusNotFound, entity.ErrCategoryNotFound.Error(), ""
	case errors.Is(err, entity.ErrUserNotFound):
		return http.StatusNotFound, entity.ErrUserNotFound.Error(), ""
	case errors.Is(err, entity.ErrCategoryExists):
		return http.StatusConflict, entity.ErrCategoryExists.Error(), ""
	case errors.Is(err, entity.ErrEmailTaken):
		return http.StatusConflict, entity.ErrEmailTaken.Error(), ""
	default:
		return http.StatusInternalServerError, "internal server error", ""
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message, details := statusFor(err)

	logger := hlog.FromRequest(r)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error().Err(err).Int("status", status).Msg("request failed")
	case status != http.StatusNotFound:
		logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	writeJSON(w, status, messageResponse{Message: message, Details: details})
}

// decodeJSON - тело запроса не больше 1 МБ
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body", entity.ErrValidation)
	}
	return nil
}

// pathID - положительный id из URL
func pathID(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", entity.ErrInvalidNumber, name, raw)
	}
	return id, nil
}

// queryInt - пустой параметр даёт 0 (значение по умолчанию)
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", entity.ErrInvalidNumber, name)
	}
	return n, nil
}

func currentUser(w http.ResponseWriter, r *http.Request) (int, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, messageResponse{Message: entity.ErrUnauthorized.Error()})
		return 0, false
	}
	return userID, true
}
