package handlers

import (
	"context"
	"net/http"

	"github.com/St1cky1/task-manager/internal/entity"
)

type AuthUsecase interface {
	Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResponse, error)
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error)
	Profile(ctx context.Context, userID int) (*entity.User, error)
}

type AuthHandler struct {
	authService AuthUsecase
}

func NewAuthHandler(authService AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *entity.User `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req entity.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.authService.Register(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, authResponse{Message: "user registered", Token: resp.Token, User: resp.User})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req entity.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Message: "login successful", Token: resp.Token, User: resp.User})
}

func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, err := h.authService.Profile(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]*entity.User{"user": user})
}
