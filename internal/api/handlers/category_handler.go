package handlers

import (
	"context"
	"net/http"

	"github.com/St1cky1/task-manager/internal/entity"
)

type CategoryUsecase interface {
	ListCategories(ctx context.Context, userID int) ([]entity.Category, error)
	GetCategory(ctx context.Context, categoryID, userID int) (*entity.Category, error)
	CreateCategory(ctx context.Context, userID int, req *entity.CategoryRequest) (*entity.Category, error)
	UpdateCategory(ctx context.Context, categoryID, userID int, req *entity.CategoryRequest) (*entity.Category, error)
	DeleteCategory(ctx context.Context, categoryID, userID int) error
}

type CategoryHandler struct {
	categoryService CategoryUsecase
}

func NewCategoryHandler(categoryService CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

type categoryResponse struct {
	Message  string           `json:"message,omitempty"`
	Category *entity.Category `json:"category"`
}

func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	categories, err := h.categoryService.ListCategories(r.Context(), userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]entity.Category{"categories": categories})
}

func (h *CategoryHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	categoryID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	category, err := h.categoryService.GetCategory(r.Context(), categoryID, userID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, categoryResponse{Category: category})
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req entity.CategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	category, err := h.categoryService.CreateCategory(r.Context(), userID, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, categoryResponse{Message: "category created", Category: category})
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	categoryID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req entity.CategoryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	category, err := h.categoryService.UpdateCategory(r.Context(), categoryID, userID, &req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, categoryResponse{Message: "category updated", Category: category})
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	categoryID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.categoryService.DeleteCategory(r.Context(), categoryID, userID); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "category deleted"})
}
