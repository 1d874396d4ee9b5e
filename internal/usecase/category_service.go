package usecase

import (
	"context"
	"strings"

	"github.com/St1cky1/task-manager/internal/entity"
	"github.com/St1cky1/task-manager/internal/repository"
)

type CategoryService struct {
	categoryRepo repository.ICategoryRepository
}

func NewCategoryService(categoryRepo repository.ICategoryRepository) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
	}
}

func (s *CategoryService) ListCategories(ctx context.Context, userID int) ([]entity.Category, error) {
	return s.categoryRepo.ListByUser(ctx, userID)
}

func (s *CategoryService) GetCategory(ctx context.Context, categoryID, userID int) (*entity.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID, userID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, entity.ErrCategoryNotFound
	}
	return category, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, userID int, req *entity.CategoryRequest) (*entity.Category, error) {
	if err := entity.Validate(req); err != nil {
		return nil, err
	}
	return s.categoryRepo.Create(ctx, userID, strings.TrimSpace(req.Name))
}

func (s *CategoryService) UpdateCategory(ctx context.Context, categoryID, userID int, req *entity.CategoryRequest) (*entity.Category, error) {
	if err := entity.Validate(req); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.Update(ctx, categoryID, userID, strings.TrimSpace(req.Name))
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, entity.ErrCategoryNotFound
	}
	return category, nil
}

// DeleteCategory - связи с задачами снимаются каскадом
func (s *CategoryService) DeleteCategory(ctx context.Context, categoryID, userID int) error {
	deleted, err := s.categoryRepo.Delete(ctx, categoryID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return entity.ErrCategoryNotFound
	}
	return nil
}
