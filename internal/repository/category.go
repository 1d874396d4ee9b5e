package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/St1cky1/task-manager/internal/entity"
	"github.com/jackc/pgx/v5"
)

type CategoryRepository struct {
	db DB
}

func NewCategoryRepository(db DB) *CategoryRepository {
	return &CategoryRepository{
		db: db,
	}
}

// Create - создание категории; дубль имени у владельца даёт ErrCategoryExists
func (r *CategoryRepository) Create(ctx context.Context, userID int, name string) (*entity.Category, error) {
	if err := validateIDs(userID); err != nil {
		return nil, err
	}

	query := `
	INSERT INTO categories (name, user_id)
	VALUES ($1, $2)
	RETURNING id, name, user_id, created_at
	`

	var category entity.Category
	err := r.db.QueryRow(ctx, query, name, userID).Scan(
		&category.ID,
		&category.Name,
		&category.UserID,
		&category.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %q", entity.ErrCategoryExists, name)
		}
		return nil, classify("insert category", err)
	}

	return &category, nil
}

// GetByID - (nil, nil) если категории нет у владельца
func (r *CategoryRepository) GetByID(ctx context.Context, categoryID, userID int) (*entity.Category, error) {
	if err := validateIDs(categoryID, userID); err != nil {
		return nil, err
	}

	query := `
	SELECT id, name, user_id, created_at
	FROM categories
	WHERE id = $1 AND user_id = $2
	`

	var category entity.Category
	err := r.db.QueryRow(ctx, query, categoryID, userID).Scan(
		&category.ID,
		&category.Name,
		&category.UserID,
		&category.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get category", err)
	}

	return &category, nil
}

// ListByUser - все категории владельца по имени
func (r *CategoryRepository) ListByUser(ctx context.Context, userID int) ([]entity.Category, error) {
	if err := validateIDs(userID); err != nil {
		return nil, err
	}

	query := `
	SELECT id, name, user_id, created_at
	FROM categories
	WHERE user_id = $1
	ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, classify("list categories", err)
	}
	defer rows.Close()

	categories := []entity.Category{}
	for rows.Next() {
		var category entity.Category
		err := rows.Scan(
			&category.ID,
			&category.Name,
			&category.UserID,
			&category.CreatedAt,
		)
		if err != nil {
			return nil, classify("scan category", err)
		}
		categories = append(categories, category)
	}

	if err := rows.Err(); err != nil {
		return nil, classify("list categories", err)
	}
	return categories, nil
}

// Update - переименование; (nil, nil) если категории нет у владельца
func (r *CategoryRepository) Update(ctx context.Context, categoryID, userID int, name string) (*entity.Category, error) {
	if err := validateIDs(categoryID, userID); err != nil {
		return nil, err
	}

	query := `
	UPDATE categories
	SET name = $1
	WHERE id = $2 AND user_id = $3
	RETURNING id, name, user_id, created_at
	`

	var category entity.Category
	err := r.db.QueryRow(ctx, query, name, categoryID, userID).Scan(
		&category.ID,
		&category.Name,
		&category.UserID,
		&category.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %q", entity.ErrCategoryExists, name)
		}
		return nil, classify("update category", err)
	}

	return &category, nil
}

// Delete - связи с задачами удаляются каскадом в БД
func (r *CategoryRepository) Delete(ctx context.Context, categoryID, userID int) (bool, error) {
	if err := validateIDs(categoryID, userID); err != nil {
		return false, err
	}

	result, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1 AND user_id = $2`, categoryID, userID)
	if err != nil {
		return false, classify("delete category", err)
	}
	return result.RowsAffected() > 0, nil
}
