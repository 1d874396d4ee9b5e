package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/St1cky1/task-manager/internal/entity"
	"github.com/jackc/pgx/v5"
)

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

// создаем пользователя, email храним в нижнем регистре
func (r *UserRepository) Create(ctx context.Context, email, name, passwordHash string) (*entity.User, error) {
	query := `
	INSERT INTO users (email, password, name)
	VALUES ($1, $2, $3)
	RETURNING id, email, name, password, created_at
	`

	var user entity.User
	err := r.db.QueryRow(ctx, query, strings.ToLower(email), passwordHash, name).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, entity.ErrEmailTaken
		}
		return nil, classify("insert user", err)
	}

	return &user, nil
}

// GetByEmail - (nil, nil) если не найден
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `
	SELECT id, email, name, password, created_at
	FROM users
	WHERE email = $1
	`
	return r.getOne(ctx, query, strings.ToLower(email))
}

// GetByID - (nil, nil) если не найден
func (r *UserRepository) GetByID(ctx context.Context, id int) (*entity.User, error) {
	if err := validateIDs(id); err != nil {
		return nil, err
	}

	query := `
	SELECT id, email, name, password, created_at
	FROM users
	WHERE id = $1
	`
	return r.getOne(ctx, query, id)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var user entity.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get user", err)
	}

	return &user, nil
}
