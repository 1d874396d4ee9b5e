package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/St1cky1/task-manager/internal/entity"
	"github.com/St1cky1/task-manager/internal/infrastructure/auth"
	"github.com/St1cky1/task-manager/internal/repository"
)

type AuthService struct {
	userRepo        repository.IUserRepository
	passwordManager *auth.PasswordManager
	jwtManager      *auth.JWTManager
}

func NewAuthService(
	userRepo repository.IUserRepository,
	passwordManager *auth.PasswordManager,
	jwtManager *auth.JWTManager,
) *AuthService {
	return &AuthService{
		userRepo:        userRepo,
		passwordManager: passwordManager,
		jwtManager:      jwtManager,
	}
}

// Register регистрирует нового пользователя и сразу выдаёт токен
func (s *AuthService) Register(ctx context.Context, req *entity.RegisterRequest) (*entity.AuthResponse, error) {
	if err := entity.Validate(req); err != nil {
		return nil, err
	}

	// Хешируем пароль
	passwordHash, err := s.passwordManager.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	// Уникальность email проверяет БД (ErrEmailTaken)
	user, err := s.userRepo.Create(ctx, req.Email, strings.TrimSpace(req.Name), passwordHash)
	if err != nil {
		return nil, err
	}

	return s.issue(user)
}

// Login логинит пользователя
func (s *AuthService) Login(ctx context.Context, req *entity.LoginRequest) (*entity.AuthResponse, error) {
	if err := entity.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	// одинаковый ответ для неизвестного email и неверного пароля
	var hash string
	if user != nil {
		hash = user.PasswordHash
	}
	if !s.passwordManager.VerifyPassword(hash, req.Password) || user == nil {
		return nil, entity.ErrInvalidCredentials
	}

	return s.issue(user)
}

// Profile возвращает текущего пользователя
func (s *AuthService) Profile(ctx context.Context, userID int) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, entity.ErrUserNotFound
	}
	return user, nil
}

// Authenticate проверяет токен для middleware
func (s *AuthService) Authenticate(token string) (*entity.JWTClaims, error) {
	return s.jwtManager.ValidateToken(token)
}

func (s *AuthService) issue(user *entity.User) (*entity.AuthResponse, error) {
	token, err := s.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &entity.AuthResponse{
		Token: token,
		User:  user,
	}, nil
}
