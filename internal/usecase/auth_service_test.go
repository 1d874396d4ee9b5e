package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/St1cky1/task-manager/internal/entity"
	"github.com/St1cky1/task-manager/internal/infrastructure/auth"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T, userRepo *MockUserRepository) (*AuthService, *auth.PasswordManager) {
	t.Helper()

	passwords := auth.NewPasswordManager(bcrypt.MinCost)
	tokens, err := auth.NewJWTManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return NewAuthService(userRepo, passwords, tokens), passwords
}

func TestRegisterSuccess(t *testing.T) {
	ctx := context.Background()

	var storedHash string
	mockUserRepo := &MockUserRepository{
		CreateFunc: func(ctx context.Context, email, name, passwordHash string) (*entity.User, error) {
			storedHash = passwordHash
			return &entity.User{ID: 7, Email: email, Name: name, PasswordHash: passwordHash}, nil
		},
	}

	service, passwords := newTestAuthService(t, mockUserRepo)

	resp, err := service.Register(ctx, &entity.RegisterRequest{
		Email:    "ann@example.com",
		Password: "hunter22",
		Name:     "Ann",
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if resp.Token == "" {
		t.Error("Expected token")
	}
	if !passwords.VerifyPassword(storedHash, "hunter22") {
		t.Error("Expected bcrypt hash of the password to be stored")
	}

	claims, err := service.Authenticate(resp.Token)
	if err != nil {
		t.Fatalf("Expected valid token, got %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("Expected user id 7 in token, got %d", claims.UserID)
	}
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestAuthService(t, &MockUserRepository{})

	cases := []*entity.RegisterRequest{
		{Email: "not-an-email", Password: "hunter22", Name: "Ann"},
		{Email: "ann@example.com", Password: "12345", Name: "Ann"},
		{Email: "ann@example.com", Password: "hunter22", Name: " "},
	}
	for _, req := range cases {
		if _, err := service.Register(ctx, req); !errors.Is(err, entity.ErrValidation) {
			t.Errorf("Expected ErrValidation for %+v, got %v", req, err)
		}
	}
}

func TestRegisterEmailTaken(t *testing.T) {
	ctx := context.Background()

	mockUserRepo := &MockUserRepository{
		CreateFunc: func(ctx context.Context, email, name, passwordHash string) (*entity.User, error) {
			return nil, entity.ErrEmailTaken
		},
	}

	service, _ := newTestAuthService(t, mockUserRepo)

	_, err := service.Register(ctx, &entity.RegisterRequest{Email: "ann@example.com", Password: "hunter22", Name: "Ann"})
	if !errors.Is(err, entity.ErrEmailTaken) {
		t.Errorf("Expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	passwords := auth.NewPasswordManager(bcrypt.MinCost)
	hash, err := passwords.HashPassword("hunter22")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	mockUserRepo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*entity.User, error) {
			if email == "ann@example.com" {
				return &entity.User{ID: 7, Email: email, PasswordHash: hash}, nil
			}
			return nil, nil
		},
	}

	service, _ := newTestAuthService(t, mockUserRepo)

	resp, err := service.Login(ctx, &entity.LoginRequest{Email: "ann@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.User.ID != 7 || resp.Token == "" {
		t.Errorf("Expected token for user 7, got %+v", resp)
	}

	_, err = service.Login(ctx, &entity.LoginRequest{Email: "ann@example.com", Password: "wrong"})
	if !errors.Is(err, entity.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for wrong password, got %v", err)
	}

	_, err = service.Login(ctx, &entity.LoginRequest{Email: "bob@example.com", Password: "hunter22"})
	if !errors.Is(err, entity.ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestProfileUserNotFound(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestAuthService(t, &MockUserRepository{})

	_, err := service.Profile(ctx, 999)
	if !errors.Is(err, entity.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound, got %v", err)
	}
}
