package auth

import (
	"errors"
	"fmt"
	"sync"

	"github.com/St1cky1/task-manager/internal/entity"
	"golang.org/x/crypto/bcrypt"
)

type PasswordManager struct {
	cost int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewPasswordManager - cost вне допустимого диапазона bcrypt заменяется на DefaultCost
func NewPasswordManager(cost int) *PasswordManager {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordManager{
		cost: cost,
	}
}

// HashPassword - bcrypt принимает не больше 72 байт, длиннее считается ошибкой валидации
func (m *PasswordManager) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: password is longer than 72 bytes", entity.ErrValidation)
	}
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword сравнивает пароль с хешем. Пустой хеш (пользователь не найден)
// сравнивается с фиктивным, чтобы время ответа не выдавало существование email.
func (m *PasswordManager) VerifyPassword(hash, password string) bool {
	if hash == "" {
		_ = bcrypt.CompareHashAndPassword(m.dummy(), []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (m *PasswordManager) dummy() []byte {
	m.dummyOnce.Do(func() {
		m.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("task-manager-dummy"), m.cost)
	})
	return m.dummyHash
}
