package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/St1cky1/task-manager/internal/entity"
	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 24 * time.Hour

type JWTManager struct {
	secretKey []byte
	ttl       time.Duration
	now       func() time.Time
}

func NewJWTManager(secretKey string, ttl time.Duration) (*JWTManager, error) {
	if secretKey == "" {
		return nil, errors.New("jwt secret key is empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTManager{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		now:       time.Now,
	}, nil
}

// GenerateToken выпускает HS256 токен с user_id и email
func (m *JWTManager) GenerateToken(userID int, email string) (string, error) {
	now := m.now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   email,
		"exp":     now.Add(m.ttl).Unix(),
		"iat":     now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken проверяет подпись и срок; любая проблема - ErrUnauthorized
func (m *JWTManager) ValidateToken(tokenString string) (*entity.JWTClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secretKey, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entity.ErrUnauthorized, err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", entity.ErrUnauthorized)
	}

	userID, ok := claims["user_id"].(float64)
	if !ok || userID <= 0 {
		return nil, fmt.Errorf("%w: invalid user_id in token", entity.ErrUnauthorized)
	}

	email, _ := claims["email"].(string)

	return &entity.JWTClaims{
		UserID: int(userID),
		Email:  email,
	}, nil
}
