package entity

import "time"

type Category struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// валидация
type CategoryRequest struct {
	Name string `json:"name" validate:"required,notblank,max=50"`
}
