package entity

import "errors"

var (
	// валидация
	ErrValidation           = errors.New("validation failed")
	ErrInvalidIdentifier    = errors.New("invalid identifier format")
	ErrInvalidSortDirection = errors.New("invalid order direction")
	ErrInvalidNumber        = errors.New("invalid number format")
	ErrInvalidDueDate       = errors.New("invalid due date format")
	ErrNoFieldsToUpdate     = errors.New("no fields to update")

	// не найдено
	ErrTaskNotFound     = errors.New("task not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrUserNotFound     = errors.New("user not found")

	// конфликты и ссылочная целостность
	ErrCategoryExists  = errors.New("category with this name already exists")
	ErrEmailTaken      = errors.New("email already registered")
	ErrUnknownCategory = errors.New("category does not exist")

	// хранилище недоступно (таймаут, обрыв соединения)
	ErrStorageUnavailable = errors.New("storage unavailable")

	// аутентификация
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
)
