package repository

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/St1cky1/task-manager/internal/entity"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == pgerrcode.UniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == pgerrcode.ForeignKeyViolation
}

// isTransient - таймауты, обрывы соединения и отмена запроса по statement_timeout
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return true
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	switch pgErrorCode(err) {
	case pgerrcode.QueryCanceled, pgerrcode.AdminShutdown, pgerrcode.CannotConnectNow,
		pgerrcode.ConnectionFailure, pgerrcode.ConnectionException, pgerrcode.TooManyConnections:
		return true
	}
	return false
}

// classify оборачивает ошибку хранилища; временные сбои дополнительно помечаются ErrStorageUnavailable
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if isTransient(err) {
		return fmt.Errorf("%s: %w: %w", op, entity.ErrStorageUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
