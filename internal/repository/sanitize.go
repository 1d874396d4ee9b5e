package repository

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/St1cky1/task-manager/internal/entity"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// ValidateIdentifier - пропускает только имена вида [A-Za-z0-9_]+.
// Вызывается для всего, что попадает в SQL как имя колонки/таблицы, а не как параметр.
func ValidateIdentifier(s string) (string, error) {
	if !identifierPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", entity.ErrInvalidIdentifier, s)
	}
	return s, nil
}

// ValidateSortDirection - asc/desc в любом регистре, возвращает ASC или DESC
func ValidateSortDirection(s string) (string, error) {
	dir := strings.ToUpper(strings.TrimSpace(s))
	if dir != "ASC" && dir != "DESC" {
		return "", fmt.Errorf("%w: %q", entity.ErrInvalidSortDirection, s)
	}
	return dir, nil
}

// ValidateNonNegativeInteger - для id, LIMIT и OFFSET
func ValidateNonNegativeInteger(n int) (int, error) {
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", entity.ErrInvalidNumber, n)
	}
	return n, nil
}

func validateIDs(ids ...int) error {
	for _, id := range ids {
		if _, err := ValidateNonNegativeInteger(id); err != nil {
			return err
		}
	}
	return nil
}
