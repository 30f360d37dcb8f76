package helpers

import (
	"strconv"
	"strings"
)

const (
	defaultLimit = 0
	maxLimit     = 500
)

// ParseSkipLimit convierte los parámetros skip/limit aplicando defaults y tope.
// limit=0 significa sin tope, igual que en el CRUD.
func ParseSkipLimit(skipStr, limitStr string) (int, int) {
	skip := 0
	limit := defaultLimit

	if v, err := strconv.Atoi(strings.TrimSpace(skipStr)); err == nil && v > 0 {
		skip = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(limitStr)); err == nil && v > 0 {
		limit = v
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return skip, limit
}
