package services

import (
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator retorna el validador compartido de DTOs.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// camposInvalidos traduce un error de validación a la lista de campos
// que la UI debe marcar.
func camposInvalidos(err error) []string {
	var campos []string
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range errs {
			campos = append(campos, strings.ToLower(fe.Field()))
		}
	}
	return campos
}

func igualSinCaso(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func contieneSinCaso(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(sub)))
}
