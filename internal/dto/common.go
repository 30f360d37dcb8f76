package dto

import (
	"github.com/ithaka/backoffice_mid/models/requestresponse"
)

// APIResponseDTO reutiliza el DTO estándar expuesto por requestresponse.
// Alias para mantener compatibilidad con consumidores existentes.
type APIResponseDTO = requestresponse.APIResponseDTO

// ListadoDTO representa una colección con su total y el estado de carga
// de la caché que la respalda.
type ListadoDTO[T any] struct {
	Items  []T    `json:"items"`
	Total  int    `json:"total"`
	Estado string `json:"estado,omitempty"`
}
