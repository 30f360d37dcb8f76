package dto

import "github.com/ithaka/backoffice_mid/models"

// LoginRequest son las credenciales que entrega el formulario de ingreso.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SesionDTO es la vista de la sesión que consume la UI: estado del ciclo,
// usuario y los milisegundos restantes que gobiernan el diálogo.
type SesionDTO struct {
	SesionId   string          `json:"sesion_id"`
	Estado     string          `json:"estado"`
	Usuario    *models.Usuario `json:"usuario,omitempty"`
	Token      string          `json:"token,omitempty"`
	ExpiraEn   string          `json:"expira_en,omitempty"`
	RestanteMs int64           `json:"restante_ms"`
	Permisos   []string        `json:"permisos,omitempty"`
}
