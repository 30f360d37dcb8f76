package dto

import "github.com/ithaka/backoffice_mid/models"

// CasoFiltros son los filtros conjuntivos del listado: un caso aparece
// solo si cumple todos los filtros activos.
type CasoFiltros struct {
	Busqueda     string `json:"busqueda"`
	NombreEstado string `json:"nombre_estado"`
	TipoCaso     string `json:"tipo_caso"`
	TutorId      int    `json:"tutor_id"`
	Skip         int    `json:"skip"`
	Limit        int    `json:"limit"`
}

// CasoUpdate son los campos editables de un caso desde el backoffice.
type CasoUpdate struct {
	Nombre      string `json:"nombre" validate:"required"`
	Descripcion string `json:"descripcion"`
	TutorId     int    `json:"tutor_id"`
}

// CambioEstadoRequest solicita mover un caso a otro estado del vocabulario.
type CambioEstadoRequest struct {
	EstadoId int    `json:"estado_id" validate:"required,gt=0"`
	Motivo   string `json:"motivo,omitempty"`
}

// CasoDetalleDTO agrega la entidad con sus notas y su historial de estados.
type CasoDetalleDTO struct {
	Caso      models.Caso               `json:"caso"`
	Notas     []models.Nota             `json:"notas"`
	Historial []models.CambioEstadoCaso `json:"historial"`
}
