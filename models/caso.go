package models

// Caso es la entidad central del backoffice: respalda tanto postulaciones
// como proyectos, diferenciados por TipoCaso y por el estado vigente.
type Caso struct {
	Id            int64  `json:"id"`
	Nombre        string `json:"nombre"`
	Descripcion   string `json:"descripcion"`
	TipoCaso      string `json:"tipo_caso"`
	EstadoId      int    `json:"estado_id"`
	NombreEstado  string `json:"nombre_estado"`
	FechaCreacion string `json:"fecha_creacion"`
	Emprendedor   string `json:"emprendedor"`
	EmprendedorId int    `json:"emprendedor_id,omitempty"`
	Tutor         string `json:"tutor,omitempty"`
	TutorId       int    `json:"tutor_id,omitempty"`
	AsignacionId  int64  `json:"asignacion_id,omitempty"`
}

// CambioEstadoCaso representa una entrada del historial de estados de un caso.
type CambioEstadoCaso struct {
	Id           int64  `json:"id"`
	CasoId       int64  `json:"caso_id"`
	EstadoId     int    `json:"estado_id"`
	NombreEstado string `json:"nombre_estado"`
	Fecha        string `json:"fecha"`
	UsuarioId    int    `json:"usuario_id,omitempty"`
}
