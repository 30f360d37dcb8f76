package dto

// ApoyoRequest crea o actualiza un apoyo asociado a un caso y un programa.
type ApoyoRequest struct {
	Tipo        string `json:"tipo" validate:"required"`
	FechaInicio string `json:"fecha_inicio" validate:"required"`
	FechaFin    string `json:"fecha_fin"`
	CasoId      int64  `json:"caso_id" validate:"required,gt=0"`
	ProgramaId  int    `json:"programa_id" validate:"required,gt=0"`
}

// NotaRequest crea o actualiza una nota interna de un caso.
type NotaRequest struct {
	Contenido string `json:"contenido" validate:"required"`
	CasoId    int64  `json:"caso_id" validate:"required,gt=0"`
}

// EstadoRequest crea o actualiza una entrada del vocabulario de estados.
type EstadoRequest struct {
	Nombre     string `json:"nombre" validate:"required"`
	TipoCasoId int    `json:"tipo_caso_id" validate:"required,gt=0"`
}
