package models

// Apoyo es un beneficio otorgado a un caso dentro de un programa activo.
type Apoyo struct {
	Id          int64  `json:"id"`
	Tipo        string `json:"tipo"`
	FechaInicio string `json:"fecha_inicio"`
	FechaFin    string `json:"fecha_fin"`
	CasoId      int64  `json:"caso_id"`
	ProgramaId  int    `json:"programa_id"`
}
