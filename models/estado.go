package models

// Estado pertenece al vocabulario controlado de estados por tipo de caso.
type Estado struct {
	Id             int    `json:"id"`
	Nombre         string `json:"nombre"`
	TipoCasoId     int    `json:"tipo_caso_id"`
	NombreTipoCaso string `json:"nombre_tipo_caso,omitempty"`
}

// Programa es una convocatoria activa a la que se asocian apoyos.
type Programa struct {
	Id     int    `json:"id"`
	Nombre string `json:"nombre"`
	Activo bool   `json:"activo"`
}
