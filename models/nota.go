package models

// Nota es una anotación interna del equipo sobre un caso.
type Nota struct {
	Id        int64  `json:"id"`
	Contenido string `json:"contenido"`
	Fecha     string `json:"fecha"`
	UsuarioId int    `json:"usuario_id"`
	CasoId    int64  `json:"caso_id"`
}
