package models

import "time"

// Estados del ciclo de vida de una sesión del backoffice.
const (
	SesionVerificando   = "verificando"
	SesionActiva        = "activa"
	SesionPorExpirar    = "por_expirar"
	SesionNoAutenticada = "no_autenticada"
)

// Sesion refleja el estado de autenticación que consume la UI: token
// vigente, usuario autenticado y la marca de expiración que gobierna el
// diálogo de extensión de sesión.
type Sesion struct {
	Id             string    `json:"sesion_id"`
	Estado         string    `json:"estado"`
	Token          string    `json:"-"`
	Usuario        *Usuario  `json:"usuario,omitempty"`
	ExpiraEn       time.Time `json:"expira_en"`
	AvisoRechazado bool      `json:"-"`
	Mensaje        string    `json:"mensaje,omitempty"`
}

// RestanteMs retorna los milisegundos que faltan para la expiración.
func (s *Sesion) RestanteMs(ahora time.Time) int64 {
	return s.ExpiraEn.Sub(ahora).Milliseconds()
}
