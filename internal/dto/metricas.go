package dto

// SerieDTO es una serie lista para graficar: etiquetas y valores alineados.
type SerieDTO struct {
	Etiquetas []string `json:"etiquetas"`
	Valores   []int    `json:"valores"`
}

// DashboardDTO consolida los agregados que consume la vista principal.
type DashboardDTO struct {
	TotalCasos          int                    `json:"total_casos"`
	TotalPostulaciones  int                    `json:"total_postulaciones"`
	TotalProyectos      int                    `json:"total_proyectos"`
	ApoyosActivos       int                    `json:"apoyos_activos"`
	TutoresActivos      int                    `json:"tutores_activos"`
	PorEstado           SerieDTO               `json:"por_estado"`
	PorTipo             SerieDTO               `json:"por_tipo"`
	PostulacionesPorMes SerieDTO               `json:"postulaciones_por_mes"`
	Upstream            map[string]interface{} `json:"upstream,omitempty"`
}
