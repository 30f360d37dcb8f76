package dto

// PostulacionForm es el formulario multipaso de postulación. Cada paso
// valida un subconjunto de campos; "siguiente" avanza solo cuando el
// paso vigente valida.
type PostulacionForm struct {
	// Paso 1: datos del emprendedor
	NombreEmprendedor string `json:"nombre_emprendedor" validate:"required"`
	EmailEmprendedor  string `json:"email_emprendedor" validate:"required,email"`

	// Paso 2: propuesta
	NombreProyecto string `json:"nombre_proyecto" validate:"required"`
	Descripcion    string `json:"descripcion" validate:"required,min=30"`

	// Paso 3: confirmación
	AceptaTratamiento bool `json:"acepta_tratamiento" validate:"eq=true"`
}

// PasosPostulacion es el número de pasos del formulario.
const PasosPostulacion = 3

// ValidacionPasoDTO informa a la UI si puede avanzar desde un paso.
type ValidacionPasoDTO struct {
	Paso   int      `json:"paso"`
	Valido bool     `json:"valido"`
	Campos []string `json:"campos_invalidos,omitempty"`
}
