package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/ithaka/backoffice_mid/helpers"
	"github.com/ithaka/backoffice_mid/internal/clients"
	"github.com/ithaka/backoffice_mid/internal/dto"
	"github.com/ithaka/backoffice_mid/models"
)

// Estados iniciales de una postulación según la acción de envío.
const (
	EstadoBorrador = "borrador"
	EstadoRecibida = "recibida"
)

// camposPorPaso define qué campos del formulario valida cada paso.
var camposPorPaso = map[int][]string{
	1: {"NombreEmprendedor", "EmailEmprendedor"},
	2: {"NombreProyecto", "Descripcion"},
	3: {"AceptaTratamiento"},
}

// ValidarPaso evalúa el predicado de un paso del formulario multipaso;
// la UI habilita "siguiente" exactamente cuando el paso valida.
func ValidarPaso(form dto.PostulacionForm, paso int) (dto.ValidacionPasoDTO, error) {
	campos, ok := camposPorPaso[paso]
	if !ok {
		return dto.ValidacionPasoDTO{}, helpers.NewAppError(http.StatusBadRequest, "paso inválido", nil)
	}

	err := Validator().StructPartial(form, campos...)
	if err == nil {
		return dto.ValidacionPasoDTO{Paso: paso, Valido: true}, nil
	}
	return dto.ValidacionPasoDTO{
		Paso:   paso,
		Valido: false,
		Campos: camposInvalidos(err),
	}, nil
}

// CrearPostulacion registra la postulación con una única escritura al
// CRUD. enviar=false guarda borrador (solo exige el paso 1 completo);
// enviar=true exige el formulario completo y la marca como recibida.
func CrearPostulacion(ctx context.Context, token string, form dto.PostulacionForm, enviar bool) (*models.Caso, error) {
	estado := EstadoBorrador
	if enviar {
		if err := Validator().Struct(form); err != nil {
			return nil, helpers.NewAppError(http.StatusBadRequest, "formulario incompleto", err)
		}
		estado = EstadoRecibida
	} else {
		if err := Validator().StructPartial(form, camposPorPaso[1]...); err != nil {
			return nil, helpers.NewAppError(http.StatusBadRequest, "datos del emprendedor incompletos", err)
		}
	}

	payload := map[string]interface{}{
		"Nombre":      strings.TrimSpace(form.NombreProyecto),
		"Descripcion": strings.TrimSpace(form.Descripcion),
		"TipoCaso":    "postulacion",
		"Emprendedor": strings.TrimSpace(form.NombreEmprendedor),
		"Email":       strings.TrimSpace(form.EmailEmprendedor),
		"estado":      estado,
		"Fecha":       nowISO(),
	}
	return clients.IthakaCRUD().CreateCaso(ctx, token, payload)
}
