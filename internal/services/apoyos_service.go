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

// ListarApoyos retorna los apoyos, filtrados por caso si se indica.
func ListarApoyos(ctx context.Context, token string, casoID int64) (dto.ListadoDTO[models.Apoyo], error) {
	apoyos, err := clients.IthakaCRUD().ListApoyos(ctx, token, casoID)
	if err != nil {
		return dto.ListadoDTO[models.Apoyo]{}, err
	}
	if apoyos == nil {
		apoyos = []models.Apoyo{}
	}
	return dto.ListadoDTO[models.Apoyo]{Items: apoyos, Total: len(apoyos)}, nil
}

// CrearApoyo registra el apoyo y retorna el listado completo refrescado
// del caso, siguiendo el patrón mutación + relectura.
func CrearApoyo(ctx context.Context, token string, req dto.ApoyoRequest) (dto.ListadoDTO[models.Apoyo], error) {
	if err := Validator().Struct(req); err != nil {
		return dto.ListadoDTO[models.Apoyo]{}, helpers.NewAppError(http.StatusBadRequest, "datos del apoyo incompletos", err)
	}
	if _, err := clients.IthakaCRUD().CreateApoyo(ctx, token, apoyoPayload(req)); err != nil {
		return dto.ListadoDTO[models.Apoyo]{}, err
	}
	return ListarApoyos(ctx, token, req.CasoId)
}

// ActualizarApoyo edita el apoyo y retorna el listado refrescado.
func ActualizarApoyo(ctx context.Context, token string, id int64, req dto.ApoyoRequest) (dto.ListadoDTO[models.Apoyo], error) {
	if err := Validator().Struct(req); err != nil {
		return dto.ListadoDTO[models.Apoyo]{}, helpers.NewAppError(http.StatusBadRequest, "datos del apoyo incompletos", err)
	}
	if _, err := clients.IthakaCRUD().UpdateApoyo(ctx, token, id, apoyoPayload(req)); err != nil {
		return dto.ListadoDTO[models.Apoyo]{}, err
	}
	return ListarApoyos(ctx, token, req.CasoId)
}

// EliminarApoyo borra el apoyo; el caller decide qué relistar.
func EliminarApoyo(ctx context.Context, token string, id int64) error {
	return clients.IthakaCRUD().DeleteApoyo(ctx, token, id)
}

func apoyoPayload(req dto.ApoyoRequest) map[string]interface{} {
	payload := map[string]interface{}{
		"Tipo":        strings.TrimSpace(req.Tipo),
		"FechaInicio": strings.TrimSpace(req.FechaInicio),
		"CasoId":      req.CasoId,
		"ProgramaId":  req.ProgramaId,
	}
	if trimmed := strings.TrimSpace(req.FechaFin); trimmed != "" {
		payload["FechaFin"] = trimmed
	}
	return payload
}
