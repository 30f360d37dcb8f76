package services

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/ithaka/backoffice_mid/helpers"
	"github.com/ithaka/backoffice_mid/internal/clients"
	"github.com/ithaka/backoffice_mid/internal/dto"
	"github.com/ithaka/backoffice_mid/models"
)

// ListarCasos recupera la colección completa y aplica los filtros
// conjuntivos del backoffice sobre ella. El CRUD recibe los filtros
// exactos que soporta; la búsqueda por texto se resuelve aquí.
func ListarCasos(ctx context.Context, token string, filtros dto.CasoFiltros) (dto.ListadoDTO[models.Caso], error) {
	crudFilters := map[string]string{}
	if filtros.TipoCaso != "" {
		crudFilters["tipo_caso"] = filtros.TipoCaso
	}
	if filtros.NombreEstado != "" {
		crudFilters["nombre_estado"] = filtros.NombreEstado
	}
	if filtros.Skip > 0 {
		crudFilters["skip"] = strconv.Itoa(filtros.Skip)
	}
	if filtros.Limit > 0 {
		crudFilters["limit"] = strconv.Itoa(filtros.Limit)
	}

	casos, err := clients.IthakaCRUD().ListCasos(ctx, token, crudFilters)
	if err != nil {
		return dto.ListadoDTO[models.Caso]{}, err
	}

	filtrados := FiltrarCasos(casos, filtros)
	return dto.ListadoDTO[models.Caso]{Items: filtrados, Total: len(filtrados)}, nil
}

// FiltrarCasos aplica los filtros de la vista de listado: un caso aparece
// solo si cumple todos los filtros activos (búsqueda parcial sin
// distinción de mayúsculas sobre nombre/emprendedor, coincidencia exacta
// de estado y tipo, tutor asignado).
func FiltrarCasos(casos []models.Caso, filtros dto.CasoFiltros) []models.Caso {
	out := make([]models.Caso, 0, len(casos))
	for _, caso := range casos {
		if filtros.Busqueda != "" &&
			!contieneSinCaso(caso.Nombre, filtros.Busqueda) &&
			!contieneSinCaso(caso.Emprendedor, filtros.Busqueda) {
			continue
		}
		if filtros.NombreEstado != "" && !igualSinCaso(caso.NombreEstado, filtros.NombreEstado) {
			continue
		}
		if filtros.TipoCaso != "" && !igualSinCaso(caso.TipoCaso, filtros.TipoCaso) {
			continue
		}
		if filtros.TutorId > 0 && caso.TutorId != filtros.TutorId {
			continue
		}
		out = append(out, caso)
	}
	return out
}

// GetCasoDetalle agrega la entidad, sus notas y su historial. Las tres
// lecturas corren en paralelo bajo el mismo contexto: si el identificador
// deja de ser el vigente y el contexto se cancela, ninguna respuesta
// tardía se aplica.
func GetCasoDetalle(ctx context.Context, token string, id int64) (dto.CasoDetalleDTO, error) {
	var detalle dto.CasoDetalleDTO

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		caso, err := clients.IthakaCRUD().GetCasoByID(gctx, token, id)
		if err != nil {
			return err
		}
		detalle.Caso = *caso
		return nil
	})
	g.Go(func() error {
		notas, err := clients.IthakaCRUD().ListNotas(gctx, token, id)
		if err != nil {
			return err
		}
		detalle.Notas = notas
		return nil
	})
	g.Go(func() error {
		historial, err := clients.IthakaCRUD().ListHistorialCaso(gctx, token, id)
		if err != nil {
			return err
		}
		detalle.Historial = historial
		return nil
	})

	if err := g.Wait(); err != nil {
		return dto.CasoDetalleDTO{}, err
	}
	if detalle.Notas == nil {
		detalle.Notas = []models.Nota{}
	}
	if detalle.Historial == nil {
		detalle.Historial = []models.CambioEstadoCaso{}
	}
	return detalle, nil
}

// ActualizarCaso aplica la edición y retorna la entidad refrescada.
func ActualizarCaso(ctx context.Context, token string, id int64, body dto.CasoUpdate) (*models.Caso, error) {
	if err := Validator().Struct(body); err != nil {
		return nil, helpers.NewAppError(http.StatusBadRequest, "datos del caso incompletos", err)
	}

	payload := map[string]interface{}{
		"Nombre":      strings.TrimSpace(body.Nombre),
		"Descripcion": strings.TrimSpace(body.Descripcion),
	}
	if body.TutorId > 0 {
		payload["TutorId"] = body.TutorId
	}
	return clients.IthakaCRUD().UpdateCaso(ctx, token, id, payload)
}

// CambiarEstado mueve el caso y retorna la entidad refrescada; el cambio
// es una escritura simple seguida de relectura completa.
func CambiarEstado(ctx context.Context, token string, id int64, req dto.CambioEstadoRequest) (*models.Caso, error) {
	if err := Validator().Struct(req); err != nil {
		return nil, helpers.NewAppError(http.StatusBadRequest, "estado_id requerido", err)
	}
	if err := clients.IthakaCRUD().CambiarEstadoCaso(ctx, token, id, req.EstadoId, req.Motivo); err != nil {
		return nil, err
	}
	return clients.IthakaCRUD().GetCasoByID(ctx, token, id)
}
