package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/ithaka/backoffice_mid/helpers"
	"github.com/ithaka/backoffice_mid/internal/clients"
	"github.com/ithaka/backoffice_mid/internal/dto"
	internalhelpers "github.com/ithaka/backoffice_mid/internal/helpers"
	"github.com/ithaka/backoffice_mid/models"
)

// ListarNotas retorna las notas internas de un caso.
func ListarNotas(ctx context.Context, token string, casoID int64) (dto.ListadoDTO[models.Nota], error) {
	notas, err := clients.IthakaCRUD().ListNotas(ctx, token, casoID)
	if err != nil {
		return dto.ListadoDTO[models.Nota]{}, err
	}
	if notas == nil {
		notas = []models.Nota{}
	}
	return dto.ListadoDTO[models.Nota]{Items: notas, Total: len(notas)}, nil
}

// CrearNota registra la nota firmada por el usuario del token y retorna
// el listado refrescado del caso.
func CrearNota(ctx context.Context, token string, usuarioID int, req dto.NotaRequest) (dto.ListadoDTO[models.Nota], error) {
	if err := Validator().Struct(req); err != nil {
		return dto.ListadoDTO[models.Nota]{}, helpers.NewAppError(http.StatusBadRequest, "contenido de la nota requerido", err)
	}
	payload := map[string]interface{}{
		"Contenido": strings.TrimSpace(req.Contenido),
		"CasoId":    req.CasoId,
		"UsuarioId": usuarioID,
		"Fecha":     nowISO(),
	}
	if _, err := clients.IthakaCRUD().CreateNota(ctx, token, payload); err != nil {
		return dto.ListadoDTO[models.Nota]{}, err
	}
	return ListarNotas(ctx, token, req.CasoId)
}

// ActualizarNota edita la nota solo si pertenece al usuario del token o
// el rol otorga gestión plena.
func ActualizarNota(ctx context.Context, token string, usuarioID int, rol string, id int64, req dto.NotaRequest) (dto.ListadoDTO[models.Nota], error) {
	if err := Validator().Struct(req); err != nil {
		return dto.ListadoDTO[models.Nota]{}, helpers.NewAppError(http.StatusBadRequest, "contenido de la nota requerido", err)
	}
	if err := verificarAutoriaNota(ctx, token, usuarioID, rol, id, req.CasoId); err != nil {
		return dto.ListadoDTO[models.Nota]{}, err
	}

	payload := map[string]interface{}{
		"Contenido": strings.TrimSpace(req.Contenido),
		"CasoId":    req.CasoId,
	}
	if _, err := clients.IthakaCRUD().UpdateNota(ctx, token, id, payload); err != nil {
		return dto.ListadoDTO[models.Nota]{}, err
	}
	return ListarNotas(ctx, token, req.CasoId)
}

// EliminarNota borra la nota con la misma regla de autoría.
func EliminarNota(ctx context.Context, token string, usuarioID int, rol string, id, casoID int64) error {
	if err := verificarAutoriaNota(ctx, token, usuarioID, rol, id, casoID); err != nil {
		return err
	}
	return clients.IthakaCRUD().DeleteNota(ctx, token, id)
}

func verificarAutoriaNota(ctx context.Context, token string, usuarioID int, rol string, id, casoID int64) error {
	if internalhelpers.TienePermiso(rol, internalhelpers.PermisoGestionarNotasAjenas) {
		return nil
	}
	notas, err := clients.IthakaCRUD().ListNotas(ctx, token, casoID)
	if err != nil {
		return err
	}
	for _, nota := range notas {
		if nota.Id == id {
			if nota.UsuarioId == usuarioID {
				return nil
			}
			return helpers.NewAppError(http.StatusForbidden, "la nota pertenece a otro usuario", nil)
		}
	}
	return helpers.NewAppError(http.StatusNotFound, "nota no encontrada", nil)
}
