package controllers

import (
	"net/http"

	"github.com/ithaka/backoffice_mid/helpers"
	internaldto "github.com/ithaka/backoffice_mid/internal/dto"
	internalhelpers "github.com/ithaka/backoffice_mid/internal/helpers"
	internalservices "github.com/ithaka/backoffice_mid/internal/services"
)

// EstadosController gestiona el vocabulario controlado de estados.
type EstadosController struct {
	apiController
}

// GetListado entrega el vocabulario completo (cacheado).
// @Summary Listar estados
// @Tags Estados
// @Produce json
// @Success 200 {object} internaldto.APIResponseDTO
func (c *EstadosController) GetListado() {
	token, ok := c.requireToken()
	if !ok {
		return
	}

	result, err := internalservices.ListarEstados(c.Ctx.Request.Context(), token)
	if err != nil {
		c.respondError(err, "error consultando estados")
		return
	}
	c.writeJSON(http.StatusOK, internalhelpers.Ok(result))
}

// PostCrear agrega una entrada al vocabulario. Solo admin.
// @Summary Crear estado
// @Tags Estados
// @Accept json
// @Produce json
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 403 {object} internaldto.APIResponseDTO
func (c *EstadosController) PostCrear() {
	token, ok := c.requireToken()
	if !ok {
		return
	}
	if !c.requirePermiso(internalhelpers.PermisoGestionarEstados) {
		return
	}

	var body internaldto.EstadoRequest
	if err := c.ParseJSONBody(&body); err != nil {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "cuerpo inválido", err), "cuerpo inválido")
		return
	}

	result, err := internalservices.CrearEstado(c.Ctx.Request.Context(), token, body)
	if err != nil {
		c.respondError(err, "error creando estado")
		return
	}

	resp := internalhelpers.Ok(result)
	resp.Message = "Estado creado"
	c.writeJSON(resp.Status, resp)
}

// PutActualizar edita una entrada del vocabulario. Solo admin.
// @Summary Actualizar estado
// @Tags Estados
// @Accept json
// @Produce json
// @Param id path int true "Id del estado" Example(5)
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 403 {object} internaldto.APIResponseDTO
func (c *EstadosController) PutActualizar() {
	estadoID, err := internalhelpers.ParamInt(c.Ctx, ":id")
	if err != nil {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "id inválido", err), "id inválido")
		return
	}
	token, ok := c.requireToken()
	if !ok {
		return
	}
	if !c.requirePermiso(internalhelpers.PermisoGestionarEstados) {
		return
	}

	var body internaldto.EstadoRequest
	if err := c.ParseJSONBody(&body); err != nil {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "cuerpo inválido", err), "cuerpo inválido")
		return
	}

	result, err := internalservices.ActualizarEstado(c.Ctx.Request.Context(), token, estadoID, body)
	if err != nil {
		c.respondError(err, "error actualizando estado")
		return
	}

	resp := internalhelpers.Ok(result)
	resp.Message = "Estado actualizado"
	c.writeJSON(resp.Status, resp)
}

// DeleteOne elimina una entrada del vocabulario. Solo admin.
// @Summary Eliminar estado
// @Tags Estados
// @Produce json
// @Param id path int true "Id del estado" Example(5)
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 403 {object} internaldto.APIResponseDTO
func (c *EstadosController) DeleteOne() {
	estadoID, err := internalhelpers.ParamInt(c.Ctx, ":id")
	if err != nil {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "id inválido", err), "id inválido")
		return
	}
	token, ok := c.requireToken()
	if !ok {
		return
	}
	if !c.requirePermiso(internalhelpers.PermisoGestionarEstados) {
		return
	}

	result, err := internalservices.EliminarEstado(c.Ctx.Request.Context(), token, estadoID)
	if err != nil {
		c.respondError(err, "error eliminando estado")
		return
	}

	resp := internalhelpers.Ok(result)
	resp.Message = "Estado eliminado"
	c.writeJSON(resp.Status, resp)
}
