package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ithaka/backoffice_mid/helpers"
	internaldto "github.com/ithaka/backoffice_mid/internal/dto"
	internalhelpers "github.com/ithaka/backoffice_mid/internal/helpers"
	internalservices "github.com/ithaka/backoffice_mid/internal/services"
)

// ApoyosController expone el CRUD de apoyos (beneficios por caso).
type ApoyosController struct {
	apiController
}

// GetListado lista apoyos, filtrados por caso si se indica id_caso.
// @Summary Listar apoyos
// @Tags Apoyos
// @Produce json
// @Param id_caso query int false "Filtrar por caso" Example(42)
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 401 {object} internaldto.APIResponseDTO
func (c *ApoyosController) GetListado() {
	token, ok := c.requireToken()
	if !ok {
		return
	}

	var casoID int64
	if raw := strings.TrimSpace(c.GetString("id_caso")); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			casoID = parsed
		}
	}

	result, err := internalservices.ListarApoyos(c.Ctx.Request.Context(), token, casoID)
	if err != nil {
		c.respondError(err, "error consultando apoyos")
		return
	}
	c.writeJSON(http.StatusOK, internalhelpers.Ok(result))
}

// PostCrear registra un apoyo y retorna el listado refrescado del caso.
// @Summary Crear apoyo
// @Tags Apoyos
// @Accept json
// @Produce json
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
// @Failure 403 {object} internaldto.APIResponseDTO
func (c *ApoyosController) PostCrear() {
	token, ok := c.requireToken()
	if !ok {
		return
	}
	if !c.requirePermiso(internalhelpers.PermisoGestionarApoyos) {
		return
	}

	var body internaldto.ApoyoRequest
	if err := c.ParseJSONBody(&body); err != nil {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "cuerpo inválido", err), "cuerpo inválido")
		return
	}

	result, err := internalservices.CrearApoyo(c.Ctx.Request.Context(), token, body)
	if err != nil {
		c.respondError(err, "error creando apoyo")
		return
	}

	resp := internalhelpers.Ok(result)
	resp.Message = "Apoyo registrado"
	c.writeJSON(resp.Status, resp)
}

// PutActualizar edita un apoyo y retorna el listado refrescado.
// @Summary Actualizar apoyo
// @Tags Apoyos
// @Accept json
// @Produce json
// @Param id path int true "Id del apoyo" Example(7)
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
// @Failure 403 {object} internaldto.APIResponseDTO
func (c *ApoyosController) PutActualizar() {
	apoyoID, ok := c.parseApoyoID()
	if !ok {
		return
	}
	token, ok := c.requireToken()
	if !ok {
		return
	}
	if !c.requirePermiso(internalhelpers.PermisoGestionarApoyos) {
		return
	}

	var body internaldto.ApoyoRequest
	if err := c.ParseJSONBody(&body); err != nil {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "cuerpo inválido", err), "cuerpo inválido")
		return
	}

	result, err := internalservices.ActualizarApoyo(c.Ctx.Request.Context(), token, apoyoID, body)
	if err != nil {
		c.respondError(err, "error actualizando apoyo")
		return
	}

	resp := internalhelpers.Ok(result)
	resp.Message = "Apoyo actualizado"
	c.writeJSON(resp.Status, resp)
}

// DeleteOne elimina un apoyo.
// @Summary Eliminar apoyo
// @Tags Apoyos
// @Produce json
// @Param id path int true "Id del apoyo" Example(7)
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 403 {object} internaldto.APIResponseDTO
// @Failure 404 {object} internaldto.APIResponseDTO
func (c *ApoyosController) DeleteOne() {
	apoyoID, ok := c.parseApoyoID()
	if !ok {
		return
	}
	token, ok := c.requireToken()
	if !ok {
		return
	}
	if !c.requirePermiso(internalhelpers.PermisoGestionarApoyos) {
		return
	}

	if err := internalservices.EliminarApoyo(c.Ctx.Request.Context(), token, apoyoID); err != nil {
		c.respondError(err, "error eliminando apoyo")
		return
	}

	resp := internalhelpers.Ok(map[string]interface{}{"apoyo_id": apoyoID})
	resp.Message = "Apoyo eliminado"
	c.writeJSON(resp.Status, resp)
}

func (c *ApoyosController) parseApoyoID() (int64, bool) {
	val, err := internalhelpers.ParamInt64(c.Ctx, ":id")
	if err != nil || val <= 0 {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "id inválido", err), "id inválido")
		return 0, false
	}
	return val, true
}
