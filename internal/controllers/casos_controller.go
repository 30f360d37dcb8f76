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

// CasosController expone el listado, detalle y mutaciones de casos
// (postulaciones y proyectos).
type CasosController struct {
	apiController
}

// GetListado lista los casos aplicando los filtros conjuntivos de la vista.
// @Summary Listar casos
// @Description Filtros: busqueda (subcadena), nombre_estado y tipo_caso (exactos), tutor_id.
// @Tags Casos
// @Produce json
// @Param busqueda query string false "Texto a buscar en nombre/emprendedor"
// @Param nombre_estado query string false "Estado exacto" Example(recibida)
// @Param tipo_caso query string false "postulacion | proyecto"
// @Param tutor_id query int false "Tutor responsable"
// @Param skip query int false "Registros a saltear"
// @Param limit query int false "Tope de registros (0 = sin tope)"
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 401 {object} internaldto.APIResponseDTO
// @Failure 500 {object} internaldto.APIResponseDTO
func (c *CasosController) GetListado() {
	token, ok := c.requireToken()
	if !ok {
		return
	}

	filtros := internaldto.CasoFiltros{
		Busqueda:     strings.TrimSpace(c.GetString("busqueda")),
		NombreEstado: strings.TrimSpace(c.GetString("nombre_estado")),
		TipoCaso:     strings.TrimSpace(c.GetString("tipo_caso")),
	}
	if raw := strings.TrimSpace(c.GetString("tutor_id")); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil && id > 0 {
			filtros.TutorId = id
		}
	}
	filtros.Skip, filtros.Limit = internalhelpers.ParseSkipLimit(c.GetString("skip"), c.GetString("limit"))

	result, err := internalservices.ListarCasos(c.Ctx.Request.Context(), token, filtros)
	if err != nil {
		c.respondError(err, "error consultando casos")
		return
	}
	c.writeJSON(http.StatusOK, internalhelpers.Ok(result))
}

// GetById entrega el detalle agregado del caso (entidad, notas, historial).
// @Summary Detalle de caso
// @Tags Casos
// @Produce json
// @Param id path int true "Id del caso" Example(42)
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 404 {object} internaldto.APIResponseDTO
func (c *CasosController) GetById() {
	casoID, ok := c.parseCasoID()
	if !ok {
		return
	}
	token, ok := c.requireToken()
	if !ok {
		return
	}

	detalle, err := internalservices.GetCasoDetalle(c.Ctx.Request.Context(), token, casoID)
	if err != nil {
		c.respondError(err, "error consultando caso")
		return
	}
	c.writeJSON(http.StatusOK, internalhelpers.Ok(detalle))
}

// PutActualizar edita los campos del caso.
// @Summary Actualizar caso
// @Tags Casos
// @Accept json
// @Produce json
// @Param id path int true "Id del caso" Example(42)
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
// @Failure 403 {object} internaldto.APIResponseDTO
func (c *CasosController) PutActualizar() {
	casoID, ok := c.parseCasoID()
	if !ok {
		return
	}
	token, ok := c.requireToken()
	if !ok {
		return
	}
	if !c.requirePermiso(internalhelpers.PermisoGestionarCasos) {
		return
	}

	var body internaldto.CasoUpdate
	if err := c.ParseJSONBody(&body); err != nil {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "cuerpo inválido", err), "cuerpo inválido")
		return
	}

	caso, err := internalservices.ActualizarCaso(c.Ctx.Request.Context(), token, casoID, body)
	if err != nil {
		c.respondError(err, "error actualizando caso")
		return
	}

	resp := internalhelpers.Ok(caso)
	resp.Message = "Caso actualizado"
	c.writeJSON(resp.Status, resp)
}

// PutCambiarEstado mueve el caso a otro estado del vocabulario.
// @Summary Cambiar estado de caso
// @Tags Casos
// @Accept json
// @Produce json
// @Param id path int true "Id del caso" Example(42)
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
// @Failure 403 {object} internaldto.APIResponseDTO
func (c *CasosController) PutCambiarEstado() {
	casoID, ok := c.parseCasoID()
	if !ok {
		return
	}
	token, ok := c.requireToken()
	if !ok {
		return
	}
	if !c.requirePermiso(internalhelpers.PermisoGestionarCasos) {
		return
	}

	var body internaldto.CambioEstadoRequest
	if err := c.ParseJSONBody(&body); err != nil {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "cuerpo inválido", err), "cuerpo inválido")
		return
	}

	caso, err := internalservices.CambiarEstado(c.Ctx.Request.Context(), token, casoID, body)
	if err != nil {
		c.respondError(err, "error cambiando estado")
		return
	}

	resp := internalhelpers.Ok(caso)
	resp.Message = "Estado actualizado"
	c.writeJSON(resp.Status, resp)
}

func (c *CasosController) parseCasoID() (int64, bool) {
	val, err := internalhelpers.ParamInt64(c.Ctx, ":id")
	if err != nil || val <= 0 {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "id inválido", err), "id inválido")
		return 0, false
	}
	return val, true
}
