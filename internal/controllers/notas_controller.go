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

// NotasController expone las notas internas de los casos.
type NotasController struct {
	apiController
}

// GetListado lista las notas de un caso.
// @Summary Listar notas
// @Tags Notas
// @Produce json
// @Param id_caso query int true "Caso" Example(42)
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
func (c *NotasController) GetListado() {
	token, ok := c.requireToken()
	if !ok {
		return
	}
	casoID, ok := c.requireCaso()
	if !ok {
		return
	}

	result, err := internalservices.ListarNotas(c.Ctx.Request.Context(), token, casoID)
	if err != nil {
		c.respondError(err, "error consultando notas")
		return
	}
	c.writeJSON(http.StatusOK, internalhelpers.Ok(result))
}

// PostCrear registra una nota firmada por el usuario del token.
// @Summary Crear nota
// @Tags Notas
// @Accept json
// @Produce json
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
func (c *NotasController) PostCrear() {
	token, ok := c.requireToken()
	if !ok {
		return
	}
	usuarioID, ok := c.requireUsuario()
	if !ok {
		return
	}

	var body internaldto.NotaRequest
	if err := c.ParseJSONBody(&body); err != nil {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "cuerpo inválido", err), "cuerpo inválido")
		return
	}

	result, err := internalservices.CrearNota(c.Ctx.Request.Context(), token, usuarioID, body)
	if err != nil {
		c.respondError(err, "error creando nota")
		return
	}

	resp := internalhelpers.Ok(result)
	resp.Message = "Nota registrada"
	c.writeJSON(resp.Status, resp)
}

// PutActualizar edita una nota propia (o ajena si el rol lo permite).
// @Summary Actualizar nota
// @Tags Notas
// @Accept json
// @Produce json
// @Param id path int true "Id de la nota" Example(3)
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 403 {object} internaldto.APIResponseDTO
// @Failure 404 {object} internaldto.APIResponseDTO
func (c *NotasController) PutActualizar() {
	notaID, ok := c.parseNotaID()
	if !ok {
		return
	}
	token, ok := c.requireToken()
	if !ok {
		return
	}
	usuarioID, ok := c.requireUsuario()
	if !ok {
		return
	}

	var body internaldto.NotaRequest
	if err := c.ParseJSONBody(&body); err != nil {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "cuerpo inválido", err), "cuerpo inválido")
		return
	}

	rol, _ := internalhelpers.GetRol(c.Ctx)
	result, err := internalservices.ActualizarNota(c.Ctx.Request.Context(), token, usuarioID, rol, notaID, body)
	if err != nil {
		c.respondError(err, "error actualizando nota")
		return
	}

	resp := internalhelpers.Ok(result)
	resp.Message = "Nota actualizada"
	c.writeJSON(resp.Status, resp)
}

// DeleteOne elimina una nota con la misma regla de autoría.
// @Summary Eliminar nota
// @Tags Notas
// @Produce json
// @Param id path int true "Id de la nota" Example(3)
// @Param id_caso query int true "Caso" Example(42)
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 403 {object} internaldto.APIResponseDTO
func (c *NotasController) DeleteOne() {
	notaID, ok := c.parseNotaID()
	if !ok {
		return
	}
	token, ok := c.requireToken()
	if !ok {
		return
	}
	usuarioID, ok := c.requireUsuario()
	if !ok {
		return
	}
	casoID, ok := c.requireCaso()
	if !ok {
		return
	}

	rol, _ := internalhelpers.GetRol(c.Ctx)
	if err := internalservices.EliminarNota(c.Ctx.Request.Context(), token, usuarioID, rol, notaID, casoID); err != nil {
		c.respondError(err, "error eliminando nota")
		return
	}

	resp := internalhelpers.Ok(map[string]interface{}{"nota_id": notaID})
	resp.Message = "Nota eliminada"
	c.writeJSON(resp.Status, resp)
}

func (c *NotasController) requireCaso() (int64, bool) {
	raw := strings.TrimSpace(c.GetString("id_caso"))
	if raw == "" {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "id_caso requerido", nil), "id_caso requerido")
		return 0, false
	}
	val, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || val <= 0 {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "id_caso inválido", err), "id_caso inválido")
		return 0, false
	}
	return val, true
}

func (c *NotasController) requireUsuario() (int, bool) {
	usuarioID, err := internalhelpers.GetUsuarioID(c.Ctx)
	if err != nil {
		c.respondError(helpers.NewAppError(http.StatusUnauthorized, "token sin usuario", err), "token sin usuario")
		return 0, false
	}
	return usuarioID, true
}

func (c *NotasController) parseNotaID() (int64, bool) {
	val, err := internalhelpers.ParamInt64(c.Ctx, ":id")
	if err != nil || val <= 0 {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "id inválido", err), "id inválido")
		return 0, false
	}
	return val, true
}
