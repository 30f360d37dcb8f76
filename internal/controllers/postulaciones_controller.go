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

// PostulacionesController expone el formulario multipaso de postulación.
type PostulacionesController struct {
	apiController
}

// PostValidarPaso evalúa el predicado de un paso del formulario.
// @Summary Validar paso del formulario
// @Description La UI habilita "siguiente" solo cuando el paso valida. Ejemplo de respuesta: {"Success":true,"Status":200,"Message":"OK","Data":{"paso":1,"valido":false,"campos_invalidos":["emailemprendedor"]}}
// @Tags Postulaciones
// @Accept json
// @Produce json
// @Param paso query int true "Paso a validar (1..3)" Example(1)
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
func (c *PostulacionesController) PostValidarPaso() {
	paso, ok := c.parsePaso()
	if !ok {
		return
	}

	var form internaldto.PostulacionForm
	if err := c.ParseJSONBody(&form); err != nil {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "cuerpo inválido", err), "cuerpo inválido")
		return
	}

	result, err := internalservices.ValidarPaso(form, paso)
	if err != nil {
		c.respondError(err, "paso inválido")
		return
	}
	c.writeJSON(http.StatusOK, internalhelpers.Ok(result))
}

// PostGuardarBorrador registra la postulación en estado borrador.
// @Summary Guardar borrador
// @Description Una única escritura al CRUD con estado "borrador".
// @Tags Postulaciones
// @Accept json
// @Produce json
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
func (c *PostulacionesController) PostGuardarBorrador() {
	c.crear(false, "Borrador guardado")
}

// PostEnviar registra la postulación en estado recibida.
// @Summary Enviar postulación
// @Description Una única escritura al CRUD con estado "recibida"; exige el formulario completo.
// @Tags Postulaciones
// @Accept json
// @Produce json
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
func (c *PostulacionesController) PostEnviar() {
	c.crear(true, "Postulación recibida")
}

func (c *PostulacionesController) crear(enviar bool, mensaje string) {
	token, ok := c.requireToken()
	if !ok {
		return
	}

	var form internaldto.PostulacionForm
	if err := c.ParseJSONBody(&form); err != nil {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "cuerpo inválido", err), "cuerpo inválido")
		return
	}

	caso, err := internalservices.CrearPostulacion(c.Ctx.Request.Context(), token, form, enviar)
	if err != nil {
		c.respondError(err, "error registrando postulación")
		return
	}

	resp := internalhelpers.Ok(caso)
	resp.Message = mensaje
	c.writeJSON(resp.Status, resp)
}

func (c *PostulacionesController) parsePaso() (int, bool) {
	raw := strings.TrimSpace(c.GetString("paso"))
	val, err := strconv.Atoi(raw)
	if err != nil || val < 1 || val > internaldto.PasosPostulacion {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "paso inválido", err), "paso inválido")
		return 0, false
	}
	return val, true
}
