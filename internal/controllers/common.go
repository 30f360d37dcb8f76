package controllers

import (
	"net/http"
	"strings"

	rootcontrollers "github.com/ithaka/backoffice_mid/controllers"
	"github.com/ithaka/backoffice_mid/helpers"
	internaldto "github.com/ithaka/backoffice_mid/internal/dto"
	internalhelpers "github.com/ithaka/backoffice_mid/internal/helpers"
)

// apiController agrega a BaseController los helpers comunes de las rutas
// del backoffice: token, sesión y respuesta estándar.
type apiController struct {
	rootcontrollers.BaseController
}

func (c *apiController) respondError(err error, fallback string) {
	appErr := helpers.AsAppError(err, fallback)
	resp := internalhelpers.Fail(appErr.Status, appErr.Message)
	c.writeJSON(resp.Status, resp)
}

func (c *apiController) writeJSON(status int, payload internaldto.APIResponseDTO) {
	c.Ctx.Output.SetStatus(status)
	c.Data["json"] = payload
	_ = c.ServeJSON()
}

// requireToken exige el bearer del usuario; sin él no hay llamada upstream.
func (c *apiController) requireToken() (string, bool) {
	token, err := internalhelpers.ExtractBearer(c.Ctx)
	if err != nil {
		c.respondError(helpers.NewAppError(http.StatusUnauthorized, "token requerido", err), "token requerido")
		return "", false
	}
	return token, true
}

// sesionID lee el identificador de sesión del header o del query.
func (c *apiController) sesionID() string {
	if id := strings.TrimSpace(c.Ctx.Input.Header("X-Sesion-Id")); id != "" {
		return id
	}
	return strings.TrimSpace(c.GetString("sesion_id"))
}

// requirePermiso valida el permiso contra la tabla de roles del token.
func (c *apiController) requirePermiso(permiso internalhelpers.Permiso) bool {
	if err := internalhelpers.RequirePermiso(c.Ctx, permiso); err != nil {
		c.respondError(helpers.NewAppError(http.StatusForbidden, "permiso insuficiente", err), "permiso insuficiente")
		return false
	}
	return true
}
