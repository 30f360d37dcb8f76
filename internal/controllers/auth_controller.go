package controllers

import (
	"net/http"

	"github.com/ithaka/backoffice_mid/helpers"
	internaldto "github.com/ithaka/backoffice_mid/internal/dto"
	internalhelpers "github.com/ithaka/backoffice_mid/internal/helpers"
	internalservices "github.com/ithaka/backoffice_mid/internal/services"
)

// AuthController expone el ciclo de vida de la sesión del backoffice.
type AuthController struct {
	apiController
}

// PostLogin inicia sesión contra el servicio de auth.
// @Summary Iniciar sesión
// @Description Ejemplo de request: {"email":"staff@ithaka.edu.uy","password":"***"}
// @Tags Auth
// @Accept json
// @Produce json
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 400 {object} internaldto.APIResponseDTO
// @Failure 401 {object} internaldto.APIResponseDTO
func (c *AuthController) PostLogin() {
	var body internaldto.LoginRequest
	if err := c.ParseJSONBody(&body); err != nil {
		c.respondError(helpers.NewAppError(http.StatusBadRequest, "cuerpo inválido", err), "cuerpo inválido")
		return
	}

	sesion, err := internalservices.Login(c.Ctx.Request.Context(), body)
	if err != nil {
		c.respondError(err, "no fue posible iniciar sesión")
		return
	}

	resp := internalhelpers.Ok(sesion)
	resp.Message = "Sesión iniciada"
	c.writeJSON(resp.Status, resp)
}

// GetMe resuelve el usuario del token vigente.
// @Summary Usuario actual
// @Description Un token inválido descarta la sesión y retorna estado no_autenticada sin error.
// @Tags Auth
// @Produce json
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 401 {object} internaldto.APIResponseDTO
func (c *AuthController) GetMe() {
	token, ok := c.requireToken()
	if !ok {
		return
	}

	sesion, err := internalservices.Me(c.Ctx.Request.Context(), c.sesionID(), token)
	if err != nil {
		c.respondError(err, "error consultando identidad")
		return
	}

	c.writeJSON(http.StatusOK, internalhelpers.Ok(sesion))
}

// GetSesion entrega el estado del ciclo de sesión para el diálogo de la UI.
// @Summary Estado de la sesión
// @Tags Auth
// @Produce json
// @Success 200 {object} internaldto.APIResponseDTO
func (c *AuthController) GetSesion() {
	sesion := internalservices.ConsultarSesion(c.sesionID())
	c.writeJSON(http.StatusOK, internalhelpers.Ok(sesion))
}

// PutRechazarAviso suprime el aviso de expiración durante el ciclo vigente.
// @Summary Rechazar aviso de expiración
// @Tags Auth
// @Produce json
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 404 {object} internaldto.APIResponseDTO
func (c *AuthController) PutRechazarAviso() {
	if err := internalservices.RechazarAviso(c.sesionID()); err != nil {
		c.respondError(err, "sesión no encontrada")
		return
	}
	resp := internalhelpers.Ok(map[string]interface{}{"sesion_id": c.sesionID()})
	resp.Message = "Aviso rechazado"
	c.writeJSON(resp.Status, resp)
}

// PostRefresh extiende la sesión; un fallo upstream fuerza el cierre.
// @Summary Renovar sesión
// @Tags Auth
// @Produce json
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 401 {object} internaldto.APIResponseDTO
func (c *AuthController) PostRefresh() {
	token, ok := c.requireToken()
	if !ok {
		return
	}

	sesion, err := internalservices.Refresh(c.Ctx.Request.Context(), c.sesionID(), token)
	if err != nil {
		c.respondError(err, "no fue posible renovar la sesión")
		return
	}

	resp := internalhelpers.Ok(sesion)
	resp.Message = "Sesión renovada"
	c.writeJSON(resp.Status, resp)
}

// PostLogout cierra la sesión explícitamente.
// @Summary Cerrar sesión
// @Tags Auth
// @Produce json
// @Success 200 {object} internaldto.APIResponseDTO
func (c *AuthController) PostLogout() {
	sesion := internalservices.Logout(c.sesionID())
	resp := internalhelpers.Ok(sesion)
	resp.Message = "Sesión cerrada"
	c.writeJSON(resp.Status, resp)
}
