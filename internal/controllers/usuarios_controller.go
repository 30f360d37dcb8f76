package controllers

import (
	"net/http"
	"strings"

	internalhelpers "github.com/ithaka/backoffice_mid/internal/helpers"
	internalservices "github.com/ithaka/backoffice_mid/internal/services"
)

// UsuariosController expone el listado de staff y tutores.
type UsuariosController struct {
	apiController
}

// GetListado lista usuarios con búsqueda por subcadena.
// @Summary Listar usuarios
// @Tags Usuarios
// @Produce json
// @Param busqueda query string false "Texto a buscar en nombre/email"
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 403 {object} internaldto.APIResponseDTO
func (c *UsuariosController) GetListado() {
	token, ok := c.requireToken()
	if !ok {
		return
	}
	if !c.requirePermiso(internalhelpers.PermisoVerUsuarios) {
		return
	}

	result, err := internalservices.ListarUsuarios(c.Ctx.Request.Context(), token, strings.TrimSpace(c.GetString("busqueda")))
	if err != nil {
		c.respondError(err, "error consultando usuarios")
		return
	}
	c.writeJSON(http.StatusOK, internalhelpers.Ok(result))
}

// GetTutores lista los tutores activos para el selector de responsable.
// @Summary Listar tutores
// @Tags Usuarios
// @Produce json
// @Success 200 {object} internaldto.APIResponseDTO
func (c *UsuariosController) GetTutores() {
	token, ok := c.requireToken()
	if !ok {
		return
	}

	result, err := internalservices.ListarTutores(c.Ctx.Request.Context(), token)
	if err != nil {
		c.respondError(err, "error consultando tutores")
		return
	}
	c.writeJSON(http.StatusOK, internalhelpers.Ok(result))
}
