package controllers

import (
	"net/http"

	internalhelpers "github.com/ithaka/backoffice_mid/internal/helpers"
	internalservices "github.com/ithaka/backoffice_mid/internal/services"
)

// DashboardController expone los agregados del home del backoffice.
type DashboardController struct {
	apiController
}

// GetDashboard entrega los conteos y distribuciones listos para graficar.
// @Summary Métricas del dashboard
// @Tags Dashboard
// @Produce json
// @Success 200 {object} internaldto.APIResponseDTO
// @Failure 403 {object} internaldto.APIResponseDTO
func (c *DashboardController) GetDashboard() {
	token, ok := c.requireToken()
	if !ok {
		return
	}
	if !c.requirePermiso(internalhelpers.PermisoVerDashboard) {
		return
	}

	data, err := internalservices.GetDashboard(c.Ctx.Request.Context(), token)
	if err != nil {
		c.respondError(err, "error consultando métricas")
		return
	}
	c.writeJSON(http.StatusOK, internalhelpers.Ok(data))
}

// GetProgramas lista los programas activos (para el formulario de apoyos).
// @Summary Listar programas activos
// @Tags Dashboard
// @Produce json
// @Success 200 {object} internaldto.APIResponseDTO
func (c *DashboardController) GetProgramas() {
	token, ok := c.requireToken()
	if !ok {
		return
	}

	result, err := internalservices.ListarProgramas(c.Ctx.Request.Context(), token)
	if err != nil {
		c.respondError(err, "error consultando programas")
		return
	}
	c.writeJSON(http.StatusOK, internalhelpers.Ok(result))
}
