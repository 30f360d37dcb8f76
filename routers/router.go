package routers

import (
	"github.com/ithaka/backoffice_mid/controllers/errorhandler"
	internalcontrollers "github.com/ithaka/backoffice_mid/internal/controllers"
	"github.com/ithaka/backoffice_mid/internal/middlewares"

	beego "github.com/beego/beego/v2/server/web"
)

func init() {
	// Manejador de errores
	beego.ErrorController(&errorhandler.ErrorHandlerController{})

	middlewares.UseAuth()

	beego.Router("/v1/auth/login", &internalcontrollers.AuthController{}, "post:PostLogin")
	beego.Router("/v1/auth/me", &internalcontrollers.AuthController{}, "get:GetMe")
	beego.Router("/v1/auth/refresh", &internalcontrollers.AuthController{}, "post:PostRefresh")
	beego.Router("/v1/auth/logout", &internalcontrollers.AuthController{}, "post:PostLogout")
	beego.Router("/v1/auth/sesion", &internalcontrollers.AuthController{}, "get:GetSesion")
	beego.Router("/v1/auth/sesion/rechazar_aviso", &internalcontrollers.AuthController{}, "put:PutRechazarAviso")

	beego.Router("/v1/casos", &internalcontrollers.CasosController{}, "get:GetListado")
	beego.Router("/v1/casos/:id", &internalcontrollers.CasosController{}, "get:GetById;put:PutActualizar")
	beego.Router("/v1/casos/:id/cambiar_estado", &internalcontrollers.CasosController{}, "put:PutCambiarEstado")

	beego.Router("/v1/postulaciones/validar_paso", &internalcontrollers.PostulacionesController{}, "post:PostValidarPaso")
	beego.Router("/v1/postulaciones/borrador", &internalcontrollers.PostulacionesController{}, "post:PostGuardarBorrador")
	beego.Router("/v1/postulaciones", &internalcontrollers.PostulacionesController{}, "post:PostEnviar")

	beego.Router("/v1/apoyos", &internalcontrollers.ApoyosController{}, "get:GetListado;post:PostCrear")
	beego.Router("/v1/apoyos/:id", &internalcontrollers.ApoyosController{}, "put:PutActualizar;delete:DeleteOne")

	beego.Router("/v1/notas", &internalcontrollers.NotasController{}, "get:GetListado;post:PostCrear")
	beego.Router("/v1/notas/:id", &internalcontrollers.NotasController{}, "put:PutActualizar;delete:DeleteOne")

	beego.Router("/v1/estados", &internalcontrollers.EstadosController{}, "get:GetListado;post:PostCrear")
	beego.Router("/v1/estados/:id", &internalcontrollers.EstadosController{}, "put:PutActualizar;delete:DeleteOne")

	beego.Router("/v1/usuarios", &internalcontrollers.UsuariosController{}, "get:GetListado")
	beego.Router("/v1/tutores", &internalcontrollers.UsuariosController{}, "get:GetTutores")

	beego.Router("/v1/programas", &internalcontrollers.DashboardController{}, "get:GetProgramas")
	beego.Router("/v1/metricas/dashboard", &internalcontrollers.DashboardController{}, "get:GetDashboard")
}
