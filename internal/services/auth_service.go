package services

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/beego/beego/v2/core/logs"

	"github.com/ithaka/backoffice_mid/helpers"
	"github.com/ithaka/backoffice_mid/internal/clients"
	internalhelpers "github.com/ithaka/backoffice_mid/internal/helpers"
	"github.com/ithaka/backoffice_mid/internal/dto"
	"github.com/ithaka/backoffice_mid/internal/sesiones"
	"github.com/ithaka/backoffice_mid/models"
	rootservices "github.com/ithaka/backoffice_mid/services"
)

var (
	manager     *sesiones.Manager
	managerOnce sync.Once
)

// Sesiones retorna el manager de sesiones del proceso.
func Sesiones() *sesiones.Manager {
	managerOnce.Do(func() {
		manager = sesiones.NewManager(
			sesiones.ConVentanaAviso(rootservices.GetConfig().AvisoSesion),
			sesiones.ConCierreForzado(func(s models.Sesion) {
				usuario := ""
				if s.Usuario != nil {
					usuario = s.Usuario.Email
				}
				logs.Info("sesión expirada, cierre forzado:", s.Id, usuario)
			}),
		)
	})
	return manager
}

// Login valida credenciales contra el upstream y registra la sesión.
// Un fallo retorna no_autenticada con el mensaje funcional del upstream.
func Login(ctx context.Context, req dto.LoginRequest) (dto.SesionDTO, error) {
	if err := Validator().Struct(req); err != nil {
		return dto.SesionDTO{Estado: models.SesionNoAutenticada},
			helpers.NewAppError(http.StatusBadRequest, "credenciales incompletas", err)
	}

	creds, err := clients.IthakaAuth().Login(ctx, req.Email, req.Password)
	if err != nil {
		return dto.SesionDTO{Estado: models.SesionNoAutenticada}, err
	}

	s := Sesiones().Registrar(creds.Token, creds.Usuario, creds.ExpiraEn)
	return sesionDTO(*s, creds.Token), nil
}

// Me resuelve la identidad del token vigente. Un token inválido descarta
// la sesión en silencio y deja el estado en no_autenticada.
func Me(ctx context.Context, sesionID, token string) (dto.SesionDTO, error) {
	usuario, err := clients.IthakaAuth().Me(ctx, token)
	if err != nil {
		if helpers.IsHTTPError(err, http.StatusUnauthorized) || helpers.IsHTTPError(err, http.StatusForbidden) {
			Sesiones().Cerrar(sesionID)
			return dto.SesionDTO{Estado: models.SesionNoAutenticada}, nil
		}
		return dto.SesionDTO{Estado: models.SesionNoAutenticada}, err
	}

	s, ok := Sesiones().Consultar(sesionID)
	if !ok {
		// Token válido sin sesión registrada (por ejemplo tras reinicio del
		// MID): se reconstruye desde el claim exp.
		expira, expErr := internalhelpers.TokenExpiry(token)
		if expErr != nil {
			return dto.SesionDTO{Estado: models.SesionNoAutenticada}, nil
		}
		s = *Sesiones().Registrar(token, usuario, expira)
	}
	s.Usuario = usuario
	return sesionDTO(s, ""), nil
}

// ConsultarSesion entrega el estado del ciclo para el diálogo de la UI.
func ConsultarSesion(sesionID string) dto.SesionDTO {
	s, _ := Sesiones().Consultar(sesionID)
	return sesionDTO(s, "")
}

// RechazarAviso suprime el diálogo hasta expiración o renovación exitosa.
func RechazarAviso(sesionID string) error {
	if !Sesiones().RechazarAviso(sesionID) {
		return helpers.NewAppError(http.StatusNotFound, "sesión no encontrada", nil)
	}
	return nil
}

// Refresh renueva la sesión contra el upstream; un fallo fuerza el cierre.
func Refresh(ctx context.Context, sesionID, token string) (dto.SesionDTO, error) {
	creds, err := clients.IthakaAuth().Refresh(ctx, token)
	if err != nil {
		Sesiones().Cerrar(sesionID)
		return dto.SesionDTO{Estado: models.SesionNoAutenticada}, err
	}

	s, ok := Sesiones().Renovar(sesionID, creds.Token, creds.ExpiraEn)
	if !ok {
		s = *Sesiones().Registrar(creds.Token, creds.Usuario, creds.ExpiraEn)
	}
	if creds.Usuario != nil {
		s.Usuario = creds.Usuario
	}
	return sesionDTO(s, creds.Token), nil
}

// Logout descarta la sesión; siempre deja no_autenticada.
func Logout(sesionID string) dto.SesionDTO {
	Sesiones().Cerrar(sesionID)
	return dto.SesionDTO{Estado: models.SesionNoAutenticada}
}

func sesionDTO(s models.Sesion, token string) dto.SesionDTO {
	out := dto.SesionDTO{
		SesionId:   s.Id,
		Estado:     s.Estado,
		Usuario:    s.Usuario,
		Token:      token,
		RestanteMs: s.RestanteMs(time.Now()),
	}
	if !s.ExpiraEn.IsZero() {
		out.ExpiraEn = s.ExpiraEn.UTC().Format(time.RFC3339)
	}
	if out.RestanteMs < 0 {
		out.RestanteMs = 0
	}
	if s.Usuario != nil {
		for _, p := range internalhelpers.Permisos(s.Usuario.Rol) {
			out.Permisos = append(out.Permisos, string(p))
		}
	}
	return out
}
