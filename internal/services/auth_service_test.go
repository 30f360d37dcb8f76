package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ithaka/backoffice_mid/helpers"
	"github.com/ithaka/backoffice_mid/internal/dto"
	"github.com/ithaka/backoffice_mid/models"
)

func TestLoginRegistraSesionActiva(t *testing.T) {
	stub.reset()

	sesion, err := Login(context.Background(), dto.LoginRequest{Email: "ana@ithaka.edu.uy", Password: "secreta"})
	require.NoError(t, err)

	assert.NotEmpty(t, sesion.SesionId)
	assert.Equal(t, models.SesionActiva, sesion.Estado)
	assert.NotEmpty(t, sesion.Token)
	assert.Greater(t, sesion.RestanteMs, int64(0))
	require.NotNil(t, sesion.Usuario)
	assert.Equal(t, "coordinador", sesion.Usuario.Rol)
	assert.NotEmpty(t, sesion.Permisos, "el rol del usuario resuelve sus permisos")

	consultada := ConsultarSesion(sesion.SesionId)
	assert.Equal(t, models.SesionActiva, consultada.Estado)
}

func TestLoginCredencialesInvalidas(t *testing.T) {
	stub.reset()
	stub.mu.Lock()
	stub.fallaLogin = true
	stub.mu.Unlock()

	sesion, err := Login(context.Background(), dto.LoginRequest{Email: "ana@ithaka.edu.uy", Password: "mala"})
	require.Error(t, err)
	assert.True(t, helpers.IsHTTPError(err, http.StatusUnauthorized))
	assert.Equal(t, models.SesionNoAutenticada, sesion.Estado)
}

func TestLoginCredencialesIncompletas(t *testing.T) {
	stub.reset()

	_, err := Login(context.Background(), dto.LoginRequest{Email: "sin-password"})
	require.Error(t, err)
	assert.Empty(t, stub.creacionesRegistradas())
}

func TestRefreshRenuevaLaSesion(t *testing.T) {
	stub.reset()

	s := Sesiones().Registrar("tok-viejo", usuarioStub(), time.Now().Add(90*time.Second))

	renovada, err := Refresh(context.Background(), s.Id, "tok-viejo")
	require.NoError(t, err)
	assert.Equal(t, s.Id, renovada.SesionId)
	assert.Equal(t, models.SesionActiva, renovada.Estado)
	assert.NotEmpty(t, renovada.Token)
	assert.Greater(t, renovada.RestanteMs, int64(5*time.Minute/time.Millisecond))
}

func TestRefreshFallidoCierraLaSesion(t *testing.T) {
	stub.reset()
	stub.mu.Lock()
	stub.fallaRefresh = true
	stub.mu.Unlock()

	s := Sesiones().Registrar("tok-vencido", usuarioStub(), time.Now().Add(time.Minute))

	sesion, err := Refresh(context.Background(), s.Id, "tok-vencido")
	require.Error(t, err)
	assert.Equal(t, models.SesionNoAutenticada, sesion.Estado)

	consultada := ConsultarSesion(s.Id)
	assert.Equal(t, models.SesionNoAutenticada, consultada.Estado)
}

func TestLogoutDescartaLaSesion(t *testing.T) {
	stub.reset()

	s := Sesiones().Registrar("tok", usuarioStub(), time.Now().Add(time.Hour))

	sesion := Logout(s.Id)
	assert.Equal(t, models.SesionNoAutenticada, sesion.Estado)

	consultada := ConsultarSesion(s.Id)
	assert.Equal(t, models.SesionNoAutenticada, consultada.Estado)
}

func TestMeReconstruyeSesionDesdeToken(t *testing.T) {
	stub.reset()

	// token válido sin sesión registrada: caso de reinicio del proceso
	sesion, err := Me(context.Background(), "sesion-inexistente", tokenConExpiracion(20*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, models.SesionActiva, sesion.Estado)
	require.NotNil(t, sesion.Usuario)
	assert.Equal(t, "ana@ithaka.edu.uy", sesion.Usuario.Email)
}
