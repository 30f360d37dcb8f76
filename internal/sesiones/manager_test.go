package sesiones

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ithaka/backoffice_mid/models"
)

type relojFijo struct {
	mu sync.Mutex
	t  time.Time
}

func (r *relojFijo) ahora() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.t
}

func (r *relojFijo) avanzar(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.t = r.t.Add(d)
}

func nuevoManagerPrueba(t *testing.T, cierres *[]models.Sesion) (*Manager, *relojFijo) {
	t.Helper()
	reloj := &relojFijo{t: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	var mu sync.Mutex
	m := NewManager(
		ConReloj(reloj.ahora),
		ConCierreForzado(func(s models.Sesion) {
			mu.Lock()
			defer mu.Unlock()
			*cierres = append(*cierres, s)
		}),
	)
	return m, reloj
}

func usuarioPrueba() *models.Usuario {
	return &models.Usuario{Id: 1, Nombre: "Ana", Email: "ana@ithaka.edu.uy", Rol: "coordinador"}
}

func TestSesionActivaFueraDeVentana(t *testing.T) {
	var cierres []models.Sesion
	m, reloj := nuevoManagerPrueba(t, &cierres)

	s := m.Registrar("tok", usuarioPrueba(), reloj.ahora().Add(10*time.Minute))

	got, ok := m.Consultar(s.Id)
	require.True(t, ok)
	assert.Equal(t, models.SesionActiva, got.Estado)
	assert.Empty(t, cierres)
}

func TestAvisoDentroDeVentana(t *testing.T) {
	var cierres []models.Sesion
	m, reloj := nuevoManagerPrueba(t, &cierres)

	// expira en 90s: dentro de la ventana de 2 minutos
	s := m.Registrar("tok", usuarioPrueba(), reloj.ahora().Add(90*time.Second))

	got, ok := m.Consultar(s.Id)
	require.True(t, ok)
	assert.Equal(t, models.SesionPorExpirar, got.Estado)

	// exactamente en el borde de la ventana también avisa
	s2 := m.Registrar("tok2", usuarioPrueba(), reloj.ahora().Add(2*time.Minute))
	got2, _ := m.Consultar(s2.Id)
	assert.Equal(t, models.SesionPorExpirar, got2.Estado)

	// justo afuera no
	s3 := m.Registrar("tok3", usuarioPrueba(), reloj.ahora().Add(2*time.Minute+time.Second))
	got3, _ := m.Consultar(s3.Id)
	assert.Equal(t, models.SesionActiva, got3.Estado)
}

func TestRechazarAvisoSuprimeHastaRenovacion(t *testing.T) {
	var cierres []models.Sesion
	m, reloj := nuevoManagerPrueba(t, &cierres)

	s := m.Registrar("tok", usuarioPrueba(), reloj.ahora().Add(90*time.Second))
	require.True(t, m.RechazarAviso(s.Id))

	got, _ := m.Consultar(s.Id)
	assert.Equal(t, models.SesionActiva, got.Estado, "rechazado: no debe avisar de nuevo")

	reloj.avanzar(30 * time.Second)
	got, _ = m.Consultar(s.Id)
	assert.Equal(t, models.SesionActiva, got.Estado, "sigue suprimido dentro del mismo ciclo")

	// renovación exitosa reinicia el ciclo de aviso
	_, ok := m.Renovar(s.Id, "tok-nuevo", reloj.ahora().Add(90*time.Second))
	require.True(t, ok)
	got, _ = m.Consultar(s.Id)
	assert.Equal(t, models.SesionPorExpirar, got.Estado, "tras renovar, la ventana vuelve a avisar")
}

func TestExpiracionForzadaUnaSolaVez(t *testing.T) {
	var cierres []models.Sesion
	m, reloj := nuevoManagerPrueba(t, &cierres)

	s := m.Registrar("tok", usuarioPrueba(), reloj.ahora().Add(time.Minute))

	reloj.avanzar(2 * time.Minute)
	m.Evaluar(reloj.ahora())
	m.Evaluar(reloj.ahora())
	m.Evaluar(reloj.ahora())

	require.Len(t, cierres, 1, "el cierre forzado dispara exactamente una vez")
	assert.Equal(t, s.Id, cierres[0].Id)

	got, ok := m.Consultar(s.Id)
	assert.False(t, ok)
	assert.Equal(t, models.SesionNoAutenticada, got.Estado)
	assert.Zero(t, m.Activas())
}

func TestExpiracionConAvisoRechazado(t *testing.T) {
	var cierres []models.Sesion
	m, reloj := nuevoManagerPrueba(t, &cierres)

	s := m.Registrar("tok", usuarioPrueba(), reloj.ahora().Add(time.Minute))
	require.True(t, m.RechazarAviso(s.Id))

	// el rechazo suprime el aviso pero nunca la expiración
	reloj.avanzar(61 * time.Second)
	m.Evaluar(reloj.ahora())

	require.Len(t, cierres, 1)
	assert.Zero(t, m.Activas())
}

func TestRenovarReiniciaExpiracion(t *testing.T) {
	var cierres []models.Sesion
	m, reloj := nuevoManagerPrueba(t, &cierres)

	s := m.Registrar("tok", usuarioPrueba(), reloj.ahora().Add(90*time.Second))

	renovada, ok := m.Renovar(s.Id, "tok-nuevo", reloj.ahora().Add(30*time.Minute))
	require.True(t, ok)
	assert.Equal(t, models.SesionActiva, renovada.Estado)
	assert.Equal(t, "tok-nuevo", renovada.Token)

	reloj.avanzar(5 * time.Minute)
	m.Evaluar(reloj.ahora())
	got, ok := m.Consultar(s.Id)
	require.True(t, ok)
	assert.Equal(t, models.SesionActiva, got.Estado)
	assert.Empty(t, cierres)
}

func TestCerrarNoDisparaCierreForzado(t *testing.T) {
	var cierres []models.Sesion
	m, reloj := nuevoManagerPrueba(t, &cierres)

	s := m.Registrar("tok", usuarioPrueba(), reloj.ahora().Add(time.Minute))
	m.Cerrar(s.Id)

	reloj.avanzar(5 * time.Minute)
	m.Evaluar(reloj.ahora())

	assert.Empty(t, cierres, "logout explícito no cuenta como expiración")
	assert.Zero(t, m.Activas())
}

func TestConsultarSesionInexistente(t *testing.T) {
	var cierres []models.Sesion
	m, _ := nuevoManagerPrueba(t, &cierres)

	got, ok := m.Consultar("no-existe")
	assert.False(t, ok)
	assert.Equal(t, models.SesionNoAutenticada, got.Estado)
	assert.False(t, m.RechazarAviso("no-existe"))
}
