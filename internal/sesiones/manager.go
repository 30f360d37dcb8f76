// Package sesiones implementa el ciclo de vida de las sesiones del
// backoffice: registro al iniciar sesión, evaluación periódica de la
// expiración, ventana de aviso previa y cierre forzado al vencer.
package sesiones

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ithaka/backoffice_mid/models"
)

// VentanaAvisoDefault es el margen previo a la expiración dentro del
// cual la UI debe mostrar el diálogo de extensión.
const VentanaAvisoDefault = 2 * time.Minute

// Manager mantiene las sesiones activas y las evalúa una vez por segundo.
type Manager struct {
	mu       sync.Mutex
	sesiones map[string]*models.Sesion
	ventana  time.Duration
	ahora    func() time.Time
	onCierre func(models.Sesion)
	ticker   *time.Ticker
	detener  chan struct{}
	cerrada  bool
}

// Option ajusta la construcción del Manager.
type Option func(*Manager)

// ConVentanaAviso cambia la ventana de aviso previa a la expiración.
func ConVentanaAviso(d time.Duration) Option {
	return func(m *Manager) {
		if d > 0 {
			m.ventana = d
		}
	}
}

// ConReloj inyecta la fuente de tiempo, para pruebas.
func ConReloj(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.ahora = now
		}
	}
}

// ConCierreForzado registra el callback que se dispara exactamente una
// vez cuando una sesión expira.
func ConCierreForzado(fn func(models.Sesion)) Option {
	return func(m *Manager) { m.onCierre = fn }
}

// NewManager construye el manager; Iniciar arranca el temporizador.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		sesiones: make(map[string]*models.Sesion),
		ventana:  VentanaAvisoDefault,
		ahora:    time.Now,
		detener:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Iniciar arranca la evaluación periódica (un tick por segundo).
func (m *Manager) Iniciar() {
	m.mu.Lock()
	if m.ticker != nil || m.cerrada {
		m.mu.Unlock()
		return
	}
	m.ticker = time.NewTicker(time.Second)
	ticker := m.ticker
	m.mu.Unlock()

	go func() {
		for {
			select {
			case <-ticker.C:
				m.Evaluar(m.ahora())
			case <-m.detener:
				return
			}
		}
	}()
}

// Detener apaga el temporizador.
func (m *Manager) Detener() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cerrada {
		return
	}
	m.cerrada = true
	if m.ticker != nil {
		m.ticker.Stop()
	}
	close(m.detener)
}

// Registrar crea una sesión activa para el usuario autenticado.
func (m *Manager) Registrar(token string, usuario *models.Usuario, expiraEn time.Time) *models.Sesion {
	s := &models.Sesion{
		Id:       uuid.NewString(),
		Estado:   models.SesionActiva,
		Token:    token,
		Usuario:  usuario,
		ExpiraEn: expiraEn,
	}
	m.mu.Lock()
	m.sesiones[s.Id] = s
	m.mu.Unlock()
	m.Evaluar(m.ahora())
	return s
}

// Consultar retorna una copia de la sesión evaluada al instante actual.
func (m *Manager) Consultar(id string) (models.Sesion, bool) {
	m.Evaluar(m.ahora())
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sesiones[id]
	if !ok {
		return models.Sesion{Estado: models.SesionNoAutenticada}, false
	}
	return *s, true
}

// RechazarAviso suprime el diálogo hasta la expiración o hasta una
// renovación exitosa.
func (m *Manager) RechazarAviso(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sesiones[id]
	if !ok {
		return false
	}
	s.AvisoRechazado = true
	if s.Estado == models.SesionPorExpirar {
		s.Estado = models.SesionActiva
	}
	return true
}

// Renovar aplica una nueva expiración y reinicia el ciclo de aviso.
func (m *Manager) Renovar(id, token string, expiraEn time.Time) (models.Sesion, bool) {
	m.mu.Lock()
	s, ok := m.sesiones[id]
	if !ok {
		m.mu.Unlock()
		return models.Sesion{Estado: models.SesionNoAutenticada}, false
	}
	if token != "" {
		s.Token = token
	}
	s.ExpiraEn = expiraEn
	s.AvisoRechazado = false
	s.Estado = models.SesionActiva
	copia := *s
	m.mu.Unlock()
	return copia, true
}

// Cerrar descarta la sesión sin disparar el callback de cierre forzado.
func (m *Manager) Cerrar(id string) {
	m.mu.Lock()
	delete(m.sesiones, id)
	m.mu.Unlock()
}

// Evaluar recorre las sesiones y aplica las transiciones del ciclo:
// expirada → cierre forzado (una sola vez), dentro de la ventana y sin
// rechazo previo → por_expirar, en cualquier otro caso → activa.
func (m *Manager) Evaluar(ahora time.Time) {
	var cerradas []models.Sesion

	m.mu.Lock()
	for id, s := range m.sesiones {
		restante := s.ExpiraEn.Sub(ahora)
		switch {
		case restante <= 0:
			s.Estado = models.SesionNoAutenticada
			cerradas = append(cerradas, *s)
			delete(m.sesiones, id)
		case restante <= m.ventana && !s.AvisoRechazado:
			s.Estado = models.SesionPorExpirar
		default:
			s.Estado = models.SesionActiva
		}
	}
	onCierre := m.onCierre
	m.mu.Unlock()

	if onCierre != nil {
		for _, s := range cerradas {
			onCierre(s)
		}
	}
}

// Activas retorna el número de sesiones vigentes.
func (m *Manager) Activas() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sesiones)
}
