package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ithaka/backoffice_mid/models"
)

// upstreamStub simula el CRUD y el servicio de auth en un único servidor.
// Las respuestas van siempre en la envoltura estándar de los servicios.
type upstreamStub struct {
	mu           sync.Mutex
	casos        []map[string]interface{}
	notas        []models.Nota
	creaciones   []map[string]interface{}
	fallaLogin   bool
	fallaRefresh bool
	fallaCrear   bool
}

var stub = &upstreamStub{}

func (u *upstreamStub) reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.casos = nil
	u.notas = nil
	u.creaciones = nil
	u.fallaLogin = false
	u.fallaRefresh = false
	u.fallaCrear = false
}

func (u *upstreamStub) setCasos(casos []map[string]interface{}) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.casos = casos
}

func (u *upstreamStub) setNotas(notas []models.Nota) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.notas = notas
}

func (u *upstreamStub) creacionesRegistradas() []map[string]interface{} {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]map[string]interface{}, len(u.creaciones))
	copy(out, u.creaciones)
	return out
}

func respondWrapped(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"Success": true,
		"Status":  "200",
		"Message": "ok",
		"Data":    data,
	})
}

func respondDetail(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}

func tokenConExpiracion(d time.Duration) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"usuario_id": 1,
		"rol":        "coordinador",
		"exp":        time.Now().Add(d).Unix(),
	})
	signed, err := token.SignedString([]byte("secreto-de-prueba"))
	if err != nil {
		panic(err)
	}
	return signed
}

func usuarioStub() *models.Usuario {
	return &models.Usuario{Id: 1, Nombre: "Ana", Apellido: "García", Email: "ana@ithaka.edu.uy", Rol: "coordinador", Activo: true}
}

func (u *upstreamStub) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		fallaLogin, fallaRefresh, fallaCrear := u.fallaLogin, u.fallaRefresh, u.fallaCrear
		casos := u.casos
		notas := u.notas
		u.mu.Unlock()

		switch {
		case r.URL.Path == "/auth/login" && r.Method == "POST":
			if fallaLogin {
				respondDetail(w, http.StatusUnauthorized, "credenciales inválidas")
				return
			}
			respondWrapped(w, map[string]interface{}{
				"access_token": tokenConExpiracion(30 * time.Minute),
				"usuario":      usuarioStub(),
			})
		case r.URL.Path == "/auth/refresh" && r.Method == "POST":
			if fallaRefresh {
				respondDetail(w, http.StatusUnauthorized, "token vencido")
				return
			}
			respondWrapped(w, map[string]interface{}{
				"access_token": tokenConExpiracion(30 * time.Minute),
				"usuario":      usuarioStub(),
			})
		case r.URL.Path == "/auth/me":
			respondWrapped(w, usuarioStub())
		case r.URL.Path == "/casos" && r.Method == "GET":
			respondWrapped(w, casos)
		case r.URL.Path == "/casos" && r.Method == "POST":
			var body map[string]interface{}
			json.NewDecoder(r.Body).Decode(&body)
			u.mu.Lock()
			u.creaciones = append(u.creaciones, body)
			id := 100 + len(u.creaciones)
			u.mu.Unlock()
			if fallaCrear {
				respondDetail(w, http.StatusInternalServerError, "error interno del CRUD")
				return
			}
			body["Id"] = id
			if estado, ok := body["estado"].(string); ok {
				body["NombreEstado"] = estado
			}
			respondWrapped(w, body)
		case strings.HasPrefix(r.URL.Path, "/casos/") && strings.HasSuffix(r.URL.Path, "/historial"):
			respondWrapped(w, []map[string]interface{}{})
		case r.URL.Path == "/notas" && r.Method == "GET":
			respondWrapped(w, notas)
		case strings.HasPrefix(r.URL.Path, "/notas/"):
			respondWrapped(w, models.Nota{})
		default:
			respondDetail(w, http.StatusNotFound, "recurso no encontrado")
		}
	})
}

func TestMain(m *testing.M) {
	srv := httptest.NewServer(stub.handler())
	defer srv.Close()

	// Los singletons de config y clientes se inicializan en el primer uso;
	// los upstreams deben apuntar al stub antes de cualquier llamada.
	os.Setenv("ITHAKA_CRUD_BASE_URL", srv.URL)
	os.Setenv("ITHAKA_AUTH_BASE_URL", srv.URL)
	os.Setenv("RETRY_COUNT", "0")
	os.Setenv("REQUEST_TIMEOUT_MS", "2000")

	os.Exit(m.Run())
}
