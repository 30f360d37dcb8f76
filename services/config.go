package services

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ithaka/backoffice_mid/helpers"

	beego "github.com/beego/beego/v2/server/web"
)

// Config centraliza la configuración necesaria para los servicios externos.
type Config struct {
	AppName           string
	HTTPPort          int
	RunMode           string
	IthakaCRUDBaseURL string
	IthakaAuthBaseURL string
	ServiceToken      string
	RequestTimeout    time.Duration
	RetryCount        int
	AvisoSesion       time.Duration
	AllowedOrigin     string
}

var (
	cfg  Config
	once sync.Once
)

// GetConfig devuelve la configuración cargada desde variables de entorno o app.conf.
func GetConfig() Config {
	once.Do(func() {
		cfg = Config{
			AppName:           getString("APP_NAME", "appname", "backoffice_mid"),
			HTTPPort:          getInt("HTTP_PORT", "httpport", 8080),
			RunMode:           getString("RUN_MODE", "runmode", "dev"),
			IthakaCRUDBaseURL: normalizeBase(getString("ITHAKA_CRUD_BASE_URL", "ithaka_crud_base_url", "")),
			IthakaAuthBaseURL: normalizeBase(getString("ITHAKA_AUTH_BASE_URL", "ithaka_auth_base_url", "")),
			ServiceToken:      getString("SERVICE_BEARER_TOKEN", "service_bearer_token", ""),
			RequestTimeout:    time.Duration(getInt("REQUEST_TIMEOUT_MS", "request_timeout_ms", 10000)) * time.Millisecond,
			RetryCount:        getInt("RETRY_COUNT", "retry_count", 2),
			AvisoSesion:       time.Duration(getInt("SESION_AVISO_MS", "sesion_aviso_ms", 120000)) * time.Millisecond,
			AllowedOrigin:     getString("ALLOWED_ORIGIN", "allowed_origin", "http://localhost:5173"),
		}

		if cfg.IthakaCRUDBaseURL == "" {
			panic("ITHAKA_CRUD_BASE_URL no configurado")
		}
		if cfg.IthakaAuthBaseURL == "" {
			panic("ITHAKA_AUTH_BASE_URL no configurado")
		}

		helpers.SetDefaultRetryCount(cfg.RetryCount)
	})
	return cfg
}

func getString(envKey, confKey, def string) string {
	if val := strings.TrimSpace(os.Getenv(envKey)); val != "" {
		return val
	}
	if val, err := beego.AppConfig.String(confKey); err == nil && strings.TrimSpace(val) != "" {
		return val
	}
	return def
}

func getInt(envKey, confKey string, def int) int {
	if val := strings.TrimSpace(os.Getenv(envKey)); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	if val, err := beego.AppConfig.Int(confKey); err == nil {
		return val
	}
	return def
}

func normalizeBase(value string) string {
	return strings.TrimSpace(value)
}

// BuildURL compone una URL asegurando que no haya dobles slashes.
func BuildURL(base string, elems ...string) string {
	trimmed := strings.TrimSuffix(base, "/")
	for _, e := range elems {
		trimmed += "/" + strings.Trim(e, "/")
	}
	return trimmed
}

// MustBuildURL es un helper para construir URLs y fallar rápido en caso de base vacía.
func MustBuildURL(base string, elems ...string) string {
	if base == "" {
		panic("base URL vacía")
	}
	return BuildURL(base, elems...)
}
