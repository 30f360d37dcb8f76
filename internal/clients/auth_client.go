package clients

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/ithaka/backoffice_mid/helpers"
	internalhelpers "github.com/ithaka/backoffice_mid/internal/helpers"
	"github.com/ithaka/backoffice_mid/models"
	rootservices "github.com/ithaka/backoffice_mid/services"
)

// AuthClient envuelve el servicio de autenticación upstream: login,
// identidad del token vigente y renovación de sesión.
type AuthClient struct {
	cfg rootservices.Config
}

var (
	authClient     *AuthClient
	authClientOnce sync.Once
)

// IthakaAuth retorna un cliente singleton del servicio de auth.
func IthakaAuth() *AuthClient {
	authClientOnce.Do(func() {
		authClient = &AuthClient{cfg: rootservices.GetConfig()}
	})
	return authClient
}

// Credenciales es la respuesta de login/refresh del upstream.
type Credenciales struct {
	Token    string          `json:"access_token"`
	Usuario  *models.Usuario `json:"usuario"`
	ExpiraEn time.Time       `json:"-"`
}

// Login valida credenciales contra el upstream y extrae la expiración
// del claim exp del token recibido.
func (c *AuthClient) Login(ctx context.Context, email, password string) (*Credenciales, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	endpoint := rootservices.BuildURL(c.cfg.IthakaAuthBaseURL, "auth", "login")
	body := map[string]string{"email": email, "password": password}

	var creds Credenciales
	if err := helpers.DoJSONWithHeaders("POST", endpoint, nil, body, &creds, c.cfg.RequestTimeout, true); err != nil {
		return nil, err
	}
	if creds.Token == "" {
		return nil, helpers.NewAppError(http.StatusBadGateway, "el servicio de auth no entregó token", nil)
	}

	expira, err := internalhelpers.TokenExpiry(creds.Token)
	if err != nil {
		return nil, helpers.NewAppError(http.StatusBadGateway, "token sin expiración", err)
	}
	creds.ExpiraEn = expira
	return &creds, nil
}

// Me resuelve el usuario dueño del token.
func (c *AuthClient) Me(ctx context.Context, token string) (*models.Usuario, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	endpoint := rootservices.BuildURL(c.cfg.IthakaAuthBaseURL, "auth", "me")
	headers := rootservices.AddBearer(nil, token)

	var usuario models.Usuario
	if err := helpers.DoJSONWithHeaders("GET", endpoint, headers, nil, &usuario, c.cfg.RequestTimeout, true); err != nil {
		return nil, err
	}
	return &usuario, nil
}

// Refresh extiende la sesión; el upstream responde igual que login.
func (c *AuthClient) Refresh(ctx context.Context, token string) (*Credenciales, error) {
	if err := ctxErr(ctx); err != nil {
		return nil, err
	}
	endpoint := rootservices.BuildURL(c.cfg.IthakaAuthBaseURL, "auth", "refresh")
	headers := rootservices.AddBearer(nil, token)

	var creds Credenciales
	if err := helpers.DoJSONWithHeaders("POST", endpoint, headers, nil, &creds, c.cfg.RequestTimeout, true); err != nil {
		return nil, err
	}
	if creds.Token == "" {
		return nil, helpers.NewAppError(http.StatusBadGateway, "el servicio de auth no entregó token", nil)
	}

	expira, err := internalhelpers.TokenExpiry(creds.Token)
	if err != nil {
		return nil, helpers.NewAppError(http.StatusBadGateway, "token sin expiración", err)
	}
	creds.ExpiraEn = expira
	return &creds, nil
}
