package helpers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/beego/beego/v2/server/web/context"
	"github.com/golang-jwt/jwt/v5"
)

const ctxClaimsKey = "__backoffice_mid_jwt_claims"

var (
	// ErrNoAuthHeader se devuelve cuando no se encuentra el header Authorization.
	ErrNoAuthHeader = errors.New("authorization header missing")
	// ErrInvalidToken se devuelve cuando el formato del token no es un JWT válido.
	ErrInvalidToken = errors.New("invalid bearer token")
	// ErrClaimNotFound indica que el claim requerido no está presente.
	ErrClaimNotFound = errors.New("claim not found")
)

// Claims obtiene y almacena en caché los claims del JWT presente en Authorization.
// La firma la valida el servicio de auth upstream; aquí solo se decodifica.
func Claims(ctx *context.Context) (jwt.MapClaims, error) {
	if cached := ctx.Input.GetData(ctxClaimsKey); cached != nil {
		if claims, ok := cached.(jwt.MapClaims); ok {
			return claims, nil
		}
	}

	token, err := ExtractBearer(ctx)
	if err != nil {
		return nil, err
	}
	claims, err := DecodeClaims(token)
	if err != nil {
		return nil, err
	}
	ctx.Input.SetData(ctxClaimsKey, claims)
	return claims, nil
}

// ExtractBearer retorna el token crudo del header Authorization.
func ExtractBearer(ctx *context.Context) (string, error) {
	header := strings.TrimSpace(ctx.Input.Header("Authorization"))
	if header == "" {
		return "", ErrNoAuthHeader
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return "", ErrInvalidToken
	}
	return strings.TrimSpace(header[7:]), nil
}

// DecodeClaims decodifica los claims de un JWT sin verificar firma.
func DecodeClaims(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// TokenExpiry retorna la marca de expiración del claim exp de un token.
func TokenExpiry(token string) (time.Time, error) {
	claims, err := DecodeClaims(token)
	if err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, fmt.Errorf("%w: exp", ErrClaimNotFound)
	}
	return exp.Time, nil
}

// GetUsuarioID retorna el claim usuario_id como entero.
func GetUsuarioID(ctx *context.Context) (int, error) {
	return getIntClaim(ctx, "usuario_id")
}

// GetRol retorna el rol declarado en el token.
func GetRol(ctx *context.Context) (string, error) {
	claims, err := Claims(ctx)
	if err != nil {
		return "", err
	}
	roles := extractRoles(claims)
	if len(roles) == 0 {
		return "", fmt.Errorf("%w: rol", ErrClaimNotFound)
	}
	return roles[0], nil
}

// RequirePermiso valida que el rol del token otorgue el permiso solicitado.
func RequirePermiso(ctx *context.Context, permiso Permiso) error {
	claims, err := Claims(ctx)
	if err != nil {
		return err
	}
	for _, rol := range extractRoles(claims) {
		if TienePermiso(rol, permiso) {
			return nil
		}
	}
	return errors.New("insufficient roles")
}

func getIntClaim(ctx *context.Context, key string) (int, error) {
	claims, err := Claims(ctx)
	if err != nil {
		return 0, err
	}
	value, ok := claims[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrClaimNotFound, key)
	}
	switch v := value.(type) {
	case float64:
		return int(v), nil
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, fmt.Errorf("%w: %s", ErrClaimNotFound, key)
		}
		var n int
		if _, err := fmt.Sscanf(trimmed, "%d", &n); err != nil {
			return 0, fmt.Errorf("claim %s is not numeric", key)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("claim %s is not numeric", key)
	}
}

func extractRoles(claims jwt.MapClaims) []string {
	if roles := parseRolesValue(claims["roles"]); len(roles) > 0 {
		return roles
	}
	if roles := parseRolesValue(claims["rol"]); len(roles) > 0 {
		return roles
	}
	if roles := parseRolesValue(claims["role"]); len(roles) > 0 {
		return roles
	}
	return nil
}

func parseRolesValue(raw interface{}) []string {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil
		}
		split := strings.Split(v, ",")
		result := make([]string, 0, len(split))
		for _, part := range split {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	case []interface{}:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				if trimmed := strings.TrimSpace(s); trimmed != "" {
					result = append(result, trimmed)
				}
			}
		}
		return result
	case []string:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	default:
		return nil
	}
}
