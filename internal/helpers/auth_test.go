package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tokenPrueba(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("secreto-de-prueba"))
	require.NoError(t, err)
	return signed
}

func TestTokenExpiry(t *testing.T) {
	expira := time.Now().Add(time.Hour).Truncate(time.Second)
	token := tokenPrueba(t, jwt.MapClaims{
		"usuario_id": 7,
		"rol":        "coordinador",
		"exp":        expira.Unix(),
	})

	got, err := TokenExpiry(token)
	require.NoError(t, err)
	assert.True(t, got.Equal(expira))
}

func TestTokenExpirySinExp(t *testing.T) {
	token := tokenPrueba(t, jwt.MapClaims{"usuario_id": 7})
	_, err := TokenExpiry(token)
	assert.ErrorIs(t, err, ErrClaimNotFound)
}

func TestDecodeClaimsInvalido(t *testing.T) {
	_, err := DecodeClaims("no-es-un-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExtractRolesDeDistintasFormas(t *testing.T) {
	casos := []struct {
		nombre string
		claims jwt.MapClaims
		want   []string
	}{
		{"claim rol simple", jwt.MapClaims{"rol": "tutor"}, []string{"tutor"}},
		{"claim roles lista", jwt.MapClaims{"roles": []interface{}{"admin", "tutor"}}, []string{"admin", "tutor"}},
		{"claim roles separados por coma", jwt.MapClaims{"roles": "coordinador, operador"}, []string{"coordinador", "operador"}},
		{"sin roles", jwt.MapClaims{"usuario_id": float64(1)}, nil},
	}

	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			assert.Equal(t, tc.want, extractRoles(tc.claims))
		})
	}
}
