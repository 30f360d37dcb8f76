package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ithaka/backoffice_mid/helpers"
	"github.com/ithaka/backoffice_mid/internal/dto"
	internalhelpers "github.com/ithaka/backoffice_mid/internal/helpers"
	"github.com/ithaka/backoffice_mid/models"
)

func notasPrueba() []models.Nota {
	return []models.Nota{
		{Id: 5, Contenido: "primer contacto", UsuarioId: 9, CasoId: 1},
	}
}

func TestActualizarNotaPropia(t *testing.T) {
	stub.reset()
	stub.setNotas(notasPrueba())

	req := dto.NotaRequest{Contenido: "seguimiento", CasoId: 1}
	_, err := ActualizarNota(context.Background(), "tok", 9, internalhelpers.RolTutor, 5, req)
	assert.NoError(t, err)
}

func TestActualizarNotaAjenaRechazada(t *testing.T) {
	stub.reset()
	stub.setNotas(notasPrueba())

	req := dto.NotaRequest{Contenido: "seguimiento", CasoId: 1}
	for _, rol := range []string{internalhelpers.RolCoordinador, internalhelpers.RolOperador, internalhelpers.RolTutor} {
		_, err := ActualizarNota(context.Background(), "tok", 1, rol, 5, req)
		require.Error(t, err, "rol %s no gestiona notas ajenas", rol)
		appErr := helpers.AsAppError(err, "")
		assert.Equal(t, http.StatusForbidden, appErr.Status)
	}
}

func TestAdminGestionaNotaAjena(t *testing.T) {
	stub.reset()
	stub.setNotas(notasPrueba())

	req := dto.NotaRequest{Contenido: "corrección", CasoId: 1}
	_, err := ActualizarNota(context.Background(), "tok", 1, internalhelpers.RolAdmin, 5, req)
	assert.NoError(t, err)
}

func TestEliminarNotaInexistente(t *testing.T) {
	stub.reset()
	stub.setNotas(notasPrueba())

	err := EliminarNota(context.Background(), "tok", 9, internalhelpers.RolTutor, 99, 1)
	require.Error(t, err)
	appErr := helpers.AsAppError(err, "")
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}
