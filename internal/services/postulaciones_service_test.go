package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ithaka/backoffice_mid/helpers"
	"github.com/ithaka/backoffice_mid/internal/dto"
)

func formularioCompleto() dto.PostulacionForm {
	return dto.PostulacionForm{
		NombreEmprendedor: "Ana García",
		EmailEmprendedor:  "ana@ithaka.edu.uy",
		NombreProyecto:    "Huerta urbana",
		Descripcion:       "Producción de hortalizas agroecológicas en azoteas del centro de Montevideo.",
		AceptaTratamiento: true,
	}
}

func TestValidarPasoUno(t *testing.T) {
	form := dto.PostulacionForm{NombreEmprendedor: "Ana García", EmailEmprendedor: "ana@ithaka.edu.uy"}

	res, err := ValidarPaso(form, 1)
	require.NoError(t, err)
	assert.True(t, res.Valido)
	assert.Empty(t, res.Campos)
}

func TestValidarPasoUnoEmailInvalido(t *testing.T) {
	form := dto.PostulacionForm{NombreEmprendedor: "Ana García", EmailEmprendedor: "no-es-un-email"}

	res, err := ValidarPaso(form, 1)
	require.NoError(t, err)
	assert.False(t, res.Valido)
	assert.Contains(t, res.Campos, "emailemprendedor")
}

func TestValidarPasoDosDescripcionCorta(t *testing.T) {
	form := dto.PostulacionForm{NombreProyecto: "Huerta", Descripcion: "muy corta"}

	res, err := ValidarPaso(form, 2)
	require.NoError(t, err)
	assert.False(t, res.Valido)
	assert.Contains(t, res.Campos, "descripcion")
}

func TestValidarPasoTresExigeAceptacion(t *testing.T) {
	res, err := ValidarPaso(dto.PostulacionForm{}, 3)
	require.NoError(t, err)
	assert.False(t, res.Valido)

	res, err = ValidarPaso(dto.PostulacionForm{AceptaTratamiento: true}, 3)
	require.NoError(t, err)
	assert.True(t, res.Valido)
}

func TestValidarPasoSoloMiraSusCampos(t *testing.T) {
	// el paso 1 valida aunque el resto del formulario esté vacío
	form := dto.PostulacionForm{NombreEmprendedor: "Ana", EmailEmprendedor: "ana@ithaka.edu.uy"}
	res, err := ValidarPaso(form, 1)
	require.NoError(t, err)
	assert.True(t, res.Valido)
}

func TestValidarPasoInexistente(t *testing.T) {
	_, err := ValidarPaso(dto.PostulacionForm{}, 4)
	assert.Error(t, err)
}

func TestCrearPostulacionBorrador(t *testing.T) {
	stub.reset()

	form := dto.PostulacionForm{NombreEmprendedor: "Ana García", EmailEmprendedor: "ana@ithaka.edu.uy"}
	caso, err := CrearPostulacion(context.Background(), "tok", form, false)
	require.NoError(t, err)
	require.NotNil(t, caso)

	escrituras := stub.creacionesRegistradas()
	require.Len(t, escrituras, 1, "guardar borrador produce exactamente una escritura")
	assert.Equal(t, EstadoBorrador, escrituras[0]["estado"])
}

func TestCrearPostulacionEnviada(t *testing.T) {
	stub.reset()

	caso, err := CrearPostulacion(context.Background(), "tok", formularioCompleto(), true)
	require.NoError(t, err)
	require.NotNil(t, caso)
	assert.Equal(t, EstadoRecibida, caso.NombreEstado)

	escrituras := stub.creacionesRegistradas()
	require.Len(t, escrituras, 1, "enviar produce exactamente una escritura")
	assert.Equal(t, EstadoRecibida, escrituras[0]["estado"])
	assert.Equal(t, "Huerta urbana", escrituras[0]["Nombre"])
}

func TestCrearPostulacionEnviadaIncompleta(t *testing.T) {
	stub.reset()

	form := formularioCompleto()
	form.Descripcion = ""
	_, err := CrearPostulacion(context.Background(), "tok", form, true)
	require.Error(t, err)
	assert.Empty(t, stub.creacionesRegistradas(), "un formulario inválido no escribe al backend")
}

func TestCrearPostulacionConUpstreamCaidoNoDuplica(t *testing.T) {
	stub.reset()
	stub.mu.Lock()
	stub.fallaCrear = true
	stub.mu.Unlock()

	// aun con reintentos configurados, un 5xx en la mutación no se reenvía
	helpers.SetDefaultRetryCount(2)
	helpers.SetRetryBackoff(1)
	t.Cleanup(func() { helpers.SetDefaultRetryCount(0) })

	_, err := CrearPostulacion(context.Background(), "tok", formularioCompleto(), true)
	require.Error(t, err)
	assert.Len(t, stub.creacionesRegistradas(), 1, "un envío fallido produce a lo sumo una escritura")
}

func TestCrearBorradorSinPasoUno(t *testing.T) {
	stub.reset()

	_, err := CrearPostulacion(context.Background(), "tok", dto.PostulacionForm{}, false)
	require.Error(t, err)
	assert.Empty(t, stub.creacionesRegistradas())
}
