package helpers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type itemPrueba struct {
	Id     int    `json:"Id"`
	Nombre string `json:"Nombre"`
}

func servidorJSON(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDoJSONDesenvuelveData(t *testing.T) {
	srv := servidorJSON(t, http.StatusOK,
		`{"Success":true,"Status":"200","Message":"ok","Data":[{"Id":1,"Nombre":"uno"},{"Id":2,"Nombre":"dos"}]}`)

	var out []itemPrueba
	err := DoJSON("GET", srv.URL+"/casos", nil, &out, 2*time.Second)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "uno", out[0].Nombre)
}

func TestDoJSONSuccessFalse(t *testing.T) {
	srv := servidorJSON(t, http.StatusOK,
		`{"Success":false,"Message":"registro duplicado","Data":null}`)

	var out itemPrueba
	err := DoJSON("GET", srv.URL, nil, &out, 2*time.Second)
	require.Error(t, err)
	assert.Equal(t, "registro duplicado", err.Error())
}

func TestDoJSONSinEnvoltura(t *testing.T) {
	srv := servidorJSON(t, http.StatusOK, `{"Id":7,"Nombre":"directo"}`)

	var out itemPrueba
	err := DoJSONWithHeaders("GET", srv.URL, nil, nil, &out, 2*time.Second, false)
	require.NoError(t, err)
	assert.Equal(t, 7, out.Id)
}

func TestDoJSONErrorConDetalle(t *testing.T) {
	srv := servidorJSON(t, http.StatusNotFound, `{"detail":"caso no encontrado"}`)

	var out itemPrueba
	err := DoJSON("GET", srv.URL, nil, &out, 2*time.Second)
	require.Error(t, err)
	assert.True(t, IsHTTPError(err, http.StatusNotFound))

	status, msg, ok := HTTPErrorInfo(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "caso no encontrado", msg)
}

func TestDoJSONErrorSinMensaje(t *testing.T) {
	srv := servidorJSON(t, http.StatusBadRequest, `{"campo":"valor"}`)

	err := DoJSON("GET", srv.URL, nil, &struct{}{}, 2*time.Second)
	require.Error(t, err)

	_, msg, ok := HTTPErrorInfo(err)
	require.True(t, ok)
	assert.Equal(t, "el servicio respondió con un error", msg)
}

func TestDoJSONEnviaHeadersYBody(t *testing.T) {
	var gotAuth, gotContentType string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Success":true,"Message":"ok","Data":{"Id":1}}`))
	}))
	t.Cleanup(srv.Close)

	headers := map[string]string{"Authorization": "Bearer tok"}
	in := map[string]string{"Nombre": "nuevo"}
	var out itemPrueba
	err := DoJSONWithHeaders("POST", srv.URL, headers, in, &out, 2*time.Second, true)
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "nuevo", gotBody["Nombre"])
}

func TestDoJSONReintentaEn503(t *testing.T) {
	SetDefaultRetryCount(2)
	SetRetryBackoff(1)
	t.Cleanup(func() { SetDefaultRetryCount(0) })

	var llamadas int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		llamadas++
		if llamadas < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Success":true,"Message":"ok","Data":{"Id":9}}`))
	}))
	t.Cleanup(srv.Close)

	var out itemPrueba
	err := DoJSON("GET", srv.URL, nil, &out, 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, 3, llamadas)
	assert.Equal(t, 9, out.Id)
}

func TestDoJSONNoReintentaMutaciones(t *testing.T) {
	SetDefaultRetryCount(2)
	SetRetryBackoff(1)
	t.Cleanup(func() { SetDefaultRetryCount(0) })

	var llamadas int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		llamadas++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	for _, method := range []string{"POST", "PUT", "DELETE"} {
		llamadas = 0
		err := DoJSON(method, srv.URL, map[string]string{"Nombre": "x"}, nil, 2*time.Second)
		require.Error(t, err)
		assert.Equal(t, 1, llamadas, "%s con 5xx no debe reenviarse: la escritura pudo aplicarse", method)
	}
}

func TestDoJSONNoReintentaEn404(t *testing.T) {
	SetDefaultRetryCount(2)
	SetRetryBackoff(1)
	t.Cleanup(func() { SetDefaultRetryCount(0) })

	var llamadas int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		llamadas++
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	err := DoJSON("GET", srv.URL, nil, &struct{}{}, 2*time.Second)
	require.Error(t, err)
	assert.Equal(t, 1, llamadas)
}
