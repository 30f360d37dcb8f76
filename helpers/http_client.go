// helpers/http_client.go
package helpers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"reflect"
	"strings"
	"time"
)

// ---------- Cliente JSON (wrapped y no wrapped) + RETRIES ----------

// APIWrapper es la envoltura estándar que usan los servicios Ithaka.
type APIWrapper struct {
	Success bool            `json:"Success"`
	Status  json.RawMessage `json:"Status,omitempty"`
	Message string          `json:"Message"`
	Data    json.RawMessage `json:"Data"`
}

// HTTPError envuelve códigos de estado no exitosos para permitir un manejo granular.
// Message es el mensaje funcional extraído del cuerpo de error (detail/message),
// con fallback genérico cuando el cuerpo no trae ninguno.
type HTTPError struct {
	Status  int
	Message string
	Body    string
}

// Error imprime el estado y mensaje asociado.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Message)
}

// IsHTTPError permite consultar si el error corresponde a un status específico.
func IsHTTPError(err error, status int) bool {
	if err == nil {
		return false
	}
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status == status
	}
	return false
}

// HTTPErrorInfo extrae status y mensaje funcional de un HTTPError.
func HTTPErrorInfo(err error) (int, string, bool) {
	var he *HTTPError
	if errors.As(err, &he) {
		return he.Status, he.Message, true
	}
	return 0, "", false
}

// extractErrorMessage busca detail/message en el cuerpo de error del upstream.
func extractErrorMessage(body string) string {
	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(body), &payload); err == nil {
		for _, key := range []string{"detail", "message", "Message", "error"} {
			if raw, ok := payload[key]; ok {
				if msg, ok := raw.(string); ok && strings.TrimSpace(msg) != "" {
					return strings.TrimSpace(msg)
				}
			}
		}
	}
	return "el servicio respondió con un error"
}

// Config global de reintentos (retro-compatible)
var (
	defaultRetryCount  = 0
	defaultBackoffBase = 300 * time.Millisecond
	maxBackoff         = 3 * time.Second
)

func SetDefaultRetryCount(n int) {
	if n < 0 {
		n = 0
	}
	defaultRetryCount = n
}

func SetRetryBackoff(baseMs int) {
	if baseMs <= 0 {
		baseMs = 300
	}
	defaultBackoffBase = time.Duration(baseMs) * time.Millisecond
}

// Retro-compatible: asume wrapped=true y sin headers
func DoJSON(method, url string, in any, out any, timeout time.Duration) error {
	return DoJSONWithHeaders(method, url, nil, in, out, timeout, true)
}

// Con headers y control de envoltura; aplica reintentos
func DoJSONWithHeaders(method, url string, headers map[string]string, in any, out any, timeout time.Duration, wrapped bool) error {
	// Serializa body una vez
	var body []byte
	var err error
	if in != nil {
		body, err = json.Marshal(in)
		if err != nil {
			return err
		}
	}

	doOnce := func() error {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewBuffer(body)
		}
		req, err := http.NewRequest(method, url, reader)
		if err != nil {
			return err
		}
		if in != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		client := &http.Client{Timeout: timeout}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			b, _ := io.ReadAll(resp.Body)
			raw := strings.TrimSpace(string(b))
			return &HTTPError{
				Status:  resp.StatusCode,
				Message: extractErrorMessage(raw),
				Body:    raw,
			}
		}

		if out == nil {
			io.Copy(io.Discard, resp.Body)
			return nil
		}

		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if len(bodyBytes) == 0 {
			return nil
		}

		if wrapped {
			var w APIWrapper
			if err := json.Unmarshal(bodyBytes, &w); err != nil {
				var ute *json.UnmarshalTypeError
				if errors.As(err, &ute) && (ute.Type == reflect.TypeOf(APIWrapper{}) || ute.Type == reflect.TypeOf(&APIWrapper{})) {
					return json.Unmarshal(bodyBytes, out)
				}
				return err
			}
			if !w.Success {
				if w.Message == "" {
					w.Message = "operación fallida (Success=false)"
				}
				return errors.New(w.Message)
			}
			if len(w.Data) == 0 {
				return nil
			}
			return json.Unmarshal(w.Data, out)
		}

		return json.Unmarshal(bodyBytes, out)
	}

	var attempt int
	for {
		err = doOnce()
		if err == nil {
			return nil
		}
		if attempt >= defaultRetryCount || !isRetryableMethod(method) || !isRetryableErr(err) {
			return err
		}
		time.Sleep(backoffFor(attempt))
		attempt++
	}
}

// Solo las lecturas idempotentes se reintentan: una mutación que falló
// con 5xx pudo haberse aplicado igual en el upstream y reenviarla
// duplicaría la escritura.
func isRetryableMethod(method string) bool {
	switch strings.ToUpper(method) {
	case http.MethodGet, http.MethodHead:
		return true
	}
	return false
}

func isRetryableErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var he *HTTPError
	if errors.As(err, &he) {
		switch he.Status {
		case http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	l := strings.ToLower(err.Error())
	return strings.Contains(l, "timeout") ||
		strings.Contains(l, "connection reset") ||
		strings.Contains(l, "temporary") ||
		strings.Contains(l, "server closed idle connection")
}

func backoffFor(attempt int) time.Duration {
	d := defaultBackoffBase << attempt
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}
