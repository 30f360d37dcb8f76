package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/ithaka/backoffice_mid/helpers"
	"github.com/ithaka/backoffice_mid/models"
	rootservices "github.com/ithaka/backoffice_mid/services"
)

// IthakaCRUDClient envuelve las operaciones contra el CRUD central que
// requiere el backoffice. Toda llamada propaga el bearer del usuario.
type IthakaCRUDClient struct {
	cfg rootservices.Config
}

var (
	crudClient     *IthakaCRUDClient
	crudClientOnce sync.Once
)

// IthakaCRUD retorna un cliente singleton listo para llamar al CRUD.
func IthakaCRUD() *IthakaCRUDClient {
	crudClientOnce.Do(func() {
		crudClient = &IthakaCRUDClient{
			cfg: rootservices.GetConfig(),
		}
	})
	return crudClient
}

func (c *IthakaCRUDClient) do(ctx context.Context, method, endpoint, token string, in, out any) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}
	headers := rootservices.AddBearer(nil, token)
	return helpers.DoJSONWithHeaders(method, endpoint, headers, in, out, c.cfg.RequestTimeout, true)
}

// ---------------------------- casos ----------------------------

// ListCasos recupera los casos aplicando filtros del CRUD.
func (c *IthakaCRUDClient) ListCasos(ctx context.Context, token string, filters map[string]string) ([]models.Caso, error) {
	endpoint := rootservices.BuildURL(c.cfg.IthakaCRUDBaseURL, "casos")
	values := buildCasoFilters(filters)
	if encoded := values.Encode(); encoded != "" {
		endpoint = endpoint + "?" + encoded
	}

	var raw []casoRecord
	if err := c.do(ctx, "GET", endpoint, token, nil, &raw); err != nil {
		return nil, err
	}

	result := make([]models.Caso, 0, len(raw))
	for _, item := range raw {
		result = append(result, mapCaso(item))
	}
	return result, nil
}

// GetCasoByID recupera un caso por su identificador.
func (c *IthakaCRUDClient) GetCasoByID(ctx context.Context, token string, id int64) (*models.Caso, error) {
	endpoint := rootservices.BuildURL(c.cfg.IthakaCRUDBaseURL, "casos", strconv.FormatInt(id, 10))

	var raw casoRecord
	if err := c.do(ctx, "GET", endpoint, token, nil, &raw); err != nil {
		return nil, err
	}
	if raw.Id == 0 {
		return nil, helpers.NewAppError(http.StatusNotFound, "caso no encontrado", nil)
	}
	caso := mapCaso(raw)
	return &caso, nil
}

// UpdateCaso actualiza los campos editables de un caso.
func (c *IthakaCRUDClient) UpdateCaso(ctx context.Context, token string, id int64, body map[string]interface{}) (*models.Caso, error) {
	endpoint := rootservices.BuildURL(c.cfg.IthakaCRUDBaseURL, "casos", strconv.FormatInt(id, 10))

	var raw casoRecord
	if err := c.do(ctx, "PUT", endpoint, token, body, &raw); err != nil {
		return nil, err
	}
	caso := mapCaso(raw)
	return &caso, nil
}

// CambiarEstadoCaso mueve un caso a otro estado del vocabulario.
func (c *IthakaCRUDClient) CambiarEstadoCaso(ctx context.Context, token string, id int64, estadoID int, motivo string) error {
	endpoint := rootservices.BuildURL(c.cfg.IthakaCRUDBaseURL, "casos", strconv.FormatInt(id, 10), "cambiar_estado")
	body := map[string]interface{}{
		"estado_id": estadoID,
	}
	if trimmed := strings.TrimSpace(motivo); trimmed != "" {
		body["motivo"] = trimmed
	}
	return c.do(ctx, "PUT", endpoint, token, body, nil)
}

// CreateCaso registra un caso nuevo; usado por el formulario de postulación.
func (c *IthakaCRUDClient) CreateCaso(ctx context.Context, token string, body map[string]interface{}) (*models.Caso, error) {
	endpoint := rootservices.BuildURL(c.cfg.IthakaCRUDBaseURL, "casos")

	var raw casoRecord
	if err := c.do(ctx, "POST", endpoint, token, body, &raw); err != nil {
		return nil, err
	}
	caso := mapCaso(raw)
	return &caso, nil
}

// ListHistorialCaso recupera el historial de cambios de estado de un caso.
func (c *IthakaCRUDClient) ListHistorialCaso(ctx context.Context, token string, id int64) ([]models.CambioEstadoCaso, error) {
	endpoint := rootservices.BuildURL(c.cfg.IthakaCRUDBaseURL, "casos", strconv.FormatInt(id, 10), "historial")

	var raw []map[string]interface{}
	if err := c.do(ctx, "GET", endpoint, token, nil, &raw); err != nil {
		if helpers.IsHTTPError(err, http.StatusNotFound) {
			return []models.CambioEstadoCaso{}, nil
		}
		return nil, err
	}

	result := make([]models.CambioEstadoCaso, 0, len(raw))
	for _, entry := range raw {
		result = append(result, mapCambioEstado(entry))
	}
	return result, nil
}

// ---------------------------- apoyos ----------------------------

// ListApoyos recupera los apoyos, opcionalmente filtrados por caso.
func (c *IthakaCRUDClient) ListApoyos(ctx context.Context, token string, casoID int64) ([]models.Apoyo, error) {
	endpoint := rootservices.BuildURL(c.cfg.IthakaCRUDBaseURL, "apoyos")
	if casoID > 0 {
		values := url.Values{}
		values.Set("id_caso", strconv.FormatInt(casoID, 10))
		endpoint = endpoint + "?" + values.Encode()
	}

	var raw []models.Apoyo
	if err := c.do(ctx, "GET", endpoint, token, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// CreateApoyo registra un apoyo nuevo.
func (c *IthakaCRUDClient) CreateApoyo(ctx context.Context, token string, body map[string]interface{}) (*models.Apoyo, error) {
	endpoint := rootservices.BuildURL(c.cfg.IthakaCRUDBaseURL, "apoyos")
	var created models.Apoyo
	if err := c.do(ctx, "POST", endpoint, token, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateApoyo actualiza un apoyo existente.
func (c *IthakaCRUDClient) UpdateApoyo(ctx context.Context, token string, id int64, body map[string]interface{}) (*models.Apoyo, error) {
	endpoint := rootservices.BuildURL(c.cfg.IthakaCRUDBaseURL, "apoyos", strconv.FormatInt(id, 10))
	var updated models.Apoyo
	if err := c.do(ctx, "PUT", endpoint, token, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteApoyo elimina un apoyo.
func (c *IthakaCRUDClient) DeleteApoyo(ctx context.Context, token string, id int64) error {
	endpoint := rootservices.BuildURL(c.cfg.IthakaCRUDBaseURL, "apoyos", strconv.FormatInt(id, 10))
	return c.do(ctx, "DELETE", endpoint, token, nil, nil)
}

// ---------------------------- notas ----------------------------

// ListNotas recupera las notas internas, filtradas por caso si se indica.
func (c *IthakaCRUDClient) ListNotas(ctx context.Context, token string, casoID int64) ([]models.Nota, error) {
	endpoint := rootservices.BuildURL(c.cfg.IthakaCRUDBaseURL, "notas")
	if casoID > 0 {
		values := url.Values{}
		values.Set("id_caso", strconv.FormatInt(casoID, 10))
		endpoint = endpoint + "?" + values.Encode()
	}

	var raw []models.Nota
	if err := c.do(ctx, "GET", endpoint, token, nil, &raw); err != nil {
		if helpers.IsHTTPError(err, http.StatusNotFound) {
			return []models.Nota{}, nil
		}
		return nil, err
	}
	return raw, nil
}

// CreateNota registra una nota interna.
func (c *IthakaCRUDClient) CreateNota(ctx context.Context, token string, body map[string]interface{}) (*models.Nota, error) {
	endpoint := rootservices.BuildURL(c.cfg.IthakaCRUDBaseURL, "notas")
	var created models.Nota
	if err := c.do(ctx, "POST", endpoint, token, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateNota actualiza una nota existente.
func (c *IthakaCRUDClient) UpdateNota(ctx context.Context, token string, id int64, body map[string]interface{}) (*models.Nota, error) {
	endpoint := rootservices.BuildURL(c.cfg.IthakaCRUDBaseURL, "notas", strconv.FormatInt(id, 10))
	var updated models.Nota
	if err := c.do(ctx, "PUT", endpoint, token, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteNota elimina una nota.
func (c *IthakaCRUDClient) DeleteNota(ctx context.Context, token string, id int64) error {
	endpoint := rootservices.BuildURL(c.cfg.IthakaCRUDBaseURL, "notas", strconv.FormatInt(id, 10))
	return c.do(ctx, "DELETE", endpoint, token, nil, nil)
}

// ---------------------------- vocabularios ----------------------------

// ListEstados recupera el vocabulario completo de estados.
func (c *IthakaCRUDClient) ListEstados(ctx context.Context, token string) ([]models.Estado, error) {
	endpoint := rootservices.BuildURL(c.cfg.IthakaCRUDBaseURL, "estados")
	var raw []models.Estado
	if err := c.do(ctx, "GET", endpoint, token, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// CreateEstado agrega una entrada al vocabulario.
func (c *IthakaCRUDClient) CreateEstado(ctx context.Context, token string, body map[string]interface{}) (*models.Estado, error) {
	endpoint := rootservices.BuildURL(c.cfg.IthakaCRUDBaseURL, "estados")
	var created models.Estado
	if err := c.do(ctx, "POST", endpoint, token, body, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateEstado actualiza una entrada del vocabulario.
func (c *IthakaCRUDClient) UpdateEstado(ctx context.Context, token string, id int, body map[string]interface{}) (*models.Estado, error) {
	endpoint := rootservices.BuildURL(c.cfg.IthakaCRUDBaseURL, "estados", strconv.Itoa(id))
	var updated models.Estado
	if err := c.do(ctx, "PUT", endpoint, token, body, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteEstado elimina una entrada del vocabulario.
func (c *IthakaCRUDClient) DeleteEstado(ctx context.Context, token string, id int) error {
	endpoint := rootservices.BuildURL(c.cfg.IthakaCRUDBaseURL, "estados", strconv.Itoa(id))
	return c.do(ctx, "DELETE", endpoint, token, nil, nil)
}

// ListUsuarios recupera el listado de usuarios del staff.
func (c *IthakaCRUDClient) ListUsuarios(ctx context.Context, token string) ([]models.Usuario, error) {
	endpoint := rootservices.BuildURL(c.cfg.IthakaCRUDBaseURL, "usuarios")
	var raw []models.Usuario
	if err := c.do(ctx, "GET", endpoint, token, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// ListProgramas recupera los programas activos.
func (c *IthakaCRUDClient) ListProgramas(ctx context.Context, token string) ([]models.Programa, error) {
	endpoint := rootservices.BuildURL(c.cfg.IthakaCRUDBaseURL, "programas")
	var raw []models.Programa
	if err := c.do(ctx, "GET", endpoint, token, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// GetMetricasDashboard recupera los agregados que expone el CRUD.
func (c *IthakaCRUDClient) GetMetricasDashboard(ctx context.Context, token string) (map[string]interface{}, error) {
	endpoint := rootservices.BuildURL(c.cfg.IthakaCRUDBaseURL, "metricas", "dashboard")
	var raw map[string]interface{}
	if err := c.do(ctx, "GET", endpoint, token, nil, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// ---------------------------- mapeo ----------------------------

type casoRecord struct {
	Id            int64  `json:"Id"`
	Nombre        string `json:"Nombre"`
	Descripcion   string `json:"Descripcion"`
	TipoCaso      string `json:"TipoCaso"`
	EstadoId      int    `json:"EstadoId"`
	NombreEstado  string `json:"NombreEstado"`
	FechaCreacion string `json:"FechaCreacion"`
	Emprendedor   string `json:"Emprendedor"`
	EmprendedorId int    `json:"EmprendedorId"`
	Tutor         string `json:"Tutor"`
	TutorId       int    `json:"TutorId"`
	AsignacionId  int64  `json:"AsignacionId"`
}

func mapCaso(raw casoRecord) models.Caso {
	return models.Caso{
		Id:            raw.Id,
		Nombre:        strings.TrimSpace(raw.Nombre),
		Descripcion:   strings.TrimSpace(raw.Descripcion),
		TipoCaso:      strings.ToLower(strings.TrimSpace(raw.TipoCaso)),
		EstadoId:      raw.EstadoId,
		NombreEstado:  strings.TrimSpace(raw.NombreEstado),
		FechaCreacion: strings.TrimSpace(raw.FechaCreacion),
		Emprendedor:   strings.TrimSpace(raw.Emprendedor),
		EmprendedorId: raw.EmprendedorId,
		Tutor:         strings.TrimSpace(raw.Tutor),
		TutorId:       raw.TutorId,
		AsignacionId:  raw.AsignacionId,
	}
}

func mapCambioEstado(raw map[string]interface{}) models.CambioEstadoCaso {
	out := models.CambioEstadoCaso{}
	if v, ok := normalizeToInt64(raw["Id"]); ok {
		out.Id = v
	}
	if v, ok := normalizeToInt64(raw["CasoId"]); ok {
		out.CasoId = v
	}
	if v, ok := normalizeToInt(raw["EstadoId"]); ok {
		out.EstadoId = v
	}
	if v, ok := raw["NombreEstado"].(string); ok {
		out.NombreEstado = strings.TrimSpace(v)
	}
	if v, ok := raw["Fecha"].(string); ok {
		out.Fecha = strings.TrimSpace(v)
	}
	if v, ok := normalizeToInt(raw["UsuarioId"]); ok {
		out.UsuarioId = v
	}
	return out
}

func buildCasoFilters(filters map[string]string) url.Values {
	values := url.Values{}
	if filters == nil {
		filters = map[string]string{}
	}
	if _, ok := filters["limit"]; !ok {
		values.Set("limit", "0")
	}

	var queryParts []string
	for key, value := range filters {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		lower := strings.ToLower(strings.TrimSpace(key))
		switch lower {
		case "limit", "offset", "skip", "fields", "sortby", "order":
			values.Set(key, trimmed)
			continue
		case "query":
			queryParts = append(queryParts, trimmed)
			continue
		}

		field := normalizeCasoFilterKey(key)
		queryParts = append(queryParts, fmt.Sprintf("%s:%s", field, trimmed))
	}

	if len(queryParts) > 0 {
		values.Set("query", strings.Join(queryParts, ","))
	}
	return values
}

func normalizeCasoFilterKey(key string) string {
	trimmed := strings.TrimSpace(key)
	if strings.Contains(trimmed, "__") {
		return trimmed
	}

	switch strings.ToLower(trimmed) {
	case "tipo_caso", "tipocaso":
		return "TipoCaso__iexact"
	case "nombre_estado", "nombreestado":
		return "NombreEstado__iexact"
	case "id_emprendedor", "emprendedor_id":
		return "EmprendedorId"
	case "tutor_id", "tutorid":
		return "TutorId"
	case "id":
		return "Id"
	default:
		return trimmed
	}
}

func ctxErr(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
