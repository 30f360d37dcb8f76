package services

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/ithaka/backoffice_mid/helpers"
	"github.com/ithaka/backoffice_mid/internal/clients"
	"github.com/ithaka/backoffice_mid/internal/dto"
	"github.com/ithaka/backoffice_mid/internal/store"
	"github.com/ithaka/backoffice_mid/models"
)

var (
	estadosStore     *store.Store[[]models.Estado]
	estadosStoreOnce sync.Once
)

func estadosCache() *store.Store[[]models.Estado] {
	estadosStoreOnce.Do(func() {
		estadosStore = store.New[[]models.Estado]()
	})
	return estadosStore
}

// ListarEstados entrega el vocabulario de estados desde la caché,
// cargándolo del CRUD cuando no está vigente.
func ListarEstados(ctx context.Context, token string) (dto.ListadoDTO[models.Estado], error) {
	cache := estadosCache()
	if cache.Vigente() {
		datos, estado := cache.Datos()
		return dto.ListadoDTO[models.Estado]{Items: datos, Total: len(datos), Estado: estado}, nil
	}

	datos, err := cache.Cargar(ctx, func(ctx context.Context) ([]models.Estado, error) {
		return clients.IthakaCRUD().ListEstados(ctx, token)
	})
	if err != nil {
		return dto.ListadoDTO[models.Estado]{Estado: store.Error}, err
	}
	return dto.ListadoDTO[models.Estado]{Items: datos, Total: len(datos), Estado: store.Cargado}, nil
}

// CrearEstado agrega la entrada, invalida la caché y relee el vocabulario.
func CrearEstado(ctx context.Context, token string, req dto.EstadoRequest) (dto.ListadoDTO[models.Estado], error) {
	if err := Validator().Struct(req); err != nil {
		return dto.ListadoDTO[models.Estado]{}, helpers.NewAppError(http.StatusBadRequest, "datos del estado incompletos", err)
	}
	if _, err := clients.IthakaCRUD().CreateEstado(ctx, token, estadoPayload(req)); err != nil {
		return dto.ListadoDTO[models.Estado]{}, err
	}
	estadosCache().Invalidar()
	return ListarEstados(ctx, token)
}

// ActualizarEstado edita la entrada, invalida la caché y relee.
func ActualizarEstado(ctx context.Context, token string, id int, req dto.EstadoRequest) (dto.ListadoDTO[models.Estado], error) {
	if err := Validator().Struct(req); err != nil {
		return dto.ListadoDTO[models.Estado]{}, helpers.NewAppError(http.StatusBadRequest, "datos del estado incompletos", err)
	}
	if _, err := clients.IthakaCRUD().UpdateEstado(ctx, token, id, estadoPayload(req)); err != nil {
		return dto.ListadoDTO[models.Estado]{}, err
	}
	estadosCache().Invalidar()
	return ListarEstados(ctx, token)
}

// EliminarEstado borra la entrada, invalida la caché y relee.
func EliminarEstado(ctx context.Context, token string, id int) (dto.ListadoDTO[models.Estado], error) {
	if err := clients.IthakaCRUD().DeleteEstado(ctx, token, id); err != nil {
		return dto.ListadoDTO[models.Estado]{}, err
	}
	estadosCache().Invalidar()
	return ListarEstados(ctx, token)
}

func estadoPayload(req dto.EstadoRequest) map[string]interface{} {
	return map[string]interface{}{
		"Nombre":     strings.TrimSpace(req.Nombre),
		"TipoCasoId": req.TipoCasoId,
	}
}
