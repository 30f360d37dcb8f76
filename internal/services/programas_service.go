package services

import (
	"context"
	"sync"

	"github.com/ithaka/backoffice_mid/internal/clients"
	"github.com/ithaka/backoffice_mid/internal/dto"
	"github.com/ithaka/backoffice_mid/internal/store"
	"github.com/ithaka/backoffice_mid/models"
)

var (
	programasStore     *store.Store[[]models.Programa]
	programasStoreOnce sync.Once
)

func programasCache() *store.Store[[]models.Programa] {
	programasStoreOnce.Do(func() {
		programasStore = store.New[[]models.Programa]()
	})
	return programasStore
}

// ListarProgramas entrega los programas activos desde la caché.
func ListarProgramas(ctx context.Context, token string) (dto.ListadoDTO[models.Programa], error) {
	cache := programasCache()
	if cache.Vigente() {
		datos, estado := cache.Datos()
		return dto.ListadoDTO[models.Programa]{Items: datos, Total: len(datos), Estado: estado}, nil
	}

	datos, err := cache.Cargar(ctx, func(ctx context.Context) ([]models.Programa, error) {
		programas, err := clients.IthakaCRUD().ListProgramas(ctx, token)
		if err != nil {
			return nil, err
		}
		activos := make([]models.Programa, 0, len(programas))
		for _, p := range programas {
			if p.Activo {
				activos = append(activos, p)
			}
		}
		return activos, nil
	})
	if err != nil {
		return dto.ListadoDTO[models.Programa]{Estado: store.Error}, err
	}
	return dto.ListadoDTO[models.Programa]{Items: datos, Total: len(datos), Estado: store.Cargado}, nil
}
