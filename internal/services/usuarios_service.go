package services

import (
	"context"
	"strings"

	"github.com/ithaka/backoffice_mid/internal/clients"
	"github.com/ithaka/backoffice_mid/internal/dto"
	internalhelpers "github.com/ithaka/backoffice_mid/internal/helpers"
	"github.com/ithaka/backoffice_mid/models"
)

// ListarUsuarios retorna el staff aplicando la búsqueda conjuntiva del
// backoffice (subcadena sobre nombre/apellido/email) sobre la colección
// completa.
func ListarUsuarios(ctx context.Context, token, busqueda string) (dto.ListadoDTO[models.Usuario], error) {
	usuarios, err := clients.IthakaCRUD().ListUsuarios(ctx, token)
	if err != nil {
		return dto.ListadoDTO[models.Usuario]{}, err
	}

	filtrados := FiltrarUsuarios(usuarios, busqueda)
	return dto.ListadoDTO[models.Usuario]{Items: filtrados, Total: len(filtrados)}, nil
}

// FiltrarUsuarios aplica la búsqueda por subcadena sin distinción de
// mayúsculas sobre nombre completo y email.
func FiltrarUsuarios(usuarios []models.Usuario, busqueda string) []models.Usuario {
	trimmed := strings.TrimSpace(busqueda)
	if trimmed == "" {
		return usuarios
	}
	out := make([]models.Usuario, 0, len(usuarios))
	for _, u := range usuarios {
		completo := u.Nombre + " " + u.Apellido
		if contieneSinCaso(completo, trimmed) || contieneSinCaso(u.Email, trimmed) {
			out = append(out, u)
		}
	}
	return out
}

// ListarTutores retorna los usuarios activos con rol tutor, para el
// selector de responsable de un caso.
func ListarTutores(ctx context.Context, token string) (dto.ListadoDTO[models.Usuario], error) {
	usuarios, err := clients.IthakaCRUD().ListUsuarios(ctx, token)
	if err != nil {
		return dto.ListadoDTO[models.Usuario]{}, err
	}

	tutores := make([]models.Usuario, 0, len(usuarios))
	for _, u := range usuarios {
		if u.Activo && igualSinCaso(u.Rol, internalhelpers.RolTutor) {
			tutores = append(tutores, u)
		}
	}
	return dto.ListadoDTO[models.Usuario]{Items: tutores, Total: len(tutores)}, nil
}
