package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ithaka/backoffice_mid/internal/clients"
	"github.com/ithaka/backoffice_mid/internal/dto"
	internalhelpers "github.com/ithaka/backoffice_mid/internal/helpers"
	"github.com/ithaka/backoffice_mid/models"
)

// GetDashboard consolida los agregados del home del backoffice: toma los
// agregados del CRUD y los enriquece con distribuciones calculadas aquí
// sobre las colecciones completas. Las lecturas corren en paralelo.
func GetDashboard(ctx context.Context, token string) (dto.DashboardDTO, error) {
	var (
		casos    []models.Caso
		apoyos   []models.Apoyo
		usuarios []models.Usuario
		upstream map[string]interface{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		casos, err = clients.IthakaCRUD().ListCasos(gctx, token, nil)
		return err
	})
	g.Go(func() error {
		var err error
		apoyos, err = clients.IthakaCRUD().ListApoyos(gctx, token, 0)
		return err
	})
	g.Go(func() error {
		var err error
		usuarios, err = clients.IthakaCRUD().ListUsuarios(gctx, token)
		return err
	})
	g.Go(func() error {
		// Los agregados del CRUD son informativos; su falla no tumba el
		// tablero.
		if raw, err := clients.IthakaCRUD().GetMetricasDashboard(gctx, token); err == nil {
			upstream = raw
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return dto.DashboardDTO{}, err
	}

	out := dto.DashboardDTO{
		TotalCasos: len(casos),
		Upstream:   upstream,
	}

	porEstado := map[string]int{}
	porTipo := map[string]int{}
	porMes := map[string]int{}
	for _, caso := range casos {
		estado := strings.TrimSpace(caso.NombreEstado)
		if estado == "" {
			estado = "sin estado"
		}
		porEstado[estado]++

		tipo := strings.ToLower(strings.TrimSpace(caso.TipoCaso))
		if tipo == "" {
			tipo = "sin tipo"
		}
		porTipo[tipo]++
		if tipo == "postulacion" {
			out.TotalPostulaciones++
			if mes := mesDe(caso.FechaCreacion); mes != "" {
				porMes[mes]++
			}
		}
		if tipo == "proyecto" {
			out.TotalProyectos++
		}
	}

	ahora := time.Now().UTC()
	for _, apoyo := range apoyos {
		if apoyoActivo(apoyo, ahora) {
			out.ApoyosActivos++
		}
	}
	for _, u := range usuarios {
		if u.Activo && strings.EqualFold(u.Rol, internalhelpers.RolTutor) {
			out.TutoresActivos++
		}
	}

	out.PorEstado = serieDesdeMapa(porEstado)
	out.PorTipo = serieDesdeMapa(porTipo)
	out.PostulacionesPorMes = serieDesdeMapa(porMes)
	return out, nil
}

func apoyoActivo(apoyo models.Apoyo, ahora time.Time) bool {
	fin := parseFecha(apoyo.FechaFin)
	if fin.IsZero() {
		return true
	}
	return fin.After(ahora)
}

func mesDe(fecha string) string {
	t := parseFecha(fecha)
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01")
}

func parseFecha(value string) time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}
	}
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t
		}
	}
	return time.Time{}
}

// serieDesdeMapa ordena las etiquetas para que la serie sea estable.
func serieDesdeMapa(conteos map[string]int) dto.SerieDTO {
	etiquetas := make([]string, 0, len(conteos))
	for k := range conteos {
		etiquetas = append(etiquetas, k)
	}
	sort.Strings(etiquetas)

	valores := make([]int, 0, len(etiquetas))
	for _, k := range etiquetas {
		valores = append(valores, conteos[k])
	}
	return dto.SerieDTO{Etiquetas: etiquetas, Valores: valores}
}
