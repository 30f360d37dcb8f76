package helpers

import (
	"sort"
	"strings"
)

// Permiso identifica una capacidad concreta del backoffice.
type Permiso string

const (
	PermisoVerDashboard         Permiso = "ver_dashboard"
	PermisoGestionarCasos       Permiso = "gestionar_casos"
	PermisoGestionarApoyos      Permiso = "gestionar_apoyos"
	PermisoGestionarNotas       Permiso = "gestionar_notas"
	PermisoGestionarNotasAjenas Permiso = "gestionar_notas_ajenas"
	PermisoGestionarEstados     Permiso = "gestionar_estados"
	PermisoVerUsuarios          Permiso = "ver_usuarios"
)

// Roles que entrega el backend. operador no tiene permisos propios:
// recibe exactamente el conjunto de coordinador.
const (
	RolAdmin       = "admin"
	RolCoordinador = "coordinador"
	RolTutor       = "tutor"
	RolOperador    = "operador"
)

var permisosCoordinador = map[Permiso]bool{
	PermisoVerDashboard:    true,
	PermisoGestionarCasos:  true,
	PermisoGestionarApoyos: true,
	PermisoGestionarNotas:  true,
	PermisoVerUsuarios:     true,
}

// tablaPermisos es total sobre los cuatro roles del backend.
var tablaPermisos = map[string]map[Permiso]bool{
	RolAdmin: {
		PermisoVerDashboard:         true,
		PermisoGestionarCasos:       true,
		PermisoGestionarApoyos:      true,
		PermisoGestionarNotas:       true,
		PermisoGestionarNotasAjenas: true,
		PermisoGestionarEstados:     true,
		PermisoVerUsuarios:          true,
	},
	RolCoordinador: permisosCoordinador,
	RolOperador:    permisosCoordinador,
	RolTutor: {
		PermisoVerDashboard:   true,
		PermisoGestionarNotas: true,
		PermisoGestionarCasos: true,
	},
}

// RolConocido indica si el rol existe en la tabla.
func RolConocido(rol string) bool {
	_, ok := tablaPermisos[strings.ToLower(strings.TrimSpace(rol))]
	return ok
}

// TienePermiso consulta la tabla rol→permiso. Roles desconocidos no
// otorgan nada.
func TienePermiso(rol string, permiso Permiso) bool {
	permisos, ok := tablaPermisos[strings.ToLower(strings.TrimSpace(rol))]
	if !ok {
		return false
	}
	return permisos[permiso]
}

// Permisos retorna el conjunto de permisos de un rol, útil para que la UI
// arme la navegación sin condicionales ad hoc.
func Permisos(rol string) []Permiso {
	permisos, ok := tablaPermisos[strings.ToLower(strings.TrimSpace(rol))]
	if !ok {
		return nil
	}
	out := make([]Permiso, 0, len(permisos))
	for p, granted := range permisos {
		if granted {
			out = append(out, p)
		}
	}
	// orden estable: la respuesta no depende del recorrido del mapa
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
