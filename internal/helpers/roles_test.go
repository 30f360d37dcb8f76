package helpers

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTablaTotalSobreRolesDelBackend(t *testing.T) {
	for _, rol := range []string{RolAdmin, RolCoordinador, RolTutor, RolOperador} {
		assert.True(t, RolConocido(rol), "rol %s debe estar en la tabla", rol)
		assert.NotEmpty(t, Permisos(rol), "rol %s debe tener permisos", rol)
	}
	assert.False(t, RolConocido("estudiante"))
	assert.Nil(t, Permisos("estudiante"))
}

func TestOperadorEquivaleACoordinador(t *testing.T) {
	for _, p := range []Permiso{
		PermisoVerDashboard,
		PermisoGestionarCasos,
		PermisoGestionarApoyos,
		PermisoGestionarNotas,
		PermisoGestionarNotasAjenas,
		PermisoGestionarEstados,
		PermisoVerUsuarios,
	} {
		assert.Equal(t, TienePermiso(RolCoordinador, p), TienePermiso(RolOperador, p),
			"operador y coordinador deben coincidir en %s", p)
	}
}

func TestSoloAdminGestionaEstados(t *testing.T) {
	assert.True(t, TienePermiso(RolAdmin, PermisoGestionarEstados))
	assert.False(t, TienePermiso(RolCoordinador, PermisoGestionarEstados))
	assert.False(t, TienePermiso(RolOperador, PermisoGestionarEstados))
	assert.False(t, TienePermiso(RolTutor, PermisoGestionarEstados))
}

func TestSoloAdminGestionaNotasAjenas(t *testing.T) {
	assert.True(t, TienePermiso(RolAdmin, PermisoGestionarNotasAjenas))
	assert.False(t, TienePermiso(RolCoordinador, PermisoGestionarNotasAjenas))
	assert.False(t, TienePermiso(RolOperador, PermisoGestionarNotasAjenas))
	assert.False(t, TienePermiso(RolTutor, PermisoGestionarNotasAjenas))
}

func TestPermisosConOrdenEstable(t *testing.T) {
	permisos := Permisos(RolAdmin)
	require.NotEmpty(t, permisos)
	assert.True(t, sort.SliceIsSorted(permisos, func(i, j int) bool { return permisos[i] < permisos[j] }))
	assert.Equal(t, permisos, Permisos(RolAdmin), "dos consultas entregan el mismo orden")
}

func TestTutorNoVeUsuariosNiApoyos(t *testing.T) {
	assert.False(t, TienePermiso(RolTutor, PermisoVerUsuarios))
	assert.False(t, TienePermiso(RolTutor, PermisoGestionarApoyos))
	assert.True(t, TienePermiso(RolTutor, PermisoVerDashboard))
	assert.True(t, TienePermiso(RolTutor, PermisoGestionarNotas))
}

func TestRolesConMayusculasYEspacios(t *testing.T) {
	assert.True(t, TienePermiso(" Admin ", PermisoGestionarEstados))
	assert.True(t, TienePermiso("OPERADOR", PermisoVerDashboard))
	assert.False(t, TienePermiso("", PermisoVerDashboard))
}
