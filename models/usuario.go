package models

// Usuario es un miembro del staff del programa (admin, coordinador,
// tutor u operador según el rol asignado por el backend).
type Usuario struct {
	Id       int    `json:"id"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
	Email    string `json:"email"`
	RolId    int    `json:"rol_id"`
	Rol      string `json:"rol"`
	Activo   bool   `json:"activo"`
}
