package services

// AddServiceAuth agrega el header Authorization de servicio si está configurado.
// Se usa en llamadas internas que no corren en nombre de un usuario.
func AddServiceAuth(headers map[string]string) map[string]string {
	if headers == nil {
		headers = make(map[string]string)
	}
	token := GetConfig().ServiceToken
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return headers
}

// AddBearer agrega un token de usuario a los headers de una llamada saliente.
func AddBearer(headers map[string]string, token string) map[string]string {
	if headers == nil {
		headers = make(map[string]string)
	}
	if token != "" {
		headers["Authorization"] = "Bearer " + token
	}
	return headers
}
