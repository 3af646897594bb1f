package dto

// CreateClientRequest alta de cliente.
type CreateClientRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}

// UpdateClientRequest reemplazo completo de los campos del cliente.
type UpdateClientRequest struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
}
