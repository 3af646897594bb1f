package dto

// CreateInventoryRequest alta de repuesto. Stock es la existencia inicial y
// genera un asiento de compra si es mayor que cero.
type CreateInventoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Cost        int    `json:"cost"`
	Stock       int    `json:"stock"`
	Min         int    `json:"min"`
}

// UpdateInventoryRequest reemplazo completo de los campos del repuesto.
type UpdateInventoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Cost        int    `json:"cost"`
	Stock       int    `json:"stock"`
	Min         int    `json:"min"`
}
