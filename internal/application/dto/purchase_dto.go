package dto

// CreatePurchaseRequest asiento manual en el libro de compras.
type CreatePurchaseRequest struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
}

// UpdatePurchaseRequest reemplazo completo de los campos de la compra.
type UpdatePurchaseRequest struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
}
