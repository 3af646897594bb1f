package dto

// CreateBillRequest alta manual de factura. Normalmente las facturas nacen
// del flujo de reparación; este alta existe para correcciones.
type CreateBillRequest struct {
	Amount      int    `json:"amount"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Paid        bool   `json:"paid"`
	IDRepair    string `json:"id_repair"`
}

// UpdateBillRequest reemplazo completo de los campos de la factura.
type UpdateBillRequest struct {
	Amount      int    `json:"amount"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Paid        bool   `json:"paid"`
}
