package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SideEffect resultado de un paso secundario de un flujo multi-paso
// (creación de factura, resincronización). El paso primario nunca se degrada
// por un fallo secundario; el fallo queda visible aquí y en el log.
type SideEffect struct {
	Step  string `json:"step"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// RestockRequest cantidad a reabastecer en inventories/add y hardwares/add.
type RestockRequest struct {
	Amount int `json:"amount"`
}
