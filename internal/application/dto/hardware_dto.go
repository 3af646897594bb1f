package dto

// CreateHardwareRequest alta de equipo del taller.
type CreateHardwareRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
	Stock       int    `json:"stock"`
	Priority    string `json:"priority"`
}

// UpdateHardwareRequest reemplazo completo de los campos del equipo.
type UpdateHardwareRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Cost        int    `json:"cost"`
	Stock       int    `json:"stock"`
	Priority    string `json:"priority"`
}
