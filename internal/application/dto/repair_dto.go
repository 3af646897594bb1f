package dto

import "github.com/jmoralesv/taller-api/internal/domain/entity"

// CreateRepairRequest alta de reparación. Price admite decimales y se
// redondea al entero más cercano.
type CreateRepairRequest struct {
	Price           float64 `json:"price"`
	Description     string  `json:"description"`
	Status          string  `json:"status"`
	Type            string  `json:"type"`
	Employee        string  `json:"employee"`
	Client          string  `json:"client"`
	Inventory       string  `json:"inventory"`
	InventoryAmount int     `json:"inventory_amount"`
}

// UpdateRepairRequest reemplazo completo de los campos mutables de la
// reparación. No toca el stock ya descontado al crearla.
type UpdateRepairRequest struct {
	Price           float64 `json:"price"`
	Description     string  `json:"description"`
	Status          string  `json:"status"`
	Type            string  `json:"type"`
	Employee        string  `json:"employee"`
	Client          string  `json:"client"`
	Inventory       string  `json:"inventory"`
	InventoryAmount int     `json:"inventory_amount"`
}

// RepairResult resultado en dos fases del flujo de reparación: el resultado
// primario más el desenlace de cada paso secundario (factura).
type RepairResult struct {
	Repair      *entity.Repair `json:"repair"`
	SideEffects []SideEffect   `json:"side_effects,omitempty"`
}
