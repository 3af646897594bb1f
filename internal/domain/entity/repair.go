package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jmoralesv/taller-api/internal/domain"
)

// Estados de una reparación. El estado es libremente asignable en updates;
// no hay guardia de transición hacia adelante.
const (
	StatusNotStarted = "no iniciado"
	StatusInProgress = "en progreso"
	StatusFinished   = "finalizado"
)

// RepairStatuses estados válidos de una reparación.
var RepairStatuses = []string{StatusNotStarted, StatusInProgress, StatusFinished}

// Límites de consumo de repuesto por reparación.
const (
	MinRepairAmount = 1
	MaxRepairAmount = 8
)

// Repair orden de trabajo. Referencia cliente, empleado y repuesto por
// nombre (denormalizado); un renombre en la colección primaria exige
// propagación sobre estos campos.
type Repair struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Price           int                `bson:"price" json:"price"`
	Description     string             `bson:"description" json:"description"`
	Status          string             `bson:"status" json:"status"`
	Type            string             `bson:"type" json:"type"`
	Employee        string             `bson:"employee" json:"employee"`
	Client          string             `bson:"client" json:"client"`
	Inventory       string             `bson:"inventory" json:"inventory"`
	InventoryAmount int                `bson:"inventory_amount" json:"inventory_amount"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}

// Normalize recorta los campos de texto y pasa los nombres referenciados
// a minúsculas, igual que las colecciones primarias.
func (r *Repair) Normalize() {
	r.Description = strings.TrimSpace(r.Description)
	r.Employee = strings.ToLower(strings.TrimSpace(r.Employee))
	r.Client = strings.ToLower(strings.TrimSpace(r.Client))
	r.Inventory = strings.ToLower(strings.TrimSpace(r.Inventory))
}

// Validate aplica las reglas de esquema de la reparación.
func (r *Repair) Validate() error {
	if r.Price < 50 || r.Price > 200_000 {
		return domain.Validation("price debe estar entre 50 y 200000")
	}
	if n := utf8.RuneCountInString(r.Description); n < 8 || n > 120 {
		return domain.Validation("description debe tener entre 8 y 120 caracteres")
	}
	if !IsRepairStatus(r.Status) {
		return domain.Validation("status inválido")
	}
	if !IsInventoryType(r.Type) {
		return domain.Validation("type de reparación inválido")
	}
	for _, ref := range []struct{ field, value string }{
		{"employee", r.Employee},
		{"client", r.Client},
		{"inventory", r.Inventory},
	} {
		if n := utf8.RuneCountInString(ref.value); n < 3 || n > 32 {
			return domain.Validation(ref.field + " debe tener entre 3 y 32 caracteres")
		}
	}
	if r.InventoryAmount < MinRepairAmount || r.InventoryAmount > MaxRepairAmount {
		return domain.Validation("inventory_amount debe estar entre 1 y 8")
	}
	return nil
}

// IsRepairStatus indica si s es un estado válido.
func IsRepairStatus(s string) bool {
	for _, st := range RepairStatuses {
		if s == st {
			return true
		}
	}
	return false
}
