package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jmoralesv/taller-api/internal/domain"
)

// Bill factura derivada de una reparación. Se crea automáticamente al crear
// la reparación (amount = price, paid = false) y se resincroniza en cada
// update. Por convención hay una por reparación; no se fuerza unicidad.
type Bill struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Amount      int                `bson:"amount" json:"amount"`
	Description string             `bson:"description" json:"description"`
	Type        string             `bson:"type" json:"type"`
	Paid        bool               `bson:"paid" json:"paid"`
	IDRepair    primitive.ObjectID `bson:"id_repair" json:"id_repair"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Validate aplica las reglas de esquema de la factura.
func (b *Bill) Validate() error {
	if b.Amount < 20 || b.Amount > 1_000_000 {
		return domain.Validation("amount debe estar entre 20 y 1000000")
	}
	if b.IDRepair.IsZero() {
		return domain.Validation("id_repair es requerido")
	}
	return nil
}
