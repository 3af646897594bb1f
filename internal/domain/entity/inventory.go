package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jmoralesv/taller-api/internal/domain"
)

// InventoryTypes tipos de repuesto admitidos.
var InventoryTypes = []string{
	"batería",
	"centro de carga",
	"pantalla",
	"tapa trasera",
	"micrófono",
	"placa madre",
	"circuitos integrados",
}

// MaxRestock tope de unidades por compra: tanto el stock inicial de un
// repuesto nuevo como cada reabastecimiento posterior.
const MaxRestock = 80

// Inventory repuesto en bodega. El stock lo mutan las reparaciones
// (decremento) y los reabastecimientos (incremento con asiento de compra).
type Inventory struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Type        string             `bson:"type" json:"type"`
	Cost        int                `bson:"cost" json:"cost"`
	Stock       int                `bson:"stock" json:"stock"`
	Min         int                `bson:"min" json:"min"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Normalize recorta los campos de texto y pasa el nombre a minúsculas.
func (i *Inventory) Normalize() {
	i.Name = strings.ToLower(strings.TrimSpace(i.Name))
	i.Description = strings.TrimSpace(i.Description)
}

// Validate aplica las reglas de esquema del repuesto.
func (i *Inventory) Validate() error {
	if n := utf8.RuneCountInString(i.Name); n < 3 || n > 32 {
		return domain.Validation("name debe tener entre 3 y 32 caracteres")
	}
	if n := utf8.RuneCountInString(i.Description); n < 8 || n > 54 {
		return domain.Validation("description debe tener entre 8 y 54 caracteres")
	}
	if !IsInventoryType(i.Type) {
		return domain.Validation("type de repuesto inválido")
	}
	if i.Cost < 20 || i.Cost > 120_000 {
		return domain.Validation("cost debe estar entre 20 y 120000")
	}
	if i.Stock < 0 || i.Stock > 2_500 {
		return domain.Validation("stock debe estar entre 0 y 2500")
	}
	if i.Min < 0 || i.Min > 2_500 {
		return domain.Validation("min debe estar entre 0 y 2500")
	}
	return nil
}

// IsInventoryType indica si s es un tipo de repuesto válido.
func IsInventoryType(s string) bool {
	for _, t := range InventoryTypes {
		if s == t {
			return true
		}
	}
	return false
}
