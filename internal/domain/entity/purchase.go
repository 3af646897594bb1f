package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jmoralesv/taller-api/internal/domain"
)

// Tipos de compra: repuestos de inventario o equipo del taller.
const (
	PurchaseInventory = "inventario"
	PurchaseHardware  = "equipo"
)

// PurchaseTypes tipos de compra válidos.
var PurchaseTypes = []string{PurchaseInventory, PurchaseHardware}

// Purchase asiento del libro de compras. Append-only: se agrega uno cada
// vez que sube el stock de un repuesto o equipo (alta inicial o
// reabastecimiento).
type Purchase struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Type        string             `bson:"type" json:"type"`
	Description string             `bson:"description" json:"description"`
	Cost        int                `bson:"cost" json:"cost"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Normalize recorta y pasa a minúsculas los campos de texto.
func (p *Purchase) Normalize() {
	p.Type = strings.ToLower(strings.TrimSpace(p.Type))
	p.Description = strings.TrimSpace(p.Description)
}

// Validate aplica las reglas de esquema de la compra.
func (p *Purchase) Validate() error {
	if !IsPurchaseType(p.Type) {
		return domain.Validation("type de compra inválido")
	}
	if n := utf8.RuneCountInString(p.Description); n < 4 || n > 120 {
		return domain.Validation("description debe tener entre 4 y 120 caracteres")
	}
	if p.Cost < 20 || p.Cost > 1_000_000 {
		return domain.Validation("cost debe estar entre 20 y 1000000")
	}
	return nil
}

// IsPurchaseType indica si s es un tipo de compra válido.
func IsPurchaseType(s string) bool {
	for _, t := range PurchaseTypes {
		if s == t {
			return true
		}
	}
	return false
}
