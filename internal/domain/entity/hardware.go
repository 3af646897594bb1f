package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jmoralesv/taller-api/internal/domain"
)

// HardwarePriorities prioridades de equipo de taller.
var HardwarePriorities = []string{"poco", "medio", "mucho", "indispensable"}

// Hardware equipo propio del taller (no se consume en reparaciones).
// Reabastecerlo también genera un asiento de compra, con tipo "equipo".
type Hardware struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Cost        int                `bson:"cost" json:"cost"`
	Stock       int                `bson:"stock" json:"stock"`
	Priority    string             `bson:"priority" json:"priority"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Normalize recorta los campos de texto y pasa el nombre a minúsculas.
func (h *Hardware) Normalize() {
	h.Name = strings.ToLower(strings.TrimSpace(h.Name))
	h.Description = strings.TrimSpace(h.Description)
}

// Validate aplica las reglas de esquema del equipo.
func (h *Hardware) Validate() error {
	if n := utf8.RuneCountInString(h.Name); n < 3 || n > 32 {
		return domain.Validation("name debe tener entre 3 y 32 caracteres")
	}
	if n := utf8.RuneCountInString(h.Description); n < 8 || n > 54 {
		return domain.Validation("description debe tener entre 8 y 54 caracteres")
	}
	if h.Cost < 20 || h.Cost > 120_000 {
		return domain.Validation("cost debe estar entre 20 y 120000")
	}
	if h.Stock < 0 || h.Stock > 2_500 {
		return domain.Validation("stock debe estar entre 0 y 2500")
	}
	if !IsHardwarePriority(h.Priority) {
		return domain.Validation("priority inválida")
	}
	return nil
}

// IsHardwarePriority indica si s es una prioridad válida.
func IsHardwarePriority(s string) bool {
	for _, p := range HardwarePriorities {
		if s == p {
			return true
		}
	}
	return false
}
