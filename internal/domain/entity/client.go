package entity

import (
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jmoralesv/taller-api/internal/domain"
)

// Client cliente del taller. Las reparaciones lo referencian por nombre,
// por eso el nombre es único y se normaliza a minúsculas.
type Client struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Contact   string             `bson:"contact" json:"contact"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// Normalize recorta y pasa a minúsculas los campos de texto.
func (c *Client) Normalize() {
	c.Name = strings.ToLower(strings.TrimSpace(c.Name))
	c.Contact = strings.ToLower(strings.TrimSpace(c.Contact))
}

// Validate aplica las reglas de esquema del cliente.
func (c *Client) Validate() error {
	if n := utf8.RuneCountInString(c.Name); n < 3 || n > 32 {
		return domain.Validation("name debe tener entre 3 y 32 caracteres")
	}
	if n := utf8.RuneCountInString(c.Contact); n < 3 || n > 52 {
		return domain.Validation("contact debe tener entre 3 y 52 caracteres")
	}
	return nil
}
