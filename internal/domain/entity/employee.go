package entity

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jmoralesv/taller-api/internal/domain"
)

// Roles de empleado. El rol viaja en el JWT y decide el acceso RBAC.
const (
	RoleReparador = "reparador"
	RoleFinanzas  = "finanzas"
	RoleAdmin     = "admin"
	RoleUser      = "user"
)

// EmployeeRoles roles válidos para un empleado.
var EmployeeRoles = []string{RoleReparador, RoleFinanzas, RoleAdmin, RoleUser}

var (
	emailRe = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	phoneRe = regexp.MustCompile(`^\d{4}-\d{4}$`)
)

// Employee empleado del taller. Referenciado por nombre desde Repair.
// PasswordHash nunca se serializa hacia el cliente.
type Employee struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	Role         string             `bson:"role" json:"role"`
	Phone        string             `bson:"phone" json:"phone"`
	Age          int                `bson:"age" json:"age"`
	Direction    string             `bson:"direction,omitempty" json:"direction,omitempty"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updated_at"`
}

// Normalize recorta los campos de texto y pasa el nombre a minúsculas.
func (e *Employee) Normalize() {
	e.Name = strings.ToLower(strings.TrimSpace(e.Name))
	e.Email = strings.TrimSpace(e.Email)
	e.Phone = strings.TrimSpace(e.Phone)
	e.Direction = strings.TrimSpace(e.Direction)
}

// Validate aplica las reglas de esquema del empleado.
func (e *Employee) Validate() error {
	if n := utf8.RuneCountInString(e.Name); n < 3 || n > 32 {
		return domain.Validation("name debe tener entre 3 y 32 caracteres")
	}
	if n := len(e.Email); n < 8 || n > 54 || !emailRe.MatchString(e.Email) {
		return domain.Validation("email inválido")
	}
	if !IsEmployeeRole(e.Role) {
		return domain.Validation("role inválido")
	}
	if !phoneRe.MatchString(e.Phone) {
		return domain.Validation("phone debe tener el formato 0000-0000")
	}
	if e.Age < 16 || e.Age > 80 {
		return domain.Validation("age debe estar entre 16 y 80")
	}
	if e.Direction != "" {
		if n := utf8.RuneCountInString(e.Direction); n < 6 || n > 100 {
			return domain.Validation("direction debe tener entre 6 y 100 caracteres")
		}
	}
	return nil
}

// IsEmployeeRole indica si s es un rol válido.
func IsEmployeeRole(s string) bool {
	for _, r := range EmployeeRoles {
		if s == r {
			return true
		}
	}
	return false
}
