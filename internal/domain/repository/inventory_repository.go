package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jmoralesv/taller-api/internal/domain/entity"
)

// InventoryRepository puerto de persistencia para repuestos.
type InventoryRepository interface {
	Create(ctx context.Context, i *entity.Inventory) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Inventory, error)
	GetByName(ctx context.Context, name string) (*entity.Inventory, error)
	List(ctx context.Context, q ListQuery) ([]*entity.Inventory, error)
	Update(ctx context.Context, i *entity.Inventory) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// DecrementIfAvailable descuenta amount del stock del repuesto llamado
	// name en una sola actualización condicional: solo aplica si el stock
	// resultante queda >= 0. Devuelve domain.ErrNotFound si el repuesto no
	// existe y domain.ErrInsufficientStock si existe pero no alcanza.
	DecrementIfAvailable(ctx context.Context, name string, amount int) error

	// RestoreStock devuelve amount unidades al repuesto llamado name.
	// Compensación best-effort cuando falla un paso posterior al descuento.
	RestoreStock(ctx context.Context, name string, amount int) error

	// IncrementStock suma amount al stock y devuelve el documento
	// actualizado. (nil, nil) si el id no existe.
	IncrementStock(ctx context.Context, id primitive.ObjectID, amount int) (*entity.Inventory, error)
}
