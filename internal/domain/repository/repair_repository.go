package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jmoralesv/taller-api/internal/domain/entity"
)

// RepairRepository puerto de persistencia para reparaciones.
type RepairRepository interface {
	Create(ctx context.Context, r *entity.Repair) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Repair, error)
	List(ctx context.Context, q ListQuery) ([]*entity.Repair, error)
	Update(ctx context.Context, r *entity.Repair) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// UpdateNameRefs propaga un renombre: cambia field (client, employee o
	// inventory) de oldName a newName en todas las reparaciones que tengan
	// exactamente oldName. Devuelve cuántas se modificaron.
	UpdateNameRefs(ctx context.Context, field, oldName, newName string) (int64, error)
}
