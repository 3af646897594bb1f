package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jmoralesv/taller-api/internal/domain/entity"
)

// HardwareRepository puerto de persistencia para equipos del taller.
type HardwareRepository interface {
	Create(ctx context.Context, h *entity.Hardware) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Hardware, error)
	List(ctx context.Context, q ListQuery) ([]*entity.Hardware, error)
	Update(ctx context.Context, h *entity.Hardware) error
	Delete(ctx context.Context, id primitive.ObjectID) error

	// IncrementStock suma amount al stock y devuelve el documento
	// actualizado. (nil, nil) si el id no existe.
	IncrementStock(ctx context.Context, id primitive.ObjectID, amount int) (*entity.Hardware, error)
}
