package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jmoralesv/taller-api/internal/domain/entity"
)

// ClientRepository puerto de persistencia para clientes.
// GetByID y GetByName devuelven (nil, nil) si no existe.
type ClientRepository interface {
	Create(ctx context.Context, c *entity.Client) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Client, error)
	GetByName(ctx context.Context, name string) (*entity.Client, error)
	List(ctx context.Context, q ListQuery) ([]*entity.Client, error)
	Update(ctx context.Context, c *entity.Client) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
