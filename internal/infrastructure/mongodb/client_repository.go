package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jmoralesv/taller-api/internal/domain"
	"github.com/jmoralesv/taller-api/internal/domain/entity"
	"github.com/jmoralesv/taller-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo adaptador de persistencia para clientes.
type ClientRepo struct {
	col *mongo.Collection
}

// NewClientRepository construye el adaptador sobre la colección clients.
func NewClientRepository(db *mongo.Database) *ClientRepo {
	return &ClientRepo{col: db.Collection("clients")}
}

// Create persiste un cliente nuevo.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, c); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por id. (nil, nil) si no existe.
func (r *ClientRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Client, error) {
	var c entity.Client
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return &c, nil
}

// GetByName obtiene un cliente por nombre (ya normalizado a minúsculas).
func (r *ClientRepo) GetByName(ctx context.Context, name string) (*entity.Client, error) {
	var c entity.Client
	err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get client by name: %w", err)
	}
	return &c, nil
}

// List devuelve los clientes que cumplen el criterio.
func (r *ClientRepo) List(ctx context.Context, q repository.ListQuery) ([]*entity.Client, error) {
	cur, err := r.col.Find(ctx, q.Filter, options.Find().SetSort(q.Sort))
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer cur.Close(ctx)

	clients := []*entity.Client{}
	if err := cur.All(ctx, &clients); err != nil {
		return nil, fmt.Errorf("decode clients: %w", err)
	}
	return clients, nil
}

// Update reemplaza el documento del cliente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	c.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update client: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un cliente por id.
func (r *ClientRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete client: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
