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

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo adaptador de persistencia para repuestos.
type InventoryRepo struct {
	col *mongo.Collection
}

// NewInventoryRepository construye el adaptador sobre la colección inventories.
func NewInventoryRepository(db *mongo.Database) *InventoryRepo {
	return &InventoryRepo{col: db.Collection("inventories")}
}

// Create persiste un repuesto nuevo.
func (r *InventoryRepo) Create(ctx context.Context, i *entity.Inventory) error {
	if i.ID.IsZero() {
		i.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, i); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory: %w", err)
	}
	return nil
}

// GetByID obtiene un repuesto por id. (nil, nil) si no existe.
func (r *InventoryRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Inventory, error) {
	var i entity.Inventory
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&i)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory: %w", err)
	}
	return &i, nil
}

// GetByName obtiene un repuesto por nombre (ya normalizado a minúsculas).
func (r *InventoryRepo) GetByName(ctx context.Context, name string) (*entity.Inventory, error) {
	var i entity.Inventory
	err := r.col.FindOne(ctx, bson.M{"name": name}).Decode(&i)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory by name: %w", err)
	}
	return &i, nil
}

// List devuelve los repuestos que cumplen el criterio.
func (r *InventoryRepo) List(ctx context.Context, q repository.ListQuery) ([]*entity.Inventory, error) {
	cur, err := r.col.Find(ctx, q.Filter, options.Find().SetSort(q.Sort))
	if err != nil {
		return nil, fmt.Errorf("list inventories: %w", err)
	}
	defer cur.Close(ctx)

	items := []*entity.Inventory{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode inventories: %w", err)
	}
	return items, nil
}

// Update reemplaza el documento del repuesto.
func (r *InventoryRepo) Update(ctx context.Context, i *entity.Inventory) error {
	i.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": i.ID}, i)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update inventory: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un repuesto por id.
func (r *InventoryRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete inventory: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DecrementIfAvailable descuenta stock en una sola actualización condicional:
// el filtro exige stock >= amount, así dos peticiones concurrentes no pueden
// sobrevender el mismo repuesto.
func (r *InventoryRepo) DecrementIfAvailable(ctx context.Context, name string, amount int) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"name": name, "stock": bson.M{"$gte": amount}},
		bson.M{
			"$inc": bson.M{"stock": -amount},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("decrement inventory stock: %w", err)
	}
	if res.MatchedCount == 0 {
		n, err := r.col.CountDocuments(ctx, bson.M{"name": name})
		if err != nil {
			return fmt.Errorf("check inventory exists: %w", err)
		}
		if n == 0 {
			return domain.ErrNotFound
		}
		return domain.ErrInsufficientStock
	}
	return nil
}

// RestoreStock devuelve unidades descontadas. Solo se usa como compensación
// cuando falla la persistencia de la reparación después del descuento.
func (r *InventoryRepo) RestoreStock(ctx context.Context, name string, amount int) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{
			"$inc": bson.M{"stock": amount},
			"$set": bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return fmt.Errorf("restore inventory stock: %w", err)
	}
	return nil
}

// IncrementStock suma unidades y devuelve el documento actualizado.
func (r *InventoryRepo) IncrementStock(ctx context.Context, id primitive.ObjectID, amount int) (*entity.Inventory, error) {
	var i entity.Inventory
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"stock": amount},
			"$set": bson.M{"updated_at": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&i)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("increment inventory stock: %w", err)
	}
	return &i, nil
}
