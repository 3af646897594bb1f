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

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

// PurchaseRepo adaptador de persistencia para el libro de compras.
type PurchaseRepo struct {
	col *mongo.Collection
}

// NewPurchaseRepository construye el adaptador sobre la colección purchases.
func NewPurchaseRepository(db *mongo.Database) *PurchaseRepo {
	return &PurchaseRepo{col: db.Collection("purchases")}
}

// Create persiste un asiento de compra.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// GetByID obtiene una compra por id. (nil, nil) si no existe.
func (r *PurchaseRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Purchase, error) {
	var p entity.Purchase
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}

// List devuelve las compras que cumplen el criterio.
func (r *PurchaseRepo) List(ctx context.Context, q repository.ListQuery) ([]*entity.Purchase, error) {
	cur, err := r.col.Find(ctx, q.Filter, options.Find().SetSort(q.Sort))
	if err != nil {
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	defer cur.Close(ctx)

	purchases := []*entity.Purchase{}
	if err := cur.All(ctx, &purchases); err != nil {
		return nil, fmt.Errorf("decode purchases: %w", err)
	}
	return purchases, nil
}

// Update reemplaza el documento de la compra.
func (r *PurchaseRepo) Update(ctx context.Context, p *entity.Purchase) error {
	p.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("update purchase: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una compra por id.
func (r *PurchaseRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete purchase: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
