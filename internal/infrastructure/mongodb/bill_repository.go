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

var _ repository.BillRepository = (*BillRepo)(nil)

// BillRepo adaptador de persistencia para facturas.
type BillRepo struct {
	col *mongo.Collection
}

// NewBillRepository construye el adaptador sobre la colección bills.
func NewBillRepository(db *mongo.Database) *BillRepo {
	return &BillRepo{col: db.Collection("bills")}
}

// Create persiste una factura nueva.
func (r *BillRepo) Create(ctx context.Context, b *entity.Bill) error {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, b); err != nil {
		return fmt.Errorf("insert bill: %w", err)
	}
	return nil
}

// GetByID obtiene una factura por id. (nil, nil) si no existe.
func (r *BillRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Bill, error) {
	var b entity.Bill
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill: %w", err)
	}
	return &b, nil
}

// GetByRepairID obtiene la factura ligada a una reparación; la más antigua
// si hubiera varias. (nil, nil) si no hay ninguna.
func (r *BillRepo) GetByRepairID(ctx context.Context, repairID primitive.ObjectID) (*entity.Bill, error) {
	var b entity.Bill
	err := r.col.FindOne(ctx,
		bson.M{"id_repair": repairID},
		options.FindOne().SetSort(bson.D{{Key: "_id", Value: 1}}),
	).Decode(&b)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bill by repair: %w", err)
	}
	return &b, nil
}

// List devuelve las facturas que cumplen el criterio.
func (r *BillRepo) List(ctx context.Context, q repository.ListQuery) ([]*entity.Bill, error) {
	cur, err := r.col.Find(ctx, q.Filter, options.Find().SetSort(q.Sort))
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	defer cur.Close(ctx)

	bills := []*entity.Bill{}
	if err := cur.All(ctx, &bills); err != nil {
		return nil, fmt.Errorf("decode bills: %w", err)
	}
	return bills, nil
}

// Update reemplaza el documento de la factura.
func (r *BillRepo) Update(ctx context.Context, b *entity.Bill) error {
	b.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": b.ID}, b)
	if err != nil {
		return fmt.Errorf("update bill: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una factura por id.
func (r *BillRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
