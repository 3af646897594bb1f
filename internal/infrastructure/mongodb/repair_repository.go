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

var _ repository.RepairRepository = (*RepairRepo)(nil)

// RepairRepo adaptador de persistencia para reparaciones.
type RepairRepo struct {
	col *mongo.Collection
}

// NewRepairRepository construye el adaptador sobre la colección repairs.
func NewRepairRepository(db *mongo.Database) *RepairRepo {
	return &RepairRepo{col: db.Collection("repairs")}
}

// Create persiste una reparación nueva.
func (r *RepairRepo) Create(ctx context.Context, rep *entity.Repair) error {
	if rep.ID.IsZero() {
		rep.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, rep); err != nil {
		return fmt.Errorf("insert repair: %w", err)
	}
	return nil
}

// GetByID obtiene una reparación por id. (nil, nil) si no existe.
func (r *RepairRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Repair, error) {
	var rep entity.Repair
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&rep)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get repair: %w", err)
	}
	return &rep, nil
}

// List devuelve las reparaciones que cumplen el criterio.
func (r *RepairRepo) List(ctx context.Context, q repository.ListQuery) ([]*entity.Repair, error) {
	cur, err := r.col.Find(ctx, q.Filter, options.Find().SetSort(q.Sort))
	if err != nil {
		return nil, fmt.Errorf("list repairs: %w", err)
	}
	defer cur.Close(ctx)

	repairs := []*entity.Repair{}
	if err := cur.All(ctx, &repairs); err != nil {
		return nil, fmt.Errorf("decode repairs: %w", err)
	}
	return repairs, nil
}

// Update reemplaza el documento de la reparación.
func (r *RepairRepo) Update(ctx context.Context, rep *entity.Repair) error {
	rep.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": rep.ID}, rep)
	if err != nil {
		return fmt.Errorf("update repair: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una reparación por id. No limpia factura ni stock.
func (r *RepairRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete repair: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateNameRefs propaga un renombre sobre el campo denormalizado indicado.
func (r *RepairRepo) UpdateNameRefs(ctx context.Context, field, oldName, newName string) (int64, error) {
	res, err := r.col.UpdateMany(ctx,
		bson.M{field: oldName},
		bson.M{"$set": bson.M{field: newName, "updated_at": time.Now()}},
	)
	if err != nil {
		return 0, fmt.Errorf("propagate %s rename: %w", field, err)
	}
	return res.ModifiedCount, nil
}
