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

var _ repository.HardwareRepository = (*HardwareRepo)(nil)

// HardwareRepo adaptador de persistencia para equipos del taller.
type HardwareRepo struct {
	col *mongo.Collection
}

// NewHardwareRepository construye el adaptador sobre la colección hardwares.
func NewHardwareRepository(db *mongo.Database) *HardwareRepo {
	return &HardwareRepo{col: db.Collection("hardwares")}
}

// Create persiste un equipo nuevo.
func (r *HardwareRepo) Create(ctx context.Context, h *entity.Hardware) error {
	if h.ID.IsZero() {
		h.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, h); err != nil {
		return fmt.Errorf("insert hardware: %w", err)
	}
	return nil
}

// GetByID obtiene un equipo por id. (nil, nil) si no existe.
func (r *HardwareRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*entity.Hardware, error) {
	var h entity.Hardware
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&h)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("get hardware: %w", err)
	}
	return &h, nil
}

// List devuelve los equipos que cumplen el criterio.
func (r *HardwareRepo) List(ctx context.Context, q repository.ListQuery) ([]*entity.Hardware, error) {
	cur, err := r.col.Find(ctx, q.Filter, options.Find().SetSort(q.Sort))
	if err != nil {
		return nil, fmt.Errorf("list hardwares: %w", err)
	}
	defer cur.Close(ctx)

	items := []*entity.Hardware{}
	if err := cur.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode hardwares: %w", err)
	}
	return items, nil
}

// Update reemplaza el documento del equipo.
func (r *HardwareRepo) Update(ctx context.Context, h *entity.Hardware) error {
	h.UpdatedAt = time.Now()
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": h.ID}, h)
	if err != nil {
		return fmt.Errorf("update hardware: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un equipo por id.
func (r *HardwareRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete hardware: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// IncrementStock suma unidades y devuelve el documento actualizado.
func (r *HardwareRepo) IncrementStock(ctx context.Context, id primitive.ObjectID, amount int) (*entity.Hardware, error) {
	var h entity.Hardware
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{
			"$inc": bson.M{"stock": amount},
			"$set": bson.M{"updated_at": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&h)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("increment hardware stock: %w", err)
	}
	return &h, nil
}
