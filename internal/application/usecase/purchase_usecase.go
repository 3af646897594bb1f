package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jmoralesv/taller-api/internal/application/dto"
	"github.com/jmoralesv/taller-api/internal/domain"
	"github.com/jmoralesv/taller-api/internal/domain/entity"
	"github.com/jmoralesv/taller-api/internal/domain/query"
	"github.com/jmoralesv/taller-api/internal/domain/repository"
)

var purchaseListSpec = query.Spec{
	SearchField: "description",
	IDParam:     "_id",
	Enums: []query.Enum{
		{Param: "type", Field: "type", Values: entity.PurchaseTypes},
	},
	Ranges: []query.Range{
		{Param: "Cost", Field: "cost", Min: 20, Max: 1_000_000},
	},
	DateRange:  true,
	SortFields: []string{"cost", "type"},
}

// PurchaseUseCase CRUD del libro de compras. Los asientos normales nacen de
// las altas y reabastecimientos; este CRUD permite consultas y correcciones.
type PurchaseUseCase struct {
	repo repository.PurchaseRepository
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(repo repository.PurchaseRepository) *PurchaseUseCase {
	return &PurchaseUseCase{repo: repo}
}

// Create asienta una compra manual.
func (uc *PurchaseUseCase) Create(ctx context.Context, in dto.CreatePurchaseRequest) (*entity.Purchase, error) {
	now := time.Now()
	p := &entity.Purchase{
		Type:        in.Type,
		Description: in.Description,
		Cost:        in.Cost,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetByID obtiene una compra. (nil, nil) si no existe.
func (uc *PurchaseUseCase) GetByID(ctx context.Context, idHex string) (*entity.Purchase, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, domain.Validation("id inválido")
	}
	return uc.repo.GetByID(ctx, id)
}

// List lista compras según los query params crudos.
func (uc *PurchaseUseCase) List(ctx context.Context, params map[string]string) ([]*entity.Purchase, error) {
	return uc.repo.List(ctx, purchaseListSpec.Build(params))
}

// Update reemplaza los campos de la compra.
func (uc *PurchaseUseCase) Update(ctx context.Context, idHex string, in dto.UpdatePurchaseRequest) (*entity.Purchase, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, domain.Validation("id inválido")
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	p.Type = in.Type
	p.Description = in.Description
	p.Cost = in.Cost
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete elimina una compra.
func (uc *PurchaseUseCase) Delete(ctx context.Context, idHex string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return domain.Validation("id inválido")
	}
	return uc.repo.Delete(ctx, id)
}
