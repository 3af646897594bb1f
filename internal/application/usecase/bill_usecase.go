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

var billListSpec = query.Spec{
	SearchField: "description",
	IDParam:     "id_repair",
	IDField:     "id_repair",
	Ranges: []query.Range{
		{Param: "Amount", Field: "amount", Min: 20, Max: 1_000_000},
	},
	DateRange:  true,
	SortFields: []string{"amount"},
}

// BillUseCase CRUD de facturas. Las facturas normales nacen del flujo de
// reparación; este CRUD permite marcarlas pagadas y corregirlas.
type BillUseCase struct {
	repo repository.BillRepository
}

// NewBillUseCase construye el caso de uso.
func NewBillUseCase(repo repository.BillRepository) *BillUseCase {
	return &BillUseCase{repo: repo}
}

// Create crea una factura manual ligada a una reparación.
func (uc *BillUseCase) Create(ctx context.Context, in dto.CreateBillRequest) (*entity.Bill, error) {
	repairID, err := primitive.ObjectIDFromHex(in.IDRepair)
	if err != nil {
		return nil, domain.Validation("id_repair inválido")
	}
	now := time.Now()
	b := &entity.Bill{
		Amount:      in.Amount,
		Description: in.Description,
		Type:        in.Type,
		Paid:        in.Paid,
		IDRepair:    repairID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetByID obtiene una factura. (nil, nil) si no existe.
func (uc *BillUseCase) GetByID(ctx context.Context, idHex string) (*entity.Bill, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, domain.Validation("id inválido")
	}
	return uc.repo.GetByID(ctx, id)
}

// List lista facturas según los query params crudos.
func (uc *BillUseCase) List(ctx context.Context, params map[string]string) ([]*entity.Bill, error) {
	return uc.repo.List(ctx, billListSpec.Build(params))
}

// Update reemplaza los campos de la factura; no permite moverla a otra
// reparación.
func (uc *BillUseCase) Update(ctx context.Context, idHex string, in dto.UpdateBillRequest) (*entity.Bill, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, domain.Validation("id inválido")
	}
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}
	b.Amount = in.Amount
	b.Description = in.Description
	b.Type = in.Type
	b.Paid = in.Paid
	if err := b.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Delete elimina una factura.
func (uc *BillUseCase) Delete(ctx context.Context, idHex string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return domain.Validation("id inválido")
	}
	return uc.repo.Delete(ctx, id)
}
