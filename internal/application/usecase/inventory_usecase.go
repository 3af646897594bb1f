package usecase

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jmoralesv/taller-api/internal/application/dto"
	"github.com/jmoralesv/taller-api/internal/application/repairs"
	"github.com/jmoralesv/taller-api/internal/domain"
	"github.com/jmoralesv/taller-api/internal/domain/entity"
	"github.com/jmoralesv/taller-api/internal/domain/query"
	"github.com/jmoralesv/taller-api/internal/domain/repository"
	"github.com/jmoralesv/taller-api/pkg/logger"
)

var inventoryListSpec = query.Spec{
	SearchField: "name",
	IDParam:     "_id",
	Enums: []query.Enum{
		{Param: "type", Field: "type", Values: entity.InventoryTypes},
	},
	Ranges: []query.Range{
		{Param: "Cost", Field: "cost", Min: 20, Max: 120_000},
		{Param: "Stock", Field: "stock", Min: 0, Max: 2_500},
	},
	DateRange:  true,
	SortFields: []string{"name", "cost", "stock"},
}

// InventoryUseCase CRUD y control de stock de repuestos. Cada alza de stock
// (alta inicial o reabastecimiento) agrega un asiento al libro de compras;
// el fallo del asiento se registra y no revierte el alza.
type InventoryUseCase struct {
	repo       repository.InventoryRepository
	purchases  repository.PurchaseRepository
	propagator *repairs.RenamePropagator
	log        *logger.Logger
}

// NewInventoryUseCase construye el caso de uso.
func NewInventoryUseCase(
	repo repository.InventoryRepository,
	purchases repository.PurchaseRepository,
	propagator *repairs.RenamePropagator,
	log *logger.Logger,
) *InventoryUseCase {
	return &InventoryUseCase{repo: repo, purchases: purchases, propagator: propagator, log: log}
}

// Create crea un repuesto. El stock inicial no puede superar 80 unidades y,
// si es mayor que cero, se asienta como compra.
func (uc *InventoryUseCase) Create(ctx context.Context, in dto.CreateInventoryRequest) (*entity.Inventory, error) {
	now := time.Now()
	i := &entity.Inventory{
		Name:        in.Name,
		Description: in.Description,
		Type:        in.Type,
		Cost:        in.Cost,
		Stock:       in.Stock,
		Min:         in.Min,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	i.Normalize()
	if err := i.Validate(); err != nil {
		return nil, err
	}
	if i.Stock > entity.MaxRestock {
		return nil, domain.Validation("el stock inicial no puede superar 80 unidades")
	}
	existing, _ := uc.repo.GetByName(ctx, i.Name)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.repo.Create(ctx, i); err != nil {
		return nil, err
	}
	if i.Stock > 0 {
		uc.recordPurchase(ctx, i, i.Stock, "compra inicial")
	}
	return i, nil
}

// GetByID obtiene un repuesto. (nil, nil) si no existe.
func (uc *InventoryUseCase) GetByID(ctx context.Context, idHex string) (*entity.Inventory, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, domain.Validation("id inválido")
	}
	return uc.repo.GetByID(ctx, id)
}

// List lista repuestos según los query params crudos.
func (uc *InventoryUseCase) List(ctx context.Context, params map[string]string) ([]*entity.Inventory, error) {
	return uc.repo.List(ctx, inventoryListSpec.Build(params))
}

// Update reemplaza los campos del repuesto. Si el nombre cambió, propaga el
// renombre a las reparaciones que lo consumen.
func (uc *InventoryUseCase) Update(ctx context.Context, idHex string, in dto.UpdateInventoryRequest) (*entity.Inventory, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, domain.Validation("id inválido")
	}
	i, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, nil
	}
	oldName := i.Name
	i.Name = in.Name
	i.Description = in.Description
	i.Type = in.Type
	i.Cost = in.Cost
	i.Stock = in.Stock
	i.Min = in.Min
	i.Normalize()
	if err := i.Validate(); err != nil {
		return nil, err
	}
	if i.Name != oldName {
		existing, _ := uc.repo.GetByName(ctx, i.Name)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	if err := uc.repo.Update(ctx, i); err != nil {
		return nil, err
	}
	if i.Name != oldName {
		uc.propagator.InventoryRenamed(ctx, oldName, i.Name)
	}
	return i, nil
}

// Restock suma amount unidades al repuesto y asienta la compra
// (cost = costo unitario × amount). La cantidad debe ser un entero en
// (0, 80]. (nil, nil) si el id no resuelve.
func (uc *InventoryUseCase) Restock(ctx context.Context, idHex string, amount int) (*entity.Inventory, error) {
	if amount <= 0 {
		return nil, domain.Validation("la cantidad a comprar debe ser mayor que 0")
	}
	if amount > entity.MaxRestock {
		return nil, domain.Validation("no se pueden comprar más de 80 unidades a la vez")
	}
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, domain.Validation("id inválido")
	}
	i, err := uc.repo.IncrementStock(ctx, id, amount)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, nil
	}
	uc.recordPurchase(ctx, i, amount, "reabastecimiento")
	return i, nil
}

// Delete elimina un repuesto.
func (uc *InventoryUseCase) Delete(ctx context.Context, idHex string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return domain.Validation("id inválido")
	}
	return uc.repo.Delete(ctx, id)
}

// recordPurchase asienta la compra en el libro. Solo se registra el fallo:
// el alza de stock ya ocurrió y manda.
func (uc *InventoryUseCase) recordPurchase(ctx context.Context, i *entity.Inventory, amount int, reason string) {
	now := time.Now()
	p := &entity.Purchase{
		Type:        entity.PurchaseInventory,
		Description: fmt.Sprintf("%s de %d x %s", reason, amount, i.Name),
		Cost:        i.Cost * amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := p.Validate(); err != nil {
		uc.log.Warn().Err(err).Str("inventory", i.Name).Int("amount", amount).
			Msg("asiento de compra fuera de rango, no se registró")
		return
	}
	if err := uc.purchases.Create(ctx, p); err != nil {
		uc.log.Error().Err(err).Str("inventory", i.Name).Int("amount", amount).
			Msg("no se pudo asentar la compra de repuestos")
	}
}
