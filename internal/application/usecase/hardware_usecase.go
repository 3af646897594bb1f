package usecase

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jmoralesv/taller-api/internal/application/dto"
	"github.com/jmoralesv/taller-api/internal/domain"
	"github.com/jmoralesv/taller-api/internal/domain/entity"
	"github.com/jmoralesv/taller-api/internal/domain/query"
	"github.com/jmoralesv/taller-api/internal/domain/repository"
	"github.com/jmoralesv/taller-api/pkg/logger"
)

var hardwareListSpec = query.Spec{
	SearchField: "name",
	IDParam:     "_id",
	Enums: []query.Enum{
		{Param: "priority", Field: "priority", Values: entity.HardwarePriorities},
	},
	Ranges: []query.Range{
		{Param: "Cost", Field: "cost", Min: 20, Max: 120_000},
		{Param: "Stock", Field: "stock", Min: 0, Max: 2_500},
	},
	DateRange:  true,
	SortFields: []string{"name", "cost", "stock", "priority"},
}

// HardwareUseCase CRUD y reabastecimiento de equipos del taller. Las alzas
// de stock se asientan como compras de tipo "equipo".
type HardwareUseCase struct {
	repo      repository.HardwareRepository
	purchases repository.PurchaseRepository
	log       *logger.Logger
}

// NewHardwareUseCase construye el caso de uso.
func NewHardwareUseCase(
	repo repository.HardwareRepository,
	purchases repository.PurchaseRepository,
	log *logger.Logger,
) *HardwareUseCase {
	return &HardwareUseCase{repo: repo, purchases: purchases, log: log}
}

// Create crea un equipo. El stock inicial no puede superar 80 unidades y,
// si es mayor que cero, se asienta como compra.
func (uc *HardwareUseCase) Create(ctx context.Context, in dto.CreateHardwareRequest) (*entity.Hardware, error) {
	now := time.Now()
	h := &entity.Hardware{
		Name:        in.Name,
		Description: in.Description,
		Cost:        in.Cost,
		Stock:       in.Stock,
		Priority:    in.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	h.Normalize()
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if h.Stock > entity.MaxRestock {
		return nil, domain.Validation("el stock inicial no puede superar 80 unidades")
	}
	if err := uc.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	if h.Stock > 0 {
		uc.recordPurchase(ctx, h, h.Stock, "compra inicial")
	}
	return h, nil
}

// GetByID obtiene un equipo. (nil, nil) si no existe.
func (uc *HardwareUseCase) GetByID(ctx context.Context, idHex string) (*entity.Hardware, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, domain.Validation("id inválido")
	}
	return uc.repo.GetByID(ctx, id)
}

// List lista equipos según los query params crudos.
func (uc *HardwareUseCase) List(ctx context.Context, params map[string]string) ([]*entity.Hardware, error) {
	return uc.repo.List(ctx, hardwareListSpec.Build(params))
}

// Update reemplaza los campos del equipo.
func (uc *HardwareUseCase) Update(ctx context.Context, idHex string, in dto.UpdateHardwareRequest) (*entity.Hardware, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, domain.Validation("id inválido")
	}
	h, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, nil
	}
	h.Name = in.Name
	h.Description = in.Description
	h.Cost = in.Cost
	h.Stock = in.Stock
	h.Priority = in.Priority
	h.Normalize()
	if err := h.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// Restock suma amount unidades al equipo y asienta la compra. La cantidad
// debe ser un entero en (0, 80]. (nil, nil) si el id no resuelve.
func (uc *HardwareUseCase) Restock(ctx context.Context, idHex string, amount int) (*entity.Hardware, error) {
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
	h, err := uc.repo.IncrementStock(ctx, id, amount)
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, nil
	}
	uc.recordPurchase(ctx, h, amount, "reabastecimiento")
	return h, nil
}

// Delete elimina un equipo.
func (uc *HardwareUseCase) Delete(ctx context.Context, idHex string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return domain.Validation("id inválido")
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *HardwareUseCase) recordPurchase(ctx context.Context, h *entity.Hardware, amount int, reason string) {
	now := time.Now()
	p := &entity.Purchase{
		Type:        entity.PurchaseHardware,
		Description: fmt.Sprintf("%s de %d x %s", reason, amount, h.Name),
		Cost:        h.Cost * amount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := p.Validate(); err != nil {
		uc.log.Warn().Err(err).Str("hardware", h.Name).Int("amount", amount).
			Msg("asiento de compra fuera de rango, no se registró")
		return
	}
	if err := uc.purchases.Create(ctx, p); err != nil {
		uc.log.Error().Err(err).Str("hardware", h.Name).Int("amount", amount).
			Msg("no se pudo asentar la compra de equipo")
	}
}
