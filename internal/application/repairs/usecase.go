// Package repairs orquesta el flujo de reparaciones: descuento de stock,
// factura ligada y resincronización. El paso primario (la reparación) manda;
// los pasos secundarios se reportan como SideEffect y se registran en el log
// pero nunca degradan el resultado primario.
package repairs

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jmoralesv/taller-api/internal/application/dto"
	"github.com/jmoralesv/taller-api/internal/domain"
	"github.com/jmoralesv/taller-api/internal/domain/entity"
	"github.com/jmoralesv/taller-api/internal/domain/query"
	"github.com/jmoralesv/taller-api/internal/domain/repository"
	"github.com/jmoralesv/taller-api/pkg/logger"
)

// Pasos secundarios reportados en RepairResult.
const (
	StepBillCreate = "bill_create"
	StepBillSync   = "bill_sync"
)

var listSpec = query.Spec{
	SearchField: "description",
	IDParam:     "_id",
	Enums: []query.Enum{
		{Param: "status", Field: "status", Values: entity.RepairStatuses},
		{Param: "type", Field: "type", Values: entity.InventoryTypes},
	},
	Ranges: []query.Range{
		{Param: "Price", Field: "price", Min: 50, Max: 200_000},
	},
	DateRange:  true,
	SortFields: []string{"price", "status"},
}

// UseCase flujo de reparaciones sobre Repair × Inventory × Bill.
type UseCase struct {
	repairs     repository.RepairRepository
	inventories repository.InventoryRepository
	bills       repository.BillRepository
	log         *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	repairs repository.RepairRepository,
	inventories repository.InventoryRepository,
	bills repository.BillRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{repairs: repairs, inventories: inventories, bills: bills, log: log}
}

// Create valida la reparación, descuenta el stock del repuesto en una sola
// actualización condicional (existencia + disponibilidad, sin ventana
// check-then-act), persiste la reparación y crea su factura. El fallo de la
// factura no revierte nada: queda en SideEffects y en el log.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateRepairRequest) (*dto.RepairResult, error) {
	now := time.Now()
	rep := &entity.Repair{
		Price:           int(math.Round(in.Price)),
		Description:     in.Description,
		Status:          in.Status,
		Type:            in.Type,
		Employee:        in.Employee,
		Client:          in.Client,
		Inventory:       in.Inventory,
		InventoryAmount: in.InventoryAmount,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	rep.Normalize()
	if err := rep.Validate(); err != nil {
		return nil, err
	}

	if err := uc.inventories.DecrementIfAvailable(ctx, rep.Inventory, rep.InventoryAmount); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Validation("el repuesto " + rep.Inventory + " no existe")
		}
		return nil, err
	}

	opID := uuid.New().String()
	if err := uc.repairs.Create(ctx, rep); err != nil {
		// El stock ya se descontó; devolverlo es best-effort.
		if rerr := uc.inventories.RestoreStock(ctx, rep.Inventory, rep.InventoryAmount); rerr != nil {
			uc.log.Error().Err(rerr).
				Str("op", opID).
				Str("inventory", rep.Inventory).
				Int("amount", rep.InventoryAmount).
				Msg("no se pudo devolver el stock descontado")
		}
		return nil, err
	}

	result := &dto.RepairResult{Repair: rep}
	bill := &entity.Bill{
		Amount:      rep.Price,
		Description: rep.Description,
		Type:        rep.Type,
		Paid:        false,
		IDRepair:    rep.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.bills.Create(ctx, bill); err != nil {
		uc.log.Error().Err(err).
			Str("op", opID).
			Str("repair_id", rep.ID.Hex()).
			Msg("no se pudo crear la factura de la reparación")
		result.SideEffects = append(result.SideEffects, dto.SideEffect{Step: StepBillCreate, Error: err.Error()})
	} else {
		result.SideEffects = append(result.SideEffects, dto.SideEffect{Step: StepBillCreate, OK: true})
	}
	return result, nil
}

// Update reemplaza los campos mutables de la reparación y resincroniza su
// factura. No ajusta el stock descontado al crear. (nil, nil) si el id no
// resuelve.
func (uc *UseCase) Update(ctx context.Context, idHex string, in dto.UpdateRepairRequest) (*dto.RepairResult, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, domain.Validation("id inválido")
	}
	rep, err := uc.repairs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, nil
	}

	rep.Price = int(math.Round(in.Price))
	rep.Description = in.Description
	rep.Status = in.Status
	rep.Type = in.Type
	rep.Employee = in.Employee
	rep.Client = in.Client
	rep.Inventory = in.Inventory
	rep.InventoryAmount = in.InventoryAmount
	rep.Normalize()
	if err := rep.Validate(); err != nil {
		return nil, err
	}
	if err := uc.repairs.Update(ctx, rep); err != nil {
		return nil, err
	}

	result := &dto.RepairResult{Repair: rep}
	result.SideEffects = append(result.SideEffects, uc.syncBill(ctx, rep))
	return result, nil
}

// SyncBill resincroniza la factura de una reparación sin tocarla, para
// reconciliación manual. (nil, nil) si el id no resuelve.
func (uc *UseCase) SyncBill(ctx context.Context, idHex string) (*dto.RepairResult, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, domain.Validation("id inválido")
	}
	rep, err := uc.repairs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, nil
	}
	result := &dto.RepairResult{Repair: rep}
	result.SideEffects = append(result.SideEffects, uc.syncBill(ctx, rep))
	return result, nil
}

// syncBill busca la factura ligada y la alinea con la reparación; si no hay
// ninguna crea una de respaldo. Conserva el estado paid de la existente.
func (uc *UseCase) syncBill(ctx context.Context, rep *entity.Repair) dto.SideEffect {
	bill, err := uc.bills.GetByRepairID(ctx, rep.ID)
	if err == nil {
		now := time.Now()
		if bill == nil {
			bill = &entity.Bill{
				Amount:      rep.Price,
				Description: rep.Description,
				Type:        rep.Type,
				Paid:        false,
				IDRepair:    rep.ID,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			err = uc.bills.Create(ctx, bill)
		} else {
			bill.Amount = rep.Price
			bill.Description = rep.Description
			bill.Type = rep.Type
			err = uc.bills.Update(ctx, bill)
		}
	}
	if err != nil {
		uc.log.Error().Err(err).
			Str("repair_id", rep.ID.Hex()).
			Msg("no se pudo sincronizar la factura de la reparación")
		return dto.SideEffect{Step: StepBillSync, Error: err.Error()}
	}
	return dto.SideEffect{Step: StepBillSync, OK: true}
}

// GetByID obtiene una reparación. (nil, nil) si no existe.
func (uc *UseCase) GetByID(ctx context.Context, idHex string) (*entity.Repair, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, domain.Validation("id inválido")
	}
	return uc.repairs.GetByID(ctx, id)
}

// List lista reparaciones según los query params crudos.
func (uc *UseCase) List(ctx context.Context, params map[string]string) ([]*entity.Repair, error) {
	return uc.repairs.List(ctx, listSpec.Build(params))
}

// Delete elimina la reparación. No hay limpieza en cascada: la factura
// queda huérfana y el stock descontado no se devuelve.
func (uc *UseCase) Delete(ctx context.Context, idHex string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return domain.Validation("id inválido")
	}
	return uc.repairs.Delete(ctx, id)
}
