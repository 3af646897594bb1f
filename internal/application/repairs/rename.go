package repairs

import (
	"context"

	"github.com/jmoralesv/taller-api/internal/domain/repository"
	"github.com/jmoralesv/taller-api/pkg/logger"
)

// RenamePropagator centraliza la propagación de renombres sobre las
// referencias denormalizadas de Repair (client, employee, inventory).
// La propagación es one-shot y no transaccional: si falla a medias, algunas
// reparaciones conservan el nombre viejo; se registra y no se reintenta.
type RenamePropagator struct {
	repairs repository.RepairRepository
	log     *logger.Logger
}

// NewRenamePropagator construye el propagador.
func NewRenamePropagator(repairs repository.RepairRepository, log *logger.Logger) *RenamePropagator {
	return &RenamePropagator{repairs: repairs, log: log}
}

// ClientRenamed propaga el renombre de un cliente.
func (p *RenamePropagator) ClientRenamed(ctx context.Context, oldName, newName string) {
	p.propagate(ctx, "client", oldName, newName)
}

// EmployeeRenamed propaga el renombre de un empleado.
func (p *RenamePropagator) EmployeeRenamed(ctx context.Context, oldName, newName string) {
	p.propagate(ctx, "employee", oldName, newName)
}

// InventoryRenamed propaga el renombre de un repuesto.
func (p *RenamePropagator) InventoryRenamed(ctx context.Context, oldName, newName string) {
	p.propagate(ctx, "inventory", oldName, newName)
}

func (p *RenamePropagator) propagate(ctx context.Context, field, oldName, newName string) {
	if oldName == newName {
		return
	}
	n, err := p.repairs.UpdateNameRefs(ctx, field, oldName, newName)
	if err != nil {
		p.log.Error().Err(err).
			Str("field", field).
			Str("old", oldName).
			Str("new", newName).
			Msg("no se pudo propagar el renombre a las reparaciones")
		return
	}
	p.log.Info().
		Str("field", field).
		Str("old", oldName).
		Str("new", newName).
		Int64("repairs", n).
		Msg("renombre propagado")
}
