package usecase

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jmoralesv/taller-api/internal/application/dto"
	"github.com/jmoralesv/taller-api/internal/application/repairs"
	"github.com/jmoralesv/taller-api/internal/domain"
	"github.com/jmoralesv/taller-api/internal/domain/entity"
	"github.com/jmoralesv/taller-api/internal/domain/query"
	"github.com/jmoralesv/taller-api/internal/domain/repository"
)

var clientListSpec = query.Spec{
	SearchField: "name",
	IDParam:     "_id",
	DateRange:   true,
	SortFields:  []string{"name"},
}

// ClientUseCase CRUD de clientes. Un renombre se propaga a las reparaciones
// que referencian al cliente por nombre.
type ClientUseCase struct {
	repo       repository.ClientRepository
	propagator *repairs.RenamePropagator
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, propagator *repairs.RenamePropagator) *ClientUseCase {
	return &ClientUseCase{repo: repo, propagator: propagator}
}

// Create crea un cliente nuevo.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*entity.Client, error) {
	now := time.Now()
	c := &entity.Client{Name: in.Name, Contact: in.Contact, CreatedAt: now, UpdatedAt: now}
	c.Normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	existing, _ := uc.repo.GetByName(ctx, c.Name)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// GetByID obtiene un cliente. (nil, nil) si no existe.
func (uc *ClientUseCase) GetByID(ctx context.Context, idHex string) (*entity.Client, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, domain.Validation("id inválido")
	}
	return uc.repo.GetByID(ctx, id)
}

// List lista clientes según los query params crudos.
func (uc *ClientUseCase) List(ctx context.Context, params map[string]string) ([]*entity.Client, error) {
	return uc.repo.List(ctx, clientListSpec.Build(params))
}

// Update reemplaza los campos del cliente. Si el nombre cambió y el update
// primario tuvo éxito, propaga el renombre a las reparaciones.
func (uc *ClientUseCase) Update(ctx context.Context, idHex string, in dto.UpdateClientRequest) (*entity.Client, error) {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return nil, domain.Validation("id inválido")
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, nil
	}
	oldName := c.Name
	c.Name = in.Name
	c.Contact = in.Contact
	c.Normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.Name != oldName {
		existing, _ := uc.repo.GetByName(ctx, c.Name)
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	if c.Name != oldName {
		uc.propagator.ClientRenamed(ctx, oldName, c.Name)
	}
	return c, nil
}

// Delete elimina un cliente.
func (uc *ClientUseCase) Delete(ctx context.Context, idHex string) error {
	id, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		return domain.Validation("id inválido")
	}
	return uc.repo.Delete(ctx, id)
}
