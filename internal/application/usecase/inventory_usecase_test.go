package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jmoralesv/taller-api/internal/application/dto"
	"github.com/jmoralesv/taller-api/internal/application/repairs"
	"github.com/jmoralesv/taller-api/internal/application/usecase"
	"github.com/jmoralesv/taller-api/internal/domain"
	"github.com/jmoralesv/taller-api/internal/domain/entity"
	"github.com/jmoralesv/taller-api/internal/domain/repository"
	"github.com/jmoralesv/taller-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeInventoryRepo struct {
	items map[primitive.ObjectID]*entity.Inventory
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{items: map[primitive.ObjectID]*entity.Inventory{}}
}

func (f *fakeInventoryRepo) Create(_ context.Context, i *entity.Inventory) error {
	if i.ID.IsZero() {
		i.ID = primitive.NewObjectID()
	}
	cp := *i
	f.items[i.ID] = &cp
	return nil
}

func (f *fakeInventoryRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Inventory, error) {
	i, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (f *fakeInventoryRepo) GetByName(_ context.Context, name string) (*entity.Inventory, error) {
	for _, i := range f.items {
		if i.Name == name {
			cp := *i
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeInventoryRepo) List(_ context.Context, _ repository.ListQuery) ([]*entity.Inventory, error) {
	out := make([]*entity.Inventory, 0, len(f.items))
	for _, i := range f.items {
		cp := *i
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeInventoryRepo) Update(_ context.Context, i *entity.Inventory) error {
	if _, ok := f.items[i.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *i
	f.items[i.ID] = &cp
	return nil
}

func (f *fakeInventoryRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeInventoryRepo) DecrementIfAvailable(_ context.Context, _ string, _ int) error {
	return nil
}

func (f *fakeInventoryRepo) RestoreStock(_ context.Context, _ string, _ int) error { return nil }

func (f *fakeInventoryRepo) IncrementStock(_ context.Context, id primitive.ObjectID, amount int) (*entity.Inventory, error) {
	i, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	i.Stock += amount
	cp := *i
	return &cp, nil
}

type fakePurchaseRepo struct {
	purchases []*entity.Purchase
}

func (f *fakePurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	cp := *p
	f.purchases = append(f.purchases, &cp)
	return nil
}

func (f *fakePurchaseRepo) GetByID(_ context.Context, _ primitive.ObjectID) (*entity.Purchase, error) {
	return nil, nil
}
func (f *fakePurchaseRepo) List(_ context.Context, _ repository.ListQuery) ([]*entity.Purchase, error) {
	return f.purchases, nil
}
func (f *fakePurchaseRepo) Update(_ context.Context, _ *entity.Purchase) error { return nil }
func (f *fakePurchaseRepo) Delete(_ context.Context, _ primitive.ObjectID) error {
	return nil
}

// stubRepairRepo registra las propagaciones de renombre.
type stubRepairRepo struct {
	renames []string // "field:old:new"
}

func (s *stubRepairRepo) Create(_ context.Context, _ *entity.Repair) error { return nil }
func (s *stubRepairRepo) GetByID(_ context.Context, _ primitive.ObjectID) (*entity.Repair, error) {
	return nil, nil
}
func (s *stubRepairRepo) List(_ context.Context, _ repository.ListQuery) ([]*entity.Repair, error) {
	return nil, nil
}
func (s *stubRepairRepo) Update(_ context.Context, _ *entity.Repair) error  { return nil }
func (s *stubRepairRepo) Delete(_ context.Context, _ primitive.ObjectID) error { return nil }
func (s *stubRepairRepo) UpdateNameRefs(_ context.Context, field, oldName, newName string) (int64, error) {
	s.renames = append(s.renames, field+":"+oldName+":"+newName)
	return 1, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func validInventoryReq() dto.CreateInventoryRequest {
	return dto.CreateInventoryRequest{
		Name:        "pantalla lcd",
		Description: "pantalla de repuesto genérica",
		Type:        "pantalla",
		Cost:        500,
		Stock:       10,
		Min:         2,
	}
}

func newInventoryUC(repo *fakeInventoryRepo, purchases *fakePurchaseRepo, repairRepo *stubRepairRepo) *usecase.InventoryUseCase {
	if repairRepo == nil {
		repairRepo = &stubRepairRepo{}
	}
	propagator := repairs.NewRenamePropagator(repairRepo, logger.Nop())
	return usecase.NewInventoryUseCase(repo, purchases, propagator, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestInventoryCreate_AsientaLaCompraInicial(t *testing.T) {
	repo := newFakeInventoryRepo()
	purchases := &fakePurchaseRepo{}
	uc := newInventoryUC(repo, purchases, nil)

	inv, err := uc.Create(context.Background(), validInventoryReq())
	require.NoError(t, err)
	require.NotNil(t, inv)

	require.Len(t, purchases.purchases, 1)
	p := purchases.purchases[0]
	assert.Equal(t, entity.PurchaseInventory, p.Type)
	assert.Equal(t, 500*10, p.Cost, "cost del asiento = costo unitario × stock inicial")
	assert.Contains(t, p.Description, "compra inicial")
	assert.Contains(t, p.Description, "pantalla lcd")
}

func TestInventoryCreate_StockCero_SinAsiento(t *testing.T) {
	repo := newFakeInventoryRepo()
	purchases := &fakePurchaseRepo{}
	uc := newInventoryUC(repo, purchases, nil)

	in := validInventoryReq()
	in.Stock = 0

	_, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Empty(t, purchases.purchases)
}

func TestInventoryCreate_StockInicialSobre80_Rechazado(t *testing.T) {
	repo := newFakeInventoryRepo()
	purchases := &fakePurchaseRepo{}
	uc := newInventoryUC(repo, purchases, nil)

	in := validInventoryReq()
	in.Stock = 81

	_, err := uc.Create(context.Background(), in)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Empty(t, repo.items, "no debe persistirse el repuesto")
	assert.Empty(t, purchases.purchases)
}

func TestInventoryCreate_NombreDuplicado_Rechazado(t *testing.T) {
	repo := newFakeInventoryRepo()
	uc := newInventoryUC(repo, &fakePurchaseRepo{}, nil)

	_, err := uc.Create(context.Background(), validInventoryReq())
	require.NoError(t, err)

	in := validInventoryReq()
	in.Name = "  Pantalla LCD " // la normalización colisiona con el existente

	_, err = uc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Len(t, repo.items, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Restock
// ──────────────────────────────────────────────────────────────────────────────

func TestInventoryRestock_SumaStockYAsientaCompra(t *testing.T) {
	repo := newFakeInventoryRepo()
	purchases := &fakePurchaseRepo{}
	uc := newInventoryUC(repo, purchases, nil)

	created, err := uc.Create(context.Background(), validInventoryReq())
	require.NoError(t, err)
	require.Len(t, purchases.purchases, 1) // compra inicial

	inv, err := uc.Restock(context.Background(), created.ID.Hex(), 80)
	require.NoError(t, err)
	require.NotNil(t, inv)

	assert.Equal(t, 10+80, inv.Stock)
	require.Len(t, purchases.purchases, 2)
	p := purchases.purchases[1]
	assert.Equal(t, 500*80, p.Cost, "cost del asiento = costo unitario × cantidad")
	assert.Contains(t, p.Description, "reabastecimiento")
}

func TestInventoryRestock_AsientoSobreElTope_SubeStockSinAsiento(t *testing.T) {
	// El alza de stock manda: si cost × amount supera el tope de una compra
	// (1.000.000), el asiento se omite con un warning y el reabastecimiento
	// se conserva.
	repo := newFakeInventoryRepo()
	purchases := &fakePurchaseRepo{}
	uc := newInventoryUC(repo, purchases, nil)

	in := validInventoryReq()
	in.Cost = 15_000 // 15.000 × 80 = 1.200.000, fuera del rango de Purchase
	created, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, purchases.purchases, 1) // compra inicial

	inv, err := uc.Restock(context.Background(), created.ID.Hex(), 80)
	require.NoError(t, err)
	require.NotNil(t, inv)

	assert.Equal(t, 10+80, inv.Stock, "el reabastecimiento se aplica igual")
	assert.Len(t, purchases.purchases, 1, "el asiento fuera de rango no se registra")
}

func TestInventoryRestock_Sobre80_Rechazado(t *testing.T) {
	repo := newFakeInventoryRepo()
	purchases := &fakePurchaseRepo{}
	uc := newInventoryUC(repo, purchases, nil)

	created, err := uc.Create(context.Background(), validInventoryReq())
	require.NoError(t, err)

	_, err = uc.Restock(context.Background(), created.ID.Hex(), 81)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "80")

	stored, _ := repo.GetByID(context.Background(), created.ID)
	assert.Equal(t, 10, stored.Stock, "el stock no debe cambiar")
	assert.Len(t, purchases.purchases, 1, "solo la compra inicial")
}

func TestInventoryRestock_CantidadNoPositiva_Rechazada(t *testing.T) {
	repo := newFakeInventoryRepo()
	uc := newInventoryUC(repo, &fakePurchaseRepo{}, nil)

	created, err := uc.Create(context.Background(), validInventoryReq())
	require.NoError(t, err)

	for _, amount := range []int{0, -5} {
		_, err := uc.Restock(context.Background(), created.ID.Hex(), amount)
		require.Error(t, err, "amount=%d", amount)
		assert.True(t, domain.IsValidation(err))
		assert.Contains(t, err.Error(), "mayor que 0")
	}
}

func TestInventoryRestock_IDInexistente_NilNil(t *testing.T) {
	uc := newInventoryUC(newFakeInventoryRepo(), &fakePurchaseRepo{}, nil)

	inv, err := uc.Restock(context.Background(), primitive.NewObjectID().Hex(), 5)
	require.NoError(t, err)
	assert.Nil(t, inv)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update — propagación de renombre
// ──────────────────────────────────────────────────────────────────────────────

func TestInventoryUpdate_RenombrePropagaALasReparaciones(t *testing.T) {
	repo := newFakeInventoryRepo()
	repairRepo := &stubRepairRepo{}
	uc := newInventoryUC(repo, &fakePurchaseRepo{}, repairRepo)

	created, err := uc.Create(context.Background(), validInventoryReq())
	require.NoError(t, err)

	in := dto.UpdateInventoryRequest(validInventoryReq())
	in.Name = "pantalla oled"

	_, err = uc.Update(context.Background(), created.ID.Hex(), in)
	require.NoError(t, err)

	require.Len(t, repairRepo.renames, 1)
	assert.Equal(t, "inventory:pantalla lcd:pantalla oled", repairRepo.renames[0])
}

func TestInventoryUpdate_SinRenombre_NoPropagaNada(t *testing.T) {
	repo := newFakeInventoryRepo()
	repairRepo := &stubRepairRepo{}
	uc := newInventoryUC(repo, &fakePurchaseRepo{}, repairRepo)

	created, err := uc.Create(context.Background(), validInventoryReq())
	require.NoError(t, err)

	in := dto.UpdateInventoryRequest(validInventoryReq())
	in.Cost = 600

	_, err = uc.Update(context.Background(), created.ID.Hex(), in)
	require.NoError(t, err)
	assert.Empty(t, repairRepo.renames)
}
