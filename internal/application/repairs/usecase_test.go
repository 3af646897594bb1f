package repairs_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jmoralesv/taller-api/internal/application/dto"
	"github.com/jmoralesv/taller-api/internal/application/repairs"
	"github.com/jmoralesv/taller-api/internal/domain"
	"github.com/jmoralesv/taller-api/internal/domain/entity"
	"github.com/jmoralesv/taller-api/internal/domain/repository"
	"github.com/jmoralesv/taller-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeRepairRepo struct {
	repairs   map[primitive.ObjectID]*entity.Repair
	createErr error
}

func newFakeRepairRepo() *fakeRepairRepo {
	return &fakeRepairRepo{repairs: map[primitive.ObjectID]*entity.Repair{}}
}

func (f *fakeRepairRepo) Create(_ context.Context, r *entity.Repair) error {
	if f.createErr != nil {
		return f.createErr
	}
	if r.ID.IsZero() {
		r.ID = primitive.NewObjectID()
	}
	cp := *r
	f.repairs[r.ID] = &cp
	return nil
}

func (f *fakeRepairRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Repair, error) {
	r, ok := f.repairs[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepairRepo) List(_ context.Context, _ repository.ListQuery) ([]*entity.Repair, error) {
	out := make([]*entity.Repair, 0, len(f.repairs))
	for _, r := range f.repairs {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeRepairRepo) Update(_ context.Context, r *entity.Repair) error {
	if _, ok := f.repairs[r.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *r
	f.repairs[r.ID] = &cp
	return nil
}

func (f *fakeRepairRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.repairs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.repairs, id)
	return nil
}

func (f *fakeRepairRepo) UpdateNameRefs(_ context.Context, field, oldName, newName string) (int64, error) {
	var n int64
	for _, r := range f.repairs {
		var ref *string
		switch field {
		case "client":
			ref = &r.Client
		case "employee":
			ref = &r.Employee
		case "inventory":
			ref = &r.Inventory
		default:
			continue
		}
		if *ref == oldName {
			*ref = newName
			n++
		}
	}
	return n, nil
}

type fakeInventoryRepo struct {
	stock    map[string]int
	restored map[string]int
}

func newFakeInventoryRepo(stock map[string]int) *fakeInventoryRepo {
	return &fakeInventoryRepo{stock: stock, restored: map[string]int{}}
}

func (f *fakeInventoryRepo) DecrementIfAvailable(_ context.Context, name string, amount int) error {
	s, ok := f.stock[name]
	if !ok {
		return domain.ErrNotFound
	}
	if s < amount {
		return domain.ErrInsufficientStock
	}
	f.stock[name] = s - amount
	return nil
}

func (f *fakeInventoryRepo) RestoreStock(_ context.Context, name string, amount int) error {
	f.stock[name] += amount
	f.restored[name] += amount
	return nil
}

func (f *fakeInventoryRepo) Create(_ context.Context, _ *entity.Inventory) error { return nil }
func (f *fakeInventoryRepo) GetByID(_ context.Context, _ primitive.ObjectID) (*entity.Inventory, error) {
	return nil, nil
}
func (f *fakeInventoryRepo) GetByName(_ context.Context, _ string) (*entity.Inventory, error) {
	return nil, nil
}
func (f *fakeInventoryRepo) List(_ context.Context, _ repository.ListQuery) ([]*entity.Inventory, error) {
	return nil, nil
}
func (f *fakeInventoryRepo) Update(_ context.Context, _ *entity.Inventory) error { return nil }
func (f *fakeInventoryRepo) Delete(_ context.Context, _ primitive.ObjectID) error {
	return nil
}
func (f *fakeInventoryRepo) IncrementStock(_ context.Context, _ primitive.ObjectID, _ int) (*entity.Inventory, error) {
	return nil, nil
}

type fakeBillRepo struct {
	bills     []*entity.Bill
	createErr error
	updateErr error
}

func (f *fakeBillRepo) Create(_ context.Context, b *entity.Bill) error {
	if f.createErr != nil {
		return f.createErr
	}
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	cp := *b
	f.bills = append(f.bills, &cp)
	return nil
}

func (f *fakeBillRepo) GetByID(_ context.Context, id primitive.ObjectID) (*entity.Bill, error) {
	for _, b := range f.bills {
		if b.ID == id {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeBillRepo) GetByRepairID(_ context.Context, repairID primitive.ObjectID) (*entity.Bill, error) {
	for _, b := range f.bills {
		if b.IDRepair == repairID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeBillRepo) List(_ context.Context, _ repository.ListQuery) ([]*entity.Bill, error) {
	return f.bills, nil
}

func (f *fakeBillRepo) Update(_ context.Context, b *entity.Bill) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for i, old := range f.bills {
		if old.ID == b.ID {
			cp := *b
			f.bills[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeBillRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i, b := range f.bills {
		if b.ID == id {
			f.bills = append(f.bills[:i], f.bills[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func validCreateReq() dto.CreateRepairRequest {
	return dto.CreateRepairRequest{
		Price:           1500,
		Description:     "cambio de pantalla completa",
		Status:          entity.StatusNotStarted,
		Type:            "pantalla",
		Employee:        "ana lopez",
		Client:          "juan perez",
		Inventory:       "pantalla lcd",
		InventoryAmount: 2,
	}
}

func newUseCase(repairRepo *fakeRepairRepo, invRepo *fakeInventoryRepo, billRepo *fakeBillRepo) *repairs.UseCase {
	return repairs.NewUseCase(repairRepo, invRepo, billRepo, logger.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_DescuentaStockYCreaFactura(t *testing.T) {
	repairRepo := newFakeRepairRepo()
	invRepo := newFakeInventoryRepo(map[string]int{"pantalla lcd": 10})
	billRepo := &fakeBillRepo{}
	uc := newUseCase(repairRepo, invRepo, billRepo)

	out, err := uc.Create(context.Background(), validCreateReq())
	require.NoError(t, err)
	require.NotNil(t, out.Repair)

	assert.Equal(t, 8, invRepo.stock["pantalla lcd"], "el stock debe bajar en inventory_amount")

	require.Len(t, billRepo.bills, 1, "debe crearse exactamente una factura")
	bill := billRepo.bills[0]
	assert.Equal(t, out.Repair.Price, bill.Amount, "amount de la factura = price de la reparación")
	assert.False(t, bill.Paid, "la factura nace sin pagar")
	assert.Equal(t, out.Repair.ID, bill.IDRepair)

	require.Len(t, out.SideEffects, 1)
	assert.Equal(t, repairs.StepBillCreate, out.SideEffects[0].Step)
	assert.True(t, out.SideEffects[0].OK)
}

func TestCreate_ReintentoDuplicaDescuentoYFactura(t *testing.T) {
	// Crear no es idempotente: no hay clave de deduplicación, así que un
	// reintento con el mismo cuerpo descuenta el stock y factura dos veces.
	repairRepo := newFakeRepairRepo()
	invRepo := newFakeInventoryRepo(map[string]int{"pantalla lcd": 10})
	billRepo := &fakeBillRepo{}
	uc := newUseCase(repairRepo, invRepo, billRepo)

	first, err := uc.Create(context.Background(), validCreateReq())
	require.NoError(t, err)
	second, err := uc.Create(context.Background(), validCreateReq())
	require.NoError(t, err)

	assert.NotEqual(t, first.Repair.ID, second.Repair.ID, "cada envío crea su propia reparación")
	assert.Len(t, repairRepo.repairs, 2)
	assert.Equal(t, 10-2*2, invRepo.stock["pantalla lcd"], "el stock baja una vez por envío")

	require.Len(t, billRepo.bills, 2, "cada envío crea su propia factura")
	assert.Equal(t, first.Repair.ID, billRepo.bills[0].IDRepair)
	assert.Equal(t, second.Repair.ID, billRepo.bills[1].IDRepair)
}

func TestCreate_RedondeaElPrecio(t *testing.T) {
	repairRepo := newFakeRepairRepo()
	invRepo := newFakeInventoryRepo(map[string]int{"pantalla lcd": 10})
	uc := newUseCase(repairRepo, invRepo, &fakeBillRepo{})

	in := validCreateReq()
	in.Price = 1500.6

	out, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 1501, out.Repair.Price)
}

func TestCreate_StockInsuficiente_NoModificaNada(t *testing.T) {
	repairRepo := newFakeRepairRepo()
	invRepo := newFakeInventoryRepo(map[string]int{"pantalla lcd": 1})
	billRepo := &fakeBillRepo{}
	uc := newUseCase(repairRepo, invRepo, billRepo)

	_, err := uc.Create(context.Background(), validCreateReq())
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 1, invRepo.stock["pantalla lcd"], "el stock no debe cambiar")
	assert.Empty(t, repairRepo.repairs, "no debe persistirse la reparación")
	assert.Empty(t, billRepo.bills, "no debe crearse la factura")
}

func TestCreate_RepuestoInexistente_ErrorDeValidacion(t *testing.T) {
	repairRepo := newFakeRepairRepo()
	invRepo := newFakeInventoryRepo(map[string]int{})
	uc := newUseCase(repairRepo, invRepo, &fakeBillRepo{})

	_, err := uc.Create(context.Background(), validCreateReq())
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Contains(t, err.Error(), "pantalla lcd")
}

func TestCreate_FallaPersistencia_DevuelveElStock(t *testing.T) {
	repairRepo := newFakeRepairRepo()
	repairRepo.createErr = errors.New("escritura rechazada")
	invRepo := newFakeInventoryRepo(map[string]int{"pantalla lcd": 10})
	billRepo := &fakeBillRepo{}
	uc := newUseCase(repairRepo, invRepo, billRepo)

	_, err := uc.Create(context.Background(), validCreateReq())
	require.Error(t, err)

	assert.Equal(t, 10, invRepo.stock["pantalla lcd"], "la compensación devuelve el stock")
	assert.Equal(t, 2, invRepo.restored["pantalla lcd"])
	assert.Empty(t, billRepo.bills)
}

func TestCreate_FallaFactura_LaReparacionSobrevive(t *testing.T) {
	repairRepo := newFakeRepairRepo()
	invRepo := newFakeInventoryRepo(map[string]int{"pantalla lcd": 10})
	billRepo := &fakeBillRepo{createErr: errors.New("colección no disponible")}
	uc := newUseCase(repairRepo, invRepo, billRepo)

	out, err := uc.Create(context.Background(), validCreateReq())
	require.NoError(t, err, "el fallo de la factura no degrada el resultado primario")
	require.NotNil(t, out.Repair)

	assert.Len(t, repairRepo.repairs, 1)
	assert.Equal(t, 8, invRepo.stock["pantalla lcd"], "el descuento de stock se conserva")

	require.Len(t, out.SideEffects, 1)
	assert.Equal(t, repairs.StepBillCreate, out.SideEffects[0].Step)
	assert.False(t, out.SideEffects[0].OK)
	assert.Contains(t, out.SideEffects[0].Error, "colección no disponible")
}

func TestCreate_DatosInvalidos_NoTocaElStock(t *testing.T) {
	repairRepo := newFakeRepairRepo()
	invRepo := newFakeInventoryRepo(map[string]int{"pantalla lcd": 10})
	uc := newUseCase(repairRepo, invRepo, &fakeBillRepo{})

	in := validCreateReq()
	in.InventoryAmount = 9 // sobre el máximo de 8

	_, err := uc.Create(context.Background(), in)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, 10, invRepo.stock["pantalla lcd"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / SyncBill
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_ResincronizaLaFacturaYConservaPaid(t *testing.T) {
	repairRepo := newFakeRepairRepo()
	invRepo := newFakeInventoryRepo(map[string]int{"pantalla lcd": 10})
	billRepo := &fakeBillRepo{}
	uc := newUseCase(repairRepo, invRepo, billRepo)

	created, err := uc.Create(context.Background(), validCreateReq())
	require.NoError(t, err)

	// La factura se marca pagada fuera del flujo; el sync no debe revertirlo.
	billRepo.bills[0].Paid = true

	in := dto.UpdateRepairRequest(validCreateReq())
	in.Price = 2000
	in.Status = entity.StatusFinished

	out, err := uc.Update(context.Background(), created.Repair.ID.Hex(), in)
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, 2000, out.Repair.Price)
	assert.Equal(t, entity.StatusFinished, out.Repair.Status)
	assert.Equal(t, 10-2, invRepo.stock["pantalla lcd"], "update no vuelve a tocar el stock")

	require.Len(t, billRepo.bills, 1)
	assert.Equal(t, 2000, billRepo.bills[0].Amount, "la factura sigue al precio")
	assert.True(t, billRepo.bills[0].Paid, "paid se conserva en la resincronización")

	require.Len(t, out.SideEffects, 1)
	assert.Equal(t, repairs.StepBillSync, out.SideEffects[0].Step)
	assert.True(t, out.SideEffects[0].OK)
}

func TestUpdate_SinFactura_CreaUnaDeRespaldo(t *testing.T) {
	repairRepo := newFakeRepairRepo()
	invRepo := newFakeInventoryRepo(map[string]int{"pantalla lcd": 10})
	billRepo := &fakeBillRepo{createErr: errors.New("primera escritura falla")}
	uc := newUseCase(repairRepo, invRepo, billRepo)

	created, err := uc.Create(context.Background(), validCreateReq())
	require.NoError(t, err)
	require.Empty(t, billRepo.bills, "la creación de factura falló a propósito")

	billRepo.createErr = nil
	out, err := uc.Update(context.Background(), created.Repair.ID.Hex(), dto.UpdateRepairRequest(validCreateReq()))
	require.NoError(t, err)

	require.Len(t, billRepo.bills, 1, "el sync crea la factura faltante")
	assert.Equal(t, created.Repair.ID, billRepo.bills[0].IDRepair)
	assert.False(t, billRepo.bills[0].Paid)
	assert.Equal(t, repairs.StepBillSync, out.SideEffects[0].Step)
	assert.True(t, out.SideEffects[0].OK)
}

func TestUpdate_IDInexistente_NilNil(t *testing.T) {
	uc := newUseCase(newFakeRepairRepo(), newFakeInventoryRepo(nil), &fakeBillRepo{})

	out, err := uc.Update(context.Background(), primitive.NewObjectID().Hex(), dto.UpdateRepairRequest(validCreateReq()))
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestSyncBill_NoModificaLaReparacion(t *testing.T) {
	repairRepo := newFakeRepairRepo()
	invRepo := newFakeInventoryRepo(map[string]int{"pantalla lcd": 10})
	billRepo := &fakeBillRepo{}
	uc := newUseCase(repairRepo, invRepo, billRepo)

	created, err := uc.Create(context.Background(), validCreateReq())
	require.NoError(t, err)

	// Desalineamos la factura a mano y pedimos la reconciliación.
	billRepo.bills[0].Amount = 99

	out, err := uc.SyncBill(context.Background(), created.Repair.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.Equal(t, created.Repair.Price, billRepo.bills[0].Amount)
	assert.Equal(t, created.Repair.Price, out.Repair.Price, "la reparación queda intacta")
	assert.Equal(t, repairs.StepBillSync, out.SideEffects[0].Step)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_NoTocaFacturaNiStock(t *testing.T) {
	repairRepo := newFakeRepairRepo()
	invRepo := newFakeInventoryRepo(map[string]int{"pantalla lcd": 10})
	billRepo := &fakeBillRepo{}
	uc := newUseCase(repairRepo, invRepo, billRepo)

	created, err := uc.Create(context.Background(), validCreateReq())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), created.Repair.ID.Hex()))

	assert.Empty(t, repairRepo.repairs)
	assert.Len(t, billRepo.bills, 1, "la factura queda huérfana, sin cascada")
	assert.Equal(t, 8, invRepo.stock["pantalla lcd"], "el stock descontado no se devuelve")
}

// ──────────────────────────────────────────────────────────────────────────────
// RenamePropagator
// ──────────────────────────────────────────────────────────────────────────────

func TestRenamePropagator_SoloCoincidenciasExactas(t *testing.T) {
	repairRepo := newFakeRepairRepo()
	for _, client := range []string{"ana", "ana", "ana perez", "anabel"} {
		in := validCreateReq()
		rep := &entity.Repair{
			Price:           int(in.Price),
			Description:     in.Description,
			Status:          in.Status,
			Type:            in.Type,
			Employee:        in.Employee,
			Client:          client,
			Inventory:       in.Inventory,
			InventoryAmount: in.InventoryAmount,
		}
		require.NoError(t, repairRepo.Create(context.Background(), rep))
	}

	p := repairs.NewRenamePropagator(repairRepo, logger.Nop())
	p.ClientRenamed(context.Background(), "ana", "ana maria")

	var renamed, untouched int
	for _, r := range repairRepo.repairs {
		switch r.Client {
		case "ana maria":
			renamed++
		case "ana perez", "anabel":
			untouched++
		case "ana":
			t.Fatalf("quedó una reparación sin renombrar")
		}
	}
	assert.Equal(t, 2, renamed, "solo las coincidencias exactas cambian")
	assert.Equal(t, 2, untouched)
}

func TestRenamePropagator_NombreIgual_NoHaceNada(t *testing.T) {
	repairRepo := newFakeRepairRepo()
	p := repairs.NewRenamePropagator(repairRepo, logger.Nop())

	// No debe fallar ni tocar nada con old == new.
	p.InventoryRenamed(context.Background(), "pantalla lcd", "pantalla lcd")
	assert.Empty(t, repairRepo.repairs)
}
