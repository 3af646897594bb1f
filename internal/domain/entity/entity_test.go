package entity_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmoralesv/taller-api/internal/domain"
	"github.com/jmoralesv/taller-api/internal/domain/entity"
)

func TestClient_NormalizeYValidate(t *testing.T) {
	c := &entity.Client{Name: "  Juan Pérez ", Contact: " 5555-1234 "}
	c.Normalize()

	assert.Equal(t, "juan pérez", c.Name, "el nombre se guarda en minúsculas")
	assert.Equal(t, "5555-1234", c.Contact)
	assert.NoError(t, c.Validate())
}

func TestClient_NombreFueraDeRango(t *testing.T) {
	for _, name := range []string{"jo", strings.Repeat("a", 33)} {
		c := &entity.Client{Name: name, Contact: "contacto"}
		err := c.Validate()
		require.Error(t, err, "name=%q", name)
		assert.True(t, domain.IsValidation(err))
	}
}

func TestEmployee_EmailYTelefono(t *testing.T) {
	e := &entity.Employee{
		Name:  "ana lopez",
		Email: "ana.lopez@taller.com",
		Role:  entity.RoleReparador,
		Phone: "7777-1234",
		Age:   25,
	}
	require.NoError(t, e.Validate())

	e.Email = "no-es-un-email"
	err := e.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")

	e.Email = "ana.lopez@taller.com"
	e.Phone = "77771234"
	err = e.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phone")
}

func TestEmployee_EdadYRol(t *testing.T) {
	e := &entity.Employee{
		Name:  "ana lopez",
		Email: "ana.lopez@taller.com",
		Role:  "gerente", // no existe
		Phone: "7777-1234",
		Age:   25,
	}
	err := e.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "role")

	e.Role = entity.RoleAdmin
	e.Age = 15
	err = e.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "age")
}

func TestEmployee_DireccionOpcional(t *testing.T) {
	e := &entity.Employee{
		Name:  "ana lopez",
		Email: "ana.lopez@taller.com",
		Role:  entity.RoleFinanzas,
		Phone: "7777-1234",
		Age:   30,
	}
	assert.NoError(t, e.Validate(), "direction vacía es válida")

	e.Direction = "corta"
	assert.Error(t, e.Validate(), "direction presente pero bajo el mínimo")

	e.Direction = "colonia centro, casa 12"
	assert.NoError(t, e.Validate())
}

func TestInventory_TipoYRangos(t *testing.T) {
	i := &entity.Inventory{
		Name:        "batería 5000mah",
		Description: "batería de litio genérica",
		Type:        "batería",
		Cost:        300,
		Stock:       50,
		Min:         5,
	}
	require.NoError(t, i.Validate())

	i.Type = "cargador" // no está en el catálogo
	assert.Error(t, i.Validate())

	i.Type = "batería"
	i.Cost = 10
	assert.Error(t, i.Validate(), "cost bajo el mínimo de 20")

	i.Cost = 300
	i.Stock = 2_501
	assert.Error(t, i.Validate())
}

func TestRepair_ReferenciasNormalizadas(t *testing.T) {
	r := &entity.Repair{
		Price:           800,
		Description:     "cambio de batería hinchada",
		Status:          entity.StatusInProgress,
		Type:            "batería",
		Employee:        "  Ana Lopez ",
		Client:          " Juan Perez",
		Inventory:       "Batería 5000mah ",
		InventoryAmount: 1,
	}
	r.Normalize()

	assert.Equal(t, "ana lopez", r.Employee)
	assert.Equal(t, "juan perez", r.Client)
	assert.Equal(t, "batería 5000mah", r.Inventory)
	assert.NoError(t, r.Validate())
}

func TestRepair_LimitesDeConsumo(t *testing.T) {
	r := &entity.Repair{
		Price:           800,
		Description:     "cambio de batería hinchada",
		Status:          entity.StatusNotStarted,
		Type:            "batería",
		Employee:        "ana lopez",
		Client:          "juan perez",
		Inventory:       "batería 5000mah",
		InventoryAmount: 0,
	}
	assert.Error(t, r.Validate(), "consumo mínimo 1")

	r.InventoryAmount = 9
	assert.Error(t, r.Validate(), "consumo máximo 8")

	r.InventoryAmount = 8
	assert.NoError(t, r.Validate())
}

func TestRepair_EstadoLibre(t *testing.T) {
	r := &entity.Repair{
		Price:           800,
		Description:     "cambio de batería hinchada",
		Status:          entity.StatusFinished,
		Type:            "batería",
		Employee:        "ana lopez",
		Client:          "juan perez",
		Inventory:       "batería 5000mah",
		InventoryAmount: 1,
	}
	// Cualquier estado del catálogo es asignable, incluso "hacia atrás".
	for _, st := range entity.RepairStatuses {
		r.Status = st
		assert.NoError(t, r.Validate(), "status=%q", st)
	}

	r.Status = "cancelado"
	assert.Error(t, r.Validate())
}

func TestHardware_Prioridades(t *testing.T) {
	h := &entity.Hardware{
		Name:        "estación de soldadura",
		Description: "estación de aire caliente",
		Cost:        2_000,
		Stock:       2,
		Priority:    "indispensable",
	}
	require.NoError(t, h.Validate())

	h.Priority = "urgente"
	assert.Error(t, h.Validate())
}

func TestPurchase_TipoYCosto(t *testing.T) {
	p := &entity.Purchase{
		Type:        entity.PurchaseInventory,
		Description: "compra inicial de 10 x pantalla lcd",
		Cost:        5_000,
	}
	require.NoError(t, p.Validate())

	p.Type = "donación"
	assert.Error(t, p.Validate())

	p.Type = entity.PurchaseHardware
	p.Cost = 1_000_001
	assert.Error(t, p.Validate())
}

func TestBill_RequiereReparacion(t *testing.T) {
	b := &entity.Bill{Amount: 500}
	err := b.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id_repair")
}
