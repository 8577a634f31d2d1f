package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eduledger-api/internal/application/dto"
	"github.com/jhoicas/eduledger-api/internal/application/ledger"
	"github.com/jhoicas/eduledger-api/internal/domain"
	"github.com/jhoicas/eduledger-api/internal/domain/entity"
)

type chargeFixture struct {
	uc          *ledger.ChargeUseCase
	invoices    *fakeInvoiceRepo
	individuals *fakeIndividualRepo
	audit       *fakeAuditRepo
}

func newChargeFixture() *chargeFixture {
	invoices := newFakeInvoiceRepo()
	individuals := newFakeIndividualRepo()
	audit := &fakeAuditRepo{}
	runner := &fakeTxRunner{settlements: newFakeSettlementRepo(), invoices: invoices, audit: audit}

	individuals.byID["ind-1"] = &entity.Individual{ID: "ind-1", TenantID: "t-1", FullName: "Ana Pérez", Active: true}
	individuals.byID["ind-otro"] = &entity.Individual{ID: "ind-otro", TenantID: "t-2", FullName: "Luis Gómez", Active: true}
	individuals.byID["ind-inactivo"] = &entity.Individual{ID: "ind-inactivo", TenantID: "t-1", FullName: "Baja", Active: false}

	uc := ledger.NewChargeUseCase(runner, invoices, individuals, 14).
		WithClock(func() time.Time { return testNow })
	return &chargeFixture{uc: uc, invoices: invoices, individuals: individuals, audit: audit}
}

// Caso 1: el cobro directo emite una factura PENDING con vencimiento al plazo
// por defecto y deja su entrada de bitácora.
func TestCharge_EmiteFacturaPendiente(t *testing.T) {
	f := newChargeFixture()

	result, err := f.uc.Charge(context.Background(), "t-1", "op-1", dto.ChargeRequest{
		IndividualID: "ind-1",
		Title:        "Salida pedagógica",
		Amount:       dec("80"),
	})
	require.NoError(t, err)
	assert.False(t, result.Reused)

	inv, err := f.invoices.GetByID(result.InvoiceID)
	require.NoError(t, err)
	require.NotNil(t, inv)
	assert.Equal(t, entity.InvoicePending, inv.Status)
	assert.True(t, inv.Amount.Equal(dec("80")))
	assert.Equal(t, testNow.AddDate(0, 0, 14), inv.DueDate)
	assert.Empty(t, inv.TriggerType)
	assert.Equal(t, 1, f.audit.countByAction(entity.AuditInvoiceCreated))
}

// Caso 2: con dedup_by_title, un segundo cobro idéntico reutiliza la factura
// abierta en lugar de duplicarla.
func TestCharge_DedupPorTitulo(t *testing.T) {
	f := newChargeFixture()
	in := dto.ChargeRequest{
		IndividualID: "ind-1",
		Title:        "Anualidad biblioteca",
		Amount:       dec("120"),
		DedupByTitle: true,
	}

	first, err := f.uc.Charge(context.Background(), "t-1", "op-1", in)
	require.NoError(t, err)
	second, err := f.uc.Charge(context.Background(), "t-1", "op-1", in)
	require.NoError(t, err)

	assert.True(t, second.Reused)
	assert.Equal(t, first.InvoiceID, second.InvoiceID)
	assert.Len(t, f.invoices.byID, 1)
	assert.Equal(t, 1, f.audit.countByAction(entity.AuditInvoiceCreated))
}

// Caso 3: sin dedup, el mismo cobro dos veces produce dos facturas.
func TestCharge_SinDedupEmiteOtraFactura(t *testing.T) {
	f := newChargeFixture()
	in := dto.ChargeRequest{IndividualID: "ind-1", Title: "Multa", Amount: dec("10")}

	_, err := f.uc.Charge(context.Background(), "t-1", "op-1", in)
	require.NoError(t, err)
	_, err = f.uc.Charge(context.Background(), "t-1", "op-1", in)
	require.NoError(t, err)

	assert.Len(t, f.invoices.byID, 2)
}

// Caso 4: la dedup por título solo mira facturas abiertas: una pagada no
// bloquea un cobro nuevo con el mismo título.
func TestCharge_TituloDePagadaNoDeduplica(t *testing.T) {
	f := newChargeFixture()
	in := dto.ChargeRequest{IndividualID: "ind-1", Title: "Anualidad", Amount: dec("100"), DedupByTitle: true}

	first, err := f.uc.Charge(context.Background(), "t-1", "op-1", in)
	require.NoError(t, err)
	f.invoices.byID[first.InvoiceID].Status = entity.InvoicePaid

	second, err := f.uc.Charge(context.Background(), "t-1", "op-1", in)
	require.NoError(t, err)

	assert.False(t, second.Reused)
	assert.NotEqual(t, first.InvoiceID, second.InvoiceID)
}

// Caso 5: precondiciones de emisión.
func TestCharge_Validaciones(t *testing.T) {
	f := newChargeFixture()

	casos := []struct {
		nombre string
		in     dto.ChargeRequest
		want   error
	}{
		{"monto cero", dto.ChargeRequest{IndividualID: "ind-1", Title: "X", Amount: dec("0")}, domain.ErrInvalidInput},
		{"monto negativo", dto.ChargeRequest{IndividualID: "ind-1", Title: "X", Amount: dec("-5")}, domain.ErrInvalidInput},
		{"sin título", dto.ChargeRequest{IndividualID: "ind-1", Amount: dec("10")}, domain.ErrInvalidInput},
		{"individuo inexistente", dto.ChargeRequest{IndividualID: "ind-zzz", Title: "X", Amount: dec("10")}, domain.ErrNotFound},
		{"individuo de otro tenant", dto.ChargeRequest{IndividualID: "ind-otro", Title: "X", Amount: dec("10")}, domain.ErrForbidden},
		{"individuo inactivo", dto.ChargeRequest{IndividualID: "ind-inactivo", Title: "X", Amount: dec("10")}, domain.ErrInvalidInput},
	}
	for _, c := range casos {
		_, err := f.uc.Charge(context.Background(), "t-1", "op-1", c.in)
		assert.ErrorIs(t, err, c.want, c.nombre)
	}
	assert.Empty(t, f.invoices.byID, "una emisión rechazada no debe escribir nada")
	assert.Empty(t, f.audit.entries)
}

// Caso 6: due_days explícito manda sobre el plazo por defecto.
func TestCharge_PlazoExplicito(t *testing.T) {
	f := newChargeFixture()

	result, err := f.uc.Charge(context.Background(), "t-1", "op-1", dto.ChargeRequest{
		IndividualID: "ind-1",
		Title:        "Cuota extraordinaria",
		Amount:       dec("50"),
		DueDays:      3,
	})
	require.NoError(t, err)

	inv, _ := f.invoices.GetByID(result.InvoiceID)
	assert.Equal(t, testNow.AddDate(0, 0, 3), inv.DueDate)
}
