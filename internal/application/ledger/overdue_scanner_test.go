package ledger_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eduledger-api/internal/application/ledger"
	"github.com/jhoicas/eduledger-api/internal/domain/entity"
)

type scanFixture struct {
	uc       *ledger.OverdueScanUseCase
	invoices *fakeInvoiceRepo
	audit    *fakeAuditRepo
	alerts   *fakeAlerts
}

func newScanFixture() *scanFixture {
	invoices := newFakeInvoiceRepo()
	audit := &fakeAuditRepo{}
	alerts := &fakeAlerts{}
	runner := &fakeTxRunner{settlements: newFakeSettlementRepo(), invoices: invoices, audit: audit}

	uc := ledger.NewOverdueScanUseCase(runner, invoices, alerts, testLogger()).
		WithClock(func() time.Time { return testNow })
	return &scanFixture{uc: uc, invoices: invoices, audit: audit, alerts: alerts}
}

func (f *scanFixture) addInvoice(id, status string, due time.Time) {
	f.invoices.Create(&entity.FeeInvoice{
		ID: id, TenantID: "t-1", IndividualID: "ind-1",
		Title: "Cobro " + id, Amount: dec("100"), DueDate: due, Status: status,
	})
}

// Caso 1: las facturas PENDING con vencimiento cumplido pasan a OVERDUE con
// alerta y bitácora; las que aún no vencen quedan intactas.
func TestOverdueScan_TransicionaVencidas(t *testing.T) {
	f := newScanFixture()
	f.addInvoice("inv-vencida-1", entity.InvoicePending, testNow.AddDate(0, 0, -3))
	f.addInvoice("inv-vencida-2", entity.InvoicePending, testNow.AddDate(0, 0, -1))
	f.addInvoice("inv-futura", entity.InvoicePending, testNow.AddDate(0, 0, 5))

	result, err := f.uc.Scan(context.Background(), "scheduler")
	require.NoError(t, err)

	assert.Equal(t, 2, result.Scanned)
	assert.Equal(t, 2, result.Transitioned)
	assert.Equal(t, 2, result.AlertsQueued)
	assert.Equal(t, entity.InvoiceOverdue, f.invoices.byID["inv-vencida-1"].Status)
	assert.Equal(t, entity.InvoiceOverdue, f.invoices.byID["inv-vencida-2"].Status)
	assert.Equal(t, entity.InvoicePending, f.invoices.byID["inv-futura"].Status)
	assert.Equal(t, 2, f.audit.countByAction(entity.AuditInvoiceOverdue))
	assert.ElementsMatch(t, []string{"inv-vencida-1", "inv-vencida-2"}, f.alerts.sent)
}

// Caso 2: el vencimiento exacto en "ahora" ya califica (due_date <= now).
func TestOverdueScan_VencimientoExactoCalifica(t *testing.T) {
	f := newScanFixture()
	f.addInvoice("inv-hoy", entity.InvoicePending, testNow)

	result, err := f.uc.Scan(context.Background(), "scheduler")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Transitioned)
	assert.Equal(t, entity.InvoiceOverdue, f.invoices.byID["inv-hoy"].Status)
}

// Caso 3: reejecutar el escáner no vuelve a tocar las ya OVERDUE ni duplica
// alertas o bitácora.
func TestOverdueScan_ReejecutarEsNoOp(t *testing.T) {
	f := newScanFixture()
	f.addInvoice("inv-1", entity.InvoicePending, testNow.AddDate(0, 0, -1))

	_, err := f.uc.Scan(context.Background(), "scheduler")
	require.NoError(t, err)

	result, err := f.uc.Scan(context.Background(), "scheduler")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Scanned)
	assert.Equal(t, 0, result.Transitioned)
	assert.Len(t, f.alerts.sent, 1)
	assert.Equal(t, 1, f.audit.countByAction(entity.AuditInvoiceOverdue))
}

// Caso 4: si alguien paga la factura entre la consulta y la transición, el
// escáner la deja pasar sin contarla ni alertar.
func TestOverdueScan_PagadaEnCarreraNoTransiciona(t *testing.T) {
	f := newScanFixture()
	f.addInvoice("inv-1", entity.InvoicePending, testNow.AddDate(0, 0, -1))
	f.invoices.onUpdateStatusIf = func(id string) {
		// Otro proceso registra el pago justo antes de la transición.
		f.invoices.byID[id].Status = entity.InvoicePaid
	}

	result, err := f.uc.Scan(context.Background(), "scheduler")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Scanned)
	assert.Equal(t, 0, result.Transitioned)
	assert.Empty(t, f.alerts.sent)
	assert.Equal(t, entity.InvoicePaid, f.invoices.byID["inv-1"].Status)
}

// Caso 5: una alerta fallida no revierte la transición; solo deja de contarse
// como encolada.
func TestOverdueScan_AlertaFallidaNoImpideTransicion(t *testing.T) {
	f := newScanFixture()
	f.addInvoice("inv-1", entity.InvoicePending, testNow.AddDate(0, 0, -1))
	f.alerts.err = errors.New("broker caído")

	result, err := f.uc.Scan(context.Background(), "scheduler")
	require.NoError(t, err)

	assert.Equal(t, 1, result.Transitioned)
	assert.Equal(t, 0, result.AlertsQueued)
	assert.Equal(t, entity.InvoiceOverdue, f.invoices.byID["inv-1"].Status)
}

// Caso 6: facturas PAID o VOID con fecha vencida nunca entran al escaneo.
func TestOverdueScan_PagadasYAnuladasQuedanFuera(t *testing.T) {
	f := newScanFixture()
	f.addInvoice("inv-paid", entity.InvoicePaid, testNow.AddDate(0, 0, -10))
	f.addInvoice("inv-void", entity.InvoiceVoid, testNow.AddDate(0, 0, -10))

	result, err := f.uc.Scan(context.Background(), "scheduler")
	require.NoError(t, err)

	assert.Equal(t, 0, result.Scanned)
	assert.Equal(t, entity.InvoicePaid, f.invoices.byID["inv-paid"].Status)
	assert.Equal(t, entity.InvoiceVoid, f.invoices.byID["inv-void"].Status)
}
