package assets_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/eduledger-api/internal/application/assets"
	"github.com/jhoicas/eduledger-api/internal/application/dto"
	"github.com/jhoicas/eduledger-api/internal/application/ledger"
	"github.com/jhoicas/eduledger-api/internal/domain"
	"github.com/jhoicas/eduledger-api/internal/domain/entity"
	"github.com/jhoicas/eduledger-api/internal/domain/repository"
)

var testNow = time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeAssetRepo struct {
	byID map[string]*entity.Asset
}

func (f *fakeAssetRepo) Create(a *entity.Asset) error {
	cp := *a
	f.byID[a.ID] = &cp
	return nil
}

func (f *fakeAssetRepo) GetByID(id string) (*entity.Asset, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAssetRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Asset, error) {
	var out []*entity.Asset
	for _, a := range f.byID {
		if a.TenantID == tenantID {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeAssetRepo) Assign(id, individualID string, now time.Time) error {
	a := f.byID[id]
	a.HolderID = &individualID
	a.Status = entity.AssetAssigned
	a.UpdatedAt = now
	return nil
}

func (f *fakeAssetRepo) UpdateStatus(id, status string, now time.Time) error {
	a := f.byID[id]
	a.Status = status
	a.UpdatedAt = now
	return nil
}

type fakeIndividualRepo struct {
	byID map[string]*entity.Individual
}

func (f *fakeIndividualRepo) GetByID(id string) (*entity.Individual, error) {
	return f.byID[id], nil
}

func (f *fakeIndividualRepo) CountBillableByTenant(tenantID string) (int, error) { return 0, nil }

func (f *fakeIndividualRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Individual, error) {
	return nil, nil
}

type fakeInvoiceRepo struct {
	byID  map[string]*entity.FeeInvoice
	order []string
}

func (f *fakeInvoiceRepo) Create(inv *entity.FeeInvoice) error {
	cp := *inv
	f.byID[inv.ID] = &cp
	f.order = append(f.order, inv.ID)
	return nil
}

func (f *fakeInvoiceRepo) GetByID(id string) (*entity.FeeInvoice, error) {
	inv, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (f *fakeInvoiceRepo) FindOpenByTrigger(individualID, triggerType, triggerEntityID string) (*entity.FeeInvoice, error) {
	for _, id := range f.order {
		inv := f.byID[id]
		if inv.IndividualID == individualID && inv.TriggerType == triggerType &&
			inv.TriggerEntityID == triggerEntityID && inv.Open() {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeInvoiceRepo) FindOpenByTitle(individualID, title string) (*entity.FeeInvoice, error) {
	for _, id := range f.order {
		inv := f.byID[id]
		if inv.IndividualID == individualID && inv.Title == title && inv.Open() {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeInvoiceRepo) ListDueBefore(now time.Time, limit int) ([]*entity.FeeInvoice, error) {
	return nil, nil
}

func (f *fakeInvoiceRepo) ListByTenant(tenantID, status string, limit, offset int) ([]*entity.FeeInvoice, error) {
	return nil, nil
}

func (f *fakeInvoiceRepo) UpdateStatusIf(id string, from []string, to string, now time.Time) (bool, error) {
	inv, ok := f.byID[id]
	if !ok {
		return false, nil
	}
	for _, s := range from {
		if inv.Status == s {
			inv.Status = to
			return true, nil
		}
	}
	return false, nil
}

type fakeAuditRepo struct {
	entries []*entity.AuditEntry
}

func (f *fakeAuditRepo) Create(e *entity.AuditEntry) error {
	cp := *e
	f.entries = append(f.entries, &cp)
	return nil
}

func (f *fakeAuditRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.AuditEntry, error) {
	return f.entries, nil
}

func (f *fakeAuditRepo) countByAction(action string) int {
	n := 0
	for _, e := range f.entries {
		if e.Action == action {
			n++
		}
	}
	return n
}

type fakeAssetTxRunner struct {
	assets   *fakeAssetRepo
	invoices *fakeInvoiceRepo
	audit    *fakeAuditRepo
}

func (f *fakeAssetTxRunner) RunAssetCharge(ctx context.Context, fn func(
	repository.AssetRepository, repository.FeeInvoiceRepository, repository.AuditRepository) error) error {
	return fn(f.assets, f.invoices, f.audit)
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: AssetUseCase con el emisor de cobros real del motor contable.
// ──────────────────────────────────────────────────────────────────────────────

type fixture struct {
	uc          *assets.AssetUseCase
	assets      *fakeAssetRepo
	invoices    *fakeInvoiceRepo
	audit       *fakeAuditRepo
	individuals *fakeIndividualRepo
}

func newFixture() *fixture {
	assetRepo := &fakeAssetRepo{byID: make(map[string]*entity.Asset)}
	invoiceRepo := &fakeInvoiceRepo{byID: make(map[string]*entity.FeeInvoice)}
	auditRepo := &fakeAuditRepo{}
	individualRepo := &fakeIndividualRepo{byID: make(map[string]*entity.Individual)}
	runner := &fakeAssetTxRunner{assets: assetRepo, invoices: invoiceRepo, audit: auditRepo}

	individualRepo.byID["ind-1"] = &entity.Individual{ID: "ind-1", TenantID: "t-1", FullName: "Ana Pérez", Active: true}
	individualRepo.byID["ind-ajeno"] = &entity.Individual{ID: "ind-ajeno", TenantID: "t-2", FullName: "Otro", Active: true}

	// El emisor de cobros es el caso de uso real del motor contable; la
	// emisión por ciclo de vida corre dentro de la tx del caller y no usa
	// el txRunner propio del emisor.
	issuer := ledger.NewChargeUseCase(nil, invoiceRepo, individualRepo, 14)

	uc := assets.NewAssetUseCase(runner, issuer, assetRepo, individualRepo).
		WithClock(func() time.Time { return testNow })
	return &fixture{uc: uc, assets: assetRepo, invoices: invoiceRepo, audit: auditRepo, individuals: individualRepo}
}

func (f *fixture) addAsset(id string, holderID *string, price string, status string) {
	f.assets.byID[id] = &entity.Asset{
		ID: id, TenantID: "t-1", Name: "Tablet " + id, Serial: "SN-" + id,
		HolderID: holderID, ReplacementPrice: dec(price), Status: status,
	}
}

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// MarkLost
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: marcar perdido cobra el precio de reposición al responsable y deja
// el activo LOST, con bitácora del evento y de la factura.
func TestMarkLost_CobraReposicionAlResponsable(t *testing.T) {
	f := newFixture()
	f.addAsset("a-1", strPtr("ind-1"), "500", entity.AssetAssigned)

	result, err := f.uc.MarkLost(context.Background(), "t-1", "op-1", "a-1")
	require.NoError(t, err)

	assert.Equal(t, entity.AssetLost, result.Status)
	assert.False(t, result.Reused)
	assert.Equal(t, entity.AssetLost, f.assets.byID["a-1"].Status)

	inv := f.invoices.byID[result.InvoiceID]
	require.NotNil(t, inv)
	assert.Equal(t, "ind-1", inv.IndividualID)
	assert.True(t, inv.Amount.Equal(dec("500")))
	assert.Equal(t, entity.InvoicePending, inv.Status)
	assert.Equal(t, entity.TriggerAssetLost, inv.TriggerType)
	assert.Equal(t, "a-1", inv.TriggerEntityID)
	assert.Contains(t, inv.Title, "Reposición de activo")

	assert.Equal(t, 1, f.audit.countByAction(entity.AuditAssetLost))
	assert.Equal(t, 1, f.audit.countByAction(entity.AuditInvoiceCreated))
}

// Caso 2: reportar perdido el mismo activo otra vez mientras la factura siga
// abierta reutiliza esa factura en lugar de duplicar el cobro.
func TestMarkLost_RepetidoReutilizaFactura(t *testing.T) {
	f := newFixture()
	f.addAsset("a-1", strPtr("ind-1"), "500", entity.AssetAssigned)

	first, err := f.uc.MarkLost(context.Background(), "t-1", "op-1", "a-1")
	require.NoError(t, err)
	second, err := f.uc.MarkLost(context.Background(), "t-1", "op-1", "a-1")
	require.NoError(t, err)

	assert.True(t, second.Reused)
	assert.Equal(t, first.InvoiceID, second.InvoiceID)
	assert.Len(t, f.invoices.byID, 1)
	assert.Equal(t, 1, f.audit.countByAction(entity.AuditInvoiceCreated))
}

// Caso 3: si la factura de reposición ya fue pagada, un nuevo reporte del
// mismo activo emite una factura nueva (el mismo evento tras el pago es un
// evento nuevo, no un duplicado).
func TestMarkLost_TrasPagoEmiteFacturaNueva(t *testing.T) {
	f := newFixture()
	f.addAsset("a-1", strPtr("ind-1"), "500", entity.AssetAssigned)

	first, err := f.uc.MarkLost(context.Background(), "t-1", "op-1", "a-1")
	require.NoError(t, err)
	f.invoices.byID[first.InvoiceID].Status = entity.InvoicePaid

	second, err := f.uc.MarkLost(context.Background(), "t-1", "op-1", "a-1")
	require.NoError(t, err)

	assert.False(t, second.Reused)
	assert.NotEqual(t, first.InvoiceID, second.InvoiceID)
	assert.Len(t, f.invoices.byID, 2)
}

// Caso 4: sin responsable asignado se rechaza antes de escribir nada.
func TestMarkLost_SinResponsable(t *testing.T) {
	f := newFixture()
	f.addAsset("a-1", nil, "500", entity.AssetAvailable)

	_, err := f.uc.MarkLost(context.Background(), "t-1", "op-1", "a-1")
	assert.ErrorIs(t, err, domain.ErrAssetNoHolder)
	assert.Equal(t, entity.AssetAvailable, f.assets.byID["a-1"].Status)
	assert.Empty(t, f.invoices.byID)
	assert.Empty(t, f.audit.entries)
}

// Caso 5: sin precio de reposición positivo se rechaza antes de escribir nada.
func TestMarkLost_SinPrecio(t *testing.T) {
	f := newFixture()
	f.addAsset("a-1", strPtr("ind-1"), "0", entity.AssetAssigned)

	_, err := f.uc.MarkLost(context.Background(), "t-1", "op-1", "a-1")
	assert.ErrorIs(t, err, domain.ErrAssetNoPrice)
	assert.Equal(t, entity.AssetAssigned, f.assets.byID["a-1"].Status)
	assert.Empty(t, f.invoices.byID)
}

// Caso 6: un responsable dado de baja invalida el cobro.
func TestMarkLost_ResponsableInactivo(t *testing.T) {
	f := newFixture()
	f.individuals.byID["ind-baja"] = &entity.Individual{ID: "ind-baja", TenantID: "t-1", Active: false}
	f.addAsset("a-1", strPtr("ind-baja"), "500", entity.AssetAssigned)

	_, err := f.uc.MarkLost(context.Background(), "t-1", "op-1", "a-1")
	assert.ErrorIs(t, err, domain.ErrAssetNoHolder)
	assert.Empty(t, f.invoices.byID)
}

// Caso 7: aislamiento de tenant.
func TestMarkLost_OtroTenantProhibido(t *testing.T) {
	f := newFixture()
	f.addAsset("a-1", strPtr("ind-1"), "500", entity.AssetAssigned)

	_, err := f.uc.MarkLost(context.Background(), "t-ajeno", "op-1", "a-1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Create / Assign
// ──────────────────────────────────────────────────────────────────────────────

// Caso 8: alta y asignación normales.
func TestCreateYAssign(t *testing.T) {
	f := newFixture()

	created, err := f.uc.Create(context.Background(), "t-1", dto.CreateAssetRequest{
		Name: "Tablet 7", Serial: "SN-7", ReplacementPrice: dec("350"),
	})
	require.NoError(t, err)
	assert.Equal(t, entity.AssetAvailable, created.Status)

	assigned, err := f.uc.Assign(context.Background(), "t-1", created.ID, dto.AssignAssetRequest{IndividualID: "ind-1"})
	require.NoError(t, err)
	assert.Equal(t, entity.AssetAssigned, assigned.Status)
	assert.Equal(t, "ind-1", assigned.HolderID)
}

// Caso 9: no se asigna a un individuo de otro tenant.
func TestAssign_IndividuoDeOtroTenant(t *testing.T) {
	f := newFixture()
	f.addAsset("a-1", nil, "350", entity.AssetAvailable)

	_, err := f.uc.Assign(context.Background(), "t-1", "a-1", dto.AssignAssetRequest{IndividualID: "ind-ajeno"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Caso 10: un activo perdido o retirado no admite asignación.
func TestAssign_PerdidoNoAsignable(t *testing.T) {
	f := newFixture()
	f.addAsset("a-1", strPtr("ind-1"), "350", entity.AssetLost)

	_, err := f.uc.Assign(context.Background(), "t-1", "a-1", dto.AssignAssetRequest{IndividualID: "ind-1"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// Caso 11: precio de reposición negativo se rechaza en el alta.
func TestCreate_PrecioNegativo(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Create(context.Background(), "t-1", dto.CreateAssetRequest{
		Name: "Tablet", ReplacementPrice: dec("-1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
