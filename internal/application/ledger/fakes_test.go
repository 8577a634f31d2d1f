package ledger_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/eduledger-api/internal/application/ledger"
	"github.com/jhoicas/eduledger-api/internal/domain"
	"github.com/jhoicas/eduledger-api/internal/domain/entity"
	"github.com/jhoicas/eduledger-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia. Reproducen los contratos
// relevantes: constraint único de settlements, transiciones condicionales de
// facturas y bitácora append-only.
// ──────────────────────────────────────────────────────────────────────────────

type fakeTenantRepo struct {
	tenants []*entity.Tenant
}

func (f *fakeTenantRepo) Create(t *entity.Tenant) error {
	f.tenants = append(f.tenants, t)
	return nil
}

func (f *fakeTenantRepo) GetByID(id string) (*entity.Tenant, error) {
	for _, t := range f.tenants {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTenantRepo) Update(t *entity.Tenant) error { return nil }

func (f *fakeTenantRepo) List(limit, offset int) ([]*entity.Tenant, error) {
	return f.tenants, nil
}

func (f *fakeTenantRepo) ListActive() ([]*entity.Tenant, error) {
	var out []*entity.Tenant
	for _, t := range f.tenants {
		if t.Active {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeIndividualRepo struct {
	byID     map[string]*entity.Individual
	counts   map[string]int
	countErr map[string]error
}

func newFakeIndividualRepo() *fakeIndividualRepo {
	return &fakeIndividualRepo{
		byID:     make(map[string]*entity.Individual),
		counts:   make(map[string]int),
		countErr: make(map[string]error),
	}
}

func (f *fakeIndividualRepo) GetByID(id string) (*entity.Individual, error) {
	return f.byID[id], nil
}

func (f *fakeIndividualRepo) CountBillableByTenant(tenantID string) (int, error) {
	if err := f.countErr[tenantID]; err != nil {
		return 0, err
	}
	return f.counts[tenantID], nil
}

func (f *fakeIndividualRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Individual, error) {
	var out []*entity.Individual
	for _, i := range f.byID {
		if i.TenantID == tenantID {
			out = append(out, i)
		}
	}
	return out, nil
}

type fakeSettlementRepo struct {
	byID  map[string]*entity.Settlement
	byKey map[string]*entity.Settlement
}

func newFakeSettlementRepo() *fakeSettlementRepo {
	return &fakeSettlementRepo{
		byID:  make(map[string]*entity.Settlement),
		byKey: make(map[string]*entity.Settlement),
	}
}

func settlementKey(tenantID string, start, end time.Time) string {
	return fmt.Sprintf("%s|%s|%s", tenantID, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

func (f *fakeSettlementRepo) Create(s *entity.Settlement) error {
	key := settlementKey(s.TenantID, s.PeriodStart, s.PeriodEnd)
	if _, ok := f.byKey[key]; ok {
		return domain.ErrDuplicate
	}
	cp := *s
	f.byID[s.ID] = &cp
	f.byKey[key] = &cp
	return nil
}

func (f *fakeSettlementRepo) GetByID(id string) (*entity.Settlement, error) {
	return f.byID[id], nil
}

func (f *fakeSettlementRepo) GetByTenantAndPeriod(tenantID string, start, end time.Time) (*entity.Settlement, error) {
	return f.byKey[settlementKey(tenantID, start, end)], nil
}

func (f *fakeSettlementRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Settlement, error) {
	var out []*entity.Settlement
	for _, s := range f.byID {
		if s.TenantID == tenantID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PeriodStart.After(out[j].PeriodStart) })
	return out, nil
}

func (f *fakeSettlementRepo) MarkSettled(id string, now time.Time) (bool, error) {
	s, ok := f.byID[id]
	if !ok || s.Status != entity.SettlementOutstanding {
		return false, nil
	}
	s.Status = entity.SettlementSettled
	s.UpdatedAt = now
	return true, nil
}

type fakeInvoiceRepo struct {
	byID  map[string]*entity.FeeInvoice
	order []string
	// onUpdateStatusIf se invoca antes de aplicar la transición; permite
	// simular una carrera (otro proceso paga entre consulta y transición).
	onUpdateStatusIf func(id string)
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{byID: make(map[string]*entity.FeeInvoice)}
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
	var out []*entity.FeeInvoice
	for _, id := range f.order {
		inv := f.byID[id]
		if inv.Status == entity.InvoicePending && !inv.DueDate.After(now) {
			cp := *inv
			out = append(out, &cp)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeInvoiceRepo) ListByTenant(tenantID, status string, limit, offset int) ([]*entity.FeeInvoice, error) {
	var out []*entity.FeeInvoice
	for _, id := range f.order {
		inv := f.byID[id]
		if inv.TenantID == tenantID && (status == "" || inv.Status == status) {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeInvoiceRepo) UpdateStatusIf(id string, from []string, to string, now time.Time) (bool, error) {
	if f.onUpdateStatusIf != nil {
		f.onUpdateStatusIf(id)
	}
	inv, ok := f.byID[id]
	if !ok {
		return false, nil
	}
	for _, s := range from {
		if inv.Status == s {
			inv.Status = to
			inv.UpdatedAt = now
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
	var out []*entity.AuditEntry
	for i := len(f.entries) - 1; i >= 0; i-- {
		e := f.entries[i]
		if e.TenantID != nil && *e.TenantID == tenantID {
			out = append(out, e)
		}
	}
	return out, nil
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

// fakeTxRunner ejecuta las closures directamente contra los fakes, sin
// transacción real. Los casos que dependen del rollback no escriben nada
// antes de fallar, así que el contrato observable se mantiene.
type fakeTxRunner struct {
	settlements *fakeSettlementRepo
	invoices    *fakeInvoiceRepo
	audit       *fakeAuditRepo
}

func (f *fakeTxRunner) RunSettlement(ctx context.Context, fn func(repository.SettlementRepository, repository.AuditRepository) error) error {
	return fn(f.settlements, f.audit)
}

func (f *fakeTxRunner) RunInvoice(ctx context.Context, fn func(repository.FeeInvoiceRepository, repository.AuditRepository) error) error {
	return fn(f.invoices, f.audit)
}

var _ ledger.LedgerTxRunner = (*fakeTxRunner)(nil)

type fakeAlerts struct {
	sent []string // invoice IDs
	err  error
}

func (f *fakeAlerts) DispatchOverdueAlert(ctx context.Context, invoiceID, individualID string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, invoiceID)
	return nil
}
