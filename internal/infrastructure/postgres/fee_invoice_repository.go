package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/eduledger-api/internal/domain/entity"
	"github.com/jhoicas/eduledger-api/internal/domain/repository"
)

// FeeInvoiceRepo implementación PostgreSQL de repository.FeeInvoiceRepository.
type FeeInvoiceRepo struct {
	q Querier
}

func NewFeeInvoiceRepo(q Querier) *FeeInvoiceRepo {
	return &FeeInvoiceRepo{q: q}
}

var _ repository.FeeInvoiceRepository = (*FeeInvoiceRepo)(nil)

const selectInvoice = `
	SELECT id, tenant_id, individual_id, title, amount, due_date,
	       status, trigger_type, trigger_entity_id, created_at, updated_at
	FROM fee_invoices`

func (r *FeeInvoiceRepo) Create(inv *entity.FeeInvoice) error {
	if inv.ID == "" {
		inv.ID = uuid.NewString()
	}
	now := time.Now()
	inv.CreatedAt = now
	inv.UpdatedAt = now

	query := `
		INSERT INTO fee_invoices (
			id, tenant_id, individual_id, title, amount, due_date,
			status, trigger_type, trigger_entity_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		inv.ID, inv.TenantID, inv.IndividualID, inv.Title, inv.Amount, inv.DueDate,
		inv.Status, inv.TriggerType, inv.TriggerEntityID, inv.CreatedAt, inv.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insertar factura: %w", err)
	}
	return nil
}

func (r *FeeInvoiceRepo) GetByID(id string) (*entity.FeeInvoice, error) {
	query := selectInvoice + ` WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

func (r *FeeInvoiceRepo) FindOpenByTrigger(individualID, triggerType, triggerEntityID string) (*entity.FeeInvoice, error) {
	query := selectInvoice + `
		WHERE individual_id = $1 AND trigger_type = $2 AND trigger_entity_id = $3
		  AND status IN ($4, $5)
		LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query,
		individualID, triggerType, triggerEntityID, entity.InvoicePending, entity.InvoiceOverdue))
}

func (r *FeeInvoiceRepo) FindOpenByTitle(individualID, title string) (*entity.FeeInvoice, error) {
	query := selectInvoice + `
		WHERE individual_id = $1 AND title = $2 AND status IN ($3, $4)
		LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query,
		individualID, title, entity.InvoicePending, entity.InvoiceOverdue))
}

// ListDueBefore devuelve facturas PENDING con vencimiento cumplido. Excluir
// OVERDUE hace que el escáner sea idempotente: las ya transicionadas no
// vuelven a aparecer en lotes siguientes.
func (r *FeeInvoiceRepo) ListDueBefore(now time.Time, limit int) ([]*entity.FeeInvoice, error) {
	query := selectInvoice + `
		WHERE status = $1 AND due_date <= $2
		ORDER BY due_date LIMIT $3`
	rows, err := r.q.Query(context.Background(), query, entity.InvoicePending, now, limit)
	if err != nil {
		return nil, fmt.Errorf("listar facturas vencidas: %w", err)
	}
	defer rows.Close()
	return scanInvoices(rows)
}

func (r *FeeInvoiceRepo) ListByTenant(tenantID, status string, limit, offset int) ([]*entity.FeeInvoice, error) {
	var rows pgx.Rows
	var err error
	if status != "" {
		query := selectInvoice + `
			WHERE tenant_id = $1 AND status = $2
			ORDER BY created_at DESC LIMIT $3 OFFSET $4`
		rows, err = r.q.Query(context.Background(), query, tenantID, status, limit, offset)
	} else {
		query := selectInvoice + `
			WHERE tenant_id = $1
			ORDER BY created_at DESC LIMIT $2 OFFSET $3`
		rows, err = r.q.Query(context.Background(), query, tenantID, limit, offset)
	}
	if err != nil {
		return nil, fmt.Errorf("listar facturas: %w", err)
	}
	defer rows.Close()
	return scanInvoices(rows)
}

// UpdateStatusIf transiciona status solo si el estado actual está en from.
// Devuelve false cuando otra corrida ganó la transición o el id no existe.
func (r *FeeInvoiceRepo) UpdateStatusIf(id string, from []string, to string, now time.Time) (bool, error) {
	query := `
		UPDATE fee_invoices SET status = $2, updated_at = $3
		WHERE id = $1 AND status = ANY($4)`
	tag, err := r.q.Exec(context.Background(), query, id, to, now, from)
	if err != nil {
		return false, fmt.Errorf("transicionar factura: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *FeeInvoiceRepo) scanOne(row pgx.Row) (*entity.FeeInvoice, error) {
	inv := &entity.FeeInvoice{}
	err := row.Scan(
		&inv.ID, &inv.TenantID, &inv.IndividualID, &inv.Title, &inv.Amount, &inv.DueDate,
		&inv.Status, &inv.TriggerType, &inv.TriggerEntityID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("escanear factura: %w", err)
	}
	return inv, nil
}

func scanInvoices(rows pgx.Rows) ([]*entity.FeeInvoice, error) {
	var out []*entity.FeeInvoice
	for rows.Next() {
		inv := &entity.FeeInvoice{}
		err := rows.Scan(
			&inv.ID, &inv.TenantID, &inv.IndividualID, &inv.Title, &inv.Amount, &inv.DueDate,
			&inv.Status, &inv.TriggerType, &inv.TriggerEntityID, &inv.CreatedAt, &inv.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("escanear factura: %w", err)
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar facturas: %w", err)
	}
	return out, nil
}
