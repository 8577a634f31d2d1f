package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/eduledger-api/internal/domain"
	"github.com/jhoicas/eduledger-api/internal/domain/entity"
	"github.com/jhoicas/eduledger-api/internal/domain/repository"
)

// SettlementRepo implementación PostgreSQL de repository.SettlementRepository.
// La tabla lleva UNIQUE (tenant_id, period_start, period_end); ese constraint
// es el árbitro final entre corridas de facturación concurrentes.
type SettlementRepo struct {
	q Querier
}

func NewSettlementRepo(q Querier) *SettlementRepo {
	return &SettlementRepo{q: q}
}

var _ repository.SettlementRepository = (*SettlementRepo)(nil)

func (r *SettlementRepo) Create(s *entity.Settlement) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	query := `
		INSERT INTO settlements (
			id, tenant_id, period_start, period_end,
			base_amount, extra_units, extra_amount, total_amount,
			status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		s.ID, s.TenantID, s.PeriodStart, s.PeriodEnd,
		s.BaseAmount, s.ExtraUnits, s.ExtraAmount, s.TotalAmount,
		s.Status, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insertar cargo de período: %w", err)
	}
	return nil
}

func (r *SettlementRepo) GetByID(id string) (*entity.Settlement, error) {
	query := selectSettlement + ` WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id))
}

func (r *SettlementRepo) GetByTenantAndPeriod(tenantID string, periodStart, periodEnd time.Time) (*entity.Settlement, error) {
	query := selectSettlement + ` WHERE tenant_id = $1 AND period_start = $2 AND period_end = $3`
	return r.scanOne(r.q.QueryRow(context.Background(), query, tenantID, periodStart, periodEnd))
}

func (r *SettlementRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Settlement, error) {
	query := selectSettlement + `
		WHERE tenant_id = $1 ORDER BY period_start DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar cargos de período: %w", err)
	}
	defer rows.Close()

	var out []*entity.Settlement
	for rows.Next() {
		s := &entity.Settlement{}
		if err := scanSettlement(rows, s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar cargos de período: %w", err)
	}
	return out, nil
}

// MarkSettled transiciona OUTSTANDING → SETTLED de forma condicional.
// El WHERE sobre status hace que el perdedor de una carrera reciba false.
func (r *SettlementRepo) MarkSettled(id string, now time.Time) (bool, error) {
	query := `
		UPDATE settlements SET status = $2, updated_at = $3
		WHERE id = $1 AND status = $4`
	tag, err := r.q.Exec(context.Background(), query,
		id, entity.SettlementSettled, now, entity.SettlementOutstanding)
	if err != nil {
		return false, fmt.Errorf("saldar cargo de período: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

const selectSettlement = `
	SELECT id, tenant_id, period_start, period_end,
	       base_amount, extra_units, extra_amount, total_amount,
	       status, created_at, updated_at
	FROM settlements`

func (r *SettlementRepo) scanOne(row pgx.Row) (*entity.Settlement, error) {
	s := &entity.Settlement{}
	if err := scanSettlement(row, s); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return s, nil
}

func scanSettlement(row pgx.Row, s *entity.Settlement) error {
	err := row.Scan(
		&s.ID, &s.TenantID, &s.PeriodStart, &s.PeriodEnd,
		&s.BaseAmount, &s.ExtraUnits, &s.ExtraAmount, &s.TotalAmount,
		&s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return err
		}
		return fmt.Errorf("escanear cargo de período: %w", err)
	}
	return nil
}
