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

// TenantRepo implementación PostgreSQL de repository.TenantRepository.
type TenantRepo struct {
	q Querier // Pasar pool o tx (Querier)
}

func NewTenantRepo(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

var _ repository.TenantRepository = (*TenantRepo)(nil)

func (r *TenantRepo) Create(t *entity.Tenant) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	now := time.Now()
	t.CreatedAt = now
	t.UpdatedAt = now

	query := `
		INSERT INTO tenants (id, name, tier, base_fee, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Name, t.Tier, t.BaseFee, t.Active, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insertar tenant: %w", err)
	}
	return nil
}

func (r *TenantRepo) GetByID(id string) (*entity.Tenant, error) {
	query := `
		SELECT id, name, tier, base_fee, active, created_at, updated_at
		FROM tenants WHERE id = $1`
	t := &entity.Tenant{}
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Name, &t.Tier, &t.BaseFee, &t.Active, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("consultar tenant: %w", err)
	}
	return t, nil
}

func (r *TenantRepo) Update(t *entity.Tenant) error {
	t.UpdatedAt = time.Now()
	query := `
		UPDATE tenants
		SET name = $2, tier = $3, base_fee = $4, active = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		t.ID, t.Name, t.Tier, t.BaseFee, t.Active, t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("actualizar tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("tenant %s no existe", t.ID)
	}
	return nil
}

func (r *TenantRepo) List(limit, offset int) ([]*entity.Tenant, error) {
	query := `
		SELECT id, name, tier, base_fee, active, created_at, updated_at
		FROM tenants ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar tenants: %w", err)
	}
	defer rows.Close()
	return scanTenants(rows)
}

func (r *TenantRepo) ListActive() ([]*entity.Tenant, error) {
	query := `
		SELECT id, name, tier, base_fee, active, created_at, updated_at
		FROM tenants WHERE active = true ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("listar tenants activos: %w", err)
	}
	defer rows.Close()
	return scanTenants(rows)
}

func scanTenants(rows pgx.Rows) ([]*entity.Tenant, error) {
	var out []*entity.Tenant
	for rows.Next() {
		t := &entity.Tenant{}
		if err := rows.Scan(&t.ID, &t.Name, &t.Tier, &t.BaseFee, &t.Active, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("escanear tenant: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar tenants: %w", err)
	}
	return out, nil
}
