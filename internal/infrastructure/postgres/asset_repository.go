package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/eduledger-api/internal/domain/entity"
	"github.com/jhoicas/eduledger-api/internal/domain/repository"
)

// AssetRepo implementación PostgreSQL de repository.AssetRepository.
type AssetRepo struct {
	q Querier
}

func NewAssetRepo(q Querier) *AssetRepo {
	return &AssetRepo{q: q}
}

var _ repository.AssetRepository = (*AssetRepo)(nil)

func (r *AssetRepo) Create(a *entity.Asset) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now

	query := `
		INSERT INTO assets (
			id, tenant_id, name, serial, holder_id,
			replacement_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.TenantID, a.Name, a.Serial, a.HolderID,
		a.ReplacementPrice, a.Status, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insertar activo: %w", err)
	}
	return nil
}

func (r *AssetRepo) GetByID(id string) (*entity.Asset, error) {
	query := `
		SELECT id, tenant_id, name, serial, holder_id,
		       replacement_price, status, created_at, updated_at
		FROM assets WHERE id = $1`
	a := &entity.Asset{}
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.TenantID, &a.Name, &a.Serial, &a.HolderID,
		&a.ReplacementPrice, &a.Status, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("consultar activo: %w", err)
	}
	return a, nil
}

func (r *AssetRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Asset, error) {
	query := `
		SELECT id, tenant_id, name, serial, holder_id,
		       replacement_price, status, created_at, updated_at
		FROM assets WHERE tenant_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar activos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Asset
	for rows.Next() {
		a := &entity.Asset{}
		err := rows.Scan(
			&a.ID, &a.TenantID, &a.Name, &a.Serial, &a.HolderID,
			&a.ReplacementPrice, &a.Status, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("escanear activo: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar activos: %w", err)
	}
	return out, nil
}

func (r *AssetRepo) Assign(id, individualID string, now time.Time) error {
	query := `
		UPDATE assets SET holder_id = $2, status = $3, updated_at = $4
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, individualID, entity.AssetAssigned, now)
	if err != nil {
		return fmt.Errorf("asignar activo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("activo %s no existe", id)
	}
	return nil
}

func (r *AssetRepo) UpdateStatus(id, status string, now time.Time) error {
	query := `UPDATE assets SET status = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, now)
	if err != nil {
		return fmt.Errorf("actualizar estado de activo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("activo %s no existe", id)
	}
	return nil
}
