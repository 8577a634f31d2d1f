package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/eduledger-api/internal/domain/entity"
	"github.com/jhoicas/eduledger-api/internal/domain/repository"
)

// IndividualRepo implementación PostgreSQL de repository.IndividualRepository.
// Solo lectura: la tabla la escribe el módulo académico.
type IndividualRepo struct {
	q Querier
}

func NewIndividualRepo(q Querier) *IndividualRepo {
	return &IndividualRepo{q: q}
}

var _ repository.IndividualRepository = (*IndividualRepo)(nil)

func (r *IndividualRepo) GetByID(id string) (*entity.Individual, error) {
	query := `
		SELECT id, tenant_id, full_name, email, active, created_at, updated_at
		FROM individuals WHERE id = $1`
	i := &entity.Individual{}
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&i.ID, &i.TenantID, &i.FullName, &i.Email, &i.Active, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("consultar individuo: %w", err)
	}
	return i, nil
}

func (r *IndividualRepo) CountBillableByTenant(tenantID string) (int, error) {
	query := `SELECT COUNT(*) FROM individuals WHERE tenant_id = $1 AND active = true`
	var count int
	if err := r.q.QueryRow(context.Background(), query, tenantID).Scan(&count); err != nil {
		return 0, fmt.Errorf("contar individuos facturables: %w", err)
	}
	return count, nil
}

func (r *IndividualRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Individual, error) {
	query := `
		SELECT id, tenant_id, full_name, email, active, created_at, updated_at
		FROM individuals WHERE tenant_id = $1
		ORDER BY full_name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar individuos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Individual
	for rows.Next() {
		i := &entity.Individual{}
		if err := rows.Scan(&i.ID, &i.TenantID, &i.FullName, &i.Email, &i.Active, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("escanear individuo: %w", err)
		}
		out = append(out, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar individuos: %w", err)
	}
	return out, nil
}
