package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/eduledger-api/internal/domain/entity"
	"github.com/jhoicas/eduledger-api/internal/domain/repository"
)

// AuditRepo implementación PostgreSQL de repository.AuditRepository.
// La tabla es append-only; no hay UPDATE ni DELETE en este repo y los
// permisos de la DB deberían reforzarlo.
type AuditRepo struct {
	q Querier
}

func NewAuditRepo(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

var _ repository.AuditRepository = (*AuditRepo)(nil)

func (r *AuditRepo) Create(e *entity.AuditEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	detail, err := json.Marshal(e.Detail)
	if err != nil {
		return fmt.Errorf("serializar detalle de bitácora: %w", err)
	}

	query := `
		INSERT INTO audit_entries (
			id, tenant_id, actor_id, action, entity_type, entity_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err = r.q.Exec(context.Background(), query,
		e.ID, e.TenantID, e.ActorID, e.Action, e.EntityType, e.EntityID, detail, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insertar entrada de bitácora: %w", err)
	}
	return nil
}

func (r *AuditRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.AuditEntry, error) {
	query := `
		SELECT id, tenant_id, actor_id, action, entity_type, entity_id, detail, created_at
		FROM audit_entries WHERE tenant_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("listar bitácora: %w", err)
	}
	defer rows.Close()

	var out []*entity.AuditEntry
	for rows.Next() {
		e := &entity.AuditEntry{}
		var detail []byte
		err := rows.Scan(&e.ID, &e.TenantID, &e.ActorID, &e.Action, &e.EntityType, &e.EntityID, &detail, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("escanear entrada de bitácora: %w", err)
		}
		if len(detail) > 0 {
			if err := json.Unmarshal(detail, &e.Detail); err != nil {
				return nil, fmt.Errorf("deserializar detalle de bitácora: %w", err)
			}
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar bitácora: %w", err)
	}
	return out, nil
}
