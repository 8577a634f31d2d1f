package ledger

import (
	"context"

	"github.com/jhoicas/eduledger-api/internal/application/dto"
	"github.com/jhoicas/eduledger-api/internal/domain/repository"
)

// AuditQueryUseCase lectura paginada de la bitácora para vistas de operador.
// Solo consulta: el motor contable escribe la bitácora dentro de sus propias
// transacciones y nunca la lee para tomar decisiones.
type AuditQueryUseCase struct {
	auditRepo repository.AuditRepository
}

// NewAuditQueryUseCase construye el caso de uso.
func NewAuditQueryUseCase(auditRepo repository.AuditRepository) *AuditQueryUseCase {
	return &AuditQueryUseCase{auditRepo: auditRepo}
}

// ListByTenant entradas del tenant, de la más reciente a la más antigua.
func (uc *AuditQueryUseCase) ListByTenant(ctx context.Context, tenantID string, page dto.PageRequest) ([]*dto.AuditEntryResponse, error) {
	page.DefaultPage()
	entries, err := uc.auditRepo.ListByTenant(tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp := &dto.AuditEntryResponse{
			ID:         e.ID,
			ActorID:    e.ActorID,
			Action:     e.Action,
			EntityType: e.EntityType,
			EntityID:   e.EntityID,
			Detail:     e.Detail,
			CreatedAt:  e.CreatedAt,
		}
		if e.TenantID != nil {
			resp.TenantID = *e.TenantID
		}
		out = append(out, resp)
	}
	return out, nil
}
