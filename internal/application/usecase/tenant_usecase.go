package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/eduledger-api/internal/application/dto"
	"github.com/jhoicas/eduledger-api/internal/domain"
	"github.com/jhoicas/eduledger-api/internal/domain/entity"
	"github.com/jhoicas/eduledger-api/internal/domain/repository"
)

// TenantUseCase administración de colegios por el operador de plataforma:
// alta, cambio de plan/cuota y desactivación (nunca eliminación física).
type TenantUseCase struct {
	tenantRepo repository.TenantRepository
}

// NewTenantUseCase construye el caso de uso.
func NewTenantUseCase(tenantRepo repository.TenantRepository) *TenantUseCase {
	return &TenantUseCase{tenantRepo: tenantRepo}
}

// Create da de alta un tenant con su plan y cuota base.
func (uc *TenantUseCase) Create(ctx context.Context, in dto.CreateTenantRequest) (*dto.TenantResponse, error) {
	if in.Name == "" || !entity.ValidTier(in.Tier) {
		return nil, domain.ErrInvalidInput
	}
	if in.BaseFee.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	tenant := &entity.Tenant{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Tier:      in.Tier,
		BaseFee:   in.BaseFee,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.tenantRepo.Create(tenant); err != nil {
		return nil, err
	}
	return toTenantResponse(tenant), nil
}

// Update modifica nombre, plan, cuota base o bandera de actividad.
// Active=false desactiva el tenant sin tocar su historial financiero.
func (uc *TenantUseCase) Update(ctx context.Context, id string, in dto.UpdateTenantRequest) (*dto.TenantResponse, error) {
	tenant, err := uc.tenantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		tenant.Name = in.Name
	}
	if in.Tier != "" {
		if !entity.ValidTier(in.Tier) {
			return nil, domain.ErrInvalidInput
		}
		tenant.Tier = in.Tier
	}
	if in.BaseFee != nil {
		if in.BaseFee.LessThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		tenant.BaseFee = *in.BaseFee
	}
	if in.Active != nil {
		tenant.Active = *in.Active
	}
	tenant.UpdatedAt = time.Now()
	if err := uc.tenantRepo.Update(tenant); err != nil {
		return nil, err
	}
	return toTenantResponse(tenant), nil
}

// GetByID obtiene un tenant.
func (uc *TenantUseCase) GetByID(ctx context.Context, id string) (*dto.TenantResponse, error) {
	tenant, err := uc.tenantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	return toTenantResponse(tenant), nil
}

// List lista tenants con paginación.
func (uc *TenantUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.TenantResponse, error) {
	page.DefaultPage()
	tenants, err := uc.tenantRepo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, toTenantResponse(t))
	}
	return out, nil
}

func toTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	return &dto.TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Tier:      t.Tier,
		BaseFee:   t.BaseFee,
		Active:    t.Active,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
