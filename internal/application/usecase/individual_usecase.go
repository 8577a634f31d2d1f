package usecase

import (
	"context"

	"github.com/jhoicas/eduledger-api/internal/application/dto"
	"github.com/jhoicas/eduledger-api/internal/domain"
	"github.com/jhoicas/eduledger-api/internal/domain/repository"
)

// IndividualUseCase consultas de solo lectura sobre el directorio de
// individuos facturables. El módulo académico es el dueño de la escritura.
type IndividualUseCase struct {
	individualRepo repository.IndividualRepository
}

func NewIndividualUseCase(individualRepo repository.IndividualRepository) *IndividualUseCase {
	return &IndividualUseCase{individualRepo: individualRepo}
}

// List devuelve los individuos del tenant, paginados.
func (uc *IndividualUseCase) List(ctx context.Context, tenantID string, page dto.PageRequest) ([]*dto.IndividualResponse, error) {
	page.DefaultPage()
	items, err := uc.individualRepo.ListByTenant(tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.IndividualResponse, 0, len(items))
	for _, i := range items {
		out = append(out, &dto.IndividualResponse{
			ID:        i.ID,
			TenantID:  i.TenantID,
			FullName:  i.FullName,
			Email:     i.Email,
			Active:    i.Active,
			CreatedAt: i.CreatedAt,
		})
	}
	return out, nil
}

// GetByID devuelve un individuo del tenant.
func (uc *IndividualUseCase) GetByID(ctx context.Context, tenantID, id string) (*dto.IndividualResponse, error) {
	i, err := uc.individualRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, domain.ErrNotFound
	}
	if i.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	return &dto.IndividualResponse{
		ID:        i.ID,
		TenantID:  i.TenantID,
		FullName:  i.FullName,
		Email:     i.Email,
		Active:    i.Active,
		CreatedAt: i.CreatedAt,
	}, nil
}
