package assets

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/eduledger-api/internal/application/dto"
	"github.com/jhoicas/eduledger-api/internal/domain"
	"github.com/jhoicas/eduledger-api/internal/domain/entity"
	"github.com/jhoicas/eduledger-api/internal/domain/repository"
)

// AssetUseCase gestiona los activos escolares y el disparador financiero de
// su ciclo de vida: marcar un activo como perdido cobra el precio de
// reposición al individuo responsable, en una sola transacción.
type AssetUseCase struct {
	txRunner       AssetTxRunner
	chargeIssuer   ChargeIssuer
	assetRepo      repository.AssetRepository
	individualRepo repository.IndividualRepository
	clock          func() time.Time
}

// NewAssetUseCase construye el caso de uso.
func NewAssetUseCase(
	txRunner AssetTxRunner,
	chargeIssuer ChargeIssuer,
	assetRepo repository.AssetRepository,
	individualRepo repository.IndividualRepository,
) *AssetUseCase {
	return &AssetUseCase{
		txRunner:       txRunner,
		chargeIssuer:   chargeIssuer,
		assetRepo:      assetRepo,
		individualRepo: individualRepo,
		clock:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests con timestamps fijos).
func (uc *AssetUseCase) WithClock(clock func() time.Time) *AssetUseCase {
	uc.clock = clock
	return uc
}

// Create registra un activo del tenant.
func (uc *AssetUseCase) Create(ctx context.Context, tenantID string, in dto.CreateAssetRequest) (*dto.AssetResponse, error) {
	if in.Name == "" || in.ReplacementPrice.LessThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	now := uc.clock()
	asset := &entity.Asset{
		ID:               uuid.New().String(),
		TenantID:         tenantID,
		Name:             in.Name,
		Serial:           in.Serial,
		ReplacementPrice: in.ReplacementPrice,
		Status:           entity.AssetAvailable,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.assetRepo.Create(asset); err != nil {
		return nil, err
	}
	return toAssetResponse(asset), nil
}

// Assign asigna el activo a un individuo del tenant (responsable actual).
func (uc *AssetUseCase) Assign(ctx context.Context, tenantID, assetID string, in dto.AssignAssetRequest) (*dto.AssetResponse, error) {
	if in.IndividualID == "" {
		return nil, domain.ErrInvalidInput
	}
	asset, err := uc.getTenantAsset(tenantID, assetID)
	if err != nil {
		return nil, err
	}
	if asset.Status == entity.AssetLost || asset.Status == entity.AssetRetired {
		return nil, domain.ErrConflict
	}
	individual, err := uc.individualRepo.GetByID(in.IndividualID)
	if err != nil {
		return nil, err
	}
	if individual == nil {
		return nil, domain.ErrNotFound
	}
	if individual.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	now := uc.clock()
	if err := uc.assetRepo.Assign(asset.ID, individual.ID, now); err != nil {
		return nil, err
	}
	asset.HolderID = &individual.ID
	asset.Status = entity.AssetAssigned
	asset.UpdatedAt = now
	return toAssetResponse(asset), nil
}

// MarkLost marca el activo como perdido y emite el cobro de reposición al
// responsable actual. Precondiciones (se rechazan ANTES de escribir nada):
// responsable asignado, individuo facturable del tenant y precio de
// reposición estrictamente positivo. El cambio de estado y la factura se
// confirman o revierten juntos.
//
// Reportar perdido el mismo activo otra vez mientras la factura siga abierta
// reutiliza esa factura (reused=true); si ya fue pagada, el nuevo reporte
// emite una factura nueva.
func (uc *AssetUseCase) MarkLost(ctx context.Context, tenantID, actorID, assetID string) (*dto.MarkAssetLostResult, error) {
	asset, err := uc.getTenantAsset(tenantID, assetID)
	if err != nil {
		return nil, err
	}
	if asset.HolderID == nil {
		return nil, domain.ErrAssetNoHolder
	}
	if !asset.ReplacementPrice.GreaterThan(decimal.Zero) {
		return nil, domain.ErrAssetNoPrice
	}
	individual, err := uc.individualRepo.GetByID(*asset.HolderID)
	if err != nil {
		return nil, err
	}
	if individual == nil || individual.TenantID != tenantID || !individual.Active {
		return nil, domain.ErrAssetNoHolder
	}

	now := uc.clock()
	// Título canónico: el mismo evento produce siempre el mismo título.
	// La deduplicación real usa (trigger_type, trigger_entity_id); el título
	// queda como descripción legible en la factura.
	title := fmt.Sprintf("Reposición de activo: %s [%s]", asset.Name, asset.ID)

	var invoice *entity.FeeInvoice
	var reused bool
	err = uc.txRunner.RunAssetCharge(ctx, func(
		assetRepo repository.AssetRepository,
		invoiceRepo repository.FeeInvoiceRepository,
		auditRepo repository.AuditRepository,
	) error {
		if err := assetRepo.UpdateStatus(asset.ID, entity.AssetLost, now); err != nil {
			return err
		}
		invoice, reused, err = uc.chargeIssuer.IssueLifecycleChargeInTx(
			invoiceRepo, auditRepo,
			tenantID, actorID, individual.ID, title,
			asset.ReplacementPrice,
			entity.TriggerAssetLost, asset.ID,
			now,
		)
		if err != nil {
			return err
		}
		return auditRepo.Create(&entity.AuditEntry{
			ID:         uuid.New().String(),
			TenantID:   &asset.TenantID,
			ActorID:    actorID,
			Action:     entity.AuditAssetLost,
			EntityType: entity.EntityAsset,
			EntityID:   asset.ID,
			Detail: map[string]any{
				"holder_id":  individual.ID,
				"invoice_id": invoice.ID,
				"reused":     reused,
				"price":      asset.ReplacementPrice.String(),
			},
			CreatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	return &dto.MarkAssetLostResult{
		AssetID:   asset.ID,
		Status:    entity.AssetLost,
		InvoiceID: invoice.ID,
		Reused:    reused,
	}, nil
}

// List lista los activos del tenant.
func (uc *AssetUseCase) List(ctx context.Context, tenantID string, page dto.PageRequest) ([]*dto.AssetResponse, error) {
	page.DefaultPage()
	assets, err := uc.assetRepo.ListByTenant(tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.AssetResponse, 0, len(assets))
	for _, a := range assets {
		out = append(out, toAssetResponse(a))
	}
	return out, nil
}

// GetByID obtiene un activo del tenant.
func (uc *AssetUseCase) GetByID(ctx context.Context, tenantID, assetID string) (*dto.AssetResponse, error) {
	asset, err := uc.getTenantAsset(tenantID, assetID)
	if err != nil {
		return nil, err
	}
	return toAssetResponse(asset), nil
}

func (uc *AssetUseCase) getTenantAsset(tenantID, assetID string) (*entity.Asset, error) {
	asset, err := uc.assetRepo.GetByID(assetID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, domain.ErrNotFound
	}
	if asset.TenantID != tenantID {
		return nil, domain.ErrForbidden
	}
	return asset, nil
}

func toAssetResponse(a *entity.Asset) *dto.AssetResponse {
	resp := &dto.AssetResponse{
		ID:               a.ID,
		TenantID:         a.TenantID,
		Name:             a.Name,
		Serial:           a.Serial,
		ReplacementPrice: a.ReplacementPrice,
		Status:           a.Status,
		CreatedAt:        a.CreatedAt,
	}
	if a.HolderID != nil {
		resp.HolderID = *a.HolderID
	}
	return resp
}
