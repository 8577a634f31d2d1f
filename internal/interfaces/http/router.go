package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/eduledger-api/internal/application/assets"
	"github.com/jhoicas/eduledger-api/internal/application/auth"
	"github.com/jhoicas/eduledger-api/internal/application/ledger"
	"github.com/jhoicas/eduledger-api/internal/application/usecase"
	"github.com/jhoicas/eduledger-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TenantUC     *usecase.TenantUseCase
	IndividualUC *usecase.IndividualUseCase
	AssetUC      *assets.AssetUseCase
	BillingUC    *ledger.PeriodBillingUseCase
	ScanUC       *ledger.OverdueScanUseCase
	ChargeUC     *ledger.ChargeUseCase
	SettleUC     *ledger.SettlePaymentUseCase
	PDFReceiptUC *ledger.ReceiptPDFUseCase
	AuditUC      *ledger.AuditQueryUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Plataforma (solo rol platform): tenants y motor de facturación
	platform := protected.Group("/platform", RequirePlatform())

	tenants := platform.Group("/tenants")
	tenantHandler := NewTenantHandler(deps.TenantUC)
	billingHandler := NewBillingHandler(deps.BillingUC, deps.ScanUC, deps.SettleUC)
	tenants.Post("/", tenantHandler.Create)
	tenants.Get("/", tenantHandler.List)
	tenants.Get("/:id", tenantHandler.GetByID)
	tenants.Put("/:id", tenantHandler.Update)
	tenants.Get("/:id/settlements", billingHandler.ListTenantSettlements)

	platform.Post("/billing/run", billingHandler.RunPeriodBilling)
	platform.Post("/billing/overdue-scan", billingHandler.RunOverdueScan)
	platform.Post("/settlements/:id/settle", billingHandler.SettleSettlement)

	// Operación del colegio (admin y tesorero)
	tenantScoped := protected.Group("/", RequireRole(entity.RoleAdmin, entity.RoleTesorero))

	// Cargos de período del propio tenant (solo lectura)
	tenantScoped.Get("/settlements", billingHandler.ListOwnSettlements)

	// Individuos (directorio de solo lectura)
	individuals := tenantScoped.Group("/individuals")
	individualHandler := NewIndividualHandler(deps.IndividualUC)
	individuals.Get("/", individualHandler.List)
	individuals.Get("/:id", individualHandler.GetByID)

	// Activos y su ciclo de vida
	assetsGroup := tenantScoped.Group("/assets")
	assetHandler := NewAssetHandler(deps.AssetUC)
	assetsGroup.Post("/", assetHandler.Create)
	assetsGroup.Get("/", assetHandler.List)
	assetsGroup.Get("/:id", assetHandler.GetByID)
	assetsGroup.Post("/:id/assign", assetHandler.Assign)
	assetsGroup.Post("/:id/lost", assetHandler.MarkLost)

	// Facturas de cobro
	invoices := tenantScoped.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.ChargeUC, deps.SettleUC, deps.PDFReceiptUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.GetPDF)
	invoices.Post("/:id/pay", invoiceHandler.Pay)
	invoices.Post("/:id/void", invoiceHandler.Void)

	// Bitácora financiera (solo lectura)
	auditHandler := NewAuditHandler(deps.AuditUC)
	tenantScoped.Get("/audit", auditHandler.List)
}
