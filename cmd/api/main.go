package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/eduledger-api/internal/application/assets"
	"github.com/jhoicas/eduledger-api/internal/application/auth"
	"github.com/jhoicas/eduledger-api/internal/application/ledger"
	"github.com/jhoicas/eduledger-api/internal/application/usecase"
	"github.com/jhoicas/eduledger-api/internal/infrastructure/alerts"
	infrapdf "github.com/jhoicas/eduledger-api/internal/infrastructure/pdf"
	"github.com/jhoicas/eduledger-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/eduledger-api/internal/interfaces/http"
	"github.com/jhoicas/eduledger-api/pkg/config"
	"github.com/jhoicas/eduledger-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tenantRepo := postgres.NewTenantRepo(pool)
	individualRepo := postgres.NewIndividualRepo(pool)
	settlementRepo := postgres.NewSettlementRepo(pool)
	invoiceRepo := postgres.NewFeeInvoiceRepo(pool)
	assetRepo := postgres.NewAssetRepo(pool)
	auditRepo := postgres.NewAuditRepo(pool)
	userRepo := postgres.NewUserRepo(pool)
	txRunner := postgres.NewTxRunner(pool)

	alertDispatcher := alerts.NewLogDispatcher(log)

	billingUC := ledger.NewPeriodBillingUseCase(txRunner, tenantRepo, individualRepo, cfg.Billing.OverageRate, log)
	chargeUC := ledger.NewChargeUseCase(txRunner, invoiceRepo, individualRepo, cfg.Billing.DueDays)
	scanUC := ledger.NewOverdueScanUseCase(txRunner, invoiceRepo, alertDispatcher, log)
	settleUC := ledger.NewSettlePaymentUseCase(txRunner, invoiceRepo, settlementRepo)
	auditUC := ledger.NewAuditQueryUseCase(auditRepo)
	assetUC := assets.NewAssetUseCase(txRunner, chargeUC, assetRepo, individualRepo)
	tenantUC := usecase.NewTenantUseCase(tenantRepo)
	individualUC := usecase.NewIndividualUseCase(individualRepo)

	// PDF: comprobante de cobro de la factura
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.Billing.Currency)
	pdfReceiptUC := ledger.NewReceiptPDFUseCase(invoiceRepo, tenantRepo, individualRepo, pdfGenerator)

	authUC := auth.NewAuthUseCase(userRepo, tenantRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "EduLedger API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		TenantUC:     tenantUC,
		IndividualUC: individualUC,
		AssetUC:      assetUC,
		BillingUC:    billingUC,
		ScanUC:       scanUC,
		ChargeUC:     chargeUC,
		SettleUC:     settleUC,
		PDFReceiptUC: pdfReceiptUC,
		AuditUC:      auditUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("apagando servidor")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
}
