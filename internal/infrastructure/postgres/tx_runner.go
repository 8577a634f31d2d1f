package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/eduledger-api/internal/domain/repository"
)

// TxRunner ejecuta casos de uso dentro de una transacción, entregando a la
// closure repositorios atados a la tx. Commit al retornar nil, rollback en
// cualquier error. Implementa ledger.LedgerTxRunner y assets.AssetTxRunner.
type TxRunner struct {
	pool *pgxpool.Pool
}

func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback tras commit es no-op

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// RunSettlement ejecuta fn con repos de cargos de período y bitácora en la misma tx.
func (r *TxRunner) RunSettlement(ctx context.Context, fn func(settlements repository.SettlementRepository, audit repository.AuditRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewSettlementRepo(q), NewAuditRepo(q))
	})
}

// RunInvoice ejecuta fn con repos de facturas y bitácora en la misma tx.
func (r *TxRunner) RunInvoice(ctx context.Context, fn func(invoices repository.FeeInvoiceRepository, audit repository.AuditRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewFeeInvoiceRepo(q), NewAuditRepo(q))
	})
}

// RunAssetCharge ejecuta fn con repos de activos, facturas y bitácora en la
// misma tx: la marca LOST, el cobro de reposición y su registro son atómicos.
func (r *TxRunner) RunAssetCharge(ctx context.Context, fn func(assets repository.AssetRepository, invoices repository.FeeInvoiceRepository, audit repository.AuditRepository) error) error {
	return r.run(ctx, func(q Querier) error {
		return fn(NewAssetRepo(q), NewFeeInvoiceRepo(q), NewAuditRepo(q))
	})
}
