package worker

// reconcile.go
// Background goroutine that periodically finds completed sales with no
// sale-type cash movement and writes the missing ledger entry. Checkout logs
// ledger failures instead of failing the sale, so this is the repair path
// that keeps the ledger complete.

import (
	"context"
	"fmt"
	"time"

	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/model"
	"github.com/LuizClaudio-GIT/api-para-morangeuiros/internal/repository"

	"github.com/rs/zerolog/log"
)

const reconcileBatchSize = 50

// ReconcileConfig holds the dependencies and timing of the ledger reconciler.
type ReconcileConfig struct {
	Sales     repository.SaleRepository
	Movements repository.CashMovementRepository

	// Interval between scans.
	Interval time.Duration
	// MinAge keeps freshly checked-out sales (whose ledger write may still be
	// in flight) out of a scan.
	MinAge time.Duration
}

// StartReconcile launches the reconcile goroutine. It respects the context
// for graceful shutdown.
func StartReconcile(ctx context.Context, cfg ReconcileConfig) {
	go func() {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		log.Info().Dur("interval", cfg.Interval).Msg("reconcile: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("reconcile: shutting down")
				return
			case <-ticker.C:
				RunReconcileOnce(ctx, cfg)
			}
		}
	}()
}

// RunReconcileOnce performs a single scan-and-repair pass. Exported so a pass
// can be run at startup or from tests without the ticker.
func RunReconcileOnce(ctx context.Context, cfg ReconcileConfig) {
	olderThan := time.Now().Add(-cfg.MinAge)
	sales, err := cfg.Sales.ListCompletedWithoutMovement(ctx, olderThan, reconcileBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("reconcile: failed to query sales without movement")
		return
	}
	if len(sales) == 0 {
		return
	}

	log.Info().Int("count", len(sales)).Msg("reconcile: repairing missing ledger entries")

	for i := range sales {
		sale := &sales[i]

		// Same probe-then-insert as checkout; the unique index on sale_id
		// catches a concurrent writer either way.
		exists, err := cfg.Movements.ExistsForSale(ctx, sale.ID)
		if err != nil {
			log.Error().Str("sale_id", sale.ID.String()).Err(err).Msg("reconcile: probe failed")
			continue
		}
		if exists {
			continue
		}

		saleID := sale.ID
		m := &model.CashMovement{
			UserID:      sale.UserID,
			Type:        model.MovementSale,
			Amount:      sale.TotalAmount,
			Description: fmt.Sprintf("Venda #%s - %s", sale.ID.String()[:8], sale.PaymentMethod),
			SaleID:      &saleID,
		}
		if err := cfg.Movements.Create(ctx, m); err != nil {
			log.Error().Str("sale_id", sale.ID.String()).Err(err).Msg("reconcile: ledger write failed")
			continue
		}
		log.Info().Str("sale_id", sale.ID.String()).Msg("reconcile: ledger entry restored")
	}
}
