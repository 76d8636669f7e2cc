// Package housekeeping runs periodic maintenance jobs. Currently this is
// only the idempotency record purger.
package housekeeping

import (
	"context"
	"log/slog"
	"time"

	"github.com/multiwallet-ledger/internal/config"
	"github.com/multiwallet-ledger/internal/domain/idempotency"
)

// Purger deletes expired idempotency records on an interval. Expiry is
// advisory: until a record is purged it keeps replaying, which only errs on
// the side of more idempotency.
type Purger struct {
	records   idempotency.Repository
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

func NewPurger(logger *slog.Logger, records idempotency.Repository, cfg *config.IdempotencyConfig) *Purger {
	return &Purger{
		records:   records,
		logger:    logger,
		interval:  cfg.PurgeInterval,
		batchSize: cfg.PurgeBatchSize,
	}
}

// Run purges on the configured interval until the context is canceled.
// Blocks; callers run it in a goroutine.
func (p *Purger) Run(ctx context.Context) {
	p.logger.Info("Starting idempotency record purger",
		"interval", p.interval.String(),
		"batch_size", p.batchSize,
	)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Stopping idempotency record purger")
			return
		case <-ticker.C:
			p.purgeOnce(ctx)
		}
	}
}

// purgeOnce drains expired records in batches until a batch comes back short
func (p *Purger) purgeOnce(ctx context.Context) {
	cutoff := time.Now()
	var total int64

	for {
		deleted, err := p.records.DeleteExpired(ctx, cutoff, p.batchSize)
		if err != nil {
			p.logger.Error("Failed to purge expired idempotency records",
				"error", err,
				"deleted_so_far", total,
			)
			return
		}
		total += deleted
		if deleted < int64(p.batchSize) {
			break
		}
	}

	if total > 0 {
		p.logger.Info("Purged expired idempotency records", "deleted", total)
	}
}
