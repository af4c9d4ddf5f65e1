package advance_statuses

import (
	"context"
	"time"
)

// Run периодически выполняет проход до отмены ctx
func (uc *UseCase) Run(ctx context.Context, interval time.Duration) error {
	uc.logger.Info("AdvanceStatuses: periodic sweeper started, interval=%s", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			uc.logger.Info("AdvanceStatuses: periodic sweeper stopped")
			return nil
		case <-ticker.C:
			uc.Sweep(ctx)
		}
	}
}
