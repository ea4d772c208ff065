package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"

	"cardlink/internal/logging"
)

// Pruner deletes view events older than a cutoff.
type Pruner interface {
	PruneCardViews(ctx context.Context, before time.Time) (int64, error)
}

// ViewPruner periodically removes expired card view events.
type ViewPruner struct {
	store     Pruner
	interval  time.Duration
	retention time.Duration
	now       func() time.Time
}

// NewViewPruner creates a pruner keeping retentionDays of view events.
func NewViewPruner(store Pruner, interval time.Duration, retentionDays int) *ViewPruner {
	return &ViewPruner{
		store:     store,
		interval:  interval,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		now:       time.Now,
	}
}

// Start begins the background prune loop. It returns when ctx is done.
func (p *ViewPruner) Start(ctx context.Context) {
	logging.Log.Info("View pruner started",
		zap.Duration("interval", p.interval),
		zap.Duration("retention", p.retention),
	)

	// Run immediately on start
	p.PruneOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logging.Log.Info("View pruner stopped")
			return
		case <-ticker.C:
			p.PruneOnce(ctx)
		}
	}
}

// PruneOnce deletes the view events that fell out of the retention window.
func (p *ViewPruner) PruneOnce(ctx context.Context) int64 {
	cutoff := p.now().Add(-p.retention)
	n, err := p.store.PruneCardViews(ctx, cutoff)
	if err != nil {
		logging.Log.Error("View pruner: failed to prune", zap.Error(err))
		return 0
	}
	if n > 0 {
		logging.Log.Info("View pruner: removed expired views", zap.Int64("count", n), zap.Time("before", cutoff))
	}
	return n
}
