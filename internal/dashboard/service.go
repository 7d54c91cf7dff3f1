package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"warehouse-dashboard/internal/gateway"
	"warehouse-dashboard/internal/notifications"
	"warehouse-dashboard/pkg/metadata"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DashboardService pulls per-module stats from the backend and pushes the
// counters into the notification store.
type DashboardService struct {
	gateway gateway.Caller
	store   *notifications.Store
	logger  *zap.Logger
	now     func() time.Time

	generation atomic.Uint64

	mu          sync.RWMutex
	stats       []ModuleStats
	refreshedAt *time.Time
}

func NewDashboardService(gw gateway.Caller, store *notifications.Store, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		gateway: gw,
		store:   store,
		logger:  logger.Named("dashboard"),
		now:     time.Now,
	}
}

// Refresh fetches all inventory modules concurrently, then the report flags.
// Any failure leaves the previous stats and counters in place. A refresh that
// completes after a newer one was started is dropped.
func (s *DashboardService) Refresh(ctx context.Context) error {
	gen := s.generation.Add(1)

	stats := make([]ModuleStats, len(metadata.InventoryModules))
	g, gctx := errgroup.WithContext(ctx)
	for i, module := range metadata.InventoryModules {
		i, module := i, module
		g.Go(func() error {
			var moduleStats ModuleStats
			params := map[string]any{"module": module.String()}
			if err := s.gateway.Do(gctx, gateway.EndpointInventory, "get_dashboard_stats", params, &moduleStats); err != nil {
				return err
			}
			moduleStats.Module = module
			stats[i] = moduleStats
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Warn("Dashboard refresh failed", zap.Uint64("generation", gen), zap.Error(err))
		return err
	}

	var reports reportUpdates
	if err := s.gateway.Do(ctx, gateway.EndpointSales, "get_report_updates", nil, &reports); err != nil {
		s.logger.Warn("Unable to fetch report updates", zap.Uint64("generation", gen), zap.Error(err))
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation.Load() {
		s.logger.Debug("Discarding stale dashboard refresh", zap.Uint64("generation", gen))
		return nil
	}

	for _, moduleStats := range stats {
		if err := s.store.UpdateModule(moduleStats.Module, moduleStats.counts()); err != nil {
			return err
		}
	}
	s.store.UpdateReports(reports.HasUpdates, reports.Count)

	refreshedAt := s.now()
	s.stats = stats
	s.refreshedAt = &refreshedAt

	s.logger.Debug("Dashboard refreshed", zap.Uint64("generation", gen))
	return nil
}

func (s *DashboardService) Overview() Overview {
	s.mu.RLock()
	stats := make([]ModuleStats, len(s.stats))
	copy(stats, s.stats)
	refreshedAt := s.refreshedAt
	s.mu.RUnlock()

	total := decimal.Zero
	for _, moduleStats := range stats {
		total = total.Add(moduleStats.TotalValue)
	}

	return Overview{
		Modules:       stats,
		TotalValue:    total,
		Notifications: s.store.Snapshot(),
		RefreshedAt:   refreshedAt,
	}
}

// Run refreshes once and then on every tick until ctx is done. A zero interval
// only does the initial refresh.
func (s *DashboardService) Run(ctx context.Context, interval time.Duration) {
	if err := s.Refresh(ctx); err != nil {
		s.logger.Warn("Initial dashboard refresh failed", zap.Error(err))
	}

	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Dashboard refresher stopped")
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.logger.Warn("Scheduled dashboard refresh failed", zap.Error(err))
			}
		}
	}
}
