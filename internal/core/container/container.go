package container

import (
	"database/sql"
	"time"

	"warehouse-dashboard/internal/archive"
	auditLogRepo "warehouse-dashboard/internal/auditlog"
	"warehouse-dashboard/internal/config"
	"warehouse-dashboard/internal/dashboard"
	"warehouse-dashboard/internal/gateway"
	"warehouse-dashboard/internal/middleware"
	"warehouse-dashboard/internal/notifications"
	"warehouse-dashboard/internal/rate_limiter"
	"warehouse-dashboard/internal/repository"
	"warehouse-dashboard/internal/returns"
	"warehouse-dashboard/internal/settings"
	"warehouse-dashboard/pkg/auditlog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// actionLimit bounds operator actions (restore, approve, ...) per client IP.
const (
	actionLimit  = 30
	actionWindow = time.Minute
)

type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	Repository    *repository.Repository
	AuditLog      *auditlog.Auditlog
	Gateway       *gateway.Client
	Notifications *notifications.Store
	Dashboard     *dashboard.DashboardService
	RateLimiter   *rate_limiter.RateLimiter
	HTTPMetrics   *middleware.HTTPMetrics

	ArchiveHandler      *archive.ArchiveHandler
	ReturnsHandler      *returns.ReturnsHandler
	NotificationHandler *notifications.NotificationHandler
	DashboardHandler    *dashboard.DashboardHandler
	SettingsHandler     *settings.SettingsHandler
	AuditLogHandler     *auditLogRepo.AuditLogHandler
}

// NewAppContainer wires the application. db may be nil, in which case state is
// kept in memory and audit logging is disabled.
func NewAppContainer(cfg *config.Config, db *sql.DB, logger *zap.Logger) *Container {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	var (
		repo        *repository.Repository
		kv          notifications.KV = notifications.NewMemoryKV()
		persister   auditlog.Persister
		auditReader *auditLogRepo.AuditLogHandler
	)
	if db != nil {
		repo = repository.NewRepository(db)
		kv = notifications.NewKVRepository(repo)
		auditRepository := auditLogRepo.NewRepository(repo)
		persister = auditRepository
		auditReader = auditLogRepo.NewAuditLogHandler(auditRepository)
	} else {
		logger.Warn("No DATABASE_URL configured, notification state is kept in memory and audit logging is off")
	}

	auditLog := auditlog.NewAuditLog(persister, logger.Named("audit"))

	gw := gateway.NewClient(gateway.Options{
		Endpoints:    cfg.Endpoints(),
		Token:        cfg.Backend.Token,
		Timeout:      cfg.Backend.Timeout,
		RateLimitRPS: cfg.Backend.RateLimitRPS,
		Registerer:   registry,
		Logger:       logger,
	})

	store := notifications.NewStore(kv, logger)
	dashboardService := dashboard.NewDashboardService(gw, store, logger)
	archiveService := archive.NewArchiveService(gw, auditLog, logger)
	returnsController := returns.NewController(gw, auditLog, logger, cfg.Dashboard.PendingLimit)
	settingsService := settings.NewSettingsService(gw, auditLog, logger)

	return &Container{
		Config:        cfg,
		Logger:        logger,
		Repository:    repo,
		AuditLog:      auditLog,
		Gateway:       gw,
		Notifications: store,
		Dashboard:     dashboardService,
		RateLimiter:   rate_limiter.NewRateLimiter(actionLimit, actionWindow),
		HTTPMetrics:   middleware.NewHTTPMetrics(registry),

		ArchiveHandler:      archive.NewArchiveHandler(archiveService, cfg.Dashboard.PageSize),
		ReturnsHandler:      returns.NewReturnsHandler(returnsController),
		NotificationHandler: notifications.NewNotificationHandler(store),
		DashboardHandler:    dashboard.NewDashboardHandler(dashboardService),
		SettingsHandler:     settings.NewSettingsHandler(settingsService),
		AuditLogHandler:     auditReader,
	}
}

// Close flushes notification state and stops background workers.
func (c *Container) Close() {
	c.RateLimiter.Stop()
	c.Notifications.Close()
}
