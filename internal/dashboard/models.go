package dashboard

import (
	"time"

	"warehouse-dashboard/internal/notifications"
	"warehouse-dashboard/pkg/metadata"

	"github.com/shopspring/decimal"
)

type ModuleStats struct {
	Module        metadata.Module `json:"module"`
	TotalProducts int             `json:"totalProducts"`
	TotalValue    decimal.Decimal `json:"totalValue"`
	LowStock      int             `json:"lowStock"`
	Expiring      int             `json:"expiring"`
	OutOfStock    int             `json:"outOfStock"`
}

func (s ModuleStats) counts() notifications.Counts {
	return notifications.Counts{
		LowStock:   s.LowStock,
		Expiring:   s.Expiring,
		OutOfStock: s.OutOfStock,
	}
}

type reportUpdates struct {
	HasUpdates bool `json:"hasUpdates"`
	Count      int  `json:"count"`
}

// Overview is what GET /dashboard returns.
type Overview struct {
	Modules       []ModuleStats          `json:"modules"`
	TotalValue    decimal.Decimal        `json:"totalValue"`
	Notifications notifications.Snapshot `json:"notifications"`
	RefreshedAt   *time.Time             `json:"refreshedAt"`
}
