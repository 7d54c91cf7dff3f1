package notifications

import (
	"time"

	"warehouse-dashboard/pkg/metadata"
)

// Persistence keys. Both blobs are written together but hydrate independently.
const (
	KeyNotificationState = "notificationState"
	KeySystemUpdates     = "systemUpdates"
)

// Counts is the input of UpdateModule. Missing fields decode to zero.
type Counts struct {
	LowStock   int `json:"lowStock"`
	Expiring   int `json:"expiring"`
	OutOfStock int `json:"outOfStock"`
}

type ModuleState struct {
	LowStock   int       `json:"lowStock"`
	Expiring   int       `json:"expiring"`
	OutOfStock int       `json:"outOfStock"`
	LastUpdate time.Time `json:"lastUpdate"`
}

func (m ModuleState) Total() int {
	return m.LowStock + m.Expiring + m.OutOfStock
}

// UpdatesState is used both for the reports module and for system updates.
type UpdatesState struct {
	HasUpdates bool      `json:"hasUpdates"`
	Count      int       `json:"count"`
	LastUpdate time.Time `json:"lastUpdate"`
}

// State is the blob stored under KeyNotificationState. Each top-level field is
// one module; hydration replaces whole modules, never single counters.
type State struct {
	Warehouse   ModuleState  `json:"warehouse"`
	Pharmacy    ModuleState  `json:"pharmacy"`
	Convenience ModuleState  `json:"convenience"`
	Reports     UpdatesState `json:"reports"`
}

func defaultState(now time.Time) State {
	return State{
		Warehouse:   ModuleState{LastUpdate: now},
		Pharmacy:    ModuleState{LastUpdate: now},
		Convenience: ModuleState{LastUpdate: now},
		Reports:     UpdatesState{LastUpdate: now},
	}
}

func (s *State) inventory(module metadata.Module) *ModuleState {
	switch module {
	case metadata.ModuleWarehouse:
		return &s.Warehouse
	case metadata.ModulePharmacy:
		return &s.Pharmacy
	case metadata.ModuleConvenience:
		return &s.Convenience
	default:
		return nil
	}
}

func (s State) hasAny() bool {
	return s.Warehouse.Total() > 0 ||
		s.Pharmacy.Total() > 0 ||
		s.Convenience.Total() > 0 ||
		s.Reports.HasUpdates
}

// Snapshot is the read model served to the dashboard.
type Snapshot struct {
	Modules           State                   `json:"modules"`
	SystemUpdates     UpdatesState            `json:"systemUpdates"`
	Totals            map[metadata.Module]int `json:"totals"`
	HasAny            bool                    `json:"hasAny"`
	HasReportsUpdates bool                    `json:"hasReportsUpdates"`
	Initialized       bool                    `json:"initialized"`
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// stamp keeps lastUpdate non-decreasing even if the wall clock steps back.
func stamp(now, previous time.Time) time.Time {
	if now.Before(previous) {
		return previous
	}
	return now
}
