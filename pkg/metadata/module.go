package metadata

import (
	"fmt"
	"strings"
)

// Module is an independent notification counter namespace.
type Module string

const (
	ModuleWarehouse   Module = "warehouse"
	ModulePharmacy    Module = "pharmacy"
	ModuleConvenience Module = "convenience"
	ModuleReports     Module = "reports"
)

// InventoryModules are the modules that carry stock counters.
var InventoryModules = []Module{ModuleWarehouse, ModulePharmacy, ModuleConvenience}

func NewModule(value string) (Module, error) {
	module := Module(strings.ToLower(strings.TrimSpace(value)))
	if !module.IsValid() {
		return "", fmt.Errorf(
			"unknown module %q, only valid values are: %s, %s, %s, %s",
			value, ModuleWarehouse, ModulePharmacy, ModuleConvenience, ModuleReports,
		)
	}
	return module, nil
}

func (m Module) IsValid() bool {
	return m.IsInventory() || m == ModuleReports
}

func (m Module) IsInventory() bool {
	switch m {
	case ModuleWarehouse, ModulePharmacy, ModuleConvenience:
		return true
	default:
		return false
	}
}

func (m Module) String() string {
	return string(m)
}
