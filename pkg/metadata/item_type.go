package metadata

import (
	"fmt"
	"strings"
)

type ItemType string

const (
	TypeProduct  ItemType = "Product"
	TypeCategory ItemType = "Category"
	TypeSupplier ItemType = "Supplier"

	// TypeAll disables the type predicate.
	TypeAll ItemType = "all"
)

func (t ItemType) IsValid() bool {
	switch t {
	case TypeProduct, TypeCategory, TypeSupplier:
		return true
	default:
		return false
	}
}

// NewTypeFilter accepts any known item type (case-insensitive) or "all".
// An empty value means "all".
func NewTypeFilter(value string) (ItemType, error) {
	normalized := strings.TrimSpace(value)
	if normalized == "" || strings.EqualFold(normalized, string(TypeAll)) {
		return TypeAll, nil
	}

	for _, t := range []ItemType{TypeProduct, TypeCategory, TypeSupplier} {
		if strings.EqualFold(normalized, string(t)) {
			return t, nil
		}
	}

	return "", fmt.Errorf(
		"value not valid, only valid values are: %s, %s, %s, %s",
		TypeAll, TypeProduct, TypeCategory, TypeSupplier,
	)
}

func (t ItemType) String() string {
	return string(t)
}
