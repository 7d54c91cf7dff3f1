package models

import (
	"strings"

	custom_error "warehouse-dashboard/pkg/errors"
)

// Actor is the operator performing an action. It always comes from verified token
// claims; there is no default actor.
type Actor struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func (a Actor) Validate() error {
	if a.ID <= 0 {
		return custom_error.NewValidationError("actor", "Operator identity is required")
	}
	if strings.TrimSpace(a.Username) == "" {
		return custom_error.NewValidationError("actor", "Operator name is required")
	}
	return nil
}
