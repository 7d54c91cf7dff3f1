package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// AuditLog is one operator action against a dashboard resource.
type AuditLog struct {
	ID           int       `json:"id" db:"id"`
	ResourceID   string    `json:"resource_id" db:"resource_id"`
	ResourceType string    `json:"resource_type" db:"resource_type"`
	Action       string    `json:"action" db:"action"` // restore, inactivate, approve_return, reject_return, ...
	Data         AuditData `json:"data" db:"data"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UserID       *int      `json:"user_id,omitempty" db:"user_id"`
}

// AuditData is the JSONB payload stored with an audit entry.
type AuditData map[string]interface{}

func (d *AuditData) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported audit data type %T", src)
	}

	if len(raw) == 0 {
		*d = nil
		return nil
	}
	return json.Unmarshal(raw, d)
}
