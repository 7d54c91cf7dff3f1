package auditlog

import (
	"warehouse-dashboard/pkg/models"

	"go.uber.org/zap"
)

type Persister interface {
	PersistLog(auditLog models.AuditLog, data interface{}) error
}

type Auditlog struct {
	r      Persister
	logger *zap.Logger
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

// Log records an operator action. It is meant to be called with `go`, so
// failures are only logged. A nil Auditlog or one without persister is a no-op.
func (a *Auditlog) Log(action string, actor models.Actor, data map[string]interface{}, item Auditable) {
	if a == nil || a.r == nil {
		return
	}

	auditLog := item.CreateLogView()
	auditLog.Action = action
	if actor.ID > 0 {
		userID := actor.ID
		auditLog.UserID = &userID
	}

	if err := a.r.PersistLog(auditLog, data); err != nil {
		a.logger.Error("Unable to create audit log entry",
			zap.String("resource_type", auditLog.ResourceType),
			zap.String("resource_id", auditLog.ResourceID),
			zap.Error(err),
		)
		return
	}

	a.logger.Debug("Created audit log entry",
		zap.String("action", action),
		zap.String("resource_id", auditLog.ResourceID),
	)
}

func NewAuditLog(r Persister, logger *zap.Logger) *Auditlog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Auditlog{r: r, logger: logger}
}
