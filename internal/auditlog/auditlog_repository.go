package auditlog

import (
	"encoding/json"
	"fmt"

	"warehouse-dashboard/internal/repository"
	"warehouse-dashboard/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type AuditLogRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AuditLogRepository {
	return &AuditLogRepository{repository: r}
}

func (r *AuditLogRepository) PersistLog(auditlog models.AuditLog, auditLogData interface{}) error {
	dataJSON, err := json.Marshal(auditLogData)
	if err != nil {
		return fmt.Errorf("failed to marshal audit log data: %w", err)
	}

	if _, err = r.insertQuery(auditlog, dataJSON).Executor().Exec(); err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}

func (r *AuditLogRepository) insertQuery(auditlog models.AuditLog, dataJSON []byte) *goqu.InsertDataset {
	row := goqu.Record{
		"resource_id":   auditlog.ResourceID,
		"resource_type": auditlog.ResourceType,
		"action":        auditlog.Action,
		"data":          string(dataJSON),
	}
	if auditlog.UserID != nil {
		row["user_id"] = *auditlog.UserID
	}

	return r.repository.Builder.Insert("audit_logs").Rows(row)
}

func (r *AuditLogRepository) GetResourceLog(resourceID string, resourceType string) ([]models.AuditLog, error) {
	query := r.repository.Builder.
		From(goqu.T("audit_logs").As("a")).
		Select(
			goqu.I("a.id").As("id"),
			goqu.I("a.resource_id").As("resource_id"),
			goqu.I("a.resource_type").As("resource_type"),
			goqu.I("a.action").As("action"),
			goqu.I("a.data").As("data"),
			goqu.I("a.created_at").As("created_at"),
			goqu.I("a.user_id").As("user_id"),
		).
		Where(goqu.Ex{
			"a.resource_id":   resourceID,
			"a.resource_type": resourceType,
		}).
		Order(goqu.I("a.created_at").Desc())

	var auditLogs []models.AuditLog
	if err := query.Executor().ScanStructs(&auditLogs); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return auditLogs, nil
}
