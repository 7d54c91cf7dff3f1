package archive

import (
	"strconv"
	"time"

	"warehouse-dashboard/pkg/metadata"
	"warehouse-dashboard/pkg/models"
)

type ArchivedItem struct {
	ID           int                    `json:"id"`
	Name         string                 `json:"name"`
	Category     string                 `json:"category"`
	Type         metadata.ItemType      `json:"type"`
	Status       metadata.ArchiveStatus `json:"status"`
	ArchivedBy   string                 `json:"archivedBy"`
	ArchivedDate string                 `json:"archivedDate"`
	ArchivedTime string                 `json:"archivedTime"`
	Description  string                 `json:"description"`
	Reason       string                 `json:"reason"`
}

var archivedDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ArchivedDay returns the calendar day the item was archived on, in loc.
func (i ArchivedItem) ArchivedDay(loc *time.Location) (time.Time, bool) {
	for _, layout := range archivedDateLayouts {
		parsed, err := time.ParseInLocation(layout, i.ArchivedDate, loc)
		if err == nil {
			return startOfDay(parsed.In(loc)), true
		}
	}
	return time.Time{}, false
}

func (i *ArchivedItem) CreateLogView() models.AuditLog {
	return models.AuditLog{
		ResourceID:   strconv.Itoa(i.ID),
		ResourceType: "archived_item",
	}
}

// Criteria are the operator's current filter inputs.
type Criteria struct {
	SearchTerm string             `json:"searchTerm"`
	Type       metadata.ItemType  `json:"typeFilter"`
	DateRange  metadata.DateRange `json:"dateRange"`
}

// Summary holds the aggregate counters shown above the archive table. They are
// always computed from the filtered collection.
type Summary struct {
	TotalArchived int `json:"totalArchived"`
	Products      int `json:"products"`
	Categories    int `json:"categories"`
	Suppliers     int `json:"suppliers"`
	Inactive      int `json:"inactive"`
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
