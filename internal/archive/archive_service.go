package archive

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"warehouse-dashboard/internal/gateway"
	"warehouse-dashboard/pkg/auditlog"
	"warehouse-dashboard/pkg/metadata"
	"warehouse-dashboard/pkg/models"
	"warehouse-dashboard/pkg/pagination"

	"go.uber.org/zap"
)

var ErrItemNotFound = errors.New("archived item not found")

// ArchiveService owns the archived items collection fetched from the inventory
// backend. Local state only changes after the backend confirms an action.
type ArchiveService struct {
	gateway  gateway.Caller
	auditLog *auditlog.Auditlog
	logger   *zap.Logger

	mu     sync.RWMutex
	items  []ArchivedItem
	loaded bool
}

type View struct {
	Summary  Summary                       `json:"summary"`
	Page     pagination.Page[ArchivedItem] `json:"page"`
	Criteria Criteria                      `json:"criteria"`
}

func NewArchiveService(gw gateway.Caller, auditLog *auditlog.Auditlog, logger *zap.Logger) *ArchiveService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArchiveService{
		gateway:  gw,
		auditLog: auditLog,
		logger:   logger.Named("archive"),
	}
}

// Load replaces the collection with the backend's archive. On failure the
// previous collection stays in place.
func (s *ArchiveService) Load(ctx context.Context) error {
	var items []ArchivedItem
	if err := s.gateway.Do(ctx, gateway.EndpointInventory, "get_archived_items", nil, &items); err != nil {
		s.logger.Warn("Unable to load archived items", zap.Error(err))
		return err
	}
	if items == nil {
		items = []ArchivedItem{}
	}

	s.mu.Lock()
	s.items = items
	s.loaded = true
	s.mu.Unlock()

	s.logger.Debug("Archived items loaded", zap.Int("count", len(items)))
	return nil
}

func (s *ArchiveService) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Items returns a copy of the current collection.
func (s *ArchiveService) Items() []ArchivedItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]ArchivedItem, len(s.items))
	copy(items, s.items)
	return items
}

// View filters the collection, summarizes the filtered result and slices one page.
func (s *ArchiveService) View(criteria Criteria, page, pageSize int, now time.Time) View {
	filtered := Filter(s.Items(), criteria, now)

	p := pagination.NewPaginator(pageSize)
	p.GoTo(page)

	return View{
		Summary:  Summarize(filtered),
		Page:     pagination.Apply(p, filtered),
		Criteria: criteria,
	}
}

// Restore hands the item back to active inventory and drops it from the archive.
func (s *ArchiveService) Restore(ctx context.Context, id int, actor models.Actor) error {
	item, err := s.prepare(id, actor)
	if err != nil {
		return err
	}

	params := map[string]any{
		"id":               item.ID,
		"type":             item.Type,
		"restored_by":      actor.ID,
		"restored_by_name": actor.Username,
	}
	if err := s.gateway.Do(ctx, gateway.EndpointInventory, "restore_item", params, nil); err != nil {
		return err
	}

	s.mu.Lock()
	s.removeLocked(id)
	s.mu.Unlock()

	go s.auditLog.Log("restore", actor, map[string]interface{}{
		"name": item.Name,
		"type": item.Type,
		"msg":  "Archived item restored to inventory",
	}, &item)

	return nil
}

// MarkInactive flags the archived item as inactive once the backend confirms.
func (s *ArchiveService) MarkInactive(ctx context.Context, id int, actor models.Actor) error {
	item, err := s.prepare(id, actor)
	if err != nil {
		return err
	}

	params := map[string]any{
		"id":                  item.ID,
		"type":                item.Type,
		"inactivated_by":      actor.ID,
		"inactivated_by_name": actor.Username,
	}
	if err := s.gateway.Do(ctx, gateway.EndpointInventory, "mark_inactive", params, nil); err != nil {
		return err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Status = metadata.StatusInactive
		}
	}
	s.mu.Unlock()

	go s.auditLog.Log("inactivate", actor, map[string]interface{}{
		"name": item.Name,
		"type": item.Type,
		"msg":  "Archived item marked inactive",
	}, &item)

	return nil
}

func (s *ArchiveService) prepare(id int, actor models.Actor) (ArchivedItem, error) {
	if err := actor.Validate(); err != nil {
		return ArchivedItem{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.ID == id {
			return item, nil
		}
	}

	return ArchivedItem{}, fmt.Errorf("item %d: %w", id, ErrItemNotFound)
}

func (s *ArchiveService) removeLocked(id int) {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

// IsNotFound reports whether err means the id is not in the local collection.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrItemNotFound)
}
