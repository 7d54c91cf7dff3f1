package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	custom_error "warehouse-dashboard/pkg/errors"
	"warehouse-dashboard/pkg/metadata"

	"go.uber.org/zap"
)

const persistTimeout = 5 * time.Second

// KV is the key-value persistence the store writes its two blobs to.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, entries map[string][]byte) error
}

// Store is the process-wide notification state. Mutations only touch memory;
// a background writer persists the latest state once the store is hydrated.
type Store struct {
	kv     KV
	logger *zap.Logger
	now    func() time.Time

	mu            sync.RWMutex
	state         State
	systemUpdates UpdatesState
	initialized   bool

	pending   chan struct{}
	quit      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

func NewStore(kv KV, logger *zap.Logger) *Store {
	return newStore(kv, logger, time.Now)
}

func newStore(kv KV, logger *zap.Logger, now func() time.Time) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}

	start := now()
	s := &Store{
		kv:            kv,
		logger:        logger.Named("notifications"),
		now:           now,
		state:         defaultState(start),
		systemUpdates: UpdatesState{LastUpdate: start},
		pending:       make(chan struct{}, 1),
		quit:          make(chan struct{}),
		stopped:       make(chan struct{}),
	}

	go s.writer()
	return s
}

// Hydrate merges the persisted blobs over the defaults and opens the persist gate.
// A read failure leaves the gate closed so defaults never overwrite stored data.
func (s *Store) Hydrate(ctx context.Context) error {
	stateBlob, stateFound, err := s.kv.Get(ctx, KeyNotificationState)
	if err != nil {
		return fmt.Errorf("read %s: %w", KeyNotificationState, err)
	}

	updatesBlob, updatesFound, err := s.kv.Get(ctx, KeySystemUpdates)
	if err != nil {
		return fmt.Errorf("read %s: %w", KeySystemUpdates, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if stateFound {
		s.mergeState(stateBlob)
	}
	if updatesFound {
		var updates UpdatesState
		if err := json.Unmarshal(updatesBlob, &updates); err != nil {
			s.logger.Warn("Ignoring unreadable persisted state", zap.String("key", KeySystemUpdates), zap.Error(err))
		} else {
			updates.Count = nonNegative(updates.Count)
			s.systemUpdates = updates
		}
	}

	s.initialized = true
	s.logger.Info("Notification state hydrated",
		zap.Bool("notification_state_found", stateFound),
		zap.Bool("system_updates_found", updatesFound),
	)

	return nil
}

// mergeState replaces every module present in the blob and keeps defaults for
// the rest. Must be called with mu held.
func (s *Store) mergeState(blob []byte) {
	var persisted map[string]json.RawMessage
	if err := json.Unmarshal(blob, &persisted); err != nil {
		s.logger.Warn("Ignoring unreadable persisted state", zap.String("key", KeyNotificationState), zap.Error(err))
		return
	}

	for _, module := range metadata.InventoryModules {
		raw, ok := persisted[module.String()]
		if !ok {
			continue
		}
		var m ModuleState
		if err := json.Unmarshal(raw, &m); err != nil {
			s.logger.Warn("Ignoring unreadable module state", zap.String("module", module.String()), zap.Error(err))
			continue
		}
		m.LowStock = nonNegative(m.LowStock)
		m.Expiring = nonNegative(m.Expiring)
		m.OutOfStock = nonNegative(m.OutOfStock)
		*s.state.inventory(module) = m
	}

	if raw, ok := persisted[metadata.ModuleReports.String()]; ok {
		var r UpdatesState
		if err := json.Unmarshal(raw, &r); err != nil {
			s.logger.Warn("Ignoring unreadable module state", zap.String("module", metadata.ModuleReports.String()), zap.Error(err))
			return
		}
		r.Count = nonNegative(r.Count)
		s.state.Reports = r
	}
}

func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// UpdateModule overwrites the three counters of an inventory module.
func (s *Store) UpdateModule(module metadata.Module, counts Counts) error {
	s.mu.Lock()
	target := s.state.inventory(module)
	if target == nil {
		s.mu.Unlock()
		return custom_error.NewValidationError("module", fmt.Sprintf("%q has no stock counters", module))
	}
	*target = ModuleState{
		LowStock:   nonNegative(counts.LowStock),
		Expiring:   nonNegative(counts.Expiring),
		OutOfStock: nonNegative(counts.OutOfStock),
		LastUpdate: stamp(s.now(), target.LastUpdate),
	}
	s.mu.Unlock()

	s.schedulePersist()
	return nil
}

func (s *Store) UpdateReports(hasUpdates bool, count int) {
	s.mu.Lock()
	s.state.Reports = UpdatesState{
		HasUpdates: hasUpdates,
		Count:      nonNegative(count),
		LastUpdate: stamp(s.now(), s.state.Reports.LastUpdate),
	}
	s.mu.Unlock()

	s.schedulePersist()
}

func (s *Store) UpdateSystemUpdates(hasUpdates bool, count int) {
	s.mu.Lock()
	s.systemUpdates = UpdatesState{
		HasUpdates: hasUpdates,
		Count:      nonNegative(count),
		LastUpdate: stamp(s.now(), s.systemUpdates.LastUpdate),
	}
	s.mu.Unlock()

	s.schedulePersist()
}

// Clear zeroes a module's counters. For reports it drops the update flag and count.
func (s *Store) Clear(module metadata.Module) error {
	if module == metadata.ModuleReports {
		s.UpdateReports(false, 0)
		return nil
	}
	return s.UpdateModule(module, Counts{})
}

// TotalFor is the badge number for a module: the counter sum, or the reports count.
func (s *Store) TotalFor(module metadata.Module) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if module == metadata.ModuleReports {
		return s.state.Reports.Count
	}
	if m := s.state.inventory(module); m != nil {
		return m.Total()
	}
	return 0
}

func (s *Store) HasAny() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.hasAny()
}

// HasReportsUpdates is true when either reports or system updates are flagged.
func (s *Store) HasReportsUpdates() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Reports.HasUpdates || s.systemUpdates.HasUpdates
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totals := make(map[metadata.Module]int, len(metadata.InventoryModules)+1)
	for _, module := range metadata.InventoryModules {
		totals[module] = s.state.inventory(module).Total()
	}
	totals[metadata.ModuleReports] = s.state.Reports.Count

	return Snapshot{
		Modules:           s.state,
		SystemUpdates:     s.systemUpdates,
		Totals:            totals,
		HasAny:            s.state.hasAny(),
		HasReportsUpdates: s.state.Reports.HasUpdates || s.systemUpdates.HasUpdates,
		Initialized:       s.initialized,
	}
}

// Close stops the writer after flushing any pending persist.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		close(s.quit)
	})
	<-s.stopped
}

func (s *Store) schedulePersist() {
	s.mu.RLock()
	initialized := s.initialized
	s.mu.RUnlock()

	if !initialized {
		return
	}

	select {
	case s.pending <- struct{}{}:
	default:
	}
}

func (s *Store) writer() {
	defer close(s.stopped)

	for {
		select {
		case <-s.pending:
			s.persist()
		case <-s.quit:
			select {
			case <-s.pending:
				s.persist()
			default:
			}
			return
		}
	}
}

// persist writes the current state. Failures are logged and dropped.
func (s *Store) persist() {
	s.mu.RLock()
	state := s.state
	updates := s.systemUpdates
	s.mu.RUnlock()

	stateBlob, err := json.Marshal(state)
	if err != nil {
		s.logger.Error("Unable to encode notification state", zap.Error(err))
		return
	}
	updatesBlob, err := json.Marshal(updates)
	if err != nil {
		s.logger.Error("Unable to encode system updates", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.kv.Set(ctx, map[string][]byte{
		KeyNotificationState: stateBlob,
		KeySystemUpdates:     updatesBlob,
	}); err != nil {
		s.logger.Warn("Unable to persist notification state", zap.Error(err))
		return
	}

	s.logger.Debug("Notification state persisted")
}
