package returns

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"warehouse-dashboard/internal/gateway"
	"warehouse-dashboard/pkg/auditlog"
	custom_error "warehouse-dashboard/pkg/errors"
	"warehouse-dashboard/pkg/models"

	"go.uber.org/zap"
)

const DefaultPendingLimit = 50

// Controller drives the pending -> approved|rejected workflow for POS returns.
// The pending list only changes after the backend confirms a transition.
type Controller struct {
	gateway      gateway.Caller
	auditLog     *auditlog.Auditlog
	logger       *zap.Logger
	pendingLimit int

	mu      sync.RWMutex
	pending []ReturnRequest
	loaded  bool

	// generation is bumped by every load start and every confirmed transition;
	// a load that finishes under an older generation is discarded.
	generation atomic.Uint64
}

func NewController(gw gateway.Caller, auditLog *auditlog.Auditlog, logger *zap.Logger, pendingLimit int) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if pendingLimit < 1 {
		pendingLimit = DefaultPendingLimit
	}
	return &Controller{
		gateway:      gw,
		auditLog:     auditLog,
		logger:       logger.Named("returns"),
		pendingLimit: pendingLimit,
	}
}

// LoadPending replaces the pending list. On failure the previous list stays.
func (c *Controller) LoadPending(ctx context.Context) error {
	gen := c.generation.Add(1)

	var pending []ReturnRequest
	params := map[string]any{"limit": c.pendingLimit}
	if err := c.gateway.Do(ctx, gateway.EndpointSales, "get_pending_returns", params, &pending); err != nil {
		c.logger.Warn("Unable to load pending returns", zap.Error(err))
		return err
	}
	if pending == nil {
		pending = []ReturnRequest{}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation.Load() {
		c.logger.Debug("Discarding stale pending returns", zap.Uint64("generation", gen))
		return nil
	}

	c.pending = pending
	c.loaded = true
	return nil
}

func (c *Controller) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Pending returns a copy of the pending list.
func (c *Controller) Pending() []ReturnRequest {
	c.mu.RLock()
	defer c.mu.RUnlock()

	pending := make([]ReturnRequest, len(c.pending))
	copy(pending, c.pending)
	return pending
}

func (c *Controller) Summary() PendingSummary {
	return summarize(c.Pending())
}

// LoadDetails fetches the line items of one return. Failures yield an empty list.
func (c *Controller) LoadDetails(ctx context.Context, returnID int) []LineItem {
	var items []LineItem
	params := map[string]any{"return_id": returnID}
	if err := c.gateway.Do(ctx, gateway.EndpointSales, "get_return_details", params, &items); err != nil {
		c.logger.Warn("Unable to load return details", zap.Int("return_id", returnID), zap.Error(err))
		return []LineItem{}
	}
	if items == nil {
		return []LineItem{}
	}
	return items
}

// Approve asks the backend to approve the return and, once confirmed, drops it
// from the pending list without re-fetching.
func (c *Controller) Approve(ctx context.Context, returnID int, actor models.Actor, notes string) (string, error) {
	if err := validateTransition(returnID, actor); err != nil {
		return "", err
	}

	params := map[string]any{
		"return_id":     returnID,
		"approved_by":   actor.ID,
		"approver_name": actor.Username,
		"notes":         strings.TrimSpace(notes),
	}
	if err := c.gateway.Do(ctx, gateway.EndpointSales, "approve_return", params, nil); err != nil {
		return "", err
	}

	c.remove(returnID)
	go c.auditLog.Log("approve_return", actor, map[string]interface{}{
		"notes": params["notes"],
		"msg":   "Return approved",
	}, ReturnRequest{ReturnID: returnID})

	return fmt.Sprintf("Return #%d approved", returnID), nil
}

// Reject requires a non-blank reason; without one no request is sent.
func (c *Controller) Reject(ctx context.Context, returnID int, actor models.Actor, reason string) (string, error) {
	if err := validateTransition(returnID, actor); err != nil {
		return "", err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return "", custom_error.NewValidationError("reason", "Rejection reason is required")
	}

	params := map[string]any{
		"return_id":     returnID,
		"rejected_by":   actor.ID,
		"rejector_name": actor.Username,
		"reason":        reason,
	}
	if err := c.gateway.Do(ctx, gateway.EndpointSales, "reject_return", params, nil); err != nil {
		return "", err
	}

	c.remove(returnID)
	go c.auditLog.Log("reject_return", actor, map[string]interface{}{
		"reason": reason,
		"msg":    "Return rejected",
	}, ReturnRequest{ReturnID: returnID})

	return fmt.Sprintf("Return #%d rejected", returnID), nil
}

func validateTransition(returnID int, actor models.Actor) error {
	if returnID <= 0 {
		return custom_error.NewValidationError("return_id", "Return ID must be positive")
	}
	return actor.Validate()
}

// remove drops a confirmed return and invalidates any load still in flight,
// which may have been answered before the transition.
func (c *Controller) remove(returnID int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation.Add(1)

	kept := make([]ReturnRequest, 0, len(c.pending))
	for _, r := range c.pending {
		if r.ReturnID != returnID {
			kept = append(kept, r)
		}
	}
	c.pending = kept
}
