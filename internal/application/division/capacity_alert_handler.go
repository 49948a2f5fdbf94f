package division

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/backoffice/backend/internal/domain/division"
	"github.com/backoffice/backend/internal/domain/shared"
)

// DefaultCapacityAlertThreshold is the usage percentage above which a
// division is considered close to exhausting its storage pool.
const DefaultCapacityAlertThreshold = 90.0

// CapacityAlertHandler handles CapacityReservedEvent and emits a warning
// when a division's storage usage crosses the alert threshold. Divisions
// that are over quota never reach this point (reservations are rejected
// before the event fires), so this is an early warning, not enforcement.
type CapacityAlertHandler struct {
	divisionRepo division.DivisionRepository
	threshold    float64
	logger       *zap.Logger
}

// CapacityAlertHandlerOption is a functional option for configuring the handler
type CapacityAlertHandlerOption func(*CapacityAlertHandler)

// WithAlertThreshold overrides the usage percentage that triggers the alert
func WithAlertThreshold(percent float64) CapacityAlertHandlerOption {
	return func(h *CapacityAlertHandler) {
		h.threshold = percent
	}
}

// NewCapacityAlertHandler creates a new handler for capacity reserved events.
func NewCapacityAlertHandler(
	divisionRepo division.DivisionRepository,
	logger *zap.Logger,
	opts ...CapacityAlertHandlerOption,
) *CapacityAlertHandler {
	h := &CapacityAlertHandler{
		divisionRepo: divisionRepo,
		threshold:    DefaultCapacityAlertThreshold,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// EventTypes returns the event types this handler is interested in
func (h *CapacityAlertHandler) EventTypes() []string {
	return []string{division.EventTypeCapacityReserved}
}

// Handle checks the owning division's usage after a reservation and logs a
// warning when it crosses the threshold. Reservations against the shared
// pool (no division) are skipped.
func (h *CapacityAlertHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	reservedEvent, ok := event.(*division.CapacityReservedEvent)
	if !ok {
		h.logger.Error("unexpected event type",
			zap.String("expected", division.EventTypeCapacityReserved),
			zap.String("actual", event.EventType()),
		)
		return fmt.Errorf("unexpected event type: expected %s, got %s",
			division.EventTypeCapacityReserved, event.EventType())
	}

	if reservedEvent.DivisionID == nil {
		return nil
	}

	d, err := h.divisionRepo.FindByID(ctx, *reservedEvent.DivisionID)
	if err != nil {
		return fmt.Errorf("loading division for capacity alert: %w", err)
	}

	usage := d.SnapshotUsage()
	if usage.Percent < h.threshold {
		return nil
	}

	h.logger.Warn("division storage usage above alert threshold",
		zap.String("division_id", d.ID.String()),
		zap.String("division_code", d.Code),
		zap.Float64("usage_percent", usage.Percent),
		zap.Float64("threshold", h.threshold),
		zap.Int64("used_capacity", usage.UsedCapacity),
		zap.Int64("max_capacity", usage.MaxCapacity),
	)
	return nil
}
