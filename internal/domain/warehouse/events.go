package warehouse

import (
	"github.com/backoffice/backend/internal/domain/shared"
)

// OrderCreatedEvent is raised when a warehouse order is submitted
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
	DivisionID  string `json:"division_id"`
}

// NewOrderCreatedEvent creates a new order created event
func NewOrderCreatedEvent(o *WarehouseOrder) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("warehouse.order.created", "WarehouseOrder", o.ID),
		OrderNumber:     o.OrderNumber,
		DivisionID:      o.DivisionID.String(),
	}
}

// OrderConfirmedEvent is raised when an order passes stock validation
type OrderConfirmedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
	LineCount   int    `json:"line_count"`
}

// NewOrderConfirmedEvent creates a new order confirmed event
func NewOrderConfirmedEvent(o *WarehouseOrder) *OrderConfirmedEvent {
	return &OrderConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("warehouse.order.confirmed", "WarehouseOrder", o.ID),
		OrderNumber:     o.OrderNumber,
		LineCount:       len(o.Lines),
	}
}

// OpnameCreatedEvent is raised when a stock-taking session is opened
type OpnameCreatedEvent struct {
	shared.BaseDomainEvent
	OpnameNumber string `json:"opname_number"`
}

// NewOpnameCreatedEvent creates a new opname created event
func NewOpnameCreatedEvent(s *StockOpname) *OpnameCreatedEvent {
	return &OpnameCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("warehouse.opname.created", "StockOpname", s.ID),
		OpnameNumber:    s.OpnameNumber,
	}
}

// OpnameFinishedEvent is raised when a session is finalized and stock adjusted
type OpnameFinishedEvent struct {
	shared.BaseDomainEvent
	OpnameNumber string `json:"opname_number"`
	LineCount    int    `json:"line_count"`
}

// NewOpnameFinishedEvent creates a new opname finished event
func NewOpnameFinishedEvent(s *StockOpname) *OpnameFinishedEvent {
	return &OpnameFinishedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("warehouse.opname.finished", "StockOpname", s.ID),
		OpnameNumber:    s.OpnameNumber,
		LineCount:       len(s.Lines),
	}
}
