package warehouse

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/workflow"
)

// WarehouseOrder statuses
const (
	OrderStatusPending   workflow.State = "PENDING"
	OrderStatusConfirmed workflow.State = "CONFIRMED"
	OrderStatusDelivered workflow.State = "DELIVERED"
	OrderStatusAccepted  workflow.State = "ACCEPTED"
	OrderStatusFinished  workflow.State = "FINISHED"
	OrderStatusRejected  workflow.State = "REJECTED"
	OrderStatusRevision  workflow.State = "REVISION"
)

// OrderMachine declares the warehouse order lifecycle. Every non-terminal
// state may be sent back for revision; a revision is resubmitted to PENDING.
var OrderMachine = workflow.NewMachine("warehouse_order", OrderStatusPending, map[workflow.State]workflow.StateSpec{
	OrderStatusPending:   {Label: "Menunggu", Color: "warning", Next: []workflow.State{OrderStatusConfirmed, OrderStatusRejected, OrderStatusRevision}},
	OrderStatusConfirmed: {Label: "Dikonfirmasi", Color: "info", Next: []workflow.State{OrderStatusDelivered, OrderStatusRevision}},
	OrderStatusDelivered: {Label: "Dikirim", Color: "primary", Next: []workflow.State{OrderStatusAccepted, OrderStatusRevision}},
	OrderStatusAccepted:  {Label: "Diterima", Color: "info", Next: []workflow.State{OrderStatusFinished, OrderStatusRevision}},
	OrderStatusFinished:  {Label: "Selesai", Color: "success"},
	OrderStatusRejected:  {Label: "Ditolak", Color: "danger"},
	OrderStatusRevision:  {Label: "Revisi", Color: "secondary", Next: []workflow.State{OrderStatusPending}},
})

// OrderLine is one requested item on a warehouse order
type OrderLine struct {
	ID       uuid.UUID
	OrderID  uuid.UUID
	ItemID   uuid.UUID
	ItemName string
	Unit     string
	Quantity decimal.Decimal
}

// NewOrderLine creates a new order line
func NewOrderLine(orderID, itemID uuid.UUID, itemName, unit string, qty decimal.Decimal) *OrderLine {
	return &OrderLine{
		ID:       uuid.New(),
		OrderID:  orderID,
		ItemID:   itemID,
		ItemName: itemName,
		Unit:     unit,
		Quantity: qty,
	}
}

// WarehouseOrder is a division's request for goods from the warehouse.
// It is the aggregate root for order operations.
type WarehouseOrder struct {
	shared.BaseAggregateRoot
	OrderNumber   string
	DivisionID    uuid.UUID
	DivisionName  string
	Status        workflow.State
	RequestedByID uuid.UUID
	RequestedBy   string
	Note          string
	RevisionNote  string
	RejectReason  string
	ConfirmedAt   *time.Time
	DeliveredAt   *time.Time
	AcceptedAt    *time.Time
	FinishedAt    *time.Time
	RejectedAt    *time.Time
	Lines         []OrderLine
}

// NewWarehouseOrder creates a new pending order
func NewWarehouseOrder(orderNumber string, divisionID uuid.UUID, divisionName string, requestedByID uuid.UUID, requestedBy string) (*WarehouseOrder, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if divisionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DIVISION", "Division ID cannot be empty")
	}
	if requestedByID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REQUESTER", "Requester ID cannot be empty")
	}

	o := &WarehouseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		DivisionID:        divisionID,
		DivisionName:      divisionName,
		Status:            OrderMachine.Initial(),
		RequestedByID:     requestedByID,
		RequestedBy:       requestedBy,
		Lines:             make([]OrderLine, 0),
	}
	o.AddDomainEvent(NewOrderCreatedEvent(o))
	return o, nil
}

// IsEditable reports whether line items may still be changed
func (o *WarehouseOrder) IsEditable() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusRevision
}

// AddLine adds a requested item. Lines are editable only before confirmation.
func (o *WarehouseOrder) AddLine(itemID uuid.UUID, itemName, unit string, qty decimal.Decimal) error {
	if !o.IsEditable() {
		return shared.ErrConflict
	}
	if itemID == uuid.Nil {
		return shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	if !qty.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Requested quantity must be positive")
	}
	for _, line := range o.Lines {
		if line.ItemID == itemID {
			return shared.NewDomainError("DUPLICATE_ITEM", "Item already exists in order")
		}
	}

	line := NewOrderLine(o.ID, itemID, itemName, unit, qty)
	o.Lines = append(o.Lines, *line)
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// RemoveLine removes a requested item
func (o *WarehouseOrder) RemoveLine(itemID uuid.UUID) error {
	if !o.IsEditable() {
		return shared.ErrConflict
	}
	for idx, line := range o.Lines {
		if line.ItemID == itemID {
			o.Lines = append(o.Lines[:idx], o.Lines[idx+1:]...)
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

// UpdateLineQuantity changes a line's requested quantity
func (o *WarehouseOrder) UpdateLineQuantity(itemID uuid.UUID, qty decimal.Decimal) error {
	if !o.IsEditable() {
		return shared.ErrConflict
	}
	if !qty.IsPositive() {
		return shared.NewDomainError("INVALID_QUANTITY", "Requested quantity must be positive")
	}
	for idx := range o.Lines {
		if o.Lines[idx].ItemID == itemID {
			o.Lines[idx].Quantity = qty
			o.UpdatedAt = time.Now()
			o.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

// Confirm validates stock for every line against the given quantities and
// moves the order to CONFIRMED. The guard is all-or-nothing: one short line
// fails the whole transition and no state is mutated.
func (o *WarehouseOrder) Confirm(available map[uuid.UUID]decimal.Decimal) error {
	if err := o.transitionTo(OrderStatusConfirmed); err != nil {
		return err
	}
	if len(o.Lines) == 0 {
		return shared.NewGuardFailedError("warehouse_order", "has_lines", "pesanan tidak memiliki item")
	}
	for _, line := range o.Lines {
		stock, ok := available[line.ItemID]
		if !ok || line.Quantity.GreaterThan(stock) {
			return shared.NewGuardFailedError("warehouse_order", "stock_available",
				fmt.Sprintf("jumlah pengeluaran tidak boleh melebihi stok yang tersedia (%s)", stock.String()))
		}
	}

	now := time.Now()
	o.Status = OrderStatusConfirmed
	o.ConfirmedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()
	o.AddDomainEvent(NewOrderConfirmedEvent(o))
	return nil
}

// Reject declines a pending order
func (o *WarehouseOrder) Reject(reason string) error {
	if err := o.transitionTo(OrderStatusRejected); err != nil {
		return err
	}
	now := time.Now()
	o.Status = OrderStatusRejected
	o.RejectReason = reason
	o.RejectedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()
	return nil
}

// Deliver marks the confirmed order as shipped
func (o *WarehouseOrder) Deliver() error {
	if err := o.transitionTo(OrderStatusDelivered); err != nil {
		return err
	}
	now := time.Now()
	o.Status = OrderStatusDelivered
	o.DeliveredAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()
	return nil
}

// Accept records the requesting division's receipt of the delivery
func (o *WarehouseOrder) Accept() error {
	if err := o.transitionTo(OrderStatusAccepted); err != nil {
		return err
	}
	now := time.Now()
	o.Status = OrderStatusAccepted
	o.AcceptedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()
	return nil
}

// Finish closes the order
func (o *WarehouseOrder) Finish() error {
	if err := o.transitionTo(OrderStatusFinished); err != nil {
		return err
	}
	now := time.Now()
	o.Status = OrderStatusFinished
	o.FinishedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()
	return nil
}

// RequestRevision sends a non-terminal order back for revision
func (o *WarehouseOrder) RequestRevision(note string) error {
	if err := o.transitionTo(OrderStatusRevision); err != nil {
		return err
	}
	o.Status = OrderStatusRevision
	o.RevisionNote = note
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// Resubmit returns a revised order to the pending queue
func (o *WarehouseOrder) Resubmit() error {
	if err := o.transitionTo(OrderStatusPending); err != nil {
		return err
	}
	o.Status = OrderStatusPending
	o.RevisionNote = ""
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// transitionTo validates the edge without mutating the order. Same-state
// calls surface workflow.ErrAlreadyInState so callers skip side effects.
func (o *WarehouseOrder) transitionTo(target workflow.State) error {
	return OrderMachine.Transition(o.Status, target)
}

// StatusLabel returns the presentation label of the current status
func (o *WarehouseOrder) StatusLabel() string {
	return OrderMachine.Label(o.Status)
}
