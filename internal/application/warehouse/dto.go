package warehouse

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/backoffice/backend/internal/domain/warehouse"
)

// ===================== Request DTOs =====================

// CreateStockItemRequest represents a request to create a stock item
type CreateStockItemRequest struct {
	Code        string          `json:"code" binding:"required,min=1,max=30"`
	Name        string          `json:"name" binding:"required,min=1,max=100"`
	Unit        string          `json:"unit" binding:"required,min=1,max=20"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
}

// UpdateStockItemRequest represents a request to update a stock item
type UpdateStockItemRequest struct {
	Name        string          `json:"name" binding:"required,min=1,max=100"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
}

// AdjustStockRequest represents a manual stock adjustment
type AdjustStockRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
	Note     string          `json:"note" binding:"max=500"`
}

// CreateOrderRequest represents a request to create a warehouse order
type CreateOrderRequest struct {
	DivisionID    uuid.UUID          `json:"division_id" binding:"required"`
	DivisionName  string             `json:"division_name" binding:"required"`
	RequestedByID uuid.UUID          `json:"requested_by_id" binding:"required"`
	RequestedBy   string             `json:"requested_by" binding:"required"`
	Note          string             `json:"note" binding:"max=500"`
	Lines         []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// OrderLineRequest represents one requested item
type OrderLineRequest struct {
	ItemID   uuid.UUID       `json:"item_id" binding:"required"`
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// UpdateOrderLinesRequest replaces the lines of an editable order
type UpdateOrderLinesRequest struct {
	Lines []OrderLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// RejectOrderRequest carries the rejection reason
type RejectOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// RevisionRequest carries the revision note
type RevisionRequest struct {
	Note string `json:"note" binding:"required,min=1,max=500"`
}

// CreateOpnameRequest represents a request to open a stock-taking session
type CreateOpnameRequest struct {
	Title string      `json:"title" binding:"required,min=1,max=200"`
	Note  string      `json:"note" binding:"max=500"`
	Items []uuid.UUID `json:"items" binding:"required,min=1"`
}

// RecordCountRequest records the physical count for one item
type RecordCountRequest struct {
	ItemID     uuid.UUID       `json:"item_id" binding:"required"`
	FinalStock decimal.Decimal `json:"final_stock" binding:"required"`
	Note       string          `json:"note" binding:"max=500"`
}

// RecordCountsRequest records multiple counts at once
type RecordCountsRequest struct {
	Counts []RecordCountRequest `json:"counts" binding:"required,min=1,dive"`
}

// StockItemListFilter represents filter options for the stock item list
type StockItemListFilter struct {
	Search   string `form:"search"`
	BelowMin bool   `form:"below_min"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderListFilter represents filter options for the order list
type OrderListFilter struct {
	Search     string     `form:"search"`
	Status     string     `form:"status" binding:"omitempty,statename=warehouse_order"`
	DivisionID *uuid.UUID `form:"division_id"`
	Page       int        `form:"page" binding:"omitempty,min=1"`
	PageSize   int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OpnameListFilter represents filter options for the opname list
type OpnameListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,statename=stock_opname"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ===================== Response DTOs =====================

// StockItemResponse represents a stock item in API responses
type StockItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	MinQuantity decimal.Decimal `json:"min_quantity"`
	BelowMin    bool            `json:"below_min"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// OrderLineResponse represents an order line in API responses
type OrderLineResponse struct {
	ID       uuid.UUID       `json:"id"`
	ItemID   uuid.UUID       `json:"item_id"`
	ItemName string          `json:"item_name"`
	Unit     string          `json:"unit"`
	Quantity decimal.Decimal `json:"quantity"`
}

// OrderResponse represents a warehouse order in API responses
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	OrderNumber   string              `json:"order_number"`
	DivisionID    uuid.UUID           `json:"division_id"`
	DivisionName  string              `json:"division_name"`
	Status        string              `json:"status"`
	StatusLabel   string              `json:"status_label"`
	RequestedByID uuid.UUID           `json:"requested_by_id"`
	RequestedBy   string              `json:"requested_by"`
	Note          string              `json:"note,omitempty"`
	RevisionNote  string              `json:"revision_note,omitempty"`
	RejectReason  string              `json:"reject_reason,omitempty"`
	ConfirmedAt   *time.Time          `json:"confirmed_at,omitempty"`
	DeliveredAt   *time.Time          `json:"delivered_at,omitempty"`
	AcceptedAt    *time.Time          `json:"accepted_at,omitempty"`
	FinishedAt    *time.Time          `json:"finished_at,omitempty"`
	RejectedAt    *time.Time          `json:"rejected_at,omitempty"`
	Lines         []OrderLineResponse `json:"lines"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// OpnameLineResponse represents an opname line in API responses
type OpnameLineResponse struct {
	ID          uuid.UUID        `json:"id"`
	ItemID      uuid.UUID        `json:"item_id"`
	ItemName    string           `json:"item_name"`
	Unit        string           `json:"unit"`
	SystemStock decimal.Decimal  `json:"system_stock"`
	FinalStock  *decimal.Decimal `json:"final_stock,omitempty"`
	Delta       decimal.Decimal  `json:"delta"`
	Counted     bool             `json:"counted"`
	Note        string           `json:"note,omitempty"`
}

// OpnameResponse represents a stock-taking session in API responses
type OpnameResponse struct {
	ID           uuid.UUID            `json:"id"`
	OpnameNumber string               `json:"opname_number"`
	Title        string               `json:"title"`
	Status       string               `json:"status"`
	StatusLabel  string               `json:"status_label"`
	Note         string               `json:"note,omitempty"`
	StartedAt    *time.Time           `json:"started_at,omitempty"`
	CountedAt    *time.Time           `json:"counted_at,omitempty"`
	FinishedAt   *time.Time           `json:"finished_at,omitempty"`
	Lines        []OpnameLineResponse `json:"lines"`
	CreatedAt    time.Time            `json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// ToStockItemResponse maps a stock item to its response DTO
func ToStockItemResponse(item *warehouse.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:          item.ID,
		Code:        item.Code,
		Name:        item.Name,
		Unit:        item.Unit,
		Quantity:    item.Quantity,
		MinQuantity: item.MinQuantity,
		BelowMin:    item.IsBelowMin(),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

// ToOrderResponse maps a warehouse order to its response DTO
func ToOrderResponse(o *warehouse.WarehouseOrder) OrderResponse {
	lines := make([]OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, OrderLineResponse{
			ID:       l.ID,
			ItemID:   l.ItemID,
			ItemName: l.ItemName,
			Unit:     l.Unit,
			Quantity: l.Quantity,
		})
	}

	return OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		DivisionID:    o.DivisionID,
		DivisionName:  o.DivisionName,
		Status:        string(o.Status),
		StatusLabel:   o.StatusLabel(),
		RequestedByID: o.RequestedByID,
		RequestedBy:   o.RequestedBy,
		Note:          o.Note,
		RevisionNote:  o.RevisionNote,
		RejectReason:  o.RejectReason,
		ConfirmedAt:   o.ConfirmedAt,
		DeliveredAt:   o.DeliveredAt,
		AcceptedAt:    o.AcceptedAt,
		FinishedAt:    o.FinishedAt,
		RejectedAt:    o.RejectedAt,
		Lines:         lines,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// ToOpnameResponse maps a stock-taking session to its response DTO
func ToOpnameResponse(s *warehouse.StockOpname) OpnameResponse {
	lines := make([]OpnameLineResponse, 0, len(s.Lines))
	for _, l := range s.Lines {
		lines = append(lines, OpnameLineResponse{
			ID:          l.ID,
			ItemID:      l.ItemID,
			ItemName:    l.ItemName,
			Unit:        l.Unit,
			SystemStock: l.SystemStock,
			FinalStock:  l.FinalStock,
			Delta:       l.Delta(),
			Counted:     l.Counted(),
			Note:        l.Note,
		})
	}

	return OpnameResponse{
		ID:           s.ID,
		OpnameNumber: s.OpnameNumber,
		Title:        s.Title,
		Status:       string(s.Status),
		StatusLabel:  s.StatusLabel(),
		Note:         s.Note,
		StartedAt:    s.StartedAt,
		CountedAt:    s.CountedAt,
		FinishedAt:   s.FinishedAt,
		Lines:        lines,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
