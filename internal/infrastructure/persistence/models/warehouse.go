package models

import (
	"time"

	"github.com/backoffice/backend/internal/domain/warehouse"
	"github.com/backoffice/backend/internal/domain/workflow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockItemModel is the persistence model for the StockItem aggregate root.
type StockItemModel struct {
	AggregateModel
	Code        string          `gorm:"type:varchar(30);not null;uniqueIndex"`
	Name        string          `gorm:"type:varchar(100);not null"`
	Unit        string          `gorm:"type:varchar(20);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockItemModel) TableName() string {
	return "stock_items"
}

// ToDomain converts the persistence model to a domain StockItem entity.
func (m *StockItemModel) ToDomain() *warehouse.StockItem {
	return &warehouse.StockItem{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Code:              m.Code,
		Name:              m.Name,
		Unit:              m.Unit,
		Quantity:          m.Quantity,
		MinQuantity:       m.MinQuantity,
	}
}

// FromDomain populates the persistence model from a domain StockItem entity.
func (m *StockItemModel) FromDomain(i *warehouse.StockItem) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.Code = i.Code
	m.Name = i.Name
	m.Unit = i.Unit
	m.Quantity = i.Quantity
	m.MinQuantity = i.MinQuantity
}

// StockItemModelFromDomain creates a new persistence model from a domain StockItem entity.
func StockItemModelFromDomain(i *warehouse.StockItem) *StockItemModel {
	m := &StockItemModel{}
	m.FromDomain(i)
	return m
}

// WarehouseOrderModel is the persistence model for the WarehouseOrder aggregate root.
type WarehouseOrderModel struct {
	AggregateModel
	OrderNumber   string     `gorm:"type:varchar(30);not null;uniqueIndex"`
	DivisionID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	DivisionName  string     `gorm:"type:varchar(100)"`
	Status        string     `gorm:"type:varchar(30);not null;index"`
	RequestedByID uuid.UUID  `gorm:"type:uuid;not null"`
	RequestedBy   string     `gorm:"type:varchar(100)"`
	Note          string     `gorm:"type:text"`
	RevisionNote  string     `gorm:"type:text"`
	RejectReason  string     `gorm:"type:text"`
	ConfirmedAt   *time.Time
	DeliveredAt   *time.Time
	AcceptedAt    *time.Time
	FinishedAt    *time.Time
	RejectedAt    *time.Time
	// Associations
	Lines []OrderLineModel `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (WarehouseOrderModel) TableName() string {
	return "warehouse_orders"
}

// ToDomain converts the persistence model to a domain WarehouseOrder entity.
func (m *WarehouseOrderModel) ToDomain() *warehouse.WarehouseOrder {
	order := &warehouse.WarehouseOrder{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OrderNumber:       m.OrderNumber,
		DivisionID:        m.DivisionID,
		DivisionName:      m.DivisionName,
		Status:            workflow.State(m.Status),
		RequestedByID:     m.RequestedByID,
		RequestedBy:       m.RequestedBy,
		Note:              m.Note,
		RevisionNote:      m.RevisionNote,
		RejectReason:      m.RejectReason,
		ConfirmedAt:       m.ConfirmedAt,
		DeliveredAt:       m.DeliveredAt,
		AcceptedAt:        m.AcceptedAt,
		FinishedAt:        m.FinishedAt,
		RejectedAt:        m.RejectedAt,
		Lines:             make([]warehouse.OrderLine, len(m.Lines)),
	}
	for i, line := range m.Lines {
		order.Lines[i] = *line.ToDomain()
	}
	return order
}

// FromDomain populates the persistence model from a domain WarehouseOrder entity.
func (m *WarehouseOrderModel) FromDomain(o *warehouse.WarehouseOrder) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.DivisionID = o.DivisionID
	m.DivisionName = o.DivisionName
	m.Status = string(o.Status)
	m.RequestedByID = o.RequestedByID
	m.RequestedBy = o.RequestedBy
	m.Note = o.Note
	m.RevisionNote = o.RevisionNote
	m.RejectReason = o.RejectReason
	m.ConfirmedAt = o.ConfirmedAt
	m.DeliveredAt = o.DeliveredAt
	m.AcceptedAt = o.AcceptedAt
	m.FinishedAt = o.FinishedAt
	m.RejectedAt = o.RejectedAt
	m.Lines = make([]OrderLineModel, len(o.Lines))
	for i := range o.Lines {
		m.Lines[i] = *OrderLineModelFromDomain(&o.Lines[i])
		m.Lines[i].OrderID = o.ID
	}
}

// WarehouseOrderModelFromDomain creates a new persistence model from a domain WarehouseOrder entity.
func WarehouseOrderModelFromDomain(o *warehouse.WarehouseOrder) *WarehouseOrderModel {
	m := &WarehouseOrderModel{}
	m.FromDomain(o)
	return m
}

// OrderLineModel is the persistence model for an order line.
type OrderLineModel struct {
	ID       uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemID   uuid.UUID       `gorm:"type:uuid;not null"`
	ItemName string          `gorm:"type:varchar(100)"`
	Unit     string          `gorm:"type:varchar(20)"`
	Quantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (OrderLineModel) TableName() string {
	return "warehouse_order_lines"
}

// ToDomain converts the persistence model to a domain OrderLine entity.
func (m *OrderLineModel) ToDomain() *warehouse.OrderLine {
	return &warehouse.OrderLine{
		ID:       m.ID,
		OrderID:  m.OrderID,
		ItemID:   m.ItemID,
		ItemName: m.ItemName,
		Unit:     m.Unit,
		Quantity: m.Quantity,
	}
}

// OrderLineModelFromDomain creates a new persistence model from a domain OrderLine entity.
func OrderLineModelFromDomain(l *warehouse.OrderLine) *OrderLineModel {
	return &OrderLineModel{
		ID:       l.ID,
		OrderID:  l.OrderID,
		ItemID:   l.ItemID,
		ItemName: l.ItemName,
		Unit:     l.Unit,
		Quantity: l.Quantity,
	}
}

// StockOpnameModel is the persistence model for the StockOpname aggregate root.
type StockOpnameModel struct {
	AggregateModel
	OpnameNumber string     `gorm:"type:varchar(30);not null;uniqueIndex"`
	Title        string     `gorm:"type:varchar(200);not null"`
	Status       string     `gorm:"type:varchar(30);not null;index"`
	Note         string     `gorm:"type:text"`
	StartedAt    *time.Time
	CountedAt    *time.Time
	FinishedAt   *time.Time
	// Associations
	Lines []OpnameLineModel `gorm:"foreignKey:OpnameID;references:ID"`
}

// TableName returns the table name for GORM
func (StockOpnameModel) TableName() string {
	return "stock_opnames"
}

// ToDomain converts the persistence model to a domain StockOpname entity.
func (m *StockOpnameModel) ToDomain() *warehouse.StockOpname {
	opname := &warehouse.StockOpname{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		OpnameNumber:      m.OpnameNumber,
		Title:             m.Title,
		Status:            workflow.State(m.Status),
		Note:              m.Note,
		StartedAt:         m.StartedAt,
		CountedAt:         m.CountedAt,
		FinishedAt:        m.FinishedAt,
		Lines:             make([]warehouse.OpnameLine, len(m.Lines)),
	}
	for i, line := range m.Lines {
		opname.Lines[i] = *line.ToDomain()
	}
	return opname
}

// FromDomain populates the persistence model from a domain StockOpname entity.
func (m *StockOpnameModel) FromDomain(o *warehouse.StockOpname) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OpnameNumber = o.OpnameNumber
	m.Title = o.Title
	m.Status = string(o.Status)
	m.Note = o.Note
	m.StartedAt = o.StartedAt
	m.CountedAt = o.CountedAt
	m.FinishedAt = o.FinishedAt
	m.Lines = make([]OpnameLineModel, len(o.Lines))
	for i := range o.Lines {
		m.Lines[i] = *OpnameLineModelFromDomain(&o.Lines[i])
		m.Lines[i].OpnameID = o.ID
	}
}

// StockOpnameModelFromDomain creates a new persistence model from a domain StockOpname entity.
func StockOpnameModelFromDomain(o *warehouse.StockOpname) *StockOpnameModel {
	m := &StockOpnameModel{}
	m.FromDomain(o)
	return m
}

// OpnameLineModel is the persistence model for an opname count line.
// A NULL final_stock means the physical count has not been recorded yet.
type OpnameLineModel struct {
	ID          uuid.UUID        `gorm:"type:uuid;primary_key"`
	OpnameID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	ItemID      uuid.UUID        `gorm:"type:uuid;not null"`
	ItemName    string           `gorm:"type:varchar(100)"`
	Unit        string           `gorm:"type:varchar(20)"`
	SystemStock decimal.Decimal  `gorm:"type:decimal(18,4);not null"`
	FinalStock  *decimal.Decimal `gorm:"type:decimal(18,4)"`
	Note        string           `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (OpnameLineModel) TableName() string {
	return "stock_opname_lines"
}

// ToDomain converts the persistence model to a domain OpnameLine entity.
func (m *OpnameLineModel) ToDomain() *warehouse.OpnameLine {
	return &warehouse.OpnameLine{
		ID:          m.ID,
		OpnameID:    m.OpnameID,
		ItemID:      m.ItemID,
		ItemName:    m.ItemName,
		Unit:        m.Unit,
		SystemStock: m.SystemStock,
		FinalStock:  m.FinalStock,
		Note:        m.Note,
	}
}

// OpnameLineModelFromDomain creates a new persistence model from a domain OpnameLine entity.
func OpnameLineModelFromDomain(l *warehouse.OpnameLine) *OpnameLineModel {
	return &OpnameLineModel{
		ID:          l.ID,
		OpnameID:    l.OpnameID,
		ItemID:      l.ItemID,
		ItemName:    l.ItemName,
		Unit:        l.Unit,
		SystemStock: l.SystemStock,
		FinalStock:  l.FinalStock,
		Note:        l.Note,
	}
}
