package warehouse

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/workflow"
)

// StockOpname statuses
const (
	OpnameStatusPending  workflow.State = "PENDING"
	OpnameStatusProses   workflow.State = "PROSES"
	OpnameStatusCounted  workflow.State = "STOCKOPNAME"
	OpnameStatusFinished workflow.State = "FINISH"
)

// OpnameMachine declares the stock-taking lifecycle. A pending session may
// skip the counting phase when all counts are already recorded.
var OpnameMachine = workflow.NewMachine("stock_opname", OpnameStatusPending, map[workflow.State]workflow.StateSpec{
	OpnameStatusPending:  {Label: "Menunggu", Color: "warning", Next: []workflow.State{OpnameStatusProses, OpnameStatusCounted}},
	OpnameStatusProses:   {Label: "Proses", Color: "info", Next: []workflow.State{OpnameStatusCounted}},
	OpnameStatusCounted:  {Label: "Stock Opname", Color: "primary", Next: []workflow.State{OpnameStatusFinished}},
	OpnameStatusFinished: {Label: "Selesai", Color: "success"},
})

// OpnameLine captures one item's system stock at snapshot time and its
// physically counted final stock. FinalStock stays nil until counted.
type OpnameLine struct {
	ID          uuid.UUID
	OpnameID    uuid.UUID
	ItemID      uuid.UUID
	ItemName    string
	Unit        string
	SystemStock decimal.Decimal
	FinalStock  *decimal.Decimal
	Note        string
}

// Counted reports whether the physical count has been recorded
func (l *OpnameLine) Counted() bool {
	return l.FinalStock != nil
}

// Delta returns counted minus system stock, zero when uncounted
func (l *OpnameLine) Delta() decimal.Decimal {
	if l.FinalStock == nil {
		return decimal.Zero
	}
	return l.FinalStock.Sub(l.SystemStock)
}

// StockDelta pairs an item with its opname adjustment
type StockDelta struct {
	ItemID   uuid.UUID
	NewStock decimal.Decimal
	Delta    decimal.Decimal
}

// StockOpname is a stock-taking session over a set of warehouse items
type StockOpname struct {
	shared.BaseAggregateRoot
	OpnameNumber string
	Title        string
	Status       workflow.State
	Note         string
	StartedAt    *time.Time
	CountedAt    *time.Time
	FinishedAt   *time.Time
	Lines        []OpnameLine
}

// NewStockOpname creates a pending session snapshotting current system stock
func NewStockOpname(opnameNumber, title string) (*StockOpname, error) {
	if opnameNumber == "" {
		return nil, shared.NewDomainError("INVALID_OPNAME_NUMBER", "Opname number cannot be empty")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Title cannot be empty")
	}

	s := &StockOpname{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OpnameNumber:      opnameNumber,
		Title:             title,
		Status:            OpnameMachine.Initial(),
		Lines:             make([]OpnameLine, 0),
	}
	s.AddDomainEvent(NewOpnameCreatedEvent(s))
	return s, nil
}

// AddLine snapshots one item into the session. Lines can only be added
// before counting starts.
func (s *StockOpname) AddLine(itemID uuid.UUID, itemName, unit string, systemStock decimal.Decimal) error {
	if s.Status != OpnameStatusPending {
		return shared.ErrConflict
	}
	if itemID == uuid.Nil {
		return shared.NewDomainError("INVALID_ITEM", "Item ID cannot be empty")
	}
	for _, line := range s.Lines {
		if line.ItemID == itemID {
			return shared.NewDomainError("DUPLICATE_ITEM", "Item already exists in opname")
		}
	}

	s.Lines = append(s.Lines, OpnameLine{
		ID:          uuid.New(),
		OpnameID:    s.ID,
		ItemID:      itemID,
		ItemName:    itemName,
		Unit:        unit,
		SystemStock: systemStock,
	})
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// Start moves the session to the counting phase
func (s *StockOpname) Start() error {
	if err := s.transitionTo(OpnameStatusProses); err != nil {
		return err
	}
	now := time.Now()
	s.Status = OpnameStatusProses
	s.StartedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()
	return nil
}

// RecordCount records a physical count for one item. Counts may be revised
// until the session is marked counted.
func (s *StockOpname) RecordCount(itemID uuid.UUID, finalStock decimal.Decimal, note string) error {
	if s.Status != OpnameStatusPending && s.Status != OpnameStatusProses {
		return shared.ErrConflict
	}
	if finalStock.IsNegative() {
		return shared.NewDomainError("INVALID_QUANTITY", "Counted stock cannot be negative")
	}
	for idx := range s.Lines {
		if s.Lines[idx].ItemID == itemID {
			stock := finalStock
			s.Lines[idx].FinalStock = &stock
			s.Lines[idx].Note = note
			s.UpdatedAt = time.Now()
			s.IncrementVersion()
			return nil
		}
	}
	return shared.ErrNotFound
}

// MarkCounted closes the counting phase. Every line must carry a final
// stock before the session can move forward.
func (s *StockOpname) MarkCounted() error {
	if err := s.transitionTo(OpnameStatusCounted); err != nil {
		return err
	}
	if len(s.Lines) == 0 {
		return shared.NewGuardFailedError("stock_opname", "has_lines", "stock opname tidak memiliki item")
	}
	for _, line := range s.Lines {
		if !line.Counted() {
			return shared.NewGuardFailedError("stock_opname", "all_counted", "semua item harus memiliki stok akhir")
		}
	}

	now := time.Now()
	s.Status = OpnameStatusCounted
	s.CountedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()
	return nil
}

// Finish finalizes the session. Callers apply StockDeltas to the item
// quantities in the same transaction.
func (s *StockOpname) Finish() error {
	if err := s.transitionTo(OpnameStatusFinished); err != nil {
		return err
	}
	now := time.Now()
	s.Status = OpnameStatusFinished
	s.FinishedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()
	s.AddDomainEvent(NewOpnameFinishedEvent(s))
	return nil
}

// StockDeltas returns the per-item adjustments the counted session implies
func (s *StockOpname) StockDeltas() []StockDelta {
	deltas := make([]StockDelta, 0, len(s.Lines))
	for _, line := range s.Lines {
		if !line.Counted() {
			continue
		}
		deltas = append(deltas, StockDelta{
			ItemID:   line.ItemID,
			NewStock: *line.FinalStock,
			Delta:    line.Delta(),
		})
	}
	return deltas
}

func (s *StockOpname) transitionTo(target workflow.State) error {
	return OpnameMachine.Transition(s.Status, target)
}

// StatusLabel returns the presentation label of the current status
func (s *StockOpname) StatusLabel() string {
	return OpnameMachine.Label(s.Status)
}
