package ticket

import (
	"time"

	"github.com/google/uuid"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/workflow"
)

// Maintenance statuses
const (
	MaintenanceStatusPending    workflow.State = "PENDING"
	MaintenanceStatusRefinement workflow.State = "REFINEMENT"
	MaintenanceStatusFinish     workflow.State = "FINISH"
	MaintenanceStatusConfirmed  workflow.State = "CONFIRMED"
	MaintenanceStatusCancelled  workflow.State = "CANCELLED"
)

// MaintenanceMachine declares the asset maintenance lifecycle. Work can be
// cancelled until it is finished; the requester confirms finished work.
var MaintenanceMachine = workflow.NewMachine("maintenance", MaintenanceStatusPending, map[workflow.State]workflow.StateSpec{
	MaintenanceStatusPending:    {Label: "Menunggu", Color: "warning", Next: []workflow.State{MaintenanceStatusRefinement, MaintenanceStatusCancelled}},
	MaintenanceStatusRefinement: {Label: "Perbaikan", Color: "info", Next: []workflow.State{MaintenanceStatusFinish, MaintenanceStatusCancelled}},
	MaintenanceStatusFinish:     {Label: "Selesai", Color: "primary", Next: []workflow.State{MaintenanceStatusConfirmed}},
	MaintenanceStatusConfirmed:  {Label: "Dikonfirmasi", Color: "success"},
	MaintenanceStatusCancelled:  {Label: "Dibatalkan", Color: "danger"},
})

// Maintenance is a repair request for a division asset
type Maintenance struct {
	shared.BaseAggregateRoot
	MaintenanceNumber string
	AssetName         string
	Description       string
	Status            workflow.State
	RequestedByID     uuid.UUID
	RequestedBy       string
	DivisionID        uuid.UUID
	TechnicianID      *uuid.UUID
	CancelReason      string
	StartedAt         *time.Time
	FinishedAt        *time.Time
	ConfirmedAt       *time.Time
	CancelledAt       *time.Time
}

// NewMaintenance creates a new pending maintenance request
func NewMaintenance(maintenanceNumber, assetName, description string, requestedByID uuid.UUID, requestedBy string, divisionID uuid.UUID) (*Maintenance, error) {
	if maintenanceNumber == "" {
		return nil, shared.NewDomainError("INVALID_MAINTENANCE_NUMBER", "Maintenance number cannot be empty")
	}
	if assetName == "" {
		return nil, shared.NewDomainError("INVALID_ASSET", "Asset name cannot be empty")
	}
	if requestedByID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REQUESTER", "Requester ID cannot be empty")
	}
	if divisionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DIVISION", "Division ID cannot be empty")
	}

	return &Maintenance{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		MaintenanceNumber: maintenanceNumber,
		AssetName:         assetName,
		Description:       description,
		Status:            MaintenanceMachine.Initial(),
		RequestedByID:     requestedByID,
		RequestedBy:       requestedBy,
		DivisionID:        divisionID,
	}, nil
}

// Start assigns a technician and begins the repair work
func (m *Maintenance) Start(technicianID uuid.UUID) error {
	if technicianID == uuid.Nil {
		return shared.NewDomainError("INVALID_TECHNICIAN", "Technician ID cannot be empty")
	}
	if err := m.transitionTo(MaintenanceStatusRefinement); err != nil {
		return err
	}
	now := time.Now()
	m.Status = MaintenanceStatusRefinement
	m.TechnicianID = &technicianID
	m.StartedAt = &now
	m.UpdatedAt = now
	m.IncrementVersion()
	return nil
}

// Finish marks the repair work as done, pending requester confirmation
func (m *Maintenance) Finish() error {
	if err := m.transitionTo(MaintenanceStatusFinish); err != nil {
		return err
	}
	now := time.Now()
	m.Status = MaintenanceStatusFinish
	m.FinishedAt = &now
	m.UpdatedAt = now
	m.IncrementVersion()
	return nil
}

// Confirm records the requester's acceptance of the finished work
func (m *Maintenance) Confirm() error {
	if err := m.transitionTo(MaintenanceStatusConfirmed); err != nil {
		return err
	}
	now := time.Now()
	m.Status = MaintenanceStatusConfirmed
	m.ConfirmedAt = &now
	m.UpdatedAt = now
	m.IncrementVersion()
	return nil
}

// Cancel aborts a request that has not finished yet
func (m *Maintenance) Cancel(reason string) error {
	if err := m.transitionTo(MaintenanceStatusCancelled); err != nil {
		return err
	}
	now := time.Now()
	m.Status = MaintenanceStatusCancelled
	m.CancelReason = reason
	m.CancelledAt = &now
	m.UpdatedAt = now
	m.IncrementVersion()
	return nil
}

func (m *Maintenance) transitionTo(target workflow.State) error {
	return MaintenanceMachine.Transition(m.Status, target)
}

// StatusLabel returns the presentation label of the current status
func (m *Maintenance) StatusLabel() string {
	return MaintenanceMachine.Label(m.Status)
}
