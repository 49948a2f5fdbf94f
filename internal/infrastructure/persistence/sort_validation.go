package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// Common allowed sort fields for entities with base fields
// These are the common fields present in most entities

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// DivisionSortFields contains allowed sort fields for divisions
var DivisionSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"code":          true,
	"name":          true,
	"max_capacity":  true,
	"used_capacity": true,
}

// PositionSortFields contains allowed sort fields for positions
var PositionSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
}

// DocumentSortFields contains allowed sort fields for documents
var DocumentSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"number":     true,
	"title":      true,
	"category":   true,
	"file_size":  true,
	"status":     true,
}

// StockItemSortFields contains allowed sort fields for stock items
var StockItemSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"code":         true,
	"name":         true,
	"quantity":     true,
	"min_quantity": true,
}

// WarehouseOrderSortFields contains allowed sort fields for warehouse orders
var WarehouseOrderSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"order_number": true,
	"status":       true,
	"confirmed_at": true,
	"finished_at":  true,
}

// StockOpnameSortFields contains allowed sort fields for stock opnames
var StockOpnameSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"opname_number": true,
	"title":         true,
	"status":        true,
	"started_at":    true,
	"finished_at":   true,
}

// TicketSortFields contains allowed sort fields for tickets
var TicketSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"ticket_number": true,
	"title":         true,
	"category":      true,
	"priority":      true,
	"status":        true,
	"closed_at":     true,
}

// MaintenanceSortFields contains allowed sort fields for maintenance requests
var MaintenanceSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"maintenance_number": true,
	"asset_name":         true,
	"status":             true,
	"started_at":         true,
	"finished_at":        true,
}

// VisitorSortFields contains allowed sort fields for visitors
var VisitorSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"institution":  true,
	"status":       true,
	"scheduled_at": true,
}

// ReservationSortFields contains allowed sort fields for storage reservations
var ReservationSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"amount":      true,
	"released_at": true,
}
