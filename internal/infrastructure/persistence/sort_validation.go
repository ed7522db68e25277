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

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// CustomerSortFields contains allowed sort fields for customers
var CustomerSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"code":         true,
	"name":         true,
	"neighborhood": true,
	"status":       true,
}

// EquipmentSortFields contains allowed sort fields for decoders
var EquipmentSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"serial_number": true,
	"smart_card":    true,
	"asset_id":      true,
	"model":         true,
	"status":        true,
}

// SubscriptionSortFields contains allowed sort fields for subscriptions
var SubscriptionSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"code":           true,
	"plan_name":      true,
	"monthly_amount": true,
	"renewal_date":   true,
	"status":         true,
}

// BillingSortFields contains allowed sort fields for billing rows
var BillingSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"due_date":   true,
	"period":     true,
	"amount":     true,
	"status":     true,
	"kind":       true,
}
