package persistence

import (
	"github.com/sattv/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// applyFilterWithFields applies pagination and ordering, validating the
// sort field against the entity's whitelist
func applyFilterWithFields(query *gorm.DB, filter shared.Filter, allowedFields map[string]bool) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, allowedFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	return query.Order(orderBy + " " + orderDir)
}
