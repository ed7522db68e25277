package customer

import (
	"context"

	"github.com/google/uuid"
	"github.com/sattv/backend/internal/domain/shared"
)

// Repository defines the interface for customer persistence
type Repository interface {
	// FindByID finds a customer by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindByCode finds a customer by its code within a tenant
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Customer, error)

	// FindAllForTenant finds all customers for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Customer, error)

	// FindActive finds all active customers for a tenant
	FindActive(ctx context.Context, tenantID uuid.UUID) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// Delete deletes a customer
	Delete(ctx context.Context, id uuid.UUID) error

	// CountForTenant counts customers for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
