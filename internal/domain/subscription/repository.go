package subscription

import (
	"context"

	"github.com/google/uuid"
	"github.com/sattv/backend/internal/domain/shared"
)

// Repository defines the interface for subscription persistence
type Repository interface {
	// FindByID finds a subscription by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Subscription, error)

	// FindByCode finds a subscription by its code within a tenant
	FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*Subscription, error)

	// FindByOwner finds the subscriptions owned by a customer
	FindByOwner(ctx context.Context, tenantID, customerID uuid.UUID) ([]Subscription, error)

	// FindAllForTenant finds all subscriptions for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Subscription, error)

	// FindActive finds all active subscriptions for a tenant
	FindActive(ctx context.Context, tenantID uuid.UUID) ([]Subscription, error)

	// Save creates or updates a subscription
	Save(ctx context.Context, sub *Subscription) error
}
