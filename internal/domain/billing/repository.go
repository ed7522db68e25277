package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/sattv/backend/internal/domain/shared"
)

// Repository defines the interface for billing persistence
type Repository interface {
	// FindByID finds a billing row by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Billing, error)

	// FindByCustomerAndPeriod finds a customer's billing row for a period.
	// Returns shared.ErrNotFound when none exists.
	FindByCustomerAndPeriod(ctx context.Context, tenantID, customerID uuid.UUID, period string) (*Billing, error)

	// FindByCustomer finds all billing rows for a customer
	FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]Billing, error)

	// FindPending finds all pending billing rows for a tenant
	FindPending(ctx context.Context, tenantID uuid.UUID) ([]Billing, error)

	// Save creates or updates a billing row
	Save(ctx context.Context, b *Billing) error

	// Delete deletes a billing row
	Delete(ctx context.Context, id uuid.UUID) error
}

// PaymentRepository defines the interface for payment persistence
type PaymentRepository interface {
	// FindBySubscription finds payments for a subscription, newest first
	FindBySubscription(ctx context.Context, tenantID, subscriptionID uuid.UUID) ([]Payment, error)

	// Save creates a payment record
	Save(ctx context.Context, p *Payment) error
}
