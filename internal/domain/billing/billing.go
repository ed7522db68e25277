package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/sattv/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the payment status of a billing row
type Status string

const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

// Kind classifies what a billing row charges for
type Kind string

const (
	KindRental  Kind = "rental"  // monthly decoder rental
	KindRenewal Kind = "renewal" // subscription cycle renewal
	KindCost    Kind = "cost"    // fixed recurring cost entry
)

// Source records which path created a billing row
type Source string

const (
	SourceManual   Source = "manual"
	SourceBulkLink Source = "bulk_link"
	SourceRenewal  Source = "renewal"
)

// Billing represents one recurring charge for a customer in a period.
// The bulk-link path creates at most one row per (customer, period); the
// check happens at creation time and is not enforced by the database.
type Billing struct {
	shared.TenantAggregateRoot
	CustomerID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_billing_customer_period,priority:1"`
	SubscriptionID *uuid.UUID      `gorm:"type:uuid;index"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	DueDate        time.Time       `gorm:"not null"`
	Period         string          `gorm:"type:varchar(7);not null;index:idx_billing_customer_period,priority:2"` // YYYY-MM
	Status         Status          `gorm:"type:varchar(20);not null;default:'pending'"`
	Kind           Kind            `gorm:"type:varchar(20);not null"`
	Source         Source          `gorm:"type:varchar(20);not null;default:'manual'"`
	Description    string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Billing) TableName() string {
	return "billings"
}

// PeriodOf derives the billing period from a due date.
func PeriodOf(dueDate time.Time) string {
	return dueDate.Format("2006-01")
}

// NewBilling creates a new pending billing row
func NewBilling(tenantID, customerID uuid.UUID, subscriptionID *uuid.UUID, amount decimal.Decimal, dueDate time.Time, kind Kind, source Source) (*Billing, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Amount cannot be negative")
	}
	if dueDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DUE_DATE", "Due date is required")
	}
	switch kind {
	case KindRental, KindRenewal, KindCost:
	default:
		return nil, shared.NewDomainError("INVALID_KIND", "Invalid billing kind")
	}

	return &Billing{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CustomerID:          customerID,
		SubscriptionID:      subscriptionID,
		Amount:              amount,
		DueDate:             dueDate,
		Period:              PeriodOf(dueDate),
		Status:              StatusPending,
		Kind:                kind,
		Source:              source,
	}, nil
}

// MarkPaid marks the billing row as paid
func (b *Billing) MarkPaid() error {
	if b.Status == StatusPaid {
		return shared.NewDomainError("ALREADY_PAID", "Billing is already paid")
	}

	b.Status = StatusPaid
	b.UpdatedAt = time.Now()
	b.IncrementVersion()

	return nil
}

// IsPending returns true if the billing row has not been paid
func (b *Billing) IsPending() bool {
	return b.Status == StatusPending
}
