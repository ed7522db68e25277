package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/sattv/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Payment records a settled subscription-cycle payment
type Payment struct {
	shared.TenantAggregateRoot
	CustomerID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	SubscriptionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaidAt         time.Time       `gorm:"not null"`
	Method         string          `gorm:"type:varchar(50)"`
	Note           string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a settled payment record
func NewPayment(tenantID, customerID, subscriptionID uuid.UUID, amount decimal.Decimal, paidAt time.Time, method, note string) (*Payment, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if subscriptionID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUBSCRIPTION", "Subscription ID cannot be empty")
	}
	if amount.IsNegative() || amount.IsZero() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}

	return &Payment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		CustomerID:          customerID,
		SubscriptionID:      subscriptionID,
		Amount:              amount,
		PaidAt:              paidAt,
		Method:              method,
		Note:                note,
	}, nil
}
