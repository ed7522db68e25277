package subscription

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sattv/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the status of a subscription
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

// Subscription represents a pay-TV plan contract. It may have zero or one
// owning customer and be referenced by many decoders and billing rows.
type Subscription struct {
	shared.TenantAggregateRoot
	Code            string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_subscription_tenant_code,priority:2"`
	PlanName        string          `gorm:"type:varchar(100)"`
	MonthlyAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	OwnerCustomerID *uuid.UUID      `gorm:"type:uuid;index"`
	RenewalDate     time.Time       `gorm:"not null"`
	LastSettledAt   *time.Time
	Status          Status `gorm:"type:varchar(20);not null;default:'active'"`
	Notes           string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Subscription) TableName() string {
	return "subscriptions"
}

// NewSubscription creates a new subscription with required fields
func NewSubscription(tenantID uuid.UUID, code, planName string, monthlyAmount decimal.Decimal, renewalDate time.Time) (*Subscription, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "Subscription code cannot be empty")
	}
	if len(code) > 50 {
		return nil, shared.NewDomainError("INVALID_CODE", "Subscription code cannot exceed 50 characters")
	}
	if monthlyAmount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Monthly amount cannot be negative")
	}
	if renewalDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_RENEWAL_DATE", "Renewal date is required")
	}

	return &Subscription{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		PlanName:            planName,
		MonthlyAmount:       monthlyAmount,
		RenewalDate:         renewalDate,
		Status:              StatusActive,
	}, nil
}

// AttachOwner sets the owning customer
func (s *Subscription) AttachOwner(customerID uuid.UUID) error {
	if customerID == uuid.Nil {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}

	s.OwnerCustomerID = &customerID
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// Settle advances the renewal date by exactly one calendar month measured from
// the stored renewal date, never from the invocation date. Lapsed cycles are
// therefore caught up one Settle at a time. A day-of-month that does not exist
// in the target month is clamped to that month's last day.
func (s *Subscription) Settle(now time.Time) error {
	if s.Status != StatusActive {
		return shared.NewDomainError("INVALID_STATE", "Cannot settle a cancelled subscription")
	}

	previous := s.RenewalDate
	s.RenewalDate = addOneMonthClamped(previous)
	s.LastSettledAt = &now
	s.appendNote(fmt.Sprintf("cycle settled %s: renewal %s -> %s",
		now.Format("2006-01-02"),
		previous.Format("2006-01-02"),
		s.RenewalDate.Format("2006-01-02")))
	s.UpdatedAt = now
	s.IncrementVersion()

	return nil
}

// addOneMonthClamped advances d by one calendar month preserving day-of-month,
// clamping to the last valid day of the target month. time.AddDate is not used
// because it normalizes Jan 31 + 1 month to Mar 2/3 instead of Feb 28/29.
func addOneMonthClamped(d time.Time) time.Time {
	year, month, day := d.Date()
	month++
	if month > time.December {
		month = time.January
		year++
	}
	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	// day 0 of the next month
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Cancel cancels the subscription
func (s *Subscription) Cancel() error {
	if s.Status == StatusCancelled {
		return shared.NewDomainError("ALREADY_CANCELLED", "Subscription is already cancelled")
	}

	s.Status = StatusCancelled
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return nil
}

// IsActive returns true if the subscription is active
func (s *Subscription) IsActive() bool {
	return s.Status == StatusActive
}

func (s *Subscription) appendNote(note string) {
	if s.Notes == "" {
		s.Notes = note
		return
	}
	s.Notes = s.Notes + "\n" + note
}
