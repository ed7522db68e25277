package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sattv/backend/internal/domain/billing"
	"github.com/sattv/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormBillingRepository implements billing.Repository using GORM
type GormBillingRepository struct {
	db *gorm.DB
}

// NewGormBillingRepository creates a new GormBillingRepository
func NewGormBillingRepository(db *gorm.DB) *GormBillingRepository {
	return &GormBillingRepository{db: db}
}

// FindByID finds a billing row by its ID
func (r *GormBillingRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Billing, error) {
	var b billing.Billing
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindByCustomerAndPeriod finds a customer's billing row for a period.
// Returns shared.ErrNotFound when none exists.
func (r *GormBillingRepository) FindByCustomerAndPeriod(ctx context.Context, tenantID, customerID uuid.UUID, period string) (*billing.Billing, error) {
	var b billing.Billing
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND customer_id = ? AND period = ?", tenantID, customerID, period).
		First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindByCustomer finds all billing rows for a customer
func (r *GormBillingRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]billing.Billing, error) {
	var rows []billing.Billing
	query := applyFilterWithFields(
		r.db.WithContext(ctx).Model(&billing.Billing{}).
			Where("tenant_id = ? AND customer_id = ?", tenantID, customerID),
		filter,
		BillingSortFields,
	)

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// FindPending finds all pending billing rows for a tenant
func (r *GormBillingRepository) FindPending(ctx context.Context, tenantID uuid.UUID) ([]billing.Billing, error) {
	var rows []billing.Billing
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, billing.StatusPending).
		Order("due_date ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Save creates or updates a billing row
func (r *GormBillingRepository) Save(ctx context.Context, b *billing.Billing) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// Delete deletes a billing row
func (r *GormBillingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&billing.Billing{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormPaymentRepository implements billing.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindBySubscription finds payments for a subscription, newest first
func (r *GormPaymentRepository) FindBySubscription(ctx context.Context, tenantID, subscriptionID uuid.UUID) ([]billing.Payment, error) {
	var payments []billing.Payment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND subscription_id = ?", tenantID, subscriptionID).
		Order("paid_at DESC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// Save creates a payment record
func (r *GormPaymentRepository) Save(ctx context.Context, p *billing.Payment) error {
	return r.db.WithContext(ctx).Save(p).Error
}
