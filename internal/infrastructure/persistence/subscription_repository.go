package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sattv/backend/internal/domain/shared"
	"github.com/sattv/backend/internal/domain/subscription"
	"gorm.io/gorm"
)

// GormSubscriptionRepository implements subscription.Repository using GORM
type GormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GormSubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// FindByID finds a subscription by its ID
func (r *GormSubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	if err := r.db.WithContext(ctx).First(&sub, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// FindByCode finds a subscription by its code within a tenant
func (r *GormSubscriptionRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND code = ?", tenantID, strings.ToUpper(code)).
		First(&sub).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

// FindByOwner finds the subscriptions owned by a customer
func (r *GormSubscriptionRepository) FindByOwner(ctx context.Context, tenantID, customerID uuid.UUID) ([]subscription.Subscription, error) {
	var subs []subscription.Subscription
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND owner_customer_id = ?", tenantID, customerID).
		Order("created_at DESC").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// FindAllForTenant finds all subscriptions for a tenant
func (r *GormSubscriptionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]subscription.Subscription, error) {
	var subs []subscription.Subscription
	query := applyFilterWithFields(
		r.db.WithContext(ctx).Model(&subscription.Subscription{}).
			Where("tenant_id = ?", tenantID),
		filter,
		SubscriptionSortFields,
	)
	if filter.Search != "" {
		query = query.Where("code ILIKE ? OR plan_name ILIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}

	if err := query.Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// FindActive finds all active subscriptions for a tenant
func (r *GormSubscriptionRepository) FindActive(ctx context.Context, tenantID uuid.UUID) ([]subscription.Subscription, error) {
	var subs []subscription.Subscription
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, subscription.StatusActive).
		Order("code ASC").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

// Save creates or updates a subscription
func (r *GormSubscriptionRepository) Save(ctx context.Context, sub *subscription.Subscription) error {
	return r.db.WithContext(ctx).Save(sub).Error
}
