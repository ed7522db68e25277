package handler

import (
	"context"

	"github.com/google/uuid"
	"github.com/sattv/backend/internal/domain/billing"
	"github.com/sattv/backend/internal/domain/customer"
	"github.com/sattv/backend/internal/domain/equipment"
	"github.com/sattv/backend/internal/domain/shared"
	"github.com/sattv/backend/internal/domain/subscription"
)

// In-memory repository fakes for handler tests

type fakeCustomerRepository struct {
	customers []customer.Customer
	err       error
}

func (f *fakeCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	for i := range f.customers {
		if f.customers[i].ID == id {
			return &f.customers[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeCustomerRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*customer.Customer, error) {
	for i := range f.customers {
		if f.customers[i].Code == code {
			return &f.customers[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeCustomerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]customer.Customer, error) {
	return f.customers, f.err
}

func (f *fakeCustomerRepository) FindActive(ctx context.Context, tenantID uuid.UUID) ([]customer.Customer, error) {
	return f.customers, f.err
}

func (f *fakeCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	return f.err
}

func (f *fakeCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return f.err
}

func (f *fakeCustomerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	return int64(len(f.customers)), f.err
}

type fakeEquipmentRepository struct {
	items []equipment.Equipment
	saved []*equipment.Equipment
	err   error
}

func (f *fakeEquipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*equipment.Equipment, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			return &f.items[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeEquipmentRepository) FindBySerial(ctx context.Context, tenantID uuid.UUID, serial string) (*equipment.Equipment, error) {
	for i := range f.items {
		if f.items[i].SerialNumber == serial {
			return &f.items[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeEquipmentRepository) FindByAnyKey(ctx context.Context, tenantID uuid.UUID, code string) (*equipment.Equipment, error) {
	for i := range f.items {
		if f.items[i].SerialNumber == code || f.items[i].SmartCard == code || f.items[i].AssetID == code {
			return &f.items[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeEquipmentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]equipment.Equipment, error) {
	return f.items, f.err
}

func (f *fakeEquipmentRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status equipment.Status) ([]equipment.Equipment, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []equipment.Equipment
	for _, item := range f.items {
		if item.Status == status {
			result = append(result, item)
		}
	}
	return result, nil
}

func (f *fakeEquipmentRepository) Save(ctx context.Context, eq *equipment.Equipment) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, eq)
	return nil
}

func (f *fakeEquipmentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	return int64(len(f.items)), f.err
}

type fakeSubscriptionRepository struct {
	subs  []subscription.Subscription
	saved []*subscription.Subscription
	err   error
}

func (f *fakeSubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Subscription, error) {
	for i := range f.subs {
		if f.subs[i].ID == id {
			sub := f.subs[i]
			return &sub, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeSubscriptionRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*subscription.Subscription, error) {
	for i := range f.subs {
		if f.subs[i].Code == code {
			sub := f.subs[i]
			return &sub, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeSubscriptionRepository) FindByOwner(ctx context.Context, tenantID, customerID uuid.UUID) ([]subscription.Subscription, error) {
	var result []subscription.Subscription
	for _, sub := range f.subs {
		if sub.OwnerCustomerID != nil && *sub.OwnerCustomerID == customerID {
			result = append(result, sub)
		}
	}
	return result, f.err
}

func (f *fakeSubscriptionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]subscription.Subscription, error) {
	return f.subs, f.err
}

func (f *fakeSubscriptionRepository) FindActive(ctx context.Context, tenantID uuid.UUID) ([]subscription.Subscription, error) {
	return f.subs, f.err
}

func (f *fakeSubscriptionRepository) Save(ctx context.Context, sub *subscription.Subscription) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, sub)
	return nil
}

type fakeBillingRepository struct {
	existing map[string]*billing.Billing // customerID + period
	saved    []*billing.Billing
	err      error
}

func billingKey(customerID uuid.UUID, period string) string {
	return customerID.String() + "/" + period
}

func (f *fakeBillingRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Billing, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeBillingRepository) FindByCustomerAndPeriod(ctx context.Context, tenantID, customerID uuid.UUID, period string) (*billing.Billing, error) {
	if f.err != nil {
		return nil, f.err
	}
	if b, ok := f.existing[billingKey(customerID, period)]; ok {
		return b, nil
	}
	return nil, shared.ErrNotFound
}

func (f *fakeBillingRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]billing.Billing, error) {
	return nil, f.err
}

func (f *fakeBillingRepository) FindPending(ctx context.Context, tenantID uuid.UUID) ([]billing.Billing, error) {
	return nil, f.err
}

func (f *fakeBillingRepository) Save(ctx context.Context, b *billing.Billing) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, b)
	return nil
}

func (f *fakeBillingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return f.err
}

type fakePaymentRepository struct {
	saved []*billing.Payment
	err   error
}

func (f *fakePaymentRepository) FindBySubscription(ctx context.Context, tenantID, subscriptionID uuid.UUID) ([]billing.Payment, error) {
	return nil, f.err
}

func (f *fakePaymentRepository) Save(ctx context.Context, p *billing.Payment) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, p)
	return nil
}
