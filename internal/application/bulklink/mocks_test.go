package bulklink

import (
	"context"

	"github.com/google/uuid"
	"github.com/sattv/backend/internal/domain/billing"
	"github.com/sattv/backend/internal/domain/customer"
	"github.com/sattv/backend/internal/domain/equipment"
	"github.com/sattv/backend/internal/domain/shared"
	"github.com/sattv/backend/internal/domain/subscription"
	"github.com/stretchr/testify/mock"
)

// MockCustomerRepository is a mock implementation of customer.Repository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*customer.Customer, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]customer.Customer, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) FindActive(ctx context.Context, tenantID uuid.UUID) ([]customer.Customer, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

// MockEquipmentRepository is a mock implementation of equipment.Repository
type MockEquipmentRepository struct {
	mock.Mock
}

func (m *MockEquipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*equipment.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*equipment.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) FindBySerial(ctx context.Context, tenantID uuid.UUID, serial string) (*equipment.Equipment, error) {
	args := m.Called(ctx, tenantID, serial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*equipment.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) FindByAnyKey(ctx context.Context, tenantID uuid.UUID, code string) (*equipment.Equipment, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*equipment.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]equipment.Equipment, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]equipment.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status equipment.Status) ([]equipment.Equipment, error) {
	args := m.Called(ctx, tenantID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]equipment.Equipment), args.Error(1)
}

func (m *MockEquipmentRepository) Save(ctx context.Context, eq *equipment.Equipment) error {
	args := m.Called(ctx, eq)
	return args.Error(0)
}

func (m *MockEquipmentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

// MockSubscriptionRepository is a mock implementation of subscription.Repository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindByID(ctx context.Context, id uuid.UUID) (*subscription.Subscription, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindByCode(ctx context.Context, tenantID uuid.UUID, code string) (*subscription.Subscription, error) {
	args := m.Called(ctx, tenantID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindByOwner(ctx context.Context, tenantID, customerID uuid.UUID) ([]subscription.Subscription, error) {
	args := m.Called(ctx, tenantID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]subscription.Subscription, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindActive(ctx context.Context, tenantID uuid.UUID) ([]subscription.Subscription, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]subscription.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Save(ctx context.Context, sub *subscription.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

// MockBillingRepository is a mock implementation of billing.Repository
type MockBillingRepository struct {
	mock.Mock
}

func (m *MockBillingRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Billing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Billing), args.Error(1)
}

func (m *MockBillingRepository) FindByCustomerAndPeriod(ctx context.Context, tenantID, customerID uuid.UUID, period string) (*billing.Billing, error) {
	args := m.Called(ctx, tenantID, customerID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Billing), args.Error(1)
}

func (m *MockBillingRepository) FindByCustomer(ctx context.Context, tenantID, customerID uuid.UUID, filter shared.Filter) ([]billing.Billing, error) {
	args := m.Called(ctx, tenantID, customerID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Billing), args.Error(1)
}

func (m *MockBillingRepository) FindPending(ctx context.Context, tenantID uuid.UUID) ([]billing.Billing, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]billing.Billing), args.Error(1)
}

func (m *MockBillingRepository) Save(ctx context.Context, b *billing.Billing) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBillingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
