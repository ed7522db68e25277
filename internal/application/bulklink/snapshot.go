package bulklink

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sattv/backend/internal/domain/customer"
	"github.com/sattv/backend/internal/domain/equipment"
	"github.com/sattv/backend/internal/domain/matching"
	"github.com/sattv/backend/internal/domain/subscription"
)

// Snapshot is a read-only view of the tenant's records, built once before a
// batch starts and never refreshed mid-batch. It replaces the old
// process-global customer cache: every run constructs its own snapshot and
// passes it by argument.
type Snapshot struct {
	tenantID uuid.UUID

	customers       []customer.Customer
	customersByName map[string][]*customer.Customer

	equipmentBySerial    map[string]*equipment.Equipment
	equipmentBySmartCard map[string]*equipment.Equipment
	equipmentByAsset     map[string]*equipment.Equipment

	subscriptionsByCode  map[string]*subscription.Subscription
	subscriptionsByOwner map[uuid.UUID][]*subscription.Subscription
	subscriptionsByID    map[uuid.UUID]*subscription.Subscription
}

// BuildSnapshot loads the active customers and the full equipment and
// subscription sets for a tenant and indexes them for resolution.
func BuildSnapshot(
	ctx context.Context,
	tenantID uuid.UUID,
	customerRepo customer.Repository,
	equipmentRepo equipment.Repository,
	subscriptionRepo subscription.Repository,
) (*Snapshot, error) {
	customers, err := customerRepo.FindActive(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("loading customers: %w", err)
	}

	available, err := equipmentRepo.FindByStatus(ctx, tenantID, equipment.StatusAvailable)
	if err != nil {
		return nil, fmt.Errorf("loading equipment: %w", err)
	}
	rented, err := equipmentRepo.FindByStatus(ctx, tenantID, equipment.StatusRented)
	if err != nil {
		return nil, fmt.Errorf("loading equipment: %w", err)
	}

	subscriptions, err := subscriptionRepo.FindActive(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("loading subscriptions: %w", err)
	}

	snap := &Snapshot{
		tenantID:             tenantID,
		customers:            customers,
		customersByName:      make(map[string][]*customer.Customer, len(customers)),
		equipmentBySerial:    make(map[string]*equipment.Equipment),
		equipmentBySmartCard: make(map[string]*equipment.Equipment),
		equipmentByAsset:     make(map[string]*equipment.Equipment),
		subscriptionsByCode:  make(map[string]*subscription.Subscription, len(subscriptions)),
		subscriptionsByOwner: make(map[uuid.UUID][]*subscription.Subscription),
		subscriptionsByID:    make(map[uuid.UUID]*subscription.Subscription, len(subscriptions)),
	}

	for i := range snap.customers {
		c := &snap.customers[i]
		key := matching.Normalize(c.Name)
		snap.customersByName[key] = append(snap.customersByName[key], c)
	}

	for _, batch := range [][]equipment.Equipment{available, rented} {
		for i := range batch {
			snap.indexEquipment(&batch[i])
		}
	}

	for i := range subscriptions {
		s := &subscriptions[i]
		snap.subscriptionsByCode[strings.ToUpper(s.Code)] = s
		snap.subscriptionsByID[s.ID] = s
		if s.OwnerCustomerID != nil {
			snap.subscriptionsByOwner[*s.OwnerCustomerID] = append(snap.subscriptionsByOwner[*s.OwnerCustomerID], s)
		}
	}

	return snap, nil
}

func (s *Snapshot) indexEquipment(e *equipment.Equipment) {
	s.equipmentBySerial[equipmentKey(e.SerialNumber)] = e
	if e.SmartCard != "" {
		s.equipmentBySmartCard[equipmentKey(e.SmartCard)] = e
	}
	if e.AssetID != "" {
		s.equipmentByAsset[equipmentKey(e.AssetID)] = e
	}
}

func equipmentKey(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}

// TenantID returns the tenant this snapshot was built for
func (s *Snapshot) TenantID() uuid.UUID {
	return s.tenantID
}

// Customers returns the active customers in the snapshot
func (s *Snapshot) Customers() []customer.Customer {
	return s.customers
}

// findCustomersByNameKey returns the customers indexed under an exact
// normalized name, which may be nil.
func (s *Snapshot) findCustomersByNameKey(name string) []*customer.Customer {
	return s.customersByName[matching.Normalize(name)]
}

// findEquipmentByAnyKey tries serial number, then smart card, then asset id.
func (s *Snapshot) findEquipmentByAnyKey(code string) *equipment.Equipment {
	key := equipmentKey(code)
	if key == "" {
		return nil
	}
	if e, ok := s.equipmentBySerial[key]; ok {
		return e
	}
	if e, ok := s.equipmentBySmartCard[key]; ok {
		return e
	}
	if e, ok := s.equipmentByAsset[key]; ok {
		return e
	}
	return nil
}

func (s *Snapshot) findSubscriptionByCode(code string) *subscription.Subscription {
	if code == "" {
		return nil
	}
	return s.subscriptionsByCode[strings.ToUpper(strings.TrimSpace(code))]
}

func (s *Snapshot) findActiveSubscriptionForOwner(customerID uuid.UUID) *subscription.Subscription {
	for _, sub := range s.subscriptionsByOwner[customerID] {
		if sub.IsActive() {
			return sub
		}
	}
	return nil
}

func (s *Snapshot) findSubscriptionByID(id uuid.UUID) *subscription.Subscription {
	return s.subscriptionsByID[id]
}
