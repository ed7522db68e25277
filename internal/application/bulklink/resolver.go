package bulklink

import (
	"fmt"
	"strings"

	"github.com/sattv/backend/internal/domain/customer"
	"github.com/sattv/backend/internal/domain/equipment"
	"github.com/sattv/backend/internal/domain/matching"
	"github.com/sattv/backend/internal/domain/shared"
	"github.com/sattv/backend/internal/domain/subscription"
	"github.com/sattv/backend/internal/infrastructure/recordtext"
)

// Resolution holds the live records a candidate was resolved against.
// Subscription may be nil: its absence is not an error.
type Resolution struct {
	Customer     *customer.Customer
	Equipment    *equipment.Equipment
	Subscription *subscription.Subscription
}

// Resolve maps a candidate record's textual references onto live records.
// Customer resolution is fuzzy (name + neighborhood), equipment resolution is
// exact across the decoder's three keys, subscription resolution is a
// best-effort fallback chain. Errors carry the per-record outcome code.
func (s *Snapshot) Resolve(rec recordtext.CandidateRecord) (*Resolution, error) {
	cust, err := s.resolveCustomer(rec)
	if err != nil {
		return nil, err
	}

	res := &Resolution{Customer: cust}

	// charge-only records carry no equipment code
	if rec.EquipmentCode != "" {
		eq, err := s.resolveEquipment(rec)
		if err != nil {
			return nil, err
		}
		res.Equipment = eq
	}

	res.Subscription = s.resolveSubscription(rec, res)

	return res, nil
}

func (s *Snapshot) resolveCustomer(rec recordtext.CandidateRecord) (*customer.Customer, error) {
	candidates := s.findCustomersByNameKey(rec.Name)
	if len(candidates) == 0 {
		// exact normalized key missed; fall back to fuzzy scan of the snapshot
		for i := range s.customers {
			if matching.NamesMatch(rec.Name, s.customers[i].Name) {
				candidates = append(candidates, &s.customers[i])
			}
		}
	}

	var matches []*customer.Customer
	for _, c := range candidates {
		if matching.NeighborhoodsMatch(rec.Neighborhood, c.Neighborhood) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return nil, shared.NewDomainError(CodeCustomerNotFound,
			fmt.Sprintf("no active customer matches %q (%s)", rec.Name, rec.Neighborhood))
	case 1:
		return matches[0], nil
	default:
		return nil, shared.NewDomainError(CodeAmbiguousMatch,
			fmt.Sprintf("%d customers match %q (%s); refusing to pick one", len(matches), rec.Name, rec.Neighborhood))
	}
}

func (s *Snapshot) resolveEquipment(rec recordtext.CandidateRecord) (*equipment.Equipment, error) {
	eq := s.findEquipmentByAnyKey(rec.EquipmentCode)
	if eq == nil {
		return nil, shared.NewDomainError(CodeEquipmentNotFound,
			fmt.Sprintf("no decoder matches code %q", rec.EquipmentCode))
	}

	// a supplied smart card must agree with the matched decoder; no
	// substitution by other keys
	if rec.SmartCard != "" && !strings.EqualFold(strings.TrimSpace(rec.SmartCard), eq.SmartCard) {
		return nil, shared.NewDomainError(CodeEquipmentFieldMismatch,
			fmt.Sprintf("decoder %s has smart card %q, record says %q", eq.SerialNumber, eq.SmartCard, rec.SmartCard))
	}

	return eq, nil
}

// resolveSubscription is best-effort: exact code, then the customer's active
// subscription, then the one already attached to the decoder. First hit wins;
// no hit leaves the linkage with a null subscription.
func (s *Snapshot) resolveSubscription(rec recordtext.CandidateRecord, res *Resolution) *subscription.Subscription {
	if sub := s.findSubscriptionByCode(rec.SubscriptionCode); sub != nil {
		return sub
	}
	if sub := s.findActiveSubscriptionForOwner(res.Customer.ID); sub != nil {
		return sub
	}
	if res.Equipment != nil && res.Equipment.CurrentSubscriptionID != nil {
		return s.findSubscriptionByID(*res.Equipment.CurrentSubscriptionID)
	}
	return nil
}
