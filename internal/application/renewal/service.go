package renewal

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sattv/backend/internal/domain/billing"
	"github.com/sattv/backend/internal/domain/shared"
	"github.com/sattv/backend/internal/domain/subscription"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Service handles the user-triggered renewal rollover. Settling a cycle
// advances the renewal date by one calendar month measured from the stored
// date, records the cycle payment, and inserts the fixed recurring cost
// entry for the period that was settled.
type Service struct {
	subscriptionRepo subscription.Repository
	billingRepo      billing.Repository
	paymentRepo      billing.PaymentRepository
	costAmount       decimal.Decimal
	logger           *zap.Logger
}

// NewService creates a new renewal Service. costAmount is the fixed
// recurring cost charged on every settled cycle; zero disables the entry.
func NewService(
	subscriptionRepo subscription.Repository,
	billingRepo billing.Repository,
	paymentRepo billing.PaymentRepository,
	costAmount decimal.Decimal,
	logger *zap.Logger,
) *Service {
	return &Service{
		subscriptionRepo: subscriptionRepo,
		billingRepo:      billingRepo,
		paymentRepo:      paymentRepo,
		costAmount:       costAmount,
		logger:           logger,
	}
}

// SettleResult reports what one rollover produced. CostEntryError is set
// when the cycle settled but the recurring cost entry could not be booked;
// the caller has to re-enter that charge by hand.
type SettleResult struct {
	Subscription *subscription.Subscription `json:"subscription"`
	Payment      *billing.Payment           `json:"payment"`
	CostEntry    *billing.Billing           `json:"cost_entry,omitempty"`

	CostEntryError string `json:"cost_entry_error,omitempty"`
}

// Settle rolls one subscription forward by exactly one cycle. Lapsed cycles
// are caught up one call at a time: the advance is always relative to the
// stored renewal date, never to now.
func (s *Service) Settle(ctx context.Context, tenantID, subscriptionID, operatorID uuid.UUID) (*SettleResult, error) {
	sub, err := s.subscriptionRepo.FindByID(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}
	if sub.TenantID != tenantID {
		return nil, shared.ErrNotFound
	}
	if sub.OwnerCustomerID == nil {
		return nil, shared.NewDomainError("NO_OWNER", "Subscription has no owning customer to bill")
	}

	prior := *sub
	now := time.Now()
	settledCycle := sub.RenewalDate

	if err := sub.Settle(now); err != nil {
		return nil, err
	}
	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		return nil, err
	}

	payment, err := billing.NewPayment(tenantID, *sub.OwnerCustomerID, sub.ID,
		sub.MonthlyAmount, now, "renewal",
		"cycle "+billing.PeriodOf(settledCycle)+" settled")
	if err != nil {
		s.rollback(ctx, sub, &prior)
		return nil, err
	}
	payment.SetCreatedBy(operatorID)
	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		s.rollback(ctx, sub, &prior)
		return nil, err
	}

	result := &SettleResult{Subscription: sub, Payment: payment}

	// The renewal advance and the payment are already committed; a cost
	// entry failure must not masquerade as a failed settle. Surface it on
	// the result instead of unwinding a cycle that did settle.
	if s.costAmount.IsPositive() {
		cost, err := billing.NewBilling(tenantID, *sub.OwnerCustomerID, &sub.ID,
			s.costAmount, settledCycle, billing.KindCost, billing.SourceRenewal)
		if err == nil {
			cost.SetCreatedBy(operatorID)
			cost.Description = "recurring cost, cycle " + billing.PeriodOf(settledCycle)
			err = s.billingRepo.Save(ctx, cost)
		}
		if err != nil {
			s.logger.Error("cost entry not booked for settled cycle",
				zap.String("subscription_id", sub.ID.String()),
				zap.String("cycle", billing.PeriodOf(settledCycle)),
				zap.Error(err))
			result.CostEntryError = "cost entry for cycle " + billing.PeriodOf(settledCycle) +
				" was not booked: " + err.Error()
		} else {
			result.CostEntry = cost
		}
	}

	s.logger.Info("subscription cycle settled",
		zap.String("subscription_id", sub.ID.String()),
		zap.String("cycle", billing.PeriodOf(settledCycle)),
		zap.String("next_renewal", sub.RenewalDate.Format("2006-01-02")))

	return result, nil
}

// rollback restores the subscription after the payment write failed. Best
// effort, same pattern as the bulk-link compensation.
func (s *Service) rollback(ctx context.Context, sub, prior *subscription.Subscription) {
	*sub = *prior
	if err := s.subscriptionRepo.Save(ctx, sub); err != nil {
		s.logger.Error("failed to roll back renewal advance",
			zap.String("subscription_id", sub.ID.String()),
			zap.Error(err))
	}
}
