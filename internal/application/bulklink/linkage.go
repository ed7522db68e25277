package bulklink

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sattv/backend/internal/domain/billing"
	"github.com/sattv/backend/internal/domain/equipment"
	"github.com/sattv/backend/internal/domain/matching"
	"github.com/sattv/backend/internal/domain/shared"
	"github.com/sattv/backend/internal/infrastructure/recordtext"
	"go.uber.org/zap"
)

// LinkageService performs the ordered writes that establish one
// customer-decoder-subscription linkage plus its recurring billing entry.
// The storage layer offers no multi-document transaction, so the billing
// insert failure path compensates by restoring the decoder's prior state.
type LinkageService struct {
	equipmentRepo EquipmentWriter
	billingRepo   billing.Repository
	logger        *zap.Logger
}

// EquipmentWriter is the slice of the equipment repository the linkage needs
type EquipmentWriter interface {
	Save(ctx context.Context, eq *equipment.Equipment) error
}

// NewLinkageService creates a new LinkageService
func NewLinkageService(equipmentRepo EquipmentWriter, billingRepo billing.Repository, logger *zap.Logger) *LinkageService {
	return &LinkageService{
		equipmentRepo: equipmentRepo,
		billingRepo:   billingRepo,
		logger:        logger,
	}
}

// Link applies one resolved candidate. It never returns an error for
// per-record storage failures; those become failed outcomes so the batch
// can continue.
func (s *LinkageService) Link(ctx context.Context, operatorID uuid.UUID, res *Resolution, rec recordtext.CandidateRecord) Outcome {
	var subscriptionID *uuid.UUID
	if res.Subscription != nil {
		subscriptionID = &res.Subscription.ID
	}

	var prior *equipment.Equipment
	if res.Equipment != nil {
		snapshot := *res.Equipment
		prior = &snapshot

		if err := res.Equipment.AssignTo(res.Customer.ID, subscriptionID); err != nil {
			return failureOutcome(rec, CodeLinkageError, "equipment update rejected: "+err.Error())
		}
		if err := s.equipmentRepo.Save(ctx, res.Equipment); err != nil {
			return failureOutcome(rec, CodeLinkageError, "equipment update failed: "+err.Error())
		}
	}

	period := billing.PeriodOf(rec.DueDate)
	existing, err := s.billingRepo.FindByCustomerAndPeriod(ctx, res.Customer.TenantID, res.Customer.ID, period)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		s.compensate(ctx, res, prior)
		return failureOutcome(rec, CodeLinkageError, "billing lookup failed: "+err.Error())
	}
	if existing != nil {
		return successOutcome(rec, CodeDuplicateBillingSkip,
			fmt.Sprintf("%s: linked; billing already present for period %s", res.Customer.Name, period))
	}

	entry, err := billing.NewBilling(res.Customer.TenantID, res.Customer.ID, subscriptionID,
		rec.Amount, rec.DueDate, chargeKind(rec.ChargeType), billing.SourceBulkLink)
	if err != nil {
		s.compensate(ctx, res, prior)
		return failureOutcome(rec, CodeLinkageError, "billing rejected: "+err.Error())
	}
	entry.SetCreatedBy(operatorID)
	entry.Description = describeCharge(rec)

	if err := s.billingRepo.Save(ctx, entry); err != nil {
		s.compensate(ctx, res, prior)
		return failureOutcome(rec, CodeLinkageError, "billing insert failed: "+err.Error())
	}

	return successOutcome(rec, CodeLinked, summarize(res, rec, period))
}

// compensate undoes the equipment update after a later write failed. Best
// effort: a failure here is logged and the record still reports LinkageError.
func (s *LinkageService) compensate(ctx context.Context, res *Resolution, prior *equipment.Equipment) {
	if prior == nil || res.Equipment == nil {
		return
	}
	*res.Equipment = *prior
	if err := s.equipmentRepo.Save(ctx, res.Equipment); err != nil {
		s.logger.Error("failed to roll back equipment update",
			zap.String("serial", res.Equipment.SerialNumber),
			zap.Error(err))
	}
}

func summarize(res *Resolution, rec recordtext.CandidateRecord, period string) string {
	msg := fmt.Sprintf("%s linked", res.Customer.Name)
	if res.Equipment != nil {
		msg += " to decoder " + res.Equipment.SerialNumber
	}
	if res.Subscription != nil {
		msg += " (plan " + res.Subscription.Code + ")"
	}
	return fmt.Sprintf("%s; billing %s for %s", msg, rec.Amount.StringFixed(2), period)
}

func describeCharge(rec recordtext.CandidateRecord) string {
	if rec.ChargeType == "" {
		return "bulk linkage"
	}
	return "bulk linkage: " + rec.ChargeType
}

// chargeKind maps the free-text charge type customers write to a billing kind
func chargeKind(chargeType string) billing.Kind {
	switch matching.Normalize(chargeType) {
	case "mensalidade", "renovacao", "renewal":
		return billing.KindRenewal
	case "custo", "cost":
		return billing.KindCost
	default:
		return billing.KindRental
	}
}
