package bulklink

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sattv/backend/internal/domain/billing"
	"github.com/sattv/backend/internal/domain/customer"
	"github.com/sattv/backend/internal/domain/equipment"
	"github.com/sattv/backend/internal/domain/shared"
	"github.com/sattv/backend/internal/domain/subscription"
	"github.com/sattv/backend/internal/infrastructure/recordtext"
	"go.uber.org/zap"
)

// Input formats accepted by ParseRequest
const (
	FormatLabeled        = "labeled"
	FormatNameLoginNDS   = "name_login_nds"
	FormatNameHoodCharge = "name_neighborhood_charge"
)

// ParseRequest describes one blob of pasted text plus the batch defaults
// applied where the grammar carries no billing fields.
type ParseRequest struct {
	Text              string
	Format            string
	DefaultAmount     string
	DefaultDueDay     int
	DefaultChargeType string
}

// RunRequest is a ParseRequest plus run tuning
type RunRequest struct {
	ParseRequest
	Delay time.Duration
	// MaxRecords caps the batch size. Zero means no cap.
	MaxRecords int
	OnProgress ProgressFunc
}

// Service is the application facade for bulk linkage: it parses pasted
// text into candidate records, builds a per-run snapshot, and drives the
// batch runner over it.
type Service struct {
	customerRepo     customer.Repository
	equipmentRepo    equipment.Repository
	subscriptionRepo subscription.Repository
	runner           *Runner
	logger           *zap.Logger
}

// NewService creates a new bulk linkage Service
func NewService(
	customerRepo customer.Repository,
	equipmentRepo equipment.Repository,
	subscriptionRepo subscription.Repository,
	billingRepo billing.Repository,
	logger *zap.Logger,
) *Service {
	linkage := NewLinkageService(equipmentRepo, billingRepo, logger)
	return &Service{
		customerRepo:     customerRepo,
		equipmentRepo:    equipmentRepo,
		subscriptionRepo: subscriptionRepo,
		runner:           NewRunner(linkage, logger),
		logger:           logger,
	}
}

// Parse turns pasted text into candidate records without touching storage.
// Used by the dry-run endpoint so operators can inspect what a run would do.
func (s *Service) Parse(req ParseRequest, now time.Time) ([]recordtext.CandidateRecord, error) {
	defaults, err := buildDefaults(req, now)
	if err != nil {
		return nil, err
	}

	switch req.Format {
	case FormatLabeled, "":
		return recordtext.ParseLabeled(req.Text, defaults), nil
	case FormatNameLoginNDS:
		return recordtext.ParsePositional(req.Text, recordtext.LayoutNameLoginEquipment, defaults, now), nil
	case FormatNameHoodCharge:
		return recordtext.ParsePositional(req.Text, recordtext.LayoutNameNeighborhoodCharge, defaults, now), nil
	default:
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code,
			fmt.Sprintf("unknown input format %q", req.Format))
	}
}

// Run parses the text and executes the batch for a tenant. The snapshot is
// built once, before the first record, and the same snapshot serves the
// whole run.
func (s *Service) Run(ctx context.Context, tenantID, operatorID uuid.UUID, req RunRequest) (*Result, error) {
	now := time.Now()
	records, err := s.Parse(req.ParseRequest, now)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code, "no usable records in input")
	}
	if req.MaxRecords > 0 && len(records) > req.MaxRecords {
		return nil, shared.NewDomainError(shared.ErrInvalidInput.Code,
			fmt.Sprintf("input has %d records, the limit per run is %d", len(records), req.MaxRecords))
	}

	snap, err := BuildSnapshot(ctx, tenantID, s.customerRepo, s.equipmentRepo, s.subscriptionRepo)
	if err != nil {
		return nil, fmt.Errorf("building snapshot: %w", err)
	}

	s.logger.Info("starting bulk linkage run",
		zap.String("tenant_id", tenantID.String()),
		zap.Int("records", len(records)),
		zap.Duration("delay", req.Delay))

	result, runErr := s.runner.Run(ctx, snap, operatorID, records, RunnerOptions{
		Delay:      req.Delay,
		OnProgress: req.OnProgress,
	})

	s.logger.Info("bulk linkage run finished",
		zap.Int("total", result.Total),
		zap.Int("succeeded", result.Succeeded),
		zap.Int("failed", result.Failed),
		zap.Bool("cancelled", runErr != nil))

	return result, runErr
}

func buildDefaults(req ParseRequest, now time.Time) (recordtext.Defaults, error) {
	var defaults recordtext.Defaults
	if req.DefaultAmount != "" {
		amount, ok := recordtext.ParseAmount(req.DefaultAmount)
		if !ok {
			return defaults, shared.NewDomainError(shared.ErrInvalidInput.Code,
				"invalid default amount: "+req.DefaultAmount)
		}
		defaults.Amount = amount
	}
	if req.DefaultDueDay > 0 {
		due, ok := recordtext.DueDateFromDay(req.DefaultDueDay, now)
		if !ok {
			return defaults, shared.NewDomainError(shared.ErrInvalidInput.Code,
				fmt.Sprintf("invalid default due day: %d", req.DefaultDueDay))
		}
		defaults.DueDate = due
	}
	defaults.ChargeType = req.DefaultChargeType
	return defaults, nil
}
