package bulklink

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sattv/backend/internal/domain/customer"
	"github.com/sattv/backend/internal/domain/equipment"
	"github.com/sattv/backend/internal/domain/shared"
	"github.com/sattv/backend/internal/infrastructure/recordtext"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func candidate(name, neighborhood, equipmentCode string) recordtext.CandidateRecord {
	return recordtext.CandidateRecord{
		Name:          name,
		Neighborhood:  neighborhood,
		EquipmentCode: equipmentCode,
		Amount:        decimal.NewFromInt(45),
		DueDate:       time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		Raw:           name,
	}
}

func newRunnerFixture(t *testing.T, tenantID uuid.UUID, customers []customer.Customer, available []equipment.Equipment) (*Runner, *Snapshot, *MockBillingRepository) {
	t.Helper()
	snap := testSnapshot(t, tenantID, customers, available, nil, nil)

	equipmentRepo := new(MockEquipmentRepository)
	equipmentRepo.On("Save", mock.Anything, mock.AnythingOfType("*equipment.Equipment")).Return(nil)

	billingRepo := new(MockBillingRepository)

	runner := NewRunner(NewLinkageService(equipmentRepo, billingRepo, zap.NewNop()), zap.NewNop())
	return runner, snap, billingRepo
}

func TestRunner_Run(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	operatorID := uuid.New()

	customers := []customer.Customer{
		mustCustomer(t, tenantID, "C001", "João da Silva", "Guamá"),
		mustCustomer(t, tenantID, "C002", "Maria José", "Icoaraci"),
	}
	available := []equipment.Equipment{
		mustEquipment(t, tenantID, "NDS123", "", ""),
		mustEquipment(t, tenantID, "NDS456", "", ""),
	}

	t.Run("failures do not stop the batch and counts add up", func(t *testing.T) {
		runner, snap, billingRepo := newRunnerFixture(t, tenantID, customers, available)
		billingRepo.On("FindByCustomerAndPeriod", mock.Anything, tenantID, mock.Anything, "2025-03").
			Return(nil, shared.ErrNotFound)
		billingRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Billing")).Return(nil)

		records := []recordtext.CandidateRecord{
			candidate("João da Silva", "Guamá", "NDS123"),
			candidate("Maria José", "Icoaraci", "NDS999"), // no such decoder
			candidate("Maria José", "Icoaraci", "NDS456"),
		}

		result, err := runner.Run(ctx, snap, operatorID, records, RunnerOptions{})

		require.NoError(t, err)
		assert.Equal(t, 3, result.Total)
		assert.Equal(t, 2, result.Succeeded)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, result.Total, result.Succeeded+result.Failed)
		assert.Equal(t, CodeEquipmentNotFound, result.Outcomes[1].Code)
		assert.Len(t, result.Outcomes, 3)
	})

	t.Run("progress is reported after every record", func(t *testing.T) {
		runner, snap, billingRepo := newRunnerFixture(t, tenantID, customers, available)
		billingRepo.On("FindByCustomerAndPeriod", mock.Anything, tenantID, mock.Anything, "2025-03").
			Return(nil, shared.ErrNotFound)
		billingRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Billing")).Return(nil)

		records := []recordtext.CandidateRecord{
			candidate("João da Silva", "Guamá", "NDS123"),
			candidate("Maria José", "Icoaraci", "NDS456"),
		}

		var seen [][2]int
		_, err := runner.Run(ctx, snap, operatorID, records, RunnerOptions{
			OnProgress: func(completed, total int) {
				seen = append(seen, [2]int{completed, total})
			},
		})

		require.NoError(t, err)
		assert.Equal(t, [][2]int{{1, 2}, {2, 2}}, seen)
	})

	t.Run("cancellation between records keeps completed outcomes", func(t *testing.T) {
		runner, snap, billingRepo := newRunnerFixture(t, tenantID, customers, available)
		billingRepo.On("FindByCustomerAndPeriod", mock.Anything, tenantID, mock.Anything, "2025-03").
			Return(nil, shared.ErrNotFound)
		billingRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Billing")).Return(nil)

		runCtx, cancel := context.WithCancel(ctx)
		records := []recordtext.CandidateRecord{
			candidate("João da Silva", "Guamá", "NDS123"),
			candidate("Maria José", "Icoaraci", "NDS456"),
		}

		result, err := runner.Run(runCtx, snap, operatorID, records, RunnerOptions{
			Delay: 50 * time.Millisecond,
			OnProgress: func(completed, total int) {
				if completed == 1 {
					cancel()
				}
			},
		})

		require.ErrorIs(t, err, context.Canceled)
		assert.Len(t, result.Outcomes, 1)
		assert.Equal(t, 1, result.Succeeded)
	})

	t.Run("already-cancelled context processes nothing", func(t *testing.T) {
		runner, snap, _ := newRunnerFixture(t, tenantID, customers, available)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		result, err := runner.Run(cancelled, snap, operatorID,
			[]recordtext.CandidateRecord{candidate("João da Silva", "Guamá", "NDS123")},
			RunnerOptions{})

		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, result.Outcomes)
	})
}
