package equipment

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sattv/backend/internal/domain/shared"
)

// Status represents the rental status of a decoder
type Status string

const (
	StatusAvailable Status = "available"
	StatusRented    Status = "rented"
)

// Equipment represents a physical satellite/TV-box decoder.
// Invariant: Status == rented if and only if CurrentCustomerID is set.
type Equipment struct {
	shared.TenantAggregateRoot
	SerialNumber          string     `gorm:"type:varchar(100);not null;uniqueIndex:idx_equipment_tenant_serial,priority:2"` // NDS / decoder id
	SmartCard             string     `gorm:"type:varchar(100);index"`                                                       // conditional-access card
	AssetID               string     `gorm:"type:varchar(100);index"`                                                       // internal asset tag
	Model                 string     `gorm:"type:varchar(100)"`
	CurrentCustomerID     *uuid.UUID `gorm:"type:uuid;index"`
	CurrentSubscriptionID *uuid.UUID `gorm:"type:uuid;index"`
	Status                Status     `gorm:"type:varchar(20);not null;default:'available'"`
}

// TableName returns the table name for GORM
func (Equipment) TableName() string {
	return "equipment"
}

// NewEquipment creates a new decoder record
func NewEquipment(tenantID uuid.UUID, serialNumber, smartCard, assetID, model string) (*Equipment, error) {
	serialNumber = strings.TrimSpace(serialNumber)
	if serialNumber == "" {
		return nil, shared.NewDomainError("INVALID_SERIAL", "Serial number cannot be empty")
	}
	if len(serialNumber) > 100 {
		return nil, shared.NewDomainError("INVALID_SERIAL", "Serial number cannot exceed 100 characters")
	}

	return &Equipment{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		SerialNumber:        serialNumber,
		SmartCard:           strings.TrimSpace(smartCard),
		AssetID:             strings.TrimSpace(assetID),
		Model:               model,
		Status:              StatusAvailable,
	}, nil
}

// AssignTo links the decoder to a customer and optional subscription and marks
// it rented. Re-applying the same assignment is a no-op success.
func (e *Equipment) AssignTo(customerID uuid.UUID, subscriptionID *uuid.UUID) error {
	if customerID == uuid.Nil {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}

	if e.isAssignedTo(customerID, subscriptionID) {
		return nil
	}

	e.CurrentCustomerID = &customerID
	e.CurrentSubscriptionID = subscriptionID
	e.Status = StatusRented
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

func (e *Equipment) isAssignedTo(customerID uuid.UUID, subscriptionID *uuid.UUID) bool {
	if e.Status != StatusRented || e.CurrentCustomerID == nil || *e.CurrentCustomerID != customerID {
		return false
	}
	if subscriptionID == nil {
		return e.CurrentSubscriptionID == nil
	}
	return e.CurrentSubscriptionID != nil && *e.CurrentSubscriptionID == *subscriptionID
}

// Release detaches the decoder from its customer and marks it available
func (e *Equipment) Release() error {
	if e.Status == StatusAvailable {
		return shared.NewDomainError("ALREADY_AVAILABLE", "Equipment is not rented")
	}

	e.CurrentCustomerID = nil
	e.CurrentSubscriptionID = nil
	e.Status = StatusAvailable
	e.UpdatedAt = time.Now()
	e.IncrementVersion()

	return nil
}

// IsRented returns true if the decoder is linked to a customer
func (e *Equipment) IsRented() bool {
	return e.Status == StatusRented
}

// MatchesKey reports whether code equals any of the decoder's three lookup
// keys: serial number, smart card, or asset id.
func (e *Equipment) MatchesKey(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}
	return strings.EqualFold(e.SerialNumber, code) ||
		(e.SmartCard != "" && strings.EqualFold(e.SmartCard, code)) ||
		(e.AssetID != "" && strings.EqualFold(e.AssetID, code))
}
