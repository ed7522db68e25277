package customer

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sattv/backend/internal/domain/shared"
)

// Status represents the status of a customer
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Customer represents a subscriber of the reseller.
// It is the aggregate root for customer-related operations.
type Customer struct {
	shared.TenantAggregateRoot
	Code         string `gorm:"type:varchar(50);not null;uniqueIndex:idx_customer_tenant_code,priority:2"`
	Name         string `gorm:"type:varchar(200);not null;index"`
	Neighborhood string `gorm:"type:varchar(100);index"` // bairro, weak secondary identity signal
	Phone        string `gorm:"type:varchar(50);index"`
	Whatsapp     string `gorm:"type:varchar(50)"`
	Address      string `gorm:"type:text"`
	Status       Status `gorm:"type:varchar(20);not null;default:'active'"`
	Notes        string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Customer) TableName() string {
	return "customers"
}

// NewCustomer creates a new customer with required fields
func NewCustomer(tenantID uuid.UUID, code, name, neighborhood string) (*Customer, error) {
	if err := validateCode(code); err != nil {
		return nil, err
	}
	if err := validateName(name); err != nil {
		return nil, err
	}
	if len(neighborhood) > 100 {
		return nil, shared.NewDomainError("INVALID_NEIGHBORHOOD", "Neighborhood cannot exceed 100 characters")
	}

	return &Customer{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Code:                strings.ToUpper(code),
		Name:                name,
		Neighborhood:        neighborhood,
		Status:              StatusActive,
	}, nil
}

// Update updates the customer's basic information
func (c *Customer) Update(name, neighborhood string) error {
	if err := validateName(name); err != nil {
		return err
	}
	if len(neighborhood) > 100 {
		return shared.NewDomainError("INVALID_NEIGHBORHOOD", "Neighborhood cannot exceed 100 characters")
	}

	c.Name = name
	c.Neighborhood = neighborhood
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetContact sets the customer's contact information
func (c *Customer) SetContact(phone, whatsapp, address string) error {
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if whatsapp != "" {
		if err := validatePhone(whatsapp); err != nil {
			return err
		}
	}
	if len(address) > 500 {
		return shared.NewDomainError("INVALID_ADDRESS", "Address cannot exceed 500 characters")
	}

	c.Phone = phone
	c.Whatsapp = whatsapp
	c.Address = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetNotes sets the customer's notes
func (c *Customer) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Activate activates the customer
func (c *Customer) Activate() error {
	if c.Status == StatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Customer is already active")
	}

	c.Status = StatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// Deactivate deactivates the customer
func (c *Customer) Deactivate() error {
	if c.Status == StatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Customer is already inactive")
	}

	c.Status = StatusInactive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IsActive returns true if the customer is active
func (c *Customer) IsActive() bool {
	return c.Status == StatusActive
}

// Validation functions

func validateCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Customer code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Customer code cannot exceed 50 characters")
	}
	for _, r := range code {
		if !((r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '-') {
			return shared.NewDomainError("INVALID_CODE", "Customer code can only contain letters, numbers, underscores, and hyphens")
		}
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}

var validPhone = regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}
