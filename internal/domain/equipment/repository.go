package equipment

import (
	"context"

	"github.com/google/uuid"
	"github.com/sattv/backend/internal/domain/shared"
)

// Repository defines the interface for equipment persistence
type Repository interface {
	// FindByID finds a decoder by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Equipment, error)

	// FindBySerial finds a decoder by serial number within a tenant
	FindBySerial(ctx context.Context, tenantID uuid.UUID, serial string) (*Equipment, error)

	// FindByAnyKey finds a decoder whose serial number, smart card, or asset id
	// equals code. Returns shared.ErrNotFound when no key matches.
	FindByAnyKey(ctx context.Context, tenantID uuid.UUID, code string) (*Equipment, error)

	// FindAllForTenant finds all decoders for a tenant
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Equipment, error)

	// FindByStatus finds decoders by rental status for a tenant
	FindByStatus(ctx context.Context, tenantID uuid.UUID, status Status) ([]Equipment, error)

	// Save creates or updates a decoder
	Save(ctx context.Context, eq *Equipment) error

	// CountForTenant counts decoders for a tenant
	CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)
}
