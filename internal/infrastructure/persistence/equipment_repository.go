package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sattv/backend/internal/domain/equipment"
	"github.com/sattv/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormEquipmentRepository implements equipment.Repository using GORM
type GormEquipmentRepository struct {
	db *gorm.DB
}

// NewGormEquipmentRepository creates a new GormEquipmentRepository
func NewGormEquipmentRepository(db *gorm.DB) *GormEquipmentRepository {
	return &GormEquipmentRepository{db: db}
}

// FindByID finds a decoder by its ID
func (r *GormEquipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*equipment.Equipment, error) {
	var eq equipment.Equipment
	if err := r.db.WithContext(ctx).First(&eq, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &eq, nil
}

// FindBySerial finds a decoder by serial number within a tenant
func (r *GormEquipmentRepository) FindBySerial(ctx context.Context, tenantID uuid.UUID, serial string) (*equipment.Equipment, error) {
	var eq equipment.Equipment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND LOWER(serial_number) = ?", tenantID, normalizeKey(serial)).
		First(&eq).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &eq, nil
}

// FindByAnyKey finds a decoder whose serial number, smart card, or asset id
// equals code. Returns shared.ErrNotFound when no key matches.
func (r *GormEquipmentRepository) FindByAnyKey(ctx context.Context, tenantID uuid.UUID, code string) (*equipment.Equipment, error) {
	key := normalizeKey(code)
	if key == "" {
		return nil, shared.ErrNotFound
	}

	var eq equipment.Equipment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where("LOWER(serial_number) = ? OR LOWER(smart_card) = ? OR LOWER(asset_id) = ?", key, key, key).
		First(&eq).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &eq, nil
}

// FindAllForTenant finds all decoders for a tenant
func (r *GormEquipmentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]equipment.Equipment, error) {
	var items []equipment.Equipment
	query := applyFilterWithFields(
		r.db.WithContext(ctx).Model(&equipment.Equipment{}).
			Where("tenant_id = ?", tenantID),
		filter,
		EquipmentSortFields,
	)
	if filter.Search != "" {
		query = query.Where("serial_number ILIKE ?", "%"+filter.Search+"%")
	}

	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByStatus finds decoders by rental status for a tenant
func (r *GormEquipmentRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status equipment.Status) ([]equipment.Equipment, error) {
	var items []equipment.Equipment
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status = ?", tenantID, status).
		Order("serial_number ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates a decoder
func (r *GormEquipmentRepository) Save(ctx context.Context, eq *equipment.Equipment) error {
	return r.db.WithContext(ctx).Save(eq).Error
}

// CountForTenant counts decoders for a tenant
func (r *GormEquipmentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&equipment.Equipment{}).
		Where("tenant_id = ?", tenantID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func normalizeKey(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
