package repositories

import (
	"fmt"

	"belanja/internal/models"
	"belanja/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var brandSortColumns = map[string]string{
	"name":         "name",
	"date_created": "created_at",
}

// GORMBrandRepository is a GORM implementation of BrandRepository.
type GORMBrandRepository struct {
	db *gorm.DB
}

// NewGORMBrandRepository creates a new instance of GORMBrandRepository.
func NewGORMBrandRepository(db *gorm.DB) *GORMBrandRepository {
	return &GORMBrandRepository{
		db: db,
	}
}

// GetAll retrieves a page of brands.
func (r *GORMBrandRepository) GetAll(p pagination.Params) ([]models.Brand, int64, error) {
	query := r.db.Model(&models.Brand{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count brands: %w", err)
	}

	if clause := p.OrderClause(brandSortColumns); clause != "" {
		query = query.Order(clause)
	}

	_, limit := p.Normalize()
	var brands []models.Brand
	if err := query.Offset(p.Offset()).Limit(limit).Find(&brands).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get brands: %w", err)
	}
	return brands, total, nil
}

// GetByID retrieves a single brand by its ID.
func (r *GORMBrandRepository) GetByID(id string) (*models.Brand, error) {
	var brand models.Brand
	if err := r.db.First(&brand, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("brand with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get brand by ID %s: %w", id, err)
	}
	return &brand, nil
}

// Create creates a new brand in the database.
func (r *GORMBrandRepository) Create(brand *models.Brand) error {
	if brand.ID == "" {
		brand.ID = uuid.New().String()
	}
	if err := r.db.Create(brand).Error; err != nil {
		return fmt.Errorf("failed to create brand: %w", err)
	}
	return nil
}

// Update updates an existing brand.
func (r *GORMBrandRepository) Update(brand *models.Brand) error {
	res := r.db.Model(brand).Update("name", brand.Name)
	if res.Error != nil {
		return fmt.Errorf("failed to update brand: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("brand with ID %s not found for update: %w", brand.ID, ErrNotFound)
	}
	return nil
}

// Delete soft-deletes a brand by its ID.
func (r *GORMBrandRepository) Delete(id string) error {
	res := r.db.Delete(&models.Brand{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete brand: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("brand with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// Restore clears the soft-delete flag on a brand.
func (r *GORMBrandRepository) Restore(id string) error {
	res := r.db.Unscoped().Model(&models.Brand{}).Where("id = ? AND deleted_at IS NOT NULL", id).Update("deleted_at", nil)
	if res.Error != nil {
		return fmt.Errorf("failed to restore brand: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("deleted brand with ID %s not found for restore: %w", id, ErrNotFound)
	}
	return nil
}
