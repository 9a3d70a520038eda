package repositories

import (
	"fmt"

	"belanja/internal/models"
	"belanja/pkg/pagination"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// productSortColumns maps API sort keys to product table columns.
var productSortColumns = map[string]string{
	"name":         "name",
	"price":        "price",
	"date_created": "created_at",
	"date_updated": "updated_at",
}

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves a page of products matching the filter.
func (r *GORMProductRepository) GetAll(filter ProductFilter, p pagination.Params) ([]models.Product, int64, error) {
	query := r.db.Model(&models.Product{})

	if filter.AvailableOnly {
		query = query.Where("is_archived = ?", false)
	}
	if filter.BrandID != "" {
		query = query.Where("brand_id = ?", filter.BrandID)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	if clause := p.OrderClause(productSortColumns); clause != "" {
		query = query.Order(clause)
	}

	_, limit := p.Normalize()
	var products []models.Product
	if err := query.Preload("Brand").Offset(p.Offset()).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get products: %w", err)
	}
	return products, total, nil
}

// GetByID retrieves a single product by its ID, excluding soft-deleted ones.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Brand").First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// GetByIDUnscoped retrieves a product even if it has been soft-deleted.
func (r *GORMProductRepository) GetByIDUnscoped(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Unscoped().First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if err := r.db.Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update updates an existing product in the database.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Model(product).Select("*").Omit("id", "created_at", "deleted_at").Updates(product)
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for update: %w", product.ID, ErrNotFound)
	}
	return nil
}

// Delete soft-deletes a product by its ID.
func (r *GORMProductRepository) Delete(id string) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// Restore clears the soft-delete flag on a product.
func (r *GORMProductRepository) Restore(id string) error {
	res := r.db.Unscoped().Model(&models.Product{}).Where("id = ? AND deleted_at IS NOT NULL", id).Update("deleted_at", nil)
	if res.Error != nil {
		return fmt.Errorf("failed to restore product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("deleted product with ID %s not found for restore: %w", id, ErrNotFound)
	}
	return nil
}

// DecrementStock performs the conditional decrement-if-sufficient write that
// closes the read-validate-write race under concurrent checkout. The archived
// flag is derived in the same statement so the invariant cannot be observed
// broken between two updates.
func (r *GORMProductRepository) DecrementStock(id string, quantity int) (bool, error) {
	res := r.db.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Updates(map[string]interface{}{
			"stock":       gorm.Expr("stock - ?", quantity),
			"is_archived": gorm.Expr("stock - ? <= 0", quantity),
		})
	if res.Error != nil {
		return false, fmt.Errorf("failed to decrement stock for product %s: %w", id, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// IncrementStock returns quantity units to a product's stock, clearing the
// archived flag whenever the resulting stock is above zero.
func (r *GORMProductRepository) IncrementStock(id string, quantity int) error {
	res := r.db.Model(&models.Product{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"stock":       gorm.Expr("stock + ?", quantity),
			"is_archived": gorm.Expr("stock + ? <= 0", quantity),
		})
	if res.Error != nil {
		return fmt.Errorf("failed to increment stock for product %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %s not found for restock: %w", id, ErrNotFound)
	}
	return nil
}
