package services

import (
	"belanja/internal/models"
	"belanja/internal/repositories"
	"belanja/pkg/pagination"
)

// BrandService handles business logic related to brands.
type BrandService struct {
	brandRepo repositories.BrandRepository
}

// NewBrandService creates a new BrandService.
func NewBrandService(brandRepo repositories.BrandRepository) *BrandService {
	return &BrandService{
		brandRepo: brandRepo,
	}
}

// GetAllBrands retrieves a page of brands.
func (s *BrandService) GetAllBrands(p pagination.Params) ([]models.Brand, int64, error) {
	return s.brandRepo.GetAll(p)
}

// GetBrandByID retrieves a single brand by its ID.
func (s *BrandService) GetBrandByID(id string) (*models.Brand, error) {
	return s.brandRepo.GetByID(id)
}

// CreateBrand creates a new brand.
func (s *BrandService) CreateBrand(brand *models.Brand) error {
	return s.brandRepo.Create(brand)
}

// UpdateBrand renames an existing brand.
func (s *BrandService) UpdateBrand(brand *models.Brand) error {
	return s.brandRepo.Update(brand)
}

// DeleteBrand soft-deletes a brand by its ID.
func (s *BrandService) DeleteBrand(id string) error {
	return s.brandRepo.Delete(id)
}

// RestoreBrand reinstates a soft-deleted brand.
func (s *BrandService) RestoreBrand(id string) error {
	return s.brandRepo.Restore(id)
}
