package services

import (
	"belanja/internal/models"
	"belanja/internal/repositories"
	"belanja/pkg/pagination"
)

// ProductService handles business logic related to the product catalog.
type ProductService struct {
	productRepo repositories.ProductRepository
	brandRepo   repositories.BrandRepository
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo repositories.ProductRepository, brandRepo repositories.BrandRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		brandRepo:   brandRepo,
	}
}

// GetAvailableProducts retrieves a page of purchasable products (storefront
// view: archived products are excluded).
func (s *ProductService) GetAvailableProducts(filter repositories.ProductFilter, p pagination.Params) ([]models.Product, int64, error) {
	filter.AvailableOnly = true
	return s.productRepo.GetAll(filter, p)
}

// GetAllProducts retrieves a page of products without availability filtering
// (back-office view).
func (s *ProductService) GetAllProducts(filter repositories.ProductFilter, p pagination.Params) ([]models.Product, int64, error) {
	return s.productRepo.GetAll(filter, p)
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// CreateProduct creates a new product after checking its brand exists. The
// archived flag is derived from the initial stock.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if _, err := s.brandRepo.GetByID(product.BrandID); err != nil {
		return err
	}
	product.DeriveArchived()
	return s.productRepo.Create(product)
}

// UpdateProduct updates an existing product, re-deriving the archived flag
// from whatever stock count the update carries.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if product.BrandID != "" {
		if _, err := s.brandRepo.GetByID(product.BrandID); err != nil {
			return err
		}
	}
	product.DeriveArchived()
	return s.productRepo.Update(product)
}

// DeleteProduct soft-deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	return s.productRepo.Delete(id)
}

// RestoreProduct reinstates a soft-deleted product.
func (s *ProductService) RestoreProduct(id string) error {
	return s.productRepo.Restore(id)
}
