package handlers

import (
	"log"

	"belanja/internal/models"
	"belanja/internal/repositories"
	"belanja/internal/services"
	"belanja/pkg/pagination"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public storefront routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetAvailableProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
}

// RegisterAdminRoutes registers the back-office routes. The router is
// expected to carry the admin middleware.
func (h *ProductHandler) RegisterAdminRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetAllProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Patch("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
	productRoutes.Post("/:id/restore", h.HandleRestoreProduct)
}

func productFilter(c *fiber.Ctx) repositories.ProductFilter {
	filter := repositories.ProductFilter{
		BrandID:  c.Query("brand_id"),
		Category: c.Query("category"),
	}
	if c.Query("is_featured") != "" {
		featured := c.QueryBool("is_featured")
		filter.Featured = &featured
	}
	return filter
}

// HandleGetAvailableProducts lists purchasable products for the storefront.
func (h *ProductHandler) HandleGetAvailableProducts(c *fiber.Ctx) error {
	p := paginationParams(c)
	products, total, err := h.service.GetAvailableProducts(productFilter(c), p)
	if err != nil {
		log.Printf("Error getting available products: %v", err)
		return fail(c, err, "Could not retrieve products")
	}
	return c.JSON(fiber.Map{
		"data":       products,
		"pagination": pagination.NewMeta(total, p),
	})
}

// HandleGetAllProducts lists all products for the back office, including
// archived ones.
func (h *ProductHandler) HandleGetAllProducts(c *fiber.Ctx) error {
	p := paginationParams(c)
	products, total, err := h.service.GetAllProducts(productFilter(c), p)
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return fail(c, err, "Could not retrieve products")
	}
	return c.JSON(fiber.Map{
		"data":       products,
		"pagination": pagination.NewMeta(total, p),
	})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProductByID(productID)
	if err != nil {
		log.Printf("Error getting product by ID %s: %v", productID, err)
		return fail(c, err, "Could not retrieve product")
	}
	return c.JSON(product)
}

// HandleCreateProduct creates a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	if err := h.service.CreateProduct(&product); err != nil {
		log.Printf("Error creating product: %v", err)
		return fail(c, err, "Could not create product")
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct updates an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product.ID = c.Params("id")
	if err := h.validate.Struct(product); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	if err := h.service.UpdateProduct(&product); err != nil {
		log.Printf("Error updating product %s: %v", product.ID, err)
		return fail(c, err, "Could not update product")
	}
	return c.JSON(fiber.Map{
		"message": "Product updated successfully",
		"data":    product,
	})
}

// HandleDeleteProduct soft-deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.service.DeleteProduct(productID); err != nil {
		log.Printf("Error deleting product %s: %v", productID, err)
		return fail(c, err, "Could not delete product")
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

// HandleRestoreProduct reinstates a soft-deleted product.
func (h *ProductHandler) HandleRestoreProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.service.RestoreProduct(productID); err != nil {
		log.Printf("Error restoring product %s: %v", productID, err)
		return fail(c, err, "Could not restore product")
	}
	return c.JSON(fiber.Map{"message": "Product restored successfully"})
}
