package handlers

import (
	"log"

	"belanja/internal/models"
	"belanja/internal/services"
	"belanja/pkg/pagination"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// BrandHandler handles HTTP requests for brands.
type BrandHandler struct {
	service  *services.BrandService
	validate *validator.Validate
}

// NewBrandHandler creates a new BrandHandler.
func NewBrandHandler(service *services.BrandService) *BrandHandler {
	return &BrandHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public brand routes.
func (h *BrandHandler) RegisterRoutes(router fiber.Router) {
	brandRoutes := router.Group("/brands")
	brandRoutes.Get("/", h.HandleGetBrands)
	brandRoutes.Get("/:id", h.HandleGetBrandByID)
}

// RegisterAdminRoutes registers the back-office brand routes.
func (h *BrandHandler) RegisterAdminRoutes(router fiber.Router) {
	brandRoutes := router.Group("/brands")
	brandRoutes.Post("/", h.HandleCreateBrand)
	brandRoutes.Patch("/:id", h.HandleUpdateBrand)
	brandRoutes.Delete("/:id", h.HandleDeleteBrand)
	brandRoutes.Post("/:id/restore", h.HandleRestoreBrand)
}

// HandleGetBrands lists brands.
func (h *BrandHandler) HandleGetBrands(c *fiber.Ctx) error {
	p := paginationParams(c)
	brands, total, err := h.service.GetAllBrands(p)
	if err != nil {
		log.Printf("Error getting brands: %v", err)
		return fail(c, err, "Could not retrieve brands")
	}
	return c.JSON(fiber.Map{
		"data":       brands,
		"pagination": pagination.NewMeta(total, p),
	})
}

// HandleGetBrandByID retrieves a single brand by its ID.
func (h *BrandHandler) HandleGetBrandByID(c *fiber.Ctx) error {
	brandID := c.Params("id")
	brand, err := h.service.GetBrandByID(brandID)
	if err != nil {
		log.Printf("Error getting brand by ID %s: %v", brandID, err)
		return fail(c, err, "Could not retrieve brand")
	}
	return c.JSON(brand)
}

// HandleCreateBrand creates a new brand.
func (h *BrandHandler) HandleCreateBrand(c *fiber.Ctx) error {
	var brand models.Brand
	if err := c.BodyParser(&brand); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(brand); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	if err := h.service.CreateBrand(&brand); err != nil {
		log.Printf("Error creating brand: %v", err)
		return fail(c, err, "Could not create brand")
	}
	return c.Status(fiber.StatusCreated).JSON(brand)
}

// HandleUpdateBrand renames an existing brand.
func (h *BrandHandler) HandleUpdateBrand(c *fiber.Ctx) error {
	var brand models.Brand
	if err := c.BodyParser(&brand); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	brand.ID = c.Params("id")
	if err := h.validate.Struct(brand); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	if err := h.service.UpdateBrand(&brand); err != nil {
		log.Printf("Error updating brand %s: %v", brand.ID, err)
		return fail(c, err, "Could not update brand")
	}
	return c.JSON(fiber.Map{
		"message": "Brand updated successfully",
		"data":    brand,
	})
}

// HandleDeleteBrand soft-deletes a brand.
func (h *BrandHandler) HandleDeleteBrand(c *fiber.Ctx) error {
	brandID := c.Params("id")
	if err := h.service.DeleteBrand(brandID); err != nil {
		log.Printf("Error deleting brand %s: %v", brandID, err)
		return fail(c, err, "Could not delete brand")
	}
	return c.JSON(fiber.Map{"message": "Brand deleted successfully"})
}

// HandleRestoreBrand reinstates a soft-deleted brand.
func (h *BrandHandler) HandleRestoreBrand(c *fiber.Ctx) error {
	brandID := c.Params("id")
	if err := h.service.RestoreBrand(brandID); err != nil {
		log.Printf("Error restoring brand %s: %v", brandID, err)
		return fail(c, err, "Could not restore brand")
	}
	return c.JSON(fiber.Map{"message": "Brand restored successfully"})
}
