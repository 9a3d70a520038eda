package models

import "gorm.io/gorm"

// ProductCategories lists the accepted product categories.
var ProductCategories = []string{
	"smartphones",
	"tablets",
	"laptops",
	"headphones",
	"speakers",
	"smartwatches",
	"gaming-consoles",
}

// Product represents a product in the store. IsArchived is derived from the
// stock count and must never be written directly; every stock-mutating path
// goes through DeriveArchived or the equivalent SQL expression in the
// repository's conditional updates.
type Product struct {
	ID          string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string  `json:"name" validate:"required,min=3,max=100"`
	BrandID     string  `json:"brand_id" gorm:"index;type:varchar(36)" validate:"required,uuid"`
	Brand       *Brand  `json:"brand,omitempty" gorm:"foreignKey:BrandID"`
	Description string  `json:"description" validate:"omitempty,max=500"`
	Category    string  `json:"category" gorm:"type:varchar(30)" validate:"required,oneof=smartphones tablets laptops headphones speakers smartwatches gaming-consoles"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	IsFeatured  bool    `json:"is_featured"`
	IsArchived  bool    `json:"is_archived"`
	gorm.Model          // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// DeriveArchived recomputes the archived flag from the current stock count.
func (p *Product) DeriveArchived() {
	p.IsArchived = p.Stock == 0
}

// Available reports whether the product can be carted or ordered: not
// soft-deleted, not archived, and with stock on hand.
func (p *Product) Available() bool {
	return !p.DeletedAt.Valid && !p.IsArchived && p.Stock > 0
}
