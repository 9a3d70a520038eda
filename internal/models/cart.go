package models

import "time"

// CartItem is a single (user, product) line in a user's cart. The pair is
// unique; adding the same product twice is a conflict, not a merge.
type CartItem struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);uniqueIndex:idx_cart_user_product"`
	ProductID string    `json:"product_id" gorm:"type:varchar(36);uniqueIndex:idx_cart_user_product"`
	Product   *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity  int       `json:"quantity" validate:"gte=1"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartSummary totals a user's cart against live catalog prices. It is
// computed on demand, never cached.
type CartSummary struct {
	TotalItems  int     `json:"total_items"`
	TotalAmount float64 `json:"total_amount"`
}
