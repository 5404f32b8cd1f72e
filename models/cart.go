package models

import "time"

// CartItem holds one (user, product) row. Adding an existing pair increments
// the quantity instead of inserting a second row.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"user_id"`
	ProductID string    `gorm:"uniqueIndex:idx_cart_user_product;not null" json:"product_id"`
	Product   Product   `json:"product"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

type WishlistItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"uniqueIndex:idx_wishlist_user_product;not null" json:"user_id"`
	ProductID string    `gorm:"uniqueIndex:idx_wishlist_user_product;not null" json:"product_id"`
	Product   Product   `json:"product"`
	AddedAt   time.Time `json:"added_at"`
}
