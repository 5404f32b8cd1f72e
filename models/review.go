package models

import "time"

// Review is one-per-user-per-product, gated on a purchase of that product.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID string    `gorm:"uniqueIndex:idx_review_product_user;not null" json:"product_id"`
	UserID    string    `gorm:"uniqueIndex:idx_review_product_user;not null" json:"user_id"`
	User      User      `json:"user"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"not null" json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
