package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          string `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`

	// Price is the formatted display string (e.g. "₹12,495"); NumericPrice is
	// what totals are computed from.
	Price         string   `gorm:"not null" json:"price"`
	NumericPrice  float64  `gorm:"not null" json:"numericPrice"`
	OriginalPrice float64  `json:"originalPrice"`
	OfferPrice    *float64 `json:"offerPrice,omitempty"`
	GST           *float64 `json:"gst,omitempty"`

	Images ImageList `gorm:"serializer:json" json:"images"`

	Stock int `json:"stock"`

	// Denormalized review aggregates, recomputed on every review mutation.
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`

	CategoryID uint     `gorm:"index" json:"category_id"`
	Category   Category `json:"category"`
	BrandID    uint     `gorm:"index" json:"brand_id"`
	Brand      Brand    `json:"brand"`

	Features       []Feature       `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"features"`
	Specifications []Specification `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"specifications"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Feature struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID string `gorm:"index" json:"product_id"`
	Text      string `gorm:"not null" json:"text"`
}

type Specification struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID string `gorm:"index" json:"product_id"`
	Key       string `gorm:"not null" json:"key"`
	Value     string `json:"value"`
}
