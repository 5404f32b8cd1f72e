package models

type Category struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string    `gorm:"unique;not null" json:"name"`
	Image    *Image    `gorm:"serializer:json" json:"image,omitempty"`
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

type Brand struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string    `gorm:"unique;not null" json:"name"`
	Logo     *Image    `gorm:"serializer:json" json:"logo,omitempty"`
	Products []Product `gorm:"foreignKey:BrandID" json:"products,omitempty"`
}
