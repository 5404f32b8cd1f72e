package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID       string `gorm:"primaryKey" json:"id"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `json:"-"` // bcrypt hash, never serialized
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     Role   `gorm:"type:VARCHAR(10);default:'user'" json:"role"`

	IsEmailVerified        bool       `json:"is_email_verified"`
	EmailVerificationToken string     `gorm:"index" json:"-"`
	VerificationExpiresAt  *time.Time `json:"-"`
	ResetToken             string     `gorm:"index" json:"-"`
	ResetExpiresAt         *time.Time `json:"-"`

	Addresses []Address `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"addresses,omitempty"`
	Orders    []Order   `gorm:"foreignKey:UserID" json:"orders,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
