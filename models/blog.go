package models

import "time"

type BlogPost struct {
	ID         uint          `gorm:"primaryKey" json:"id"`
	Title      string        `gorm:"not null" json:"title"`
	Slug       string        `gorm:"uniqueIndex;not null" json:"slug"`
	Content    string        `json:"content"`
	CoverImage *Image        `gorm:"serializer:json" json:"cover_image,omitempty"`
	Published  bool          `json:"published"`
	Comments   []BlogComment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// BlogComment may be nested one level via ParentID. Comments wait for admin
// approval unless the author is an admin.
type BlogComment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"index;not null" json:"post_id"`
	UserID     string    `gorm:"index" json:"user_id"`
	AuthorName string    `json:"author_name"`
	Body       string    `gorm:"not null" json:"body"`
	ParentID   *uint     `gorm:"index" json:"parent_id,omitempty"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
}
