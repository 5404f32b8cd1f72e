package blogControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tachuswebservices/manglasports-sub001/models"
	"gorm.io/gorm"
)

type PostInput struct {
	Title      string        `json:"title"`
	Content    string        `json:"content"`
	CoverImage *models.Image `json:"cover_image"`
	Published  *bool         `json:"published"`
}

type CommentInput struct {
	Body     string `json:"body"`
	ParentID *uint  `json:"parent_id"`
}

// GET /api/blog lists published posts, newest first.
func GetPosts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var posts []models.BlogPost
		if err := db.Where("published = ?", true).
			Order("created_at DESC").
			Find(&posts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
			return
		}
		c.JSON(http.StatusOK, posts)
	}
}

// GET /api/blog/:slug returns a published post with its approved comments.
func GetPostBySlug(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")

		var post models.BlogPost
		err := db.Preload("Comments", "is_approved = ?", true).
			Where("slug = ? AND published = ?", slug, true).
			First(&post).Error
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// POST /api/blog/:slug/comments (JWT). Comments from admins are approved
// immediately, everyone else waits for moderation.
func CreateComment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, _ := c.Get("user_id")
		userID := userIDVal.(string)
		slug := c.Param("slug")

		var post models.BlogPost
		if err := db.Where("slug = ? AND published = ?", slug, true).First(&post).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}

		var input CommentInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if strings.TrimSpace(input.Body) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Comment body is required"})
			return
		}

		if input.ParentID != nil {
			var parent models.BlogComment
			if err := db.Where("id = ? AND post_id = ?", *input.ParentID, post.ID).First(&parent).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Parent comment not found"})
				return
			}
			// one level of nesting only
			if parent.ParentID != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Replies to replies are not allowed"})
				return
			}
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		comment := models.BlogComment{
			PostID:     post.ID,
			UserID:     user.ID,
			AuthorName: user.Name,
			Body:       strings.TrimSpace(input.Body),
			ParentID:   input.ParentID,
			IsApproved: user.Role == models.RoleAdmin,
		}
		if err := db.Create(&comment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
			return
		}

		c.JSON(http.StatusCreated, comment)
	}
}

// POST /api/admin/blog/posts
func CreatePost(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input PostInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if strings.TrimSpace(input.Title) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
			return
		}

		post := models.BlogPost{
			Title:      strings.TrimSpace(input.Title),
			Slug:       models.Slugify(input.Title),
			Content:    input.Content,
			CoverImage: input.CoverImage,
		}
		if input.Published != nil {
			post.Published = *input.Published
		}

		var existing models.BlogPost
		if err := db.Where("slug = ?", post.Slug).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "A post with this title already exists"})
			return
		}

		if err := db.Create(&post).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
			return
		}
		c.JSON(http.StatusCreated, post)
	}
}

// PUT /api/admin/blog/posts/:slug
func UpdatePost(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")

		var post models.BlogPost
		if err := db.Where("slug = ?", slug).First(&post).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}

		var input PostInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if strings.TrimSpace(input.Title) != "" {
			newSlug := models.Slugify(input.Title)
			if newSlug != post.Slug {
				var existing models.BlogPost
				if err := db.Where("slug = ?", newSlug).First(&existing).Error; err == nil {
					c.JSON(http.StatusConflict, gin.H{"error": "A post with this title already exists"})
					return
				}
			}
			post.Title = strings.TrimSpace(input.Title)
			post.Slug = newSlug
		}
		if input.Content != "" {
			post.Content = input.Content
		}
		if input.CoverImage != nil {
			post.CoverImage = input.CoverImage
		}
		if input.Published != nil {
			post.Published = *input.Published
		}

		if err := db.Save(&post).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// DELETE /api/admin/blog/posts/:slug
func DeletePost(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")

		var post models.BlogPost
		if err := db.Where("slug = ?", slug).First(&post).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("post_id = ?", post.ID).Delete(&models.BlogComment{}).Error; err != nil {
				return err
			}
			return tx.Delete(&post).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
	}
}

// GET /api/admin/blog/comments/pending
func GetPendingComments(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var comments []models.BlogComment
		if err := db.Where("is_approved = ?", false).
			Order("created_at ASC").
			Find(&comments).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
			return
		}
		c.JSON(http.StatusOK, comments)
	}
}

// PUT /api/admin/blog/comments/:id/approve
func ApproveComment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var comment models.BlogComment
		if err := db.First(&comment, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}

		comment.IsApproved = true
		if err := db.Save(&comment).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to approve comment"})
			return
		}
		c.JSON(http.StatusOK, comment)
	}
}

// DELETE /api/admin/blog/comments/:id removes a comment and its replies.
func DeleteComment(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var comment models.BlogComment
		if err := db.First(&comment, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("parent_id = ?", comment.ID).Delete(&models.BlogComment{}).Error; err != nil {
				return err
			}
			return tx.Delete(&comment).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
	}
}
