package reviewControllers

import (
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tachuswebservices/manglasports-sub001/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewInput struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func validateReviewInput(input *ReviewInput) string {
	if input.Rating < 1 || input.Rating > 5 {
		return "rating must be between 1 and 5"
	}
	if len(strings.TrimSpace(input.Comment)) < 10 {
		return "comment must be at least 10 characters"
	}
	return ""
}

// lockForUpdate takes a FOR UPDATE row lock where the backend supports one.
// SQLite has no row locks, its writes serialize on the database file.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// hasPurchased reports whether the user has an order item for the product.
func hasPurchased(db *gorm.DB, userID, productID string) (bool, error) {
	var count int64
	err := db.Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND order_items.product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}

// recomputeAggregates refreshes the product's denormalized rating (mean,
// one decimal) and review count. The caller's transaction must already hold
// the product row lock so concurrent review writes cannot lose updates.
func recomputeAggregates(tx *gorm.DB, productID string) error {
	var stats struct {
		Avg   float64
		Count int64
	}
	if err := tx.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
		Where("product_id = ?", productID).
		Scan(&stats).Error; err != nil {
		return err
	}

	rating := math.Round(stats.Avg*10) / 10
	return tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"rating":       rating,
			"review_count": stats.Count,
		}).Error
}

// GET /api/reviews/product/:id
func GetProductReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID := c.Param("id")

		var reviews []models.Review
		if err := db.Preload("User").
			Where("product_id = ?", productID).
			Order("created_at DESC").
			Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
			return
		}

		c.JSON(http.StatusOK, reviews)
	}
}

// POST /api/reviews/product/:id
//
// Only buyers may review, one review per user per product.
func CreateReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, _ := c.Get("user_id")
		userID := userIDVal.(string)
		productID := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", productID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		purchased, err := hasPurchased(db, userID, productID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check purchase"})
			return
		}
		if !purchased {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only buyers of this product can review it"})
			return
		}

		var input ReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if msg := validateReviewInput(&input); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}

		var existing models.Review
		err = db.Where("product_id = ? AND user_id = ?", productID, userID).First(&existing).Error
		if err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "You have already reviewed this product"})
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing review"})
			return
		}

		review := models.Review{
			ProductID: productID,
			UserID:    userID,
			Rating:    input.Rating,
			Comment:   strings.TrimSpace(input.Comment),
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := lockForUpdate(tx).First(&models.Product{}, "id = ?", productID).Error; err != nil {
				return err
			}
			if err := tx.Create(&review).Error; err != nil {
				return err
			}
			return recomputeAggregates(tx, productID)
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
			return
		}

		c.JSON(http.StatusCreated, review)
	}
}

// PUT /api/reviews/product/:id
func UpdateReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, _ := c.Get("user_id")
		userID := userIDVal.(string)
		productID := c.Param("id")

		purchased, err := hasPurchased(db, userID, productID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check purchase"})
			return
		}
		if !purchased {
			c.JSON(http.StatusForbidden, gin.H{"error": "Only buyers of this product can review it"})
			return
		}

		var input ReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if msg := validateReviewInput(&input); msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}

		var review models.Review
		if err := db.Where("product_id = ? AND user_id = ?", productID, userID).First(&review).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}

		review.Rating = input.Rating
		review.Comment = strings.TrimSpace(input.Comment)
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := lockForUpdate(tx).First(&models.Product{}, "id = ?", productID).Error; err != nil {
				return err
			}
			if err := tx.Save(&review).Error; err != nil {
				return err
			}
			return recomputeAggregates(tx, productID)
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
			return
		}

		c.JSON(http.StatusOK, review)
	}
}

// DELETE /api/reviews/:id. Author or admin only.
func DeleteReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, _ := c.Get("user_id")
		userID := userIDVal.(string)
		id := c.Param("id")

		var review models.Review
		if err := db.First(&review, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}

		if review.UserID != userID {
			var caller models.User
			if err := db.First(&caller, "id = ?", userID).Error; err != nil || caller.Role != models.RoleAdmin {
				c.JSON(http.StatusForbidden, gin.H{"error": "Not your review"})
				return
			}
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := lockForUpdate(tx).First(&models.Product{}, "id = ?", review.ProductID).Error; err != nil {
				return err
			}
			if err := tx.Delete(&review).Error; err != nil {
				return err
			}
			return recomputeAggregates(tx, review.ProductID)
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Review deleted"})
	}
}
