package productControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tachuswebservices/manglasports-sub001/models"
	"gorm.io/gorm"
)

type UpdateProductInput struct {
	Name           *string              `json:"name"`
	Description    *string              `json:"description"`
	Price          *string              `json:"price"`
	NumericPrice   *float64             `json:"numericPrice"`
	OriginalPrice  *float64             `json:"originalPrice"`
	OfferPrice     *float64             `json:"offerPrice"`
	GST            *float64             `json:"gst"`
	Images         *models.ImageList    `json:"images"`
	Stock          *int                 `json:"stock"`
	CategoryID     *uint                `json:"category_id"`
	BrandID        *uint                `json:"brand_id"`
	Features       []string             `json:"features"`
	Specifications []SpecificationInput `json:"specifications"`
}

// PUT /api/admin/products/:id
//
// Partial update; features and specifications, when present, replace the
// existing sets wholesale.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Price != nil {
			updates["price"] = *input.Price
		}
		if input.NumericPrice != nil {
			if *input.NumericPrice <= 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "numericPrice must be positive"})
				return
			}
			updates["numeric_price"] = *input.NumericPrice
		}
		if input.OriginalPrice != nil {
			updates["original_price"] = *input.OriginalPrice
		}
		if input.OfferPrice != nil {
			updates["offer_price"] = *input.OfferPrice
		}
		if input.GST != nil {
			updates["gst"] = *input.GST
		}
		if input.Stock != nil {
			updates["stock"] = *input.Stock
		}
		if input.CategoryID != nil {
			var category models.Category
			if err := db.First(&category, *input.CategoryID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
				return
			}
			updates["category_id"] = *input.CategoryID
		}
		if input.BrandID != nil {
			var brand models.Brand
			if err := db.First(&brand, *input.BrandID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Brand does not exist"})
				return
			}
			updates["brand_id"] = *input.BrandID
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if len(updates) > 0 {
				if err := tx.Model(&product).Updates(updates).Error; err != nil {
					return err
				}
			}
			if input.Images != nil {
				if err := tx.Model(&product).Update("images", *input.Images).Error; err != nil {
					return err
				}
			}
			if input.Features != nil {
				if err := tx.Where("product_id = ?", product.ID).Delete(&models.Feature{}).Error; err != nil {
					return err
				}
				for _, text := range input.Features {
					if err := tx.Create(&models.Feature{ProductID: product.ID, Text: text}).Error; err != nil {
						return err
					}
				}
			}
			if input.Specifications != nil {
				if err := tx.Where("product_id = ?", product.ID).Delete(&models.Specification{}).Error; err != nil {
					return err
				}
				for _, spec := range input.Specifications {
					if err := tx.Create(&models.Specification{
						ProductID: product.ID,
						Key:       spec.Key,
						Value:     spec.Value,
					}).Error; err != nil {
						return err
					}
				}
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		var updated models.Product
		if err := db.
			Preload("Category").
			Preload("Brand").
			Preload("Features").
			Preload("Specifications").
			First(&updated, "id = ?", id).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload product"})
			return
		}

		c.JSON(http.StatusOK, updated)
	}
}
