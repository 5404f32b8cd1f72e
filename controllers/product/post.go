package productControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tachuswebservices/manglasports-sub001/models"
	"gorm.io/gorm"
)

type SpecificationInput struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value"`
}

type ProductInput struct {
	Name           string               `json:"name" binding:"required"`
	Description    string               `json:"description"`
	Price          string               `json:"price" binding:"required"`
	NumericPrice   float64              `json:"numericPrice" binding:"required"`
	OriginalPrice  float64              `json:"originalPrice"`
	OfferPrice     *float64             `json:"offerPrice"`
	GST            *float64             `json:"gst"`
	Images         models.ImageList     `json:"images"`
	Stock          int                  `json:"stock"`
	CategoryID     uint                 `json:"category_id" binding:"required"`
	BrandID        uint                 `json:"brand_id" binding:"required"`
	Features       []string             `json:"features"`
	Specifications []SpecificationInput `json:"specifications"`
}

// POST /api/admin/products
//
// Images are uploaded separately through the upload endpoint; the body
// carries the resulting {url, public_id} pairs.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.NumericPrice <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "numericPrice must be positive"})
			return
		}

		var category models.Category
		if err := db.First(&category, input.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category does not exist"})
			return
		}
		var brand models.Brand
		if err := db.First(&brand, input.BrandID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Brand does not exist"})
			return
		}

		// Slug-style key with a random suffix so renames never collide.
		id := models.Slugify(input.Name) + "-" + uuid.NewString()[:8]

		product := models.Product{
			ID:            id,
			Name:          strings.TrimSpace(input.Name),
			Description:   input.Description,
			Price:         input.Price,
			NumericPrice:  input.NumericPrice,
			OriginalPrice: input.OriginalPrice,
			OfferPrice:    input.OfferPrice,
			GST:           input.GST,
			Images:        input.Images,
			Stock:         input.Stock,
			CategoryID:    input.CategoryID,
			BrandID:       input.BrandID,
		}
		for _, text := range input.Features {
			product.Features = append(product.Features, models.Feature{Text: text})
		}
		for _, spec := range input.Specifications {
			product.Specifications = append(product.Specifications,
				models.Specification{Key: spec.Key, Value: spec.Value})
		}

		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, product)
	}
}
