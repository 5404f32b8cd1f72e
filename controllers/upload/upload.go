package uploadControllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tachuswebservices/manglasports-sub001/cloudinary"
)

// POST /api/admin/upload accepts a multipart "image" field.
func UploadImage(client *cloudinary.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read uploaded file"})
			return
		}
		defer file.Close()

		image, err := client.Upload(file, fileHeader.Filename)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed: " + err.Error()})
			return
		}

		c.JSON(http.StatusOK, image)
	}
}

// DELETE /api/admin/upload/*public_id takes a wildcard because Cloudinary
// public IDs carry the folder prefix.
func DeleteImage(client *cloudinary.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		publicID := strings.TrimPrefix(c.Param("public_id"), "/")
		if publicID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "public_id is required"})
			return
		}

		if err := client.Destroy(publicID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Delete failed: " + err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Image deleted"})
	}
}
