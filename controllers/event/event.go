package eventControllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tachuswebservices/manglasports-sub001/models"
	"gorm.io/gorm"
)

type EventInput struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Venue       string        `json:"venue"`
	Date        *time.Time    `json:"date"`
	Image       *models.Image `json:"image"`
}

// GET /api/events lists all events, soonest first.
func GetEvents(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var events []models.Event
		if err := db.Order("date ASC").Find(&events).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
			return
		}
		c.JSON(http.StatusOK, events)
	}
}

// GET /api/events/:slug
func GetEventBySlug(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event models.Event
		if err := db.Where("slug = ?", c.Param("slug")).First(&event).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		c.JSON(http.StatusOK, event)
	}
}

// POST /api/admin/events. The slug is derived from the title.
func CreateEvent(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input EventInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if strings.TrimSpace(input.Title) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
			return
		}
		if input.Date == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Date is required"})
			return
		}

		event := models.Event{
			Slug:        models.Slugify(input.Title),
			Title:       strings.TrimSpace(input.Title),
			Description: input.Description,
			Venue:       input.Venue,
			Date:        *input.Date,
			Image:       input.Image,
		}

		var existing models.Event
		if err := db.Where("slug = ?", event.Slug).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "An event with this title already exists"})
			return
		}

		if err := db.Create(&event).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
			return
		}
		c.JSON(http.StatusCreated, event)
	}
}

// PUT /api/admin/events/:slug
func UpdateEvent(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event models.Event
		if err := db.Where("slug = ?", c.Param("slug")).First(&event).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}

		var input EventInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if strings.TrimSpace(input.Title) != "" {
			newSlug := models.Slugify(input.Title)
			if newSlug != event.Slug {
				var existing models.Event
				if err := db.Where("slug = ?", newSlug).First(&existing).Error; err == nil {
					c.JSON(http.StatusConflict, gin.H{"error": "An event with this title already exists"})
					return
				}
			}
			event.Title = strings.TrimSpace(input.Title)
			event.Slug = newSlug
		}
		if input.Description != "" {
			event.Description = input.Description
		}
		if input.Venue != "" {
			event.Venue = input.Venue
		}
		if input.Date != nil {
			event.Date = *input.Date
		}
		if input.Image != nil {
			event.Image = input.Image
		}

		if err := db.Save(&event).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update event"})
			return
		}
		c.JSON(http.StatusOK, event)
	}
}

// DELETE /api/admin/events/:slug
func DeleteEvent(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var event models.Event
		if err := db.Where("slug = ?", c.Param("slug")).First(&event).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}
		if err := db.Delete(&event).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete event"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
	}
}
