package orderControllers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tachuswebservices/manglasports-sub001/email"
	"github.com/tachuswebservices/manglasports-sub001/models"
	"gorm.io/gorm"
)

type UpdateItemStatusRequest struct {
	Status         string `json:"status" binding:"required"`
	CourierName    string `json:"courier_name"`
	TrackingNumber string `json:"tracking_number"`
}

func mapItemStatus(status string) (models.ItemStatus, bool) {
	switch models.ItemStatus(strings.ToLower(status)) {
	case models.ItemStatusPending:
		return models.ItemStatusPending, true
	case models.ItemStatusShipped:
		return models.ItemStatusShipped, true
	case models.ItemStatusDelivered:
		return models.ItemStatusDelivered, true
	case models.ItemStatusCompleted:
		return models.ItemStatusCompleted, true
	case models.ItemStatusCancelled:
		return models.ItemStatusCancelled, true
	default:
		return "", false
	}
}

// dateRange maps a bucket name to a [from, to) window in server-local time.
func dateRange(filter string, now time.Time) (time.Time, time.Time, bool) {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch filter {
	case "today":
		return startOfToday, startOfToday.AddDate(0, 0, 1), true
	case "yesterday":
		return startOfToday.AddDate(0, 0, -1), startOfToday, true
	case "lastWeek":
		return startOfToday.AddDate(0, 0, -7), startOfToday.AddDate(0, 0, 1), true
	case "lastMonth":
		return startOfToday.AddDate(0, -1, 0), startOfToday.AddDate(0, 0, 1), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// GET /api/admin/orders
//
// Pagination, free-text search over order ref and customer name, date
// buckets, and an item-status filter. The status filter runs inside the SQL
// query so the reported total always matches the returned page.
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if limit < 1 || limit > 100 {
			limit = 20
		}
		search := c.Query("search")
		dateFilter := c.Query("dateFilter")
		status := strings.ToLower(c.Query("status"))

		query := db.Model(&models.Order{})

		if search != "" {
			likePattern := "%" + strings.ToLower(search) + "%"
			query = query.
				Joins("JOIN users ON users.id = orders.user_id").
				Where("LOWER(orders.order_ref) LIKE ? OR LOWER(users.name) LIKE ?",
					likePattern, likePattern)
		}
		if dateFilter != "" {
			from, to, ok := dateRange(dateFilter, time.Now())
			if !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dateFilter"})
				return
			}
			query = query.Where("orders.created_at >= ? AND orders.created_at < ?", from, to)
		}
		if status != "" {
			if _, ok := mapItemStatus(status); !ok {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
				return
			}
			query = query.Where(
				"EXISTS (SELECT 1 FROM order_items WHERE order_items.order_id = orders.id AND order_items.status = ?)",
				status)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
			return
		}

		var orders []models.Order
		if err := query.
			Preload("User").
			Preload("Items").
			Preload("Address").
			Order("orders.created_at DESC").
			Offset((page - 1) * limit).
			Limit(limit).
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		out := make([]gin.H, 0, len(orders))
		for i := range orders {
			out = append(out, orderResponse(&orders[i]))
		}

		c.JSON(http.StatusOK, gin.H{
			"orders":      out,
			"totalOrders": total,
			"page":        page,
			"limit":       limit,
		})
	}
}

// PUT /api/admin/orders/:id/items/:item_id
//
// Updates one item's fulfillment status and courier metadata, then mails the
// customer best-effort.
func UpdateOrderItemStatus(db *gorm.DB, mailer email.Sender, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("id")
		itemID := c.Param("item_id")

		var req UpdateItemStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		status, ok := mapItemStatus(req.Status)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}

		var order models.Order
		if err := orderLookup(db, orderID).Preload("User").
			First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		var item models.OrderItem
		if err := db.Where("id = ? AND order_id = ?", itemID, order.ID).First(&item).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order item not found"})
			return
		}

		item.Status = status
		if req.CourierName != "" {
			item.CourierName = req.CourierName
		}
		if req.TrackingNumber != "" {
			item.TrackingNumber = req.TrackingNumber
		}
		if err := db.Save(&item).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order item"})
			return
		}

		if err := mailer.Send(order.User.Email, "Update on your order "+order.OrderRef,
			email.StatusUpdateBody(order.OrderRef, &item)); err != nil && logger != nil {
			logger.Warn("status email failed",
				slog.String("order_ref", order.OrderRef),
				slog.String("error", err.Error()),
			)
		}

		c.JSON(http.StatusOK, item)
	}
}
