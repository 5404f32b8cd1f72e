package orderControllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tachuswebservices/manglasports-sub001/models"
	"gorm.io/gorm"
)

type topProduct struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int64  `json:"quantity"`
}

type statusCount struct {
	Status models.ItemStatus `json:"status"`
	Count  int64             `json:"count"`
}

// GET /api/admin/dashboard
//
// A sequence of independent aggregate reads recomputed on every request; no
// caching.
func GetDashboardStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalUsers, totalProducts, totalOrders int64
		if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users"})
			return
		}
		if err := db.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
			return
		}
		if err := db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
			return
		}

		now := time.Now()
		startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		startOfLastMonth := startOfMonth.AddDate(0, -1, 0)

		var revenueThisMonth, revenueLastMonth float64
		if err := db.Model(&models.Order{}).
			Where("created_at >= ?", startOfMonth).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&revenueThisMonth).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sum revenue"})
			return
		}
		if err := db.Model(&models.Order{}).
			Where("created_at >= ? AND created_at < ?", startOfLastMonth, startOfMonth).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&revenueLastMonth).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sum revenue"})
			return
		}

		var ordersThisMonth, ordersLastMonth int64
		if err := db.Model(&models.Order{}).
			Where("created_at >= ?", startOfMonth).
			Count(&ordersThisMonth).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
			return
		}
		if err := db.Model(&models.Order{}).
			Where("created_at >= ? AND created_at < ?", startOfLastMonth, startOfMonth).
			Count(&ordersLastMonth).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count orders"})
			return
		}

		var topProducts []topProduct
		if err := db.Model(&models.OrderItem{}).
			Select("product_id, product_name, SUM(quantity) as quantity").
			Group("product_id, product_name").
			Order("quantity DESC").
			Limit(5).
			Scan(&topProducts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rank products"})
			return
		}

		var statusBreakdown []statusCount
		if err := db.Model(&models.OrderItem{}).
			Select("status, COUNT(*) as count").
			Group("status").
			Scan(&statusBreakdown).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to break down statuses"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"totalUsers":       totalUsers,
			"totalProducts":    totalProducts,
			"totalOrders":      totalOrders,
			"revenueThisMonth": revenueThisMonth,
			"revenueLastMonth": revenueLastMonth,
			"ordersThisMonth":  ordersThisMonth,
			"ordersLastMonth":  ordersLastMonth,
			"topProducts":      topProducts,
			"statusBreakdown":  statusBreakdown,
		})
	}
}
