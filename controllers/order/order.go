package orderControllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/tachuswebservices/manglasports-sub001/email"
	"github.com/tachuswebservices/manglasports-sub001/metrics"
	"github.com/tachuswebservices/manglasports-sub001/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PlaceOrderRequest struct {
	AddressID uint   `json:"address_id" binding:"required"`
	PaymentID string `json:"payment_id"`
}

// Rejections the caller can do something about. Anything else out of
// PlaceOrder is an internal error.
var (
	errEmptyCart         = errors.New("cart is empty")
	errAddressNotFound   = errors.New("address not found")
	errInsufficientStock = errors.New("insufficient stock")
)

// lockForUpdate takes a FOR UPDATE row lock where the backend supports one.
// SQLite has no row locks, its writes serialize on the database file.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// generateOrderRef returns a unique order reference.
func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()[:8]
}

// orderLookup matches a path value against the numeric order id or the order
// ref. The id column is integer typed, so a non-numeric ref must never be
// bound against it.
func orderLookup(db *gorm.DB, key string) *gorm.DB {
	if _, err := strconv.ParseUint(key, 10, 64); err == nil {
		return db.Where("id = ?", key)
	}
	return db.Where("order_ref = ?", key)
}

// PlaceOrder creates an order from the caller's cart: inside one transaction
// every product row is locked, stock checked and deducted, the items
// snapshotted and the cart cleared. Insufficient stock rejects the whole
// order.
func PlaceOrder(db *gorm.DB, userID string, req PlaceOrderRequest) (*models.Order, error) {
	var items []models.CartItem
	if err := db.Preload("Product").Where("user_id = ?", userID).Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, errEmptyCart
	}

	var address models.Address
	if err := db.Where("id = ? AND user_id = ?", req.AddressID, userID).First(&address).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errAddressNotFound
		}
		return nil, err
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var total float64
		var orderItems []models.OrderItem

		for _, item := range items {
			var product models.Product
			if err := lockForUpdate(tx).First(&product, "id = ?", item.ProductID).Error; err != nil {
				return err
			}

			if product.Stock < item.Quantity {
				return fmt.Errorf("%w for product: %s", errInsufficientStock, product.Name)
			}

			product.Stock -= item.Quantity
			if err := tx.Save(&product).Error; err != nil {
				return err
			}

			total += product.NumericPrice * float64(item.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Price:       product.NumericPrice,
				Quantity:    item.Quantity,
				Status:      models.ItemStatusPending,
			})
		}

		order = models.Order{
			OrderRef:    generateOrderRef(),
			UserID:      userID,
			AddressID:   req.AddressID,
			Items:       orderItems,
			TotalAmount: total,
			PaymentID:   req.PaymentID,
			CreatedAt:   time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// POST /api/orders
func PlaceOrderHandler(db *gorm.DB, mailer email.Sender, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, _ := c.Get("user_id")
		userID := userIDVal.(string)

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		order, err := PlaceOrder(db, userID, req)
		if err != nil {
			switch {
			case errors.Is(err, errEmptyCart),
				errors.Is(err, errAddressNotFound),
				errors.Is(err, errInsufficientStock):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
			}
			return
		}

		metrics.OrdersPlacedTotal.Inc()
		BroadcastNewOrder(order)

		// Invoice mail is best-effort; the order stands either way.
		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err == nil {
			if err := mailer.Send(user.Email, "Your Mangla Sports order "+order.OrderRef,
				email.InvoiceBody(order)); err != nil && logger != nil {
				logger.Warn("invoice email failed",
					slog.String("order_ref", order.OrderRef),
					slog.String("error", err.Error()),
				)
			}
		}

		c.JSON(http.StatusCreated, orderResponse(order))
	}
}

// GET /api/orders/mine
func GetUserOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := c.Get("user_id")

		var orders []models.Order
		if err := db.
			Preload("Items").
			Preload("Address").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		out := make([]gin.H, 0, len(orders))
		for i := range orders {
			out = append(out, orderResponse(&orders[i]))
		}
		c.JSON(http.StatusOK, out)
	}
}

// GET /api/orders/:id accepts the numeric id or the order ref. Owner or
// admin only.
func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		userIDVal, _ := c.Get("user_id")
		userID := userIDVal.(string)

		var order models.Order
		if err := orderLookup(db, id).
			Preload("Items").
			Preload("User").
			Preload("Address").
			First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			}
			return
		}

		if order.UserID != userID {
			var caller models.User
			if err := db.First(&caller, "id = ?", userID).Error; err != nil || caller.Role != models.RoleAdmin {
				c.JSON(http.StatusForbidden, gin.H{"error": "Not your order"})
				return
			}
		}

		c.JSON(http.StatusOK, orderResponse(&order))
	}
}

// orderResponse shapes an order with its derived aggregate status. The
// status is never stored.
func orderResponse(order *models.Order) gin.H {
	return gin.H{
		"id":           order.ID,
		"order_ref":    order.OrderRef,
		"user_id":      order.UserID,
		"user":         order.User,
		"address_id":   order.AddressID,
		"address":      order.Address,
		"items":        order.Items,
		"total_amount": order.TotalAmount,
		"payment_id":   order.PaymentID,
		"status":       order.DerivedStatus(),
		"created_at":   order.CreatedAt,
	}
}
