package orderControllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/tachuswebservices/manglasports-sub001/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// recordingSender captures outgoing mail instead of dialing SMTP.
type recordingSender struct {
	sent []string
}

func (s *recordingSender) Send(to, subject, htmlBody string) error {
	s.sent = append(s.sent, to)
	return nil
}

func setupTest(t *testing.T) (*gorm.DB, *gin.Engine, *recordingSender) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Product{}, &models.CartItem{},
		&models.Address{}, &models.Order{}, &models.OrderItem{},
	))

	mailer := &recordingSender{}

	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set("user_id", "user-1") })
	r.POST("/orders", PlaceOrderHandler(db, mailer, nil))
	r.GET("/orders", GetUserOrders(db))
	r.GET("/orders/:id", GetOrderByID(db))
	r.GET("/admin/orders", GetAllOrders(db))
	r.PUT("/admin/orders/:id/items/:item_id", UpdateOrderItemStatus(db, mailer, nil))
	r.GET("/admin/dashboard", GetDashboardStats(db))
	return db, r, mailer
}

func seedUserWithCart(t *testing.T, db *gorm.DB) (addressID uint) {
	t.Helper()
	require.NoError(t, db.Create(&models.User{
		ID: "user-1", Email: "asha@example.com", Name: "Asha",
	}).Error)

	address := models.Address{UserID: "user-1", Name: "Asha", Line1: "12 MG Road", City: "Jalandhar"}
	require.NoError(t, db.Create(&address).Error)

	products := []models.Product{
		{ID: "p1", Name: "Air Rifle", Price: "₹45,000", NumericPrice: 45000, Stock: 5},
		{ID: "p2", Name: "Pellets Tin", Price: "₹1,200", NumericPrice: 1200, Stock: 100},
	}
	require.NoError(t, db.Create(&products).Error)

	cart := []models.CartItem{
		{UserID: "user-1", ProductID: "p1", Quantity: 1, AddedAt: time.Now()},
		{UserID: "user-1", ProductID: "p2", Quantity: 3, AddedAt: time.Now()},
	}
	require.NoError(t, db.Create(&cart).Error)
	return address.ID
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPlaceOrderDeductsStockAndClearsCart(t *testing.T) {
	db, r, mailer := setupTest(t)
	addressID := seedUserWithCart(t, db)

	w := doJSON(r, http.MethodPost, "/orders", gin.H{"address_id": addressID})
	require.Equal(t, http.StatusCreated, w.Code)

	var p1, p2 models.Product
	require.NoError(t, db.First(&p1, "id = ?", "p1").Error)
	require.NoError(t, db.First(&p2, "id = ?", "p2").Error)
	require.Equal(t, 4, p1.Stock)
	require.Equal(t, 97, p2.Stock)

	var cartCount int64
	db.Model(&models.CartItem{}).Where("user_id = ?", "user-1").Count(&cartCount)
	require.EqualValues(t, 0, cartCount)

	var order models.Order
	require.NoError(t, db.Preload("Items").Where("user_id = ?", "user-1").First(&order).Error)
	require.Len(t, order.Items, 2)
	require.Equal(t, 45000.0+3*1200.0, order.TotalAmount)
	require.NotEmpty(t, order.OrderRef)

	// invoice mail went out
	require.Equal(t, []string{"asha@example.com"}, mailer.sent)
}

func TestPlaceOrderInsufficientStockRejectsWholeOrder(t *testing.T) {
	db, r, _ := setupTest(t)
	addressID := seedUserWithCart(t, db)
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", "p2").Update("stock", 2).Error)

	w := doJSON(r, http.MethodPost, "/orders", gin.H{"address_id": addressID})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// nothing was deducted and the cart survives
	var p1 models.Product
	require.NoError(t, db.First(&p1, "id = ?", "p1").Error)
	require.Equal(t, 5, p1.Stock)

	var cartCount int64
	db.Model(&models.CartItem{}).Where("user_id = ?", "user-1").Count(&cartCount)
	require.EqualValues(t, 2, cartCount)

	var orderCount int64
	db.Model(&models.Order{}).Count(&orderCount)
	require.EqualValues(t, 0, orderCount)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	db, r, _ := setupTest(t)
	addressID := seedUserWithCart(t, db)
	require.NoError(t, db.Where("user_id = ?", "user-1").Delete(&models.CartItem{}).Error)

	w := doJSON(r, http.MethodPost, "/orders", gin.H{"address_id": addressID})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrderForeignAddress(t *testing.T) {
	db, r, _ := setupTest(t)
	seedUserWithCart(t, db)

	other := models.Address{UserID: "user-2", Name: "Other", Line1: "1 Elsewhere"}
	require.NoError(t, db.Create(&other).Error)

	w := doJSON(r, http.MethodPost, "/orders", gin.H{"address_id": other.ID})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrderInternalError(t *testing.T) {
	db, r, _ := setupTest(t)
	addressID := seedUserWithCart(t, db)
	require.NoError(t, db.Migrator().DropTable(&models.Order{}))

	// a broken schema is the server's problem, not the caller's
	w := doJSON(r, http.MethodPost, "/orders", gin.H{"address_id": addressID})
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func seedOrderAt(t *testing.T, db *gorm.DB, ref string, createdAt time.Time, statuses ...models.ItemStatus) {
	t.Helper()
	order := models.Order{OrderRef: ref, UserID: "user-1", CreatedAt: createdAt}
	for i, s := range statuses {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: fmt.Sprintf("p%d", i+1), ProductName: "Item", Price: 100, Quantity: 1, Status: s,
		})
	}
	require.NoError(t, db.Create(&order).Error)
}

func TestGetAllOrdersDateFilterToday(t *testing.T) {
	db, r, _ := setupTest(t)
	require.NoError(t, db.Create(&models.User{ID: "user-1", Email: "a@example.com"}).Error)

	now := time.Now()
	seedOrderAt(t, db, "REF-TODAY", now, models.ItemStatusPending)
	seedOrderAt(t, db, "REF-YESTERDAY", now.AddDate(0, 0, -1), models.ItemStatusPending)
	seedOrderAt(t, db, "REF-LASTWEEK", now.AddDate(0, 0, -6), models.ItemStatusPending)

	w := doJSON(r, http.MethodGet, "/admin/orders?dateFilter=today", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Orders      []map[string]interface{} `json:"orders"`
		TotalOrders int64                    `json:"totalOrders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.EqualValues(t, 1, resp.TotalOrders)
	require.Len(t, resp.Orders, 1)
	require.Equal(t, "REF-TODAY", resp.Orders[0]["order_ref"])
}

func TestGetAllOrdersStatusFilterTotalsMatch(t *testing.T) {
	db, r, _ := setupTest(t)
	require.NoError(t, db.Create(&models.User{ID: "user-1", Email: "a@example.com"}).Error)

	now := time.Now()
	seedOrderAt(t, db, "REF-A", now, models.ItemStatusShipped, models.ItemStatusPending)
	seedOrderAt(t, db, "REF-B", now, models.ItemStatusCompleted)
	seedOrderAt(t, db, "REF-C", now, models.ItemStatusPending)

	w := doJSON(r, http.MethodGet, "/admin/orders?status=pending", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Orders      []map[string]interface{} `json:"orders"`
		TotalOrders int64                    `json:"totalOrders"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.EqualValues(t, 2, resp.TotalOrders)
	require.Len(t, resp.Orders, 2)
}

func TestGetAllOrdersInvalidFilters(t *testing.T) {
	_, r, _ := setupTest(t)

	w := doJSON(r, http.MethodGet, "/admin/orders?dateFilter=nonsense", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodGet, "/admin/orders?status=nonsense", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateOrderItemStatus(t *testing.T) {
	db, r, mailer := setupTest(t)
	require.NoError(t, db.Create(&models.User{ID: "user-1", Email: "asha@example.com"}).Error)
	seedOrderAt(t, db, "REF-A", time.Now(), models.ItemStatusPending)

	var item models.OrderItem
	require.NoError(t, db.First(&item).Error)

	w := doJSON(r, http.MethodPut,
		fmt.Sprintf("/admin/orders/%d/items/%d", item.OrderID, item.ID),
		gin.H{"status": "shipped", "courier_name": "BlueDart", "tracking_number": "BD123"})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.First(&item, item.ID).Error)
	require.Equal(t, models.ItemStatusShipped, item.Status)
	require.Equal(t, "BlueDart", item.CourierName)
	require.Equal(t, "BD123", item.TrackingNumber)
	require.Equal(t, []string{"asha@example.com"}, mailer.sent)
}

func TestOrderLookupByRef(t *testing.T) {
	db, r, _ := setupTest(t)
	require.NoError(t, db.Create(&models.User{ID: "user-1", Email: "asha@example.com"}).Error)
	seedOrderAt(t, db, "20260830142501-ab12cd34", time.Now(), models.ItemStatusPending)

	// non-numeric refs must never be compared against the integer id column
	w := doJSON(r, http.MethodGet, "/orders/20260830142501-ab12cd34", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "20260830142501-ab12cd34", resp["order_ref"])

	var item models.OrderItem
	require.NoError(t, db.First(&item).Error)
	w = doJSON(r, http.MethodPut,
		fmt.Sprintf("/admin/orders/20260830142501-ab12cd34/items/%d", item.ID),
		gin.H{"status": "shipped"})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, db.First(&item, item.ID).Error)
	require.Equal(t, models.ItemStatusShipped, item.Status)
}

func TestOrderLookupColumnSelection(t *testing.T) {
	db, _, _ := setupTest(t)

	// a ref must only hit the text column; binding it to the integer id
	// column fails on backends with strict typing
	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var o models.Order
		return orderLookup(tx, "20260830142501-ab12cd34").Find(&o)
	})
	require.Contains(t, sql, "order_ref = ")
	require.NotContains(t, sql, "id = ")

	sql = db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var o models.Order
		return orderLookup(tx, "42").Find(&o)
	})
	require.Contains(t, sql, "id = ")
	require.NotContains(t, sql, "order_ref")
}

func TestDateRangeBuckets(t *testing.T) {
	now := time.Date(2026, 3, 15, 14, 30, 0, 0, time.Local)
	startOfToday := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)

	from, to, ok := dateRange("today", now)
	require.True(t, ok)
	require.Equal(t, startOfToday, from)
	require.Equal(t, startOfToday.AddDate(0, 0, 1), to)

	from, to, ok = dateRange("yesterday", now)
	require.True(t, ok)
	require.Equal(t, startOfToday.AddDate(0, 0, -1), from)
	require.Equal(t, startOfToday, to)

	_, _, ok = dateRange("bogus", now)
	require.False(t, ok)
}
