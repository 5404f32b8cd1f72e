package orderControllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tachuswebservices/manglasports-sub001/models"
)

func TestGetDashboardStats(t *testing.T) {
	db, r, _ := setupTest(t)

	require.NoError(t, db.Create(&models.User{ID: "user-1", Email: "a@example.com"}).Error)
	require.NoError(t, db.Create(&models.Product{
		ID: "p1", Name: "Air Rifle", Price: "₹45,000", NumericPrice: 45000,
	}).Error)

	now := time.Now()
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonth := startOfMonth.AddDate(0, 0, -15)

	thisMonthOrder := models.Order{
		OrderRef: "REF-NOW", UserID: "user-1", TotalAmount: 45000, CreatedAt: now,
		Items: []models.OrderItem{
			{ProductID: "p1", ProductName: "Air Rifle", Price: 45000, Quantity: 1, Status: models.ItemStatusPending},
		},
	}
	lastMonthOrder := models.Order{
		OrderRef: "REF-OLD", UserID: "user-1", TotalAmount: 1200, CreatedAt: lastMonth,
		Items: []models.OrderItem{
			{ProductID: "p1", ProductName: "Air Rifle", Price: 1200, Quantity: 2, Status: models.ItemStatusCompleted},
		},
	}
	require.NoError(t, db.Create(&thisMonthOrder).Error)
	require.NoError(t, db.Create(&lastMonthOrder).Error)

	w := doJSON(r, http.MethodGet, "/admin/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.EqualValues(t, 1, resp["totalUsers"])
	require.EqualValues(t, 1, resp["totalProducts"])
	require.EqualValues(t, 2, resp["totalOrders"])
	require.EqualValues(t, 45000, resp["revenueThisMonth"])
	require.EqualValues(t, 1200, resp["revenueLastMonth"])
	require.EqualValues(t, 1, resp["ordersThisMonth"])
	require.EqualValues(t, 1, resp["ordersLastMonth"])

	top := resp["topProducts"].([]interface{})
	require.Len(t, top, 1)
	first := top[0].(map[string]interface{})
	require.Equal(t, "p1", first["product_id"])
	require.EqualValues(t, 3, first["quantity"])
}
