package paymentControllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tachuswebservices/manglasports-sub001/models"
	"gorm.io/gorm"
)

// Client talks to the Razorpay Orders REST API with basic auth.
type Client struct {
	BaseURL   string
	KeyID     string
	KeySecret string
	HTTP      *http.Client
}

func NewClient(keyID, keySecret string) *Client {
	return &Client{
		BaseURL:   "https://api.razorpay.com/v1",
		KeyID:     keyID,
		KeySecret: keySecret,
		HTTP:      &http.Client{},
	}
}

type OrderResponse struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder registers an order with the gateway. Amount is in minor units
// (paise for INR).
func (cl *Client) CreateOrder(amount int64, currency, receipt string) (*OrderResponse, error) {
	payload := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	jsonData, _ := json.Marshal(payload)

	req, err := http.NewRequest("POST", cl.BaseURL+"/orders", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(cl.KeyID, cl.KeySecret)

	resp, err := cl.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach razorpay: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("razorpay API error (%d): %s", resp.StatusCode, string(body))
	}

	var order OrderResponse
	if err := json.Unmarshal(body, &order); err != nil {
		return nil, fmt.Errorf("failed to parse razorpay response: %v", err)
	}
	return &order, nil
}

// VerifySignature checks the checkout callback signature, HMAC-SHA256 over
// "<orderID>|<paymentID>" keyed with the API secret.
func VerifySignature(orderID, paymentID, signature, keySecret string) bool {
	mac := hmac.New(sha256.New, []byte(keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// POST /api/payment/order (JWT)
func CreatePaymentOrder(client *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Amount   int64  `json:"amount" binding:"required"`
			Currency string `json:"currency"`
			Receipt  string `json:"receipt"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
			return
		}
		if input.Currency == "" {
			input.Currency = "INR"
		}

		order, err := client.CreateOrder(input.Amount, input.Currency, input.Receipt)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"order_id": order.ID,
			"amount":   order.Amount,
			"currency": order.Currency,
			"key_id":   client.KeyID,
		})
	}
}

// POST /api/payment/verify (JWT). A valid signature stamps the payment id on
// the caller's order.
func VerifyPayment(db *gorm.DB, keySecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, _ := c.Get("user_id")
		userID := userIDVal.(string)

		var input struct {
			RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
			RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
			RazorpaySignature string `json:"razorpay_signature" binding:"required"`
			OrderRef          string `json:"order_ref" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if !VerifySignature(input.RazorpayOrderID, input.RazorpayPaymentID, input.RazorpaySignature, keySecret) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Payment signature verification failed"})
			return
		}

		var order models.Order
		if err := db.Where("order_ref = ? AND user_id = ?", input.OrderRef, userID).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		order.PaymentID = input.RazorpayPaymentID
		if err := db.Save(&order).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record payment"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Payment verified", "payment_id": order.PaymentID})
	}
}
