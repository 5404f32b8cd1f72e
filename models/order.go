package models

import "time"

type ItemStatus string

const (
	ItemStatusPending   ItemStatus = "pending"
	ItemStatusShipped   ItemStatus = "shipped"
	ItemStatusDelivered ItemStatus = "delivered"
	ItemStatusCompleted ItemStatus = "completed"
	ItemStatusCancelled ItemStatus = "cancelled"
)

type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	OrderRef    string      `gorm:"uniqueIndex;not null" json:"order_ref"`
	UserID      string      `gorm:"index;not null" json:"user_id"`
	User        User        `json:"user"`
	AddressID   uint        `json:"address_id"`
	Address     Address     `json:"address"`
	Items       []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount float64     `json:"total_amount"`
	PaymentID   string      `json:"payment_id"`
	CreatedAt   time.Time   `json:"created_at"`
}

// OrderItem snapshots the product at purchase time and carries its own
// fulfillment status plus courier metadata.
type OrderItem struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	OrderID        uint       `gorm:"index" json:"order_id"`
	ProductID      string     `json:"product_id"`
	ProductName    string     `json:"product_name"`
	Price          float64    `json:"price"`
	Quantity       int        `json:"quantity"`
	Status         ItemStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	CourierName    string     `json:"courier_name"`
	TrackingNumber string     `json:"tracking_number"`
}

// DerivedStatus computes the order status shown to the customer. It is never
// stored: completed only when every item is completed, cancelled only when
// every item is cancelled, otherwise the least-advanced live item wins.
func (o *Order) DerivedStatus() ItemStatus {
	if len(o.Items) == 0 {
		return ItemStatusPending
	}

	rank := map[ItemStatus]int{
		ItemStatusPending:   0,
		ItemStatusShipped:   1,
		ItemStatusDelivered: 2,
		ItemStatusCompleted: 3,
	}

	allCancelled := true
	lowest := ItemStatusCompleted
	seenLive := false
	for _, item := range o.Items {
		if item.Status == ItemStatusCancelled {
			continue
		}
		allCancelled = false
		if !seenLive || rank[item.Status] < rank[lowest] {
			lowest = item.Status
			seenLive = true
		}
	}
	if allCancelled {
		return ItemStatusCancelled
	}
	return lowest
}
