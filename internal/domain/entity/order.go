package entity

import (
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderConfirmed OrderStatus = "confirmed"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

type OrderItem struct {
	ProductID string  `json:"productId" firestore:"productId"`
	SellerID  string  `json:"sellerId" firestore:"sellerId"`
	Title     string  `json:"title" firestore:"title"`
	Quantity  int     `json:"quantity" firestore:"quantity"`
	Price     float64 `json:"price" firestore:"price"`
}

// Order is written by the checkout flow; this service only reads it.
type Order struct {
	ID         string      `json:"id" firestore:"id"`
	BuyerID    string      `json:"buyerId" firestore:"buyerId"`
	SellerIDs  []string    `json:"sellerIds" firestore:"sellerIds"`
	Items      []OrderItem `json:"items,omitempty" firestore:"items,omitempty"`
	TotalPrice float64     `json:"totalPrice" firestore:"totalPrice"`
	Status     OrderStatus `json:"status" firestore:"status"`
	CreatedAt  time.Time   `json:"createdAt" firestore:"createdAt"`
}

func (o *Order) HasSeller(sellerID string) bool {
	for _, id := range o.SellerIDs {
		if id == sellerID {
			return true
		}
	}
	return false
}
