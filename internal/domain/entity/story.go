package entity

import (
	"time"
)

// StoryLifetime is how long a market story stays visible.
const StoryLifetime = 24 * time.Hour

type MarketStory struct {
	ID         string    `json:"id" firestore:"id"`
	SellerID   string    `json:"sellerId,omitempty" firestore:"sellerId,omitempty"`
	SellerName string    `json:"sellerName" firestore:"sellerName"`
	Image      string    `json:"image" firestore:"image"`
	HasOffer   bool      `json:"hasOffer" firestore:"hasOffer"`
	Category   string    `json:"category" firestore:"category"`
	CreatedAt  time.Time `json:"createdAt" firestore:"createdAt"`
}

func (s *MarketStory) Expired(now time.Time) bool {
	return now.Sub(s.CreatedAt) > StoryLifetime
}
