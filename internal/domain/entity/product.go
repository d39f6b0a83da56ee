package entity

import (
	"time"
)

type Category string

const (
	CategoryVehicles    Category = "vehicles"
	CategoryRealEstate  Category = "real_estate"
	CategoryElectronics Category = "electronics"
	CategoryHomeMade    Category = "home_made"
	CategoryAgriculture Category = "agriculture"
	CategoryOther       Category = "other"
)

var categories = []Category{
	CategoryVehicles,
	CategoryRealEstate,
	CategoryElectronics,
	CategoryHomeMade,
	CategoryAgriculture,
	CategoryOther,
}

func (c Category) Valid() bool {
	for _, v := range categories {
		if v == c {
			return true
		}
	}
	return false
}

type GeoPoint struct {
	Lat float64 `json:"lat" firestore:"lat"`
	Lng float64 `json:"lng" firestore:"lng"`
}

type Product struct {
	ID          string   `json:"id" firestore:"id"`
	Title       string   `json:"title" firestore:"title"`
	Description string   `json:"description" firestore:"description"`
	Price       float64  `json:"price" firestore:"price"`
	Currency    string   `json:"currency" firestore:"currency"`
	Category    Category `json:"category" firestore:"category"`
	Image       string   `json:"image" firestore:"image"`

	SellerID    string `json:"sellerId" firestore:"sellerId"`
	SellerName  string `json:"sellerName" firestore:"sellerName"`
	SellerPhone string `json:"sellerPhone" firestore:"sellerPhone"`

	Location    string    `json:"location" firestore:"location"`
	Coordinates *GeoPoint `json:"coordinates,omitempty" firestore:"coordinates,omitempty"`

	Stock    int  `json:"stock" firestore:"stock"`
	Views    int  `json:"views" firestore:"views"`
	Likes    int  `json:"likes" firestore:"likes"`
	Active   bool `json:"active" firestore:"active"`
	Promoted bool `json:"promoted" firestore:"promoted"`

	Attributes map[string]interface{} `json:"attributes,omitempty" firestore:"attributes,omitempty"`
	Reviews    map[string]Review      `json:"reviews,omitempty" firestore:"reviews,omitempty"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// Review is stored inside the product's reviews map, keyed by ID.
type Review struct {
	ID        string     `json:"id" firestore:"id"`
	UserID    string     `json:"userId" firestore:"userId"`
	UserName  string     `json:"userName" firestore:"userName"`
	Rating    int        `json:"rating" firestore:"rating"`
	Comment   string     `json:"comment" firestore:"comment"`
	Reply     string     `json:"reply,omitempty" firestore:"reply,omitempty"`
	RepliedAt *time.Time `json:"repliedAt,omitempty" firestore:"repliedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt" firestore:"createdAt"`
}

// AverageRating returns 0 for a product without reviews.
func (p *Product) AverageRating() float64 {
	if len(p.Reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(p.Reviews))
}
