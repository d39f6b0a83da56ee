package repository

import (
	"context"

	"souqmanaqil/internal/domain/entity"
)

type ProductFilter struct {
	Category     entity.Category
	SellerID     string
	ActiveOnly   bool
	PromotedOnly bool
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error
	// AdjustStock adds delta and clamps the result at zero.
	AdjustStock(ctx context.Context, id string, delta int) (int, error)
	// Toggle flips a boolean field and returns its new value.
	Toggle(ctx context.Context, id string, field string) (bool, error)
	IncrementViews(ctx context.Context, id string) error
	IncrementLikes(ctx context.Context, id string) error
	AddReview(ctx context.Context, id string, review entity.Review) error
	ReplyToReview(ctx context.Context, id, reviewID, reply string) error
	Delete(ctx context.Context, id string) error
	Watch(ctx context.Context, filter ProductFilter, fn func([]*entity.Product)) error
}
