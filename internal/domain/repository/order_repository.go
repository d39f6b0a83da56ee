package repository

import (
	"context"

	"souqmanaqil/internal/domain/entity"
)

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	// ListBySeller returns orders that include sellerID, newest first.
	ListBySeller(ctx context.Context, sellerID string) ([]*entity.Order, error)
	List(ctx context.Context) ([]*entity.Order, error)
	WatchBySeller(ctx context.Context, sellerID string, fn func([]*entity.Order)) error
}
