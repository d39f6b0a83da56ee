package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/domain/repository"
	"souqmanaqil/internal/infrastructure/datastore"
	"souqmanaqil/pkg/logger"
)

type orderRepository struct {
	store datastore.Store
}

func NewOrderRepository(store datastore.Store) repository.OrderRepository {
	return &orderRepository{
		store: store,
	}
}

func sellerOrders(sellerID string) datastore.Query {
	return datastore.Query{}.Where("sellerIds", datastore.OpArrayContains, sellerID)
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now()
	}
	if order.Status == "" {
		order.Status = entity.OrderPending
	}

	return mapError("Order", r.store.Create(ctx, datastore.Join(ordersCollection, order.ID), order))
}

func (r *orderRepository) ListBySeller(ctx context.Context, sellerID string) ([]*entity.Order, error) {
	docs, err := r.store.List(ctx, ordersCollection, sellerOrders(sellerID))
	if err != nil {
		return nil, mapError("Order", err)
	}
	return decodeOrders(docs)
}

func (r *orderRepository) List(ctx context.Context) ([]*entity.Order, error) {
	docs, err := r.store.List(ctx, ordersCollection, datastore.Query{})
	if err != nil {
		return nil, mapError("Order", err)
	}
	return decodeOrders(docs)
}

func (r *orderRepository) WatchBySeller(ctx context.Context, sellerID string, fn func([]*entity.Order)) error {
	return r.store.Watch(ctx, ordersCollection, sellerOrders(sellerID), func(docs []*datastore.Document) {
		orders, err := decodeOrders(docs)
		if err != nil {
			logger.Warn("Skipping undecodable orders snapshot for %s: %v", sellerID, err)
			return
		}
		fn(orders)
	})
}

func decodeOrders(docs []*datastore.Document) ([]*entity.Order, error) {
	orders, err := datastore.Decode[entity.Order](docs)
	if err != nil {
		return nil, mapError("Order", err)
	}
	for i, order := range orders {
		if order.ID == "" {
			order.ID = docs[i].ID
		}
	}
	byCreation(orders, func(o *entity.Order) time.Time { return o.CreatedAt }, true)
	return orders, nil
}
