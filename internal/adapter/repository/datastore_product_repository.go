package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/domain/repository"
	"souqmanaqil/internal/infrastructure/datastore"
	"souqmanaqil/pkg/errors"
	"souqmanaqil/pkg/logger"
)

// Flags that Toggle may flip.
var toggleFields = map[string]bool{
	"active":   true,
	"promoted": true,
}

type productRepository struct {
	store datastore.Store
}

func NewProductRepository(store datastore.Store) repository.ProductRepository {
	return &productRepository{
		store: store,
	}
}

func productPath(id string) string {
	return datastore.Join(productsCollection, id)
}

func productQuery(filter repository.ProductFilter) datastore.Query {
	q := datastore.Query{}
	if filter.Category != "" {
		q = q.Where("category", datastore.OpEqual, string(filter.Category))
	}
	if filter.SellerID != "" {
		q = q.Where("sellerId", datastore.OpEqual, filter.SellerID)
	}
	if filter.ActiveOnly {
		q = q.Where("active", datastore.OpEqual, true)
	}
	if filter.PromotedOnly {
		q = q.Where("promoted", datastore.OpEqual, true)
	}
	return q
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	ts := now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = ts
	}
	product.UpdatedAt = ts

	return mapError("Product", r.store.Create(ctx, productPath(product.ID), product))
}

func (r *productRepository) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var product entity.Product
	if err := r.store.Get(ctx, productPath(id), &product); err != nil {
		return nil, mapError("Product", err)
	}
	if product.ID == "" {
		product.ID = id
	}
	return &product, nil
}

func (r *productRepository) List(ctx context.Context, filter repository.ProductFilter) ([]*entity.Product, error) {
	docs, err := r.store.List(ctx, productsCollection, productQuery(filter))
	if err != nil {
		return nil, mapError("Product", err)
	}
	return decodeProducts(docs)
}

func (r *productRepository) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	return mapError("Product", r.store.Update(ctx, productPath(id), withUpdatedAt(fields)))
}

func (r *productRepository) AdjustStock(ctx context.Context, id string, delta int) (int, error) {
	var (
		product entity.Product
		stock   int
	)
	err := r.store.Mutate(ctx, productPath(id), &product, func() (map[string]interface{}, error) {
		stock = product.Stock + delta
		if stock < 0 {
			stock = 0
		}
		return map[string]interface{}{
			"stock":     stock,
			"updatedAt": now(),
		}, nil
	})
	if err != nil {
		return 0, mapError("Product", err)
	}
	return stock, nil
}

func (r *productRepository) Toggle(ctx context.Context, id string, field string) (bool, error) {
	if !toggleFields[field] {
		return false, errors.BadRequest(fmt.Sprintf("Field %q cannot be toggled", field), nil)
	}

	var (
		product entity.Product
		value   bool
	)
	err := r.store.Mutate(ctx, productPath(id), &product, func() (map[string]interface{}, error) {
		switch field {
		case "active":
			value = !product.Active
		case "promoted":
			value = !product.Promoted
		}
		return map[string]interface{}{
			field:       value,
			"updatedAt": now(),
		}, nil
	})
	if err != nil {
		return false, mapError("Product", err)
	}
	return value, nil
}

func (r *productRepository) IncrementViews(ctx context.Context, id string) error {
	return mapError("Product", r.store.Update(ctx, productPath(id), map[string]interface{}{
		"views": datastore.Increment{By: 1},
	}))
}

func (r *productRepository) IncrementLikes(ctx context.Context, id string) error {
	return mapError("Product", r.store.Update(ctx, productPath(id), map[string]interface{}{
		"likes": datastore.Increment{By: 1},
	}))
}

func (r *productRepository) AddReview(ctx context.Context, id string, review entity.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now()
	}

	return mapError("Product", r.store.Update(ctx, productPath(id), map[string]interface{}{
		"reviews." + review.ID: review,
		"updatedAt":            now(),
	}))
}

func (r *productRepository) ReplyToReview(ctx context.Context, id, reviewID, reply string) error {
	var product entity.Product
	err := r.store.Mutate(ctx, productPath(id), &product, func() (map[string]interface{}, error) {
		if _, ok := product.Reviews[reviewID]; !ok {
			return nil, errors.NotFound("Review", nil)
		}
		ts := now()
		return map[string]interface{}{
			"reviews." + reviewID + ".reply":     reply,
			"reviews." + reviewID + ".repliedAt": ts,
			"updatedAt":                          ts,
		}, nil
	})
	return mapError("Product", err)
}

func (r *productRepository) Delete(ctx context.Context, id string) error {
	return mapError("Product", r.store.Delete(ctx, productPath(id)))
}

func (r *productRepository) Watch(ctx context.Context, filter repository.ProductFilter, fn func([]*entity.Product)) error {
	return r.store.Watch(ctx, productsCollection, productQuery(filter), func(docs []*datastore.Document) {
		products, err := decodeProducts(docs)
		if err != nil {
			logger.Warn("Skipping undecodable products snapshot: %v", err)
			return
		}
		fn(products)
	})
}

func decodeProducts(docs []*datastore.Document) ([]*entity.Product, error) {
	products, err := datastore.Decode[entity.Product](docs)
	if err != nil {
		return nil, mapError("Product", err)
	}
	for i, product := range products {
		if product.ID == "" {
			product.ID = docs[i].ID
		}
	}
	byCreation(products, func(p *entity.Product) time.Time { return p.CreatedAt }, true)
	return products, nil
}
