package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/domain/repository"
	"souqmanaqil/pkg/errors"
)

func TestCreateProductRequiresTrader(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	buyer := f.register(t, "0911", "Sara", entity.RoleUser)
	trader := f.register(t, "0912345", "Ahmed", entity.RoleTrader)

	_, err := f.catalog.CreateProduct(ctx, buyer, CreateProductInput{Title: "x", Category: entity.CategoryOther})
	assert.True(t, errors.Is(err, errors.CodeForbidden))

	_, err = f.catalog.CreateProduct(ctx, trader, CreateProductInput{Title: "x", Category: "boats"})
	assert.True(t, errors.Is(err, errors.CodeBadRequest))

	p, err := f.catalog.CreateProduct(ctx, trader, CreateProductInput{Title: "طماطم", Category: entity.CategoryAgriculture, Price: 500, Stock: 3})
	require.NoError(t, err)
	assert.Equal(t, "0912345", p.SellerID)
	assert.Equal(t, "Ahmed", p.SellerName)
	assert.Equal(t, defaultCurrency, p.Currency)
	assert.True(t, p.Active)
}

func TestListProductsKeywordFilter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	trader := f.register(t, "0912345", "Ahmed", entity.RoleTrader)
	f.product(t, trader, "طماطم طازجة", 5)
	f.product(t, trader, "Honey jar", 2)

	all, err := f.catalog.ListProducts(ctx, ProductQuery{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	matches, err := f.catalog.ListProducts(ctx, ProductQuery{Keyword: "HONEY"})
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Honey jar", matches[0].Title)

	matches, err = f.catalog.ListProducts(ctx, ProductQuery{Keyword: "طازجه"})
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	matches, err = f.catalog.ListProducts(ctx, ProductQuery{
		ProductFilter: repository.ProductFilter{Category: entity.CategoryVehicles},
	})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestGetProductCountsViews(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	trader := f.register(t, "0912345", "Ahmed", entity.RoleTrader)
	p := f.product(t, trader, "Honey", 1)

	got, err := f.catalog.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Views)

	got, err = f.catalog.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Views)

	_, err = f.catalog.GetProduct(ctx, "missing")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestAddReviewAndLike(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	trader := f.register(t, "0912345", "Ahmed", entity.RoleTrader)
	buyer := f.register(t, "0911", "Sara", entity.RoleUser)
	p := f.product(t, trader, "Honey", 1)

	_, err := f.catalog.AddReview(ctx, buyer, p.ID, 6, "")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
	_, err = f.catalog.AddReview(ctx, trader, p.ID, 5, "mine")
	assert.True(t, errors.Is(err, errors.CodeBadRequest))
	_, err = f.catalog.AddReview(ctx, entity.Identity{Guest: true}, p.ID, 5, "")
	assert.True(t, errors.Is(err, errors.CodeUnauthorized))

	review, err := f.catalog.AddReview(ctx, buyer, p.ID, 4, " good ")
	require.NoError(t, err)
	assert.Equal(t, "good", review.Comment)

	require.NoError(t, f.catalog.Like(ctx, p.ID))

	got, err := f.products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Len(t, got.Reviews, 1)
	assert.Equal(t, 1, got.Likes)
}

func TestStoriesExpire(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	trader := f.register(t, "0912345", "Ahmed", entity.RoleTrader)

	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	f.catalog.now = func() time.Time { return now }

	story, err := f.catalog.CreateStory(ctx, trader, StoryInput{Image: "https://img/1.png", HasOffer: true, Category: "عروض"})
	require.NoError(t, err)

	live, err := f.catalog.ListStories(ctx)
	require.NoError(t, err)
	assert.Len(t, live, 1)

	now = now.Add(25 * time.Hour)
	live, err = f.catalog.ListStories(ctx)
	require.NoError(t, err)
	assert.Empty(t, live)

	other := f.register(t, "0913", "Omar", entity.RoleTrader)
	assert.True(t, errors.Is(f.catalog.DeleteStory(ctx, other, story.ID), errors.CodeForbidden))
	assert.NoError(t, f.catalog.DeleteStory(ctx, trader, story.ID))
}

func TestTickerListsPromotedActiveProducts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	trader := f.register(t, "0912345", "Ahmed", entity.RoleTrader)
	promoted := f.product(t, trader, "Tractor", 1)
	hidden := f.product(t, trader, "Plough", 1)
	f.product(t, trader, "Seeds", 1)

	_, err := f.products.Toggle(ctx, promoted.ID, "promoted")
	require.NoError(t, err)
	_, err = f.products.Toggle(ctx, hidden.ID, "promoted")
	require.NoError(t, err)
	_, err = f.products.Toggle(ctx, hidden.ID, "active")
	require.NoError(t, err)

	items, err := f.catalog.Ticker(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, promoted.ID, items[0].ProductID)
	assert.Equal(t, "Tractor | 100 SDG", items[0].Text)
}

func TestWatchProductsAppliesKeyword(t *testing.T) {
	f := newFixture(t)
	trader := f.register(t, "0912345", "Ahmed", entity.RoleTrader)

	ctx, cancel := context.WithCancel(context.Background())
	pushes := make(chan []*entity.Product, 16)
	done := make(chan error, 1)
	go func() {
		done <- f.catalog.WatchProducts(ctx, ProductQuery{Keyword: "honey"}, func(ps []*entity.Product) {
			pushes <- ps
		})
	}()

	assert.Empty(t, <-pushes)
	f.product(t, trader, "Seeds", 1)
	f.product(t, trader, "Honey", 1)

	require.Eventually(t, func() bool {
		select {
		case ps := <-pushes:
			return len(ps) == 1 && ps[0].Title == "Honey"
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
