package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/domain/repository"
	"souqmanaqil/pkg/errors"
	"souqmanaqil/pkg/logger"
	"souqmanaqil/pkg/utils"
)

const defaultCurrency = "SDG"

type CatalogUseCase struct {
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	storyRepo   repository.StoryRepository
	now         func() time.Time
}

func NewCatalogUseCase(
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	storyRepo repository.StoryRepository,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo: productRepo,
		userRepo:    userRepo,
		storyRepo:   storyRepo,
		now:         time.Now,
	}
}

// ProductQuery narrows the stored list, then matches Keyword against the
// fetched products.
type ProductQuery struct {
	repository.ProductFilter
	Keyword string
}

type CreateProductInput struct {
	Title       string
	Description string
	Price       float64
	Currency    string
	Category    entity.Category
	Image       string
	Location    string
	Coordinates *entity.GeoPoint
	Stock       int
	Attributes  map[string]interface{}
}

type StoryInput struct {
	Image    string
	HasOffer bool
	Category string
}

type TickerItem struct {
	ProductID string `json:"productId"`
	Text      string `json:"text"`
}

func (uc *CatalogUseCase) ListProducts(ctx context.Context, q ProductQuery) ([]*entity.Product, error) {
	products, err := uc.productRepo.List(ctx, q.ProductFilter)
	if err != nil {
		return nil, err
	}
	return filterProducts(products, q.Keyword), nil
}

func (uc *CatalogUseCase) WatchProducts(ctx context.Context, q ProductQuery, fn func([]*entity.Product)) error {
	return uc.productRepo.Watch(ctx, q.ProductFilter, func(products []*entity.Product) {
		fn(filterProducts(products, q.Keyword))
	})
}

// GetProduct reads a listing and counts the view.
func (uc *CatalogUseCase) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := uc.productRepo.IncrementViews(ctx, id); err != nil {
		logger.Warn("Failed to count view of product %s: %v", id, err)
	} else {
		product.Views++
	}
	return product, nil
}

func (uc *CatalogUseCase) CreateProduct(ctx context.Context, identity entity.Identity, input CreateProductInput) (*entity.Product, error) {
	if !identity.IsTrader() && !identity.IsAdmin() {
		return nil, errors.Forbidden("Only traders can publish listings", nil)
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, errors.BadRequest("Title is required", nil)
	}
	if !input.Category.Valid() {
		return nil, errors.BadRequest("Invalid category", nil)
	}
	if input.Price < 0 {
		return nil, errors.BadRequest("Price cannot be negative", nil)
	}
	if input.Stock < 0 {
		return nil, errors.BadRequest("Stock cannot be negative", nil)
	}

	seller, err := uc.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}

	currency := input.Currency
	if currency == "" {
		currency = defaultCurrency
	}
	location := strings.TrimSpace(input.Location)
	if location == "" {
		location = seller.Location
	}

	product := &entity.Product{
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Price:       input.Price,
		Currency:    currency,
		Category:    input.Category,
		Image:       input.Image,
		SellerID:    seller.ID,
		SellerName:  seller.Name,
		SellerPhone: seller.Phone,
		Location:    location,
		Coordinates: input.Coordinates,
		Stock:       input.Stock,
		Active:      true,
		Attributes:  input.Attributes,
	}
	if err := uc.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

func (uc *CatalogUseCase) AddReview(ctx context.Context, identity entity.Identity, productID string, rating int, comment string) (*entity.Review, error) {
	if !identity.Authenticated() {
		return nil, errors.Unauthorized("Sign in to leave a review", nil)
	}
	if rating < 1 || rating > 5 {
		return nil, errors.BadRequest("Rating must be between 1 and 5", nil)
	}

	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID == identity.UserID {
		return nil, errors.BadRequest("You cannot review your own listing", nil)
	}

	review := entity.Review{
		ID:        uuid.New().String(),
		UserID:    identity.UserID,
		UserName:  identity.Name,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: uc.now().UTC(),
	}
	if err := uc.productRepo.AddReview(ctx, productID, review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (uc *CatalogUseCase) Like(ctx context.Context, productID string) error {
	return uc.productRepo.IncrementLikes(ctx, productID)
}

// ListStories returns stories younger than entity.StoryLifetime.
func (uc *CatalogUseCase) ListStories(ctx context.Context) ([]*entity.MarketStory, error) {
	stories, err := uc.storyRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	live := make([]*entity.MarketStory, 0, len(stories))
	for _, s := range stories {
		if !s.Expired(now) {
			live = append(live, s)
		}
	}
	return live, nil
}

func (uc *CatalogUseCase) CreateStory(ctx context.Context, identity entity.Identity, input StoryInput) (*entity.MarketStory, error) {
	if !identity.IsTrader() && !identity.IsAdmin() {
		return nil, errors.Forbidden("Only traders can publish stories", nil)
	}
	if input.Image == "" {
		return nil, errors.BadRequest("Image is required", nil)
	}

	story := &entity.MarketStory{
		SellerID:   identity.UserID,
		SellerName: identity.Name,
		Image:      input.Image,
		HasOffer:   input.HasOffer,
		Category:   input.Category,
		CreatedAt:  uc.now().UTC(),
	}
	if err := uc.storyRepo.Create(ctx, story); err != nil {
		return nil, err
	}
	return story, nil
}

func (uc *CatalogUseCase) DeleteStory(ctx context.Context, identity entity.Identity, id string) error {
	story, err := uc.storyRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if story.SellerID != identity.UserID && !identity.IsAdmin() {
		return errors.AccessDenied()
	}
	return uc.storyRepo.Delete(ctx, id)
}

// Ticker lists one line per promoted, visible listing, newest first.
func (uc *CatalogUseCase) Ticker(ctx context.Context) ([]TickerItem, error) {
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{
		ActiveOnly:   true,
		PromotedOnly: true,
	})
	if err != nil {
		return nil, err
	}

	items := make([]TickerItem, 0, len(products))
	for _, p := range products {
		items = append(items, TickerItem{
			ProductID: p.ID,
			Text:      tickerLine(p),
		})
	}
	return items, nil
}

func tickerLine(p *entity.Product) string {
	price := strconv.FormatFloat(p.Price, 'f', -1, 64)
	if p.Location != "" {
		return fmt.Sprintf("%s | %s %s | %s", p.Title, price, p.Currency, p.Location)
	}
	return fmt.Sprintf("%s | %s %s", p.Title, price, p.Currency)
}

func filterProducts(products []*entity.Product, keyword string) []*entity.Product {
	if strings.TrimSpace(keyword) == "" {
		return products
	}
	out := make([]*entity.Product, 0, len(products))
	for _, p := range products {
		if utils.MatchesKeyword(keyword, p.Title, p.Description, p.Location, p.SellerName) {
			out = append(out, p)
		}
	}
	return out
}
