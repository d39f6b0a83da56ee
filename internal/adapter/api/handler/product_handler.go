package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/domain/repository"
	"souqmanaqil/internal/usecase"
	"souqmanaqil/pkg/errors"
	"souqmanaqil/pkg/response"
)

type ProductHandler struct {
	catalogUseCase *usecase.CatalogUseCase
}

func NewProductHandler(catalogUseCase *usecase.CatalogUseCase) *ProductHandler {
	return &ProductHandler{
		catalogUseCase: catalogUseCase,
	}
}

type createProductRequest struct {
	Title       string                 `json:"title" validate:"required,max=120"`
	Description string                 `json:"description" validate:"max=2000"`
	Price       float64                `json:"price" validate:"gte=0"`
	Currency    string                 `json:"currency" validate:"omitempty,len=3"`
	Category    string                 `json:"category" validate:"required,oneof=vehicles real_estate electronics home_made agriculture other"`
	Image       string                 `json:"image"`
	Location    string                 `json:"location"`
	Coordinates *entity.GeoPoint       `json:"coordinates"`
	Stock       int                    `json:"stock" validate:"gte=0"`
	Attributes  map[string]interface{} `json:"attributes"`
}

type reviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

// productQuery reads the shared listing filters from the query string.
func productQuery(c echo.Context) (usecase.ProductQuery, error) {
	q := usecase.ProductQuery{
		ProductFilter: repository.ProductFilter{
			Category: entity.Category(c.QueryParam("category")),
			SellerID: c.QueryParam("seller"),
		},
		Keyword: c.QueryParam("q"),
	}
	if q.Category != "" && !q.Category.Valid() {
		return q, errors.BadRequest("Invalid category", nil)
	}
	if v := c.QueryParam("promoted"); v != "" {
		promoted, err := strconv.ParseBool(v)
		if err != nil {
			return q, errors.BadRequest("Invalid promoted filter", err)
		}
		q.PromotedOnly = promoted
	}
	// Hidden listings only show up for their seller and admins.
	caller := identity(c)
	showAll := c.QueryParam("all") == "true" &&
		(caller.IsAdmin() || (caller.Authenticated() && q.SellerID == caller.UserID))
	q.ActiveOnly = !showAll
	return q, nil
}

func (h *ProductHandler) ListProducts(c echo.Context) error {
	q, err := productQuery(c)
	if err != nil {
		return response.Error(c, err)
	}

	products, err := h.catalogUseCase.ListProducts(c.Request().Context(), q)
	if err != nil {
		return response.Error(c, err)
	}

	return paginated(c, products)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	product, err := h.catalogUseCase.GetProduct(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.catalogUseCase.CreateProduct(c.Request().Context(), identity(c), usecase.CreateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Currency:    req.Currency,
		Category:    entity.Category(req.Category),
		Image:       req.Image,
		Location:    req.Location,
		Coordinates: req.Coordinates,
		Stock:       req.Stock,
		Attributes:  req.Attributes,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, product)
}

func (h *ProductHandler) AddReview(c echo.Context) error {
	var req reviewRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	review, err := h.catalogUseCase.AddReview(c.Request().Context(), identity(c), c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, review)
}

func (h *ProductHandler) Like(c echo.Context) error {
	if err := h.catalogUseCase.Like(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{
		"message": "Liked",
	})
}

func (h *ProductHandler) Ticker(c echo.Context) error {
	items, err := h.catalogUseCase.Ticker(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, items)
}
