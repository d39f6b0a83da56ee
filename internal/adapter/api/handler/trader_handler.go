package handler

import (
	"github.com/labstack/echo/v4"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/usecase"
	"souqmanaqil/pkg/response"
)

type TraderHandler struct {
	traderUseCase *usecase.TraderUseCase
}

func NewTraderHandler(traderUseCase *usecase.TraderUseCase) *TraderHandler {
	return &TraderHandler{
		traderUseCase: traderUseCase,
	}
}

type adjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

type replyRequest struct {
	Reply string `json:"reply" validate:"required,max=1000"`
}

type staffRequest struct {
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Position string `json:"position" validate:"max=60"`
}

type storeRequest struct {
	Name     *string             `json:"name" validate:"omitempty,min=2,max=80"`
	Location *string             `json:"location" validate:"omitempty,max=120"`
	Avatar   *string             `json:"avatar"`
	Bio      *string             `json:"bio" validate:"omitempty,max=500"`
	Store    *entity.StoreConfig `json:"store"`
}

func (h *TraderHandler) Dashboard(c echo.Context) error {
	dashboard, err := h.traderUseCase.Dashboard(c.Request().Context(), identity(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, dashboard)
}

func (h *TraderHandler) AdjustStock(c echo.Context) error {
	var req adjustStockRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	stock, err := h.traderUseCase.AdjustStock(c.Request().Context(), identity(c), c.Param("id"), req.Delta)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]int{
		"stock": stock,
	})
}

func (h *TraderHandler) ToggleVisibility(c echo.Context) error {
	active, err := h.traderUseCase.ToggleVisibility(c.Request().Context(), identity(c), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]bool{
		"active": active,
	})
}

func (h *TraderHandler) UpdateStore(c echo.Context) error {
	var req storeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.traderUseCase.UpdateStore(c.Request().Context(), identity(c), usecase.ProfileUpdate{
		Name:     req.Name,
		Location: req.Location,
		Avatar:   req.Avatar,
		Bio:      req.Bio,
		Store:    req.Store,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user.Public())
}

func (h *TraderHandler) ReplyToReview(c echo.Context) error {
	var req replyRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	err := h.traderUseCase.ReplyToReview(c.Request().Context(), identity(c), c.Param("id"), c.Param("reviewId"), req.Reply)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{
		"message": "Reply saved",
	})
}

func (h *TraderHandler) AddStaff(c echo.Context) error {
	var req staffRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	member, err := h.traderUseCase.AddStaff(c.Request().Context(), identity(c), usecase.StaffInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Position: req.Position,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, member)
}

func (h *TraderHandler) RemoveStaff(c echo.Context) error {
	if err := h.traderUseCase.RemoveStaff(c.Request().Context(), identity(c), c.Param("staffId")); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{
		"message": "Staff member removed",
	})
}
