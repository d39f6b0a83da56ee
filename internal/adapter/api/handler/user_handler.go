package handler

import (
	"github.com/labstack/echo/v4"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/usecase"
	"souqmanaqil/pkg/response"
)

type UserHandler struct {
	directoryUseCase *usecase.DirectoryUseCase
}

func NewUserHandler(directoryUseCase *usecase.DirectoryUseCase) *UserHandler {
	return &UserHandler{
		directoryUseCase: directoryUseCase,
	}
}

type updateProfileRequest struct {
	Name     *string             `json:"name" validate:"omitempty,min=2,max=80"`
	Location *string             `json:"location" validate:"omitempty,max=120"`
	Avatar   *string             `json:"avatar" validate:"omitempty"`
	Bio      *string             `json:"bio" validate:"omitempty,max=500"`
	Store    *entity.StoreConfig `json:"store"`
}

func (r updateProfileRequest) patch() usecase.ProfileUpdate {
	return usecase.ProfileUpdate{
		Name:     r.Name,
		Location: r.Location,
		Avatar:   r.Avatar,
		Bio:      r.Bio,
		Store:    r.Store,
	}
}

func (h *UserHandler) GetMe(c echo.Context) error {
	user, err := h.directoryUseCase.GetProfile(c.Request().Context(), identity(c).UserID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user.Public())
}

func (h *UserHandler) UpdateMe(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	user, err := h.directoryUseCase.UpdateProfile(c.Request().Context(), identity(c).UserID, req.patch())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, user.Public())
}

// GetUser is the public seller profile.
func (h *UserHandler) GetUser(c echo.Context) error {
	user, err := h.directoryUseCase.GetProfile(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	public := user.Public()
	public.Balance = 0
	public.Staff = nil
	return response.Success(c, public)
}
