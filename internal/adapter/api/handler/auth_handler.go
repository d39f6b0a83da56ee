package handler

import (
	"github.com/labstack/echo/v4"

	"souqmanaqil/internal/adapter/api/middleware"
	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/usecase"
	"souqmanaqil/pkg/response"
)

type AuthHandler struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthHandler(authUseCase *usecase.AuthUseCase) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
	}
}

type submitRequest struct {
	Mode     string `json:"mode" validate:"required,oneof=login signup"`
	Phone    string `json:"phone" validate:"required"`
	Password string `json:"password" validate:"required,maxbytes=72"`
	Name     string `json:"name" validate:"required_if=Mode signup"`
	Role     string `json:"role" validate:"omitempty,oneof=user trader worker"`
	Location string `json:"location"`
}

type toggleRequest struct {
	Mode string `json:"mode" validate:"required,oneof=login signup"`
}

type authResponse struct {
	User    *entity.User `json:"user"`
	Token   string       `json:"token,omitempty"`
	IsGuest bool         `json:"isGuest"`
}

func toAuthResponse(result *usecase.AuthResult) authResponse {
	return authResponse{
		User:    result.User.Public(),
		Token:   result.Token,
		IsGuest: result.Guest,
	}
}

// Submit runs the login or signup form.
func (h *AuthHandler) Submit(c echo.Context) error {
	var req submitRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.authUseCase.Submit(c.Request().Context(), usecase.AuthMode(req.Mode), usecase.Credentials{
		Phone:    req.Phone,
		Password: req.Password,
		Name:     req.Name,
		Role:     entity.Role(req.Role),
		Location: req.Location,
	})
	if err != nil {
		return response.Error(c, err)
	}

	if req.Mode == string(usecase.AuthModeSignup) {
		return response.Created(c, toAuthResponse(result))
	}
	return response.Success(c, toAuthResponse(result))
}

// Toggle returns the mode the form switches to.
func (h *AuthHandler) Toggle(c echo.Context) error {
	var req toggleRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{
		"mode": string(usecase.AuthMode(req.Mode).Toggle()),
	})
}

func (h *AuthHandler) Guest(c echo.Context) error {
	return response.Success(c, toAuthResponse(h.authUseCase.Guest()))
}

func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authUseCase.Logout(c.Request().Context(), middleware.TokenFrom(c)); err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{
		"message": "Signed out",
	})
}

func (h *AuthHandler) RealtimeToken(c echo.Context) error {
	token, err := h.authUseCase.RealtimeToken(c.Request().Context(), identity(c))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{
		"token": token,
	})
}
