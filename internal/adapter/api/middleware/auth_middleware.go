package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"souqmanaqil/internal/domain/entity"
	"souqmanaqil/internal/usecase"
	"souqmanaqil/pkg/errors"
	"souqmanaqil/pkg/response"
)

const (
	identityKey = "identity"
	tokenKey    = "token"
)

type AuthMiddleware struct {
	authUseCase *usecase.AuthUseCase
}

func NewAuthMiddleware(authUseCase *usecase.AuthUseCase) *AuthMiddleware {
	return &AuthMiddleware{
		authUseCase: authUseCase,
	}
}

// Authenticate requires a live session token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := BearerToken(c)
		if !ok {
			return response.Error(c, errors.Unauthorized("Authorization header is required", nil))
		}

		identity, err := m.authUseCase.Resolve(c.Request().Context(), token)
		if err != nil {
			return response.Error(c, err)
		}

		c.Set(identityKey, identity)
		c.Set(tokenKey, token)
		c.Set("uid", identity.UserID)
		return next(c)
	}
}

// Optional resolves the token when one is sent and lets guests through.
func (m *AuthMiddleware) Optional(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if token, ok := BearerToken(c); ok {
			if identity, err := m.authUseCase.Resolve(c.Request().Context(), token); err == nil {
				c.Set(identityKey, identity)
				c.Set(tokenKey, token)
				c.Set("uid", identity.UserID)
			}
		}
		return next(c)
	}
}

// BearerToken reads the Authorization header. Browsers cannot set headers
// on websocket upgrades, so a token query parameter is accepted too.
func BearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}

	if token := c.QueryParam("token"); token != "" {
		return token, true
	}
	return "", false
}

// IdentityFrom returns the caller, or a guest when no session was resolved.
func IdentityFrom(c echo.Context) entity.Identity {
	if identity, ok := c.Get(identityKey).(entity.Identity); ok {
		return identity
	}
	return entity.Identity{Guest: true}
}

func TokenFrom(c echo.Context) string {
	token, _ := c.Get(tokenKey).(string)
	return token
}
