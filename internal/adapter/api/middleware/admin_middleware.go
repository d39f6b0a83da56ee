package middleware

import (
	"github.com/labstack/echo/v4"

	"souqmanaqil/pkg/errors"
	"souqmanaqil/pkg/response"
)

// AdminOnly must run after Authenticate.
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !IdentityFrom(c).IsAdmin() {
			return response.Error(c, errors.AccessDenied())
		}
		return next(c)
	}
}

// TraderOnly admits traders and admins.
func TraderOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity := IdentityFrom(c)
		if !identity.IsTrader() && !identity.IsAdmin() {
			return response.Error(c, errors.AccessDenied())
		}
		return next(c)
	}
}
