package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"souqmanaqil/internal/infrastructure/ratelimit"
	"souqmanaqil/pkg/errors"
	"souqmanaqil/pkg/logger"
	"souqmanaqil/pkg/response"
)

// RateLimit spends one token of action per request, keyed by client IP.
func RateLimit(limiter *ratelimit.RateLimiter, action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			allowed, retryAfter := limiter.Allow(ip, action)
			if !allowed {
				logger.Warn("RATE LIMIT: blocked %s request from %s (retry in %v)", action, ip, retryAfter)
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
				return response.Error(c, errors.TooManyRequests("Too many requests, try again later"))
			}
			return next(c)
		}
	}
}
