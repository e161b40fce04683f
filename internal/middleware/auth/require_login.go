package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireLogin verifies the bearer token and stores the caller's identity
// claims in the request context. Role and ownership checks stay in the
// service layer; by the time a handler runs, user_id and is_admin are
// trusted values.
func RequireLogin(jwtSecret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := parseBearerToken(c.Request().Header.Get(echo.HeaderAuthorization), jwtSecret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			setUserContext(c, claims)
			return next(c)
		}
	}
}
