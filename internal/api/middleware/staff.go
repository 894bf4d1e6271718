package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// StaffOnly gates fleet-management routes behind the elevated role. It must
// run after Auth so an unauthenticated caller always sees 401 from Auth,
// never 403 from here.
func StaffOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			isStaff, _ := c.Get(ContextIsStaff).(bool)
			if !isStaff {
				return echo.NewHTTPError(http.StatusForbidden, "forbidden")
			}
			return next(c)
		}
	}
}
