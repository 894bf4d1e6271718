package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rentwheels/rental-api/internal/api/middleware"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// performs a fast-fail check before any service call: a zero user id means
// the middleware did not run (or the token carried no subject), so the
// request cannot be attributed to anyone — reject with 401.
func ctxIdentity(c echo.Context) (userID int64, isStaff bool, err error) {
	userID, _ = c.Get(middleware.ContextUserID).(int64)
	if userID == 0 {
		return 0, false, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	isStaff, _ = c.Get(middleware.ContextIsStaff).(bool)
	return userID, isStaff, nil
}
