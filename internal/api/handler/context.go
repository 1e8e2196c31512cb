package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskhub/task-management-api/internal/api/middleware"
	"github.com/taskhub/task-management-api/internal/core/domain"
)

// currentPrincipal extracts the principal injected by the Auth middleware.
// A missing principal means the middleware did not run; reject with 401
// before any service call.
func currentPrincipal(c echo.Context) (domain.Principal, error) {
	p, ok := c.Get(middleware.PrincipalKey).(domain.Principal)
	if !ok || p.ID == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return p, nil
}
