package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"NGOConnect/internal/apperr"
	"NGOConnect/internal/auth"
)

type DashboardHandler struct {
	service *DashboardService
}

func NewDashboardHandler(service *DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func currentUser(c echo.Context) (*auth.User, bool) {
	user, ok := c.Get("user").(*auth.User)
	return user, ok && user != nil
}

func fail(c echo.Context, err error) error {
	return c.JSON(apperr.Status(err), map[string]string{"message": apperr.Message(err)})
}

func (h *DashboardHandler) Admin(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
	}
	data, err := h.service.Admin(c.Request().Context(), user, c.Param("userId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "Dashboard data retrieved successfully",
		"dashboard": data,
	})
}

func (h *DashboardHandler) NGO(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
	}
	data, err := h.service.NGO(c.Request().Context(), user, c.Param("userId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "Dashboard data retrieved successfully",
		"dashboard": data,
	})
}

func (h *DashboardHandler) Frontliner(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
	}
	data, err := h.service.Frontliner(c.Request().Context(), user, c.Param("userId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":   "Dashboard data retrieved successfully",
		"dashboard": data,
	})
}
