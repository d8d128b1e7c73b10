package admin

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"NGOConnect/internal/apperr"
	"NGOConnect/internal/auth"
)

type AdminHandler struct {
	service *AdminService
}

func NewAdminHandler(service *AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

func currentUser(c echo.Context) (*auth.User, bool) {
	user, ok := c.Get("user").(*auth.User)
	return user, ok && user != nil
}

func fail(c echo.Context, err error) error {
	return c.JSON(apperr.Status(err), map[string]string{"message": apperr.Message(err)})
}

func (h *AdminHandler) CreateNGO(c echo.Context) error {
	var req CreateNGORequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}
	identity, err := h.service.CreateNGO(c.Request().Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "NGO created successfully",
		"ngo":     identity,
	})
}

func (h *AdminHandler) CreateFrontliner(c echo.Context) error {
	var req CreateFrontlinerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}
	identity, err := h.service.CreateFrontliner(c.Request().Context(), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message":    "Frontliner created successfully",
		"frontliner": identity,
	})
}

func (h *AdminHandler) ListNGOs(c echo.Context) error {
	ngos, err := h.service.ListNGOs(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "NGOs retrieved successfully",
		"count":   len(ngos),
		"ngos":    ngos,
	})
}

func (h *AdminHandler) ListFrontliners(c echo.Context) error {
	frontliners, err := h.service.ListFrontliners(c.Request().Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "Frontliners retrieved successfully",
		"count":       len(frontliners),
		"frontliners": frontliners,
	})
}

func (h *AdminHandler) UpdateSettings(c echo.Context) error {
	user, ok := currentUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
	}
	var req UpdateSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}
	identity, err := h.service.UpdateSettings(c.Request().Context(), user.ID, c.Param("userId"), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Admin settings updated successfully",
		"admin":   identity,
	})
}

func (h *AdminHandler) ToggleUserStatus(c echo.Context) error {
	var req ToggleStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}
	identity, err := h.service.ToggleStatus(c.Request().Context(), c.Param("userId"), req.IsActive)
	if err != nil {
		return fail(c, err)
	}
	verb := "deactivated"
	if req.IsActive {
		verb = "activated"
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("User %s successfully", verb),
		"user":    identity,
	})
}
