package auth

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"

	"NGOConnect/internal/apperr"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "token"

type AuthHandler struct {
	service *UserService
}

func NewAuthHandler(service *UserService) *AuthHandler {
	return &AuthHandler{service: service}
}

func sessionCookie(value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   os.Getenv("APP_ENV") == "production",
	}
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}

	result, err := h.service.Register(c.Request().Context(), req)
	if err != nil {
		return c.JSON(apperr.Status(err), map[string]string{"message": apperr.Message(err)})
	}

	message := "User registered successfully. Please check your email to verify your account."
	if !result.EmailSent {
		message = "User registered successfully, but verification email could not be sent. Please contact support."
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": message,
		"user":    result.Identity,
	})
}

func (h *AuthHandler) Login(c echo.Context) error {
	var cred Credential
	if err := c.Bind(&cred); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}

	token, identity, err := h.service.Authenticate(c.Request().Context(), cred)
	if err != nil {
		return c.JSON(apperr.Status(err), map[string]string{"message": apperr.Message(err)})
	}

	c.SetCookie(sessionCookie(token, TokenTTL))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": fmt.Sprintf("Welcome back, %s", identity.Name),
		"user":    identity,
	})
}

func (h *AuthHandler) Logout(c echo.Context) error {
	cookie := sessionCookie("", 0)
	cookie.MaxAge = -1
	c.SetCookie(cookie)
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Logged out successfully.",
		"success": true,
	})
}

func (h *AuthHandler) Profile(c echo.Context) error {
	user, ok := c.Get("user").(*User)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
	}

	identity, err := h.service.Profile(c.Request().Context(), user.ID)
	if err != nil {
		return c.JSON(apperr.Status(err), map[string]string{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"user": identity})
}

func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	user, ok := c.Get("user").(*User)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}

	identity, err := h.service.UpdateProfile(c.Request().Context(), user.ID, req)
	if err != nil {
		return c.JSON(apperr.Status(err), map[string]string{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"user":    identity,
	})
}

func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	token := c.Param("token")
	if err := h.service.VerifyEmail(c.Request().Context(), token); err != nil {
		return c.JSON(apperr.Status(err), map[string]string{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Email verified successfully! You can now log in to your account.",
	})
}

func (h *AuthHandler) ResendVerification(c echo.Context) error {
	var req ResendVerificationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "Invalid request"})
	}

	if err := h.service.ResendVerification(c.Request().Context(), req.Email); err != nil {
		return c.JSON(apperr.Status(err), map[string]string{"message": apperr.Message(err)})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Verification email sent successfully. Please check your inbox.",
	})
}
