package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"NGOConnect/internal/auth"
)

// UserResolver resolves the user id embedded in a token against the
// credential store. A token whose user is gone is as good as no token.
type UserResolver interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*auth.User, error)
}

// tokenFromRequest prefers the session cookie and falls back to a bearer
// Authorization header for non-browser clients.
func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(auth.CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}

// JWT authenticates the request: verify the token, resolve the embedded user,
// attach both claims and user to the context. Runs before any role check.
func JWT(users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := tokenFromRequest(c)
			if tokenString == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
			}

			claims, err := auth.ValidateJWT(tokenString)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid token"})
			}

			userID, err := primitive.ObjectIDFromHex(claims.UserID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Invalid token"})
			}

			user, err := users.FindByID(c.Request().Context(), userID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "Authentication failed"})
			}
			if user == nil || !user.IsActive {
				return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not found"})
			}

			c.Set("claims", claims)
			c.Set("user", user)
			return next(c)
		}
	}
}

// CurrentUser returns the authenticated user attached by JWT.
func CurrentUser(c echo.Context) (*auth.User, bool) {
	user, ok := c.Get("user").(*auth.User)
	return user, ok && user != nil
}
