package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"NGOConnect/internal/auth"
)

type fakeResolver struct {
	users map[primitive.ObjectID]*auth.User
}

func (f *fakeResolver) FindByID(_ context.Context, id primitive.ObjectID) (*auth.User, error) {
	return f.users[id], nil
}

func okHandler(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func runJWT(t *testing.T, resolver *fakeResolver, mutate func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/profile", nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := JWT(resolver)(okHandler)(c); err != nil {
		t.Fatalf("middleware: %v", err)
	}
	return rec
}

func seedResolver(role string, active bool) (*fakeResolver, *auth.User) {
	u := &auth.User{ID: primitive.NewObjectID(), Name: "U", Role: role, IsActive: active, IsVerified: true}
	return &fakeResolver{users: map[primitive.ObjectID]*auth.User{u.ID: u}}, u
}

func TestJWTMissingToken(t *testing.T) {
	resolver, _ := seedResolver(auth.RoleFrontliner, true)
	rec := runJWT(t, resolver, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTGarbageToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	resolver, _ := seedResolver(auth.RoleFrontliner, true)
	rec := runJWT(t, resolver, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "not-a-jwt"})
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTValidCookie(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	resolver, u := seedResolver(auth.RolePartnerNGO, true)
	token, err := auth.GenerateJWT(u.ID.Hex(), u.Role, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	rec := runJWT(t, resolver, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	})
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
}

func TestJWTBearerFallback(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	resolver, u := seedResolver(auth.RoleAdmin, true)
	token, err := auth.GenerateJWT(u.ID.Hex(), u.Role, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	rec := runJWT(t, resolver, func(req *http.Request) {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	})
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestJWTDeactivatedUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	resolver, u := seedResolver(auth.RoleFrontliner, false)
	token, err := auth.GenerateJWT(u.ID.Hex(), u.Role, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	rec := runJWT(t, resolver, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestJWTUnknownUser(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	resolver := &fakeResolver{users: map[primitive.ObjectID]*auth.User{}}
	token, err := auth.GenerateJWT(primitive.NewObjectID().Hex(), auth.RoleFrontliner, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	rec := runJWT(t, resolver, func(req *http.Request) {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
