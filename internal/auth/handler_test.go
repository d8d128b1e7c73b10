package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func postJSON(e *echo.Echo, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestLoginSetsSessionCookie(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc, store, _ := newTestService()
	seedUser(store, "ngo@example.org", "right-pw", RolePartnerNGO, true, true)
	h := NewAuthHandler(svc)

	e := echo.New()
	c, rec := postJSON(e, "/api/v1/users/login", `{"email":"ngo@example.org","password":"right-pw"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	res := rec.Result()
	var session *http.Cookie
	for _, ck := range res.Cookies() {
		if ck.Name == CookieName {
			session = ck
		}
	}
	if session == nil {
		t.Fatal("no session cookie set")
	}
	if session.Value == "" {
		t.Error("empty cookie value")
	}
	if !session.HttpOnly {
		t.Error("cookie not HttpOnly")
	}
	if session.SameSite != http.SameSiteLaxMode {
		t.Errorf("SameSite = %v, want Lax", session.SameSite)
	}

	claims, err := ValidateJWT(session.Value)
	if err != nil {
		t.Fatalf("cookie does not carry a valid token: %v", err)
	}
	if claims.Role != RolePartnerNGO {
		t.Errorf("claims.Role = %q", claims.Role)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	svc, store, _ := newTestService()
	seedUser(store, "ngo@example.org", "right-pw", RolePartnerNGO, true, true)
	h := NewAuthHandler(svc)

	e := echo.New()
	c, rec := postJSON(e, "/api/v1/users/login", `{"email":"ngo@example.org","password":"wrong"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("cookie set on failed login")
	}
}

func TestLogoutExpiresCookie(t *testing.T) {
	svc, _, _ := newTestService()
	h := NewAuthHandler(svc)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Logout(c); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var session *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == CookieName {
			session = ck
		}
	}
	if session == nil {
		t.Fatal("no expiring cookie set")
	}
	if session.MaxAge != -1 {
		t.Errorf("MaxAge = %d, want -1", session.MaxAge)
	}
}

func TestRegisterHandlerValidation(t *testing.T) {
	svc, _, _ := newTestService()
	h := NewAuthHandler(svc)

	e := echo.New()
	c, rec := postJSON(e, "/api/v1/users/register", `{"email":"only@example.org"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
