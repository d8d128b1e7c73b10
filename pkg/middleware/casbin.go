package middleware

import (
	"net/http"
	"sync"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/labstack/echo/v4"

	"NGOConnect/internal/auth"
)

var (
	enforcer     *casbin.Enforcer
	enforcerOnce sync.Once
	enforcerErr  error
)

// rbacModel is the Casbin model, kept in code so the binary is self-contained.
const rbacModel = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// rbacPolicies maps each role to its route prefix. Routes outside these
// prefixes are gated by authentication alone.
var rbacPolicies = [][]string{
	{auth.RoleAdmin, "/api/v1/admin/*", "*"},
	{auth.RolePartnerNGO, "/api/v1/ngo/*", "*"},
	{auth.RoleFrontliner, "/api/v1/frontliner/*", "*"},
}

// Enforcer builds the singleton Casbin enforcer from the embedded model and
// policy table.
func Enforcer() (*casbin.Enforcer, error) {
	enforcerOnce.Do(func() {
		m, err := model.NewModelFromString(rbacModel)
		if err != nil {
			enforcerErr = err
			return
		}
		e, err := casbin.NewEnforcer(m)
		if err != nil {
			enforcerErr = err
			return
		}
		if _, err := e.AddPolicies(rbacPolicies); err != nil {
			enforcerErr = err
			return
		}
		enforcer = e
	})
	return enforcer, enforcerErr
}

// Casbin authorizes the authenticated user's role against the request path
// and method. Role mismatch is a 403; the resource handlers never run.
func Casbin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := CurrentUser(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"message": "User not authenticated"})
		}

		enf, err := Enforcer()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
		}

		allowed, err := enf.Enforce(user.Role, c.Request().URL.Path, c.Request().Method)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Server error"})
		}
		if !allowed {
			return c.JSON(http.StatusForbidden, map[string]string{"message": "Access denied. Insufficient privileges."})
		}
		return next(c)
	}
}
