package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/concursos/auth"
)

const principalKey = "principal"

// Session resolves the caller from the Authorization header or the session
// cookie. It never rejects; anonymous requests carry no principal.
func Session(r *auth.Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(echo.HeaderAuthorization)
			if token == "" {
				if ck, err := c.Cookie(auth.SessionCookie); err == nil {
					token = ck.Value
				}
			}
			if token != "" {
				if p, err := r.Resolve(token); err == nil {
					c.Set(principalKey, p)
				}
			}
			return next(c)
		}
	}
}

// Principal returns the resolved caller or nil.
func Principal(c echo.Context) *auth.Principal {
	p, _ := c.Get(principalKey).(*auth.Principal)
	return p
}

// Gate redirects non-admin callers away from paths under any of prefixes.
func Gate(prefixes []string, landing string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if guarded(c.Request().URL.Path, prefixes) && !auth.IsAdmin(Principal(c)) {
				return c.Redirect(http.StatusFound, landing)
			}
			return next(c)
		}
	}
}

// guarded matches whole path segments: "/dashboard" covers "/dashboard" and
// "/dashboard/x" but not "/dashboards".
func guarded(path string, prefixes []string) bool {
	for _, p := range prefixes {
		p = strings.TrimRight(p, "/")
		if p == "" {
			continue
		}
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
