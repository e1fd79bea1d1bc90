package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/padraicbc/concursos/auth"
	mw "github.com/padraicbc/concursos/middleware"
	"github.com/padraicbc/concursos/services"
)

// Signin validates credentials, sets the session cookie and returns the token.
func (h *Handler) Signin(c echo.Context) error {
	var in services.SigninInput
	if err := bind(c, &in); err != nil {
		return err
	}

	sess, err := h.svc.Users.Signin(c.Request().Context(), in)
	if err != nil {
		return h.fail("AUTH_SIGNIN", err)
	}

	c.SetCookie(h.sessionCookie(sess.Token, sess.ExpiresAt))
	return c.JSON(http.StatusOK, sess)
}

// Signout clears the session cookie. Header tokens simply stop being sent.
func (h *Handler) Signout(c echo.Context) error {
	ck := h.sessionCookie("", time.Unix(0, 0))
	ck.MaxAge = -1
	c.SetCookie(ck)
	return c.NoContent(http.StatusNoContent)
}

// Me returns the resolved caller.
func (h *Handler) Me(c echo.Context) error {
	p := mw.Principal(c)
	if p == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) sessionCookie(value string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
