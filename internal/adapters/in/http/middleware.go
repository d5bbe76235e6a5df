package http

import (
	"net/http"
	"strings"
	"time"

	"crowdship/internal/core/application/usecases/commands"
	"crowdship/internal/core/application/usecases/queries"
	"crowdship/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

const (
	principalKey = "principal"
	tokenCookie  = "token"
)

var errNotLoggedIn = errs.NewUnauthenticatedError("you are not logged in")

// bearerToken prefers the Authorization header and falls back to the session cookie.
func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	if cookie, err := c.Cookie(tokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}

// authenticate resolves the caller and stores the principal on the context.
func (s *Server) authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		query, err := queries.NewAuthenticateQuery(bearerToken(c))
		if err != nil {
			return err
		}
		p, err := s.h.Authenticator.Handle(c.Request().Context(), query)
		if err != nil {
			return err
		}
		c.Set(principalKey, p)
		return next(c)
	}
}

// requireStaff lets only ADMIN and SUPPORT users through. It must run after authenticate.
func requireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		p, err := principal(c)
		if err != nil {
			return err
		}
		if !p.IsStaff() {
			return errs.NewAccessDeniedError("this action is restricted to staff")
		}
		return next(c)
	}
}

func principal(c echo.Context) (queries.Principal, error) {
	p, ok := c.Get(principalKey).(queries.Principal)
	if !ok {
		return queries.Principal{}, errNotLoggedIn
	}
	return p, nil
}

func (s *Server) setSessionCookie(c echo.Context, session commands.Session) {
	c.SetCookie(&http.Cookie{
		Name:     tokenCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     tokenCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
