package handlers

import (
	"net/http"
	"sheetform/internal/contact"

	"github.com/labstack/echo/v4"
)

const (
	SessionCookie = "sheetform_session"
	submitterKey  = "submitter"
)

// Session resolves the caller's Submitter from the session cookie, issuing a
// new cookie when the caller has none or its session expired.
func Session(sessions *contact.Sessions) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var id string
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				id = cookie.Value
			}

			s, current := sessions.Get(id)
			if current != id {
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    current,
					Path:     "/",
					MaxAge:   int(sessions.TTL().Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(submitterKey, s)
			return next(c)
		}
	}
}

func submitter(c echo.Context) *contact.Submitter {
	return c.Get(submitterKey).(*contact.Submitter)
}
