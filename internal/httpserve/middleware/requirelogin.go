package middleware

import (
	"net/http"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

// RequireLogin redirects unauthenticated browser requests to the login page.
func RequireLogin(adminPath string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := session.Get("session", c)
			if err != nil {
				return echo.NewHTTPError(http.StatusInternalServerError, "Could not get session")
			}

			if sess.Values["authenticated"] != true {
				return c.Redirect(http.StatusSeeOther, adminPath+"/login")
			}

			return next(c)
		}
	}
}
