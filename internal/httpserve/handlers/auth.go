package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"dockhand/internal/webui"
	"dockhand/pkg/logger"
)

func requestLang(c echo.Context) string {
	accept := c.Request().Header.Get("Accept-Language")
	if len(accept) >= 2 && strings.HasPrefix(accept, "fr") {
		return "fr"
	}
	return "en"
}

// LoginPage renders the password form.
func (h *Handlers) LoginPage(c echo.Context) error {
	loc, err := webui.LoadStrings(requestLang(c))
	if err != nil {
		return httpError(err)
	}

	return h.Renderer.Page(c, "login.gohtml", map[string]any{
		"Title":     "Login",
		"Lang":      loc.CurrentLang,
		"AdminPath": h.Config.Admin.Path,
		"Error":     c.QueryParam("error"),
	})
}

// LoginSubmit checks the admin password and opens a session.
func (h *Handlers) LoginSubmit(c echo.Context) error {
	password := c.FormValue("password")
	adminPath := h.Config.Admin.Path

	err := bcrypt.CompareHashAndPassword([]byte(h.Config.Admin.PasswordHash), []byte(password))
	if err != nil {
		logger.Warn("failed login attempt", "remote_ip", c.RealIP())
		return c.Redirect(http.StatusSeeOther,
			adminPath+"/login?error="+url.QueryEscape("invalid password"))
	}

	sess, err := session.Get("session", c)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not get session")
	}
	sess.Options.HttpOnly = true
	sess.Options.MaxAge = int((12 * time.Hour).Seconds())
	sess.Values["authenticated"] = true
	sess.Values["since"] = time.Now().UTC().Unix()
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "could not save session")
	}

	return c.Redirect(http.StatusSeeOther, adminPath)
}

// Logout clears the session and returns to the login page.
func (h *Handlers) Logout(c echo.Context) error {
	sess, err := session.Get("session", c)
	if err == nil {
		sess.Values = make(map[interface{}]interface{})
		sess.Options.MaxAge = -1
		if err := sess.Save(c.Request(), c.Response()); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "could not save session")
		}
	}
	return c.Redirect(http.StatusSeeOther, h.Config.Admin.Path+"/login")
}
