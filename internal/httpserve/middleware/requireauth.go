package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"

	"dockhand/internal/config"
)

// RequireAuth guards the JSON API. It accepts either an authenticated
// browser session or a bearer token signed with the session secret.
func RequireAuth(cfg *config.Config) echo.MiddlewareFunc {
	secret := []byte(cfg.Admin.SessionSecret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sess, err := session.Get("session", c); err == nil && sess.Values["authenticated"] == true {
				return next(c)
			}

			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if strings.HasPrefix(auth, "Bearer ") {
				tokenString := strings.TrimPrefix(auth, "Bearer ")
				token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
					if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
						return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
					}
					return secret, nil
				})
				if err == nil && token.Valid {
					return next(c)
				}
			}

			return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
		}
	}
}
