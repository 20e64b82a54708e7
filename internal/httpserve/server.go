// Package httpserve wires the echo router, middleware and handlers of the
// dockhand web application.
package httpserve

import (
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"dockhand/internal/config"
	"dockhand/internal/deploy"
	"dockhand/internal/httpserve/handlers"
	"dockhand/internal/httpserve/middleware"
	"dockhand/internal/webui"
	"dockhand/pkg/kv"
)

// App bundles what the handlers need.
type App struct {
	Config    *config.Config
	Service   *deploy.Service
	RateStore *kv.RateLimiterStore
	Renderer  *webui.Renderer
}

// RegisterRoutes builds the echo instance for the app.
func RegisterRoutes(e *echo.Echo, a *App) *echo.Echo {
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.AccessLogger())
	e.Use(middleware.Secure())
	e.Use(session.Middleware(sessions.NewCookieStore([]byte(a.Config.Admin.SessionSecret))))

	h := handlers.New(a.Config, a.Service, a.Renderer)

	// JSON API
	api := e.Group("/api/v1", middleware.RequireAuth(a.Config))
	api.GET("/deployments", h.ListDeployments)
	api.POST("/deployments", h.CreateDeployment)
	api.GET("/deployments/:id", h.GetDeployment)
	api.PATCH("/deployments/:id", h.UpdateDeployment)
	api.DELETE("/deployments/:id", h.DeleteDeployment)
	api.POST("/deployments/:id/operations", h.OperateDeployment)
	api.POST("/deployments/:id/refresh", h.RefreshDeployment)
	api.GET("/nodes", h.ListNodes)
	api.POST("/nodes", h.RegisterNode)
	api.GET("/nodes/:id", h.GetNode)
	api.DELETE("/nodes/:id", h.DeleteNode)
	api.POST("/nodes/:id/refresh", h.RefreshNode)

	// Health never requires auth.
	e.GET("/healthz", h.Health)

	// Admin UI
	adminPath := a.Config.Admin.Path
	login := e.Group(adminPath)
	if a.RateStore != nil {
		login.Use(echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
			Store: a.RateStore,
			IdentifierExtractor: func(c echo.Context) (string, error) {
				return c.RealIP(), nil
			},
		}))
	}
	login.GET("/login", h.LoginPage)
	login.POST("/login", h.LoginSubmit)

	admin := e.Group(adminPath, middleware.RequireLogin(adminPath))
	admin.GET("", h.AdminDashboard)
	admin.GET("/deployments", h.AdminDeployments)
	admin.GET("/deployments/:id/edit", h.AdminDeploymentEdit)
	admin.GET("/fragments/deployments", h.DeploymentListFragment)
	admin.POST("/logout", h.Logout)

	e.StaticFS("/static", echo.MustSubFS(webui.PublicFS, "public"))

	return e
}
