// Package handlers contains the echo handlers for the JSON API and the
// admin UI.
package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"dockhand/internal/config"
	"dockhand/internal/deploy"
	"dockhand/internal/store"
	"dockhand/internal/webui"
)

// Handlers carries the dependencies shared by every route.
type Handlers struct {
	Config   *config.Config
	Service  *deploy.Service
	Renderer *webui.Renderer
}

// New builds the handler set.
func New(cfg *config.Config, svc *deploy.Service, r *webui.Renderer) *Handlers {
	return &Handlers{Config: cfg, Service: svc, Renderer: r}
}

// Health reports liveness. It carries no auth so load balancers can probe it.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// httpError translates service errors into HTTP status codes.
func httpError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, deploy.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, deploy.ErrUnrecognizedOperation):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, deploy.ErrDowngrade):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
