package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dockhand/internal/dto"
	"dockhand/internal/webui"
)

// AdminDashboard renders the landing page with node health and counts.
func (h *Handlers) AdminDashboard(c echo.Context) error {
	ctx := c.Request().Context()

	loc, err := webui.LoadStrings(requestLang(c))
	if err != nil {
		return httpError(err)
	}
	deployments, err := h.Service.List(ctx)
	if err != nil {
		return httpError(err)
	}
	nodes, err := h.Service.ListNodes(ctx)
	if err != nil {
		return httpError(err)
	}

	return h.Renderer.Page(c, "index.gohtml", map[string]any{
		"Title":           "Dashboard",
		"Lang":            loc.CurrentLang,
		"AdminPath":       h.Config.Admin.Path,
		"DeploymentCount": len(deployments),
		"Nodes":           nodes,
	})
}

// AdminDeployments renders the deployment table page.
func (h *Handlers) AdminDeployments(c echo.Context) error {
	deployments, err := h.Service.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return h.Renderer.Page(c, "deployments.gohtml", map[string]any{
		"Title":       "Deployments",
		"AdminPath":   h.Config.Admin.Path,
		"AutoRefresh": true,
		"Deployments": deployments,
	})
}

// AdminDeploymentEdit renders the edit form for one deployment.
func (h *Handlers) AdminDeploymentEdit(c echo.Context) error {
	d, err := h.Service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return h.Renderer.Page(c, "edit.gohtml", map[string]any{
		"Title":      d.Name,
		"AdminPath":  h.Config.Admin.Path,
		"Deployment": d,
		"Operations": []string{dto.OpStart, dto.OpStop, dto.OpRestart},
	})
}

// DeploymentListFragment returns the bare table for htmx polling swaps.
func (h *Handlers) DeploymentListFragment(c echo.Context) error {
	deployments, err := h.Service.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	html, err := h.Renderer.Fragment("deploymentlist", map[string]any{
		"AdminPath":   h.Config.Admin.Path,
		"Deployments": deployments,
	})
	if err != nil {
		return httpError(err)
	}
	return c.HTML(http.StatusOK, html)
}
