package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dockhand/internal/dto"
)

// ListDeployments returns every deployment.
func (h *Handlers) ListDeployments(c echo.Context) error {
	list, err := h.Service.List(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.DeploymentsResponse{Deployments: list})
}

// CreateDeployment creates a deployment and starts its container.
func (h *Handlers) CreateDeployment(c echo.Context) error {
	var req dto.DeploymentCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	d, err := h.Service.Create(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, d)
}

// GetDeployment returns a single deployment by id.
func (h *Handlers) GetDeployment(c echo.Context) error {
	d, err := h.Service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, d)
}

// UpdateDeployment applies a partial update, redeploying when the image
// or ports change.
func (h *Handlers) UpdateDeployment(c echo.Context) error {
	var req dto.DeploymentUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	d, err := h.Service.Update(c.Request().Context(), c.Param("id"), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, d)
}

// DeleteDeployment removes the deployment and its container.
func (h *Handlers) DeleteDeployment(c echo.Context) error {
	if err := h.Service.Remove(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// OperateDeployment runs a lifecycle operation (start, stop, restart).
func (h *Handlers) OperateDeployment(c echo.Context) error {
	var req dto.OperationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	d, err := h.Service.Operate(c.Request().Context(), c.Param("id"), req.Operation)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.OperationResponse{
		ID:        d.ID,
		Operation: req.Operation,
		State:     d.State,
	})
}

// RefreshDeployment re-reads the container state from the node.
func (h *Handlers) RefreshDeployment(c echo.Context) error {
	d, err := h.Service.Refresh(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, d)
}
