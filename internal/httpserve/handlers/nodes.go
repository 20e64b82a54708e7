package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dockhand/internal/dto"
)

// ListNodes returns every registered node.
func (h *Handlers) ListNodes(c echo.Context) error {
	list, err := h.Service.ListNodes(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, dto.NodesResponse{Nodes: list})
}

// RegisterNode registers a new node. The node type is normalized to one
// of the supported kinds.
func (h *Handlers) RegisterNode(c echo.Context) error {
	var req dto.NodeRegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	n, err := h.Service.RegisterNode(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, n)
}

// GetNode returns a single node by id.
func (h *Handlers) GetNode(c echo.Context) error {
	n, err := h.Service.GetNode(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, n)
}

// DeleteNode unregisters a node.
func (h *Handlers) DeleteNode(c echo.Context) error {
	if err := h.Service.RemoveNode(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// RefreshNode probes the node and updates its connection status.
func (h *Handlers) RefreshNode(c echo.Context) error {
	n, err := h.Service.RefreshNode(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, n)
}
