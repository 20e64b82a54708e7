package deploy

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"dockhand/internal/dto"
	"dockhand/internal/events"
)

// RegisterNode adds a node to the registry. The requested type string is
// normalized through the wire mapping, so anything that is not "docker"
// registers as the kubernetes backend.
func (s *Service) RegisterNode(ctx context.Context, req dto.NodeRegisterRequest) (*dto.Node, error) {
	name := s.cleanName(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: node name is required", ErrInvalidInput)
	}

	n := &dto.Node{
		ID:      uuid.NewString(),
		Name:    name,
		Type:    dto.NodeTypeFromWire(dto.NodeTypeToWire(req.Type)),
		Address: req.Address,
		Status:  dto.NodeStatusUnreachable,
	}

	if err := s.store.CreateNode(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// GetNode returns a node by id.
func (s *Service) GetNode(ctx context.Context, id string) (*dto.Node, error) {
	return s.store.GetNode(ctx, id)
}

// ListNodes returns all registered nodes.
func (s *Service) ListNodes(ctx context.Context) ([]dto.Node, error) {
	return s.store.ListNodes(ctx)
}

// RemoveNode deletes a node from the registry.
func (s *Service) RemoveNode(ctx context.Context, id string) error {
	return s.store.DeleteNode(ctx, id)
}

// RefreshNode probes a node's backend and records the collapsed status.
func (s *Service) RefreshNode(ctx context.Context, id string) (*dto.Node, error) {
	n, err := s.store.GetNode(ctx, id)
	if err != nil {
		return nil, err
	}

	status := dto.NodeStatusFromWire(s.backendFor(n).ConnState(ctx))
	if err := s.store.UpdateNodeStatus(ctx, n.ID, status); err != nil {
		return nil, err
	}
	n.Status = status

	if status == dto.NodeStatusUnreachable {
		s.publish(events.Event{Type: events.NodeUnreachable, NodeID: n.ID})
	}
	return n, nil
}

// RefreshAllNodes probes every registered node.
func (s *Service) RefreshAllNodes(ctx context.Context) ([]dto.Node, error) {
	nodes, err := s.store.ListNodes(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]dto.Node, 0, len(nodes))
	for _, n := range nodes {
		refreshed, err := s.RefreshNode(ctx, n.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, *refreshed)
	}
	return out, nil
}
