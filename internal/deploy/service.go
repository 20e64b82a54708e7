// Package deploy implements deployment CRUD and container lifecycle
// operations across registered nodes.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"dockhand/internal/dto"
	"dockhand/internal/events"
	"dockhand/internal/runtime"
	"dockhand/internal/store"
	"dockhand/internal/wire"
	"dockhand/pkg/logger"
)

var (
	// ErrUnrecognizedOperation rejects lifecycle operations outside
	// {start, stop, restart} at the service boundary. The wire mapper
	// itself never fails; the rejection happens here.
	ErrUnrecognizedOperation = errors.New("unrecognized operation")

	// ErrDowngrade is returned when an update would roll an image tag
	// backwards without the force flag.
	ErrDowngrade = errors.New("tag downgrade requires force")

	// ErrInvalidInput covers empty or fully-sanitized-away fields.
	ErrInvalidInput = errors.New("invalid input")
)

// Service coordinates the store, the node backends and the event bus.
type Service struct {
	store     *store.Store
	bus       events.EventBus
	docker    runtime.Runtime
	agentSec  []byte
	timeout   time.Duration
	network   string
	sanitizer *bluemonday.Policy

	// backendFor is swappable in tests.
	backendFor func(n *dto.Node) backend
}

// NewService wires a deployment service. docker may be nil when no local
// engine is available; deployments on docker nodes will then fail with a
// clear error instead of at startup.
func NewService(st *store.Store, bus events.EventBus, docker runtime.Runtime, agentSecret []byte, timeout time.Duration, network string) *Service {
	s := &Service{
		store:     st,
		bus:       bus,
		docker:    docker,
		agentSec:  agentSecret,
		timeout:   timeout,
		network:   network,
		sanitizer: bluemonday.StrictPolicy(),
	}
	s.backendFor = s.defaultBackend
	return s
}

// cleanName strips markup and whitespace from user-supplied names.
func (s *Service) cleanName(name string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(name))
}

// Create registers a deployment and creates its container on the target node.
func (s *Service) Create(ctx context.Context, req dto.DeploymentCreateRequest) (*dto.Deployment, error) {
	name := s.cleanName(req.Name)
	if name == "" || req.Image == "" || req.NodeID == "" {
		return nil, fmt.Errorf("%w: name, image and node_id are required", ErrInvalidInput)
	}

	tag := req.Tag
	if tag == "" {
		tag = "latest"
	}
	replicas := req.Replicas
	if replicas <= 0 {
		replicas = 1
	}

	node, err := s.store.GetNode(ctx, req.NodeID)
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", req.NodeID, err)
	}

	d := &dto.Deployment{
		ID:       uuid.NewString(),
		Name:     name,
		Image:    req.Image,
		Tag:      tag,
		NodeID:   node.ID,
		Replicas: replicas,
		Ports:    req.Ports,
		State:    dto.ContainerStateString(wire.StateUnknown),
	}

	containerID, state, err := s.backendFor(node).Create(ctx, d)
	if err != nil {
		return nil, fmt.Errorf("create container for %s: %w", name, err)
	}
	d.ContainerID = containerID
	d.State = dto.ContainerStateString(state)

	if err := s.store.CreateDeployment(ctx, d); err != nil {
		return nil, err
	}

	s.publish(events.Event{
		Type:         events.DeploymentCreated,
		DeploymentID: d.ID,
		NodeID:       d.NodeID,
		Image:        d.Image,
		Tag:          d.Tag,
	})

	return d, nil
}

// Get returns a deployment by id.
func (s *Service) Get(ctx context.Context, id string) (*dto.Deployment, error) {
	return s.store.GetDeployment(ctx, id)
}

// List returns all deployments.
func (s *Service) List(ctx context.Context) ([]dto.Deployment, error) {
	return s.store.ListDeployments(ctx)
}

// Update applies mutable fields. When both the current and the requested
// tag parse as semver, a downgrade is rejected unless forced.
func (s *Service) Update(ctx context.Context, id string, req dto.DeploymentUpdateRequest) (*dto.Deployment, error) {
	d, err := s.store.GetDeployment(ctx, id)
	if err != nil {
		return nil, err
	}

	redeploy := false

	if req.Image != "" && req.Image != d.Image {
		d.Image = req.Image
		redeploy = true
	}
	if req.Tag != "" && req.Tag != d.Tag {
		if err := checkDowngrade(d.Tag, req.Tag, req.Force); err != nil {
			return nil, err
		}
		d.Tag = req.Tag
		redeploy = true
	}
	if req.Replicas > 0 {
		d.Replicas = req.Replicas
	}
	if req.Ports != nil {
		d.Ports = req.Ports
		redeploy = true
	}

	if redeploy {
		node, err := s.store.GetNode(ctx, d.NodeID)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", d.NodeID, err)
		}
		be := s.backendFor(node)

		if d.ContainerID != "" {
			if err := be.Remove(ctx, d.ContainerID); err != nil {
				logger.Warn("Failed to remove old container during update", "deployment", d.ID, "error", err)
			}
		}
		containerID, state, err := be.Create(ctx, d)
		if err != nil {
			return nil, fmt.Errorf("redeploy %s: %w", d.Name, err)
		}
		d.ContainerID = containerID
		d.State = dto.ContainerStateString(state)
	}

	if err := s.store.UpdateDeployment(ctx, d); err != nil {
		return nil, err
	}

	s.publish(events.Event{
		Type:         events.DeploymentUpdated,
		DeploymentID: d.ID,
		NodeID:       d.NodeID,
		Image:        d.Image,
		Tag:          d.Tag,
	})

	return d, nil
}

// checkDowngrade compares tags as semver when possible. Non-semver tags
// are always allowed to change.
func checkDowngrade(current, requested string, force bool) error {
	cur, err1 := semver.NewVersion(current)
	next, err2 := semver.NewVersion(requested)
	if err1 != nil || err2 != nil {
		return nil
	}
	if next.LessThan(cur) && !force {
		return fmt.Errorf("%w: %s -> %s", ErrDowngrade, current, requested)
	}
	return nil
}

// Remove deletes a deployment and its container.
func (s *Service) Remove(ctx context.Context, id string) error {
	d, err := s.store.GetDeployment(ctx, id)
	if err != nil {
		return err
	}

	if d.ContainerID != "" {
		node, err := s.store.GetNode(ctx, d.NodeID)
		if err == nil {
			if rerr := s.backendFor(node).Remove(ctx, d.ContainerID); rerr != nil {
				logger.Warn("Failed to remove container", "deployment", d.ID, "error", rerr)
			}
		}
	}

	if err := s.store.DeleteDeployment(ctx, id); err != nil {
		return err
	}

	s.publish(events.Event{
		Type:         events.DeploymentRemoved,
		DeploymentID: d.ID,
		NodeID:       d.NodeID,
	})
	return nil
}

// Operate runs a lifecycle operation ("start", "stop", "restart") on a
// deployment's container and returns the refreshed deployment.
func (s *Service) Operate(ctx context.Context, id, operation string) (*dto.Deployment, error) {
	op := dto.OperationToWire(operation)
	if op == wire.OpUnrecognized {
		return nil, fmt.Errorf("%w: %q", ErrUnrecognizedOperation, operation)
	}

	d, err := s.store.GetDeployment(ctx, id)
	if err != nil {
		return nil, err
	}
	node, err := s.store.GetNode(ctx, d.NodeID)
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", d.NodeID, err)
	}

	state, err := s.backendFor(node).Operate(ctx, d.ContainerID, op)
	if err != nil {
		return nil, fmt.Errorf("%s deployment %s: %w", operation, d.Name, err)
	}

	d.State = dto.ContainerStateString(state)
	if err := s.store.UpdateDeployment(ctx, d); err != nil {
		return nil, err
	}

	s.publish(events.Event{
		Type:         operationEvent(op),
		DeploymentID: d.ID,
		NodeID:       d.NodeID,
	})

	return d, nil
}

func operationEvent(op wire.ContainerOp) events.EventType {
	switch op {
	case wire.OpStart:
		return events.ContainerStart
	case wire.OpStop:
		return events.ContainerStop
	default:
		return events.ContainerRestart
	}
}

// Refresh re-reads the container state from the node backend.
func (s *Service) Refresh(ctx context.Context, id string) (*dto.Deployment, error) {
	d, err := s.store.GetDeployment(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.ContainerID == "" {
		return d, nil
	}

	node, err := s.store.GetNode(ctx, d.NodeID)
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", d.NodeID, err)
	}

	state, err := s.backendFor(node).State(ctx, d.ContainerID)
	if err != nil {
		// An unreachable backend leaves the stored state untouched.
		logger.Warn("Failed to refresh deployment state", "deployment", d.ID, "error", err)
		return d, nil
	}

	display := dto.ContainerStateString(state)
	if display != d.State {
		d.State = display
		if err := s.store.UpdateDeployment(ctx, d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func (s *Service) publish(e events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(e); err != nil {
		logger.Warn("Failed to publish event", "event", string(e.Type), "error", err)
	}
}
