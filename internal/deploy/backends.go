package deploy

import (
	"context"
	"fmt"

	"dockhand/internal/agent"
	"dockhand/internal/dto"
	"dockhand/internal/runtime"
	"dockhand/internal/wire"
)

// backend is the minimal surface the service needs from a node, whether
// it is the local docker engine or a remote agent.
type backend interface {
	Create(ctx context.Context, d *dto.Deployment) (containerID string, state wire.ContainerState, err error)
	Operate(ctx context.Context, containerID string, op wire.ContainerOp) (wire.ContainerState, error)
	State(ctx context.Context, containerID string) (wire.ContainerState, error)
	Remove(ctx context.Context, containerID string) error
	ConnState(ctx context.Context) wire.ConnState
}

// defaultBackend picks the local docker engine for docker nodes without an
// address, and the agent client for everything else.
func (s *Service) defaultBackend(n *dto.Node) backend {
	if n.Type == dto.NodeTypes[0] && n.Address == "" {
		return &dockerBackend{rt: s.docker, network: s.network}
	}
	return &agentBackend{
		client: agent.NewClient(n.Address, n.ID, s.agentSec, s.timeout),
	}
}

type dockerBackend struct {
	rt      runtime.Runtime
	network string
}

func (b *dockerBackend) Create(ctx context.Context, d *dto.Deployment) (string, wire.ContainerState, error) {
	if b.rt == nil {
		return "", wire.StateUnknown, fmt.Errorf("local docker engine is not configured")
	}

	c, err := b.rt.CreateContainer(ctx, &runtime.ContainerConfig{
		Image:   d.Image + ":" + d.Tag,
		Name:    d.Name,
		Ports:   d.Ports,
		Network: b.network,
		Labels:  map[string]string{"dockhand.deployment": d.ID},
	})
	if err != nil {
		return "", wire.StateUnknown, err
	}
	return c.ID, c.State, nil
}

func (b *dockerBackend) Operate(ctx context.Context, containerID string, op wire.ContainerOp) (wire.ContainerState, error) {
	if b.rt == nil {
		return wire.StateUnknown, fmt.Errorf("local docker engine is not configured")
	}

	var err error
	switch op {
	case wire.OpStart:
		err = b.rt.StartContainer(ctx, containerID)
	case wire.OpStop:
		err = b.rt.StopContainer(ctx, containerID)
	case wire.OpRestart:
		err = b.rt.RestartContainer(ctx, containerID)
	default:
		err = fmt.Errorf("operation %s not supported by docker backend", op)
	}
	if err != nil {
		return wire.StateUnknown, err
	}
	return b.State(ctx, containerID)
}

func (b *dockerBackend) State(ctx context.Context, containerID string) (wire.ContainerState, error) {
	if b.rt == nil {
		return wire.StateUnknown, fmt.Errorf("local docker engine is not configured")
	}
	c, err := b.rt.InspectContainer(ctx, containerID)
	if err != nil {
		return wire.StateUnknown, err
	}
	return c.State, nil
}

func (b *dockerBackend) Remove(ctx context.Context, containerID string) error {
	if b.rt == nil {
		return fmt.Errorf("local docker engine is not configured")
	}
	return b.rt.RemoveContainer(ctx, containerID, true)
}

func (b *dockerBackend) ConnState(ctx context.Context) wire.ConnState {
	if b.rt == nil {
		return wire.ConnUnknown
	}
	if err := b.rt.Ping(ctx); err != nil {
		return wire.ConnDisconnected
	}
	return wire.ConnConnected
}

type agentBackend struct {
	client *agent.Client
}

func (b *agentBackend) Create(ctx context.Context, d *dto.Deployment) (string, wire.ContainerState, error) {
	report, err := b.client.CreateContainer(ctx, agent.CreateRequest{
		Name:     d.Name,
		Image:    d.Image + ":" + d.Tag,
		Ports:    d.Ports,
		Replicas: d.Replicas,
	})
	if err != nil {
		return "", wire.StateUnknown, err
	}
	return report.ID, report.State, nil
}

func (b *agentBackend) Operate(ctx context.Context, containerID string, op wire.ContainerOp) (wire.ContainerState, error) {
	report, err := b.client.Operate(ctx, containerID, op)
	if err != nil {
		return wire.StateUnknown, err
	}
	return report.State, nil
}

func (b *agentBackend) State(ctx context.Context, containerID string) (wire.ContainerState, error) {
	report, err := b.client.Container(ctx, containerID)
	if err != nil {
		return wire.StateUnknown, err
	}
	return report.State, nil
}

func (b *agentBackend) Remove(ctx context.Context, containerID string) error {
	return b.client.RemoveContainer(ctx, containerID)
}

func (b *agentBackend) ConnState(ctx context.Context) wire.ConnState {
	return b.client.Status(ctx).ConnState
}
