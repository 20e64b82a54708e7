// Package runtime abstracts the container backend of a node. The docker
// implementation drives a local or socket-reachable engine; kubernetes
// nodes are reached through the agent client instead.
package runtime

import (
	"context"

	"dockhand/internal/wire"
)

// Container is the backend-independent view of a container.
type Container struct {
	ID     string
	Name   string
	Image  string
	State  wire.ContainerState
	Labels map[string]string
}

// ContainerConfig holds what is needed to create a container.
type ContainerConfig struct {
	Image    string
	Name     string
	Env      []string
	Ports    []string // "hostPort:containerPort[/proto]" specs
	Labels   map[string]string
	Network  string
	Hostname string
}

// Runtime is the contract a container backend implements.
type Runtime interface {
	CreateContainer(ctx context.Context, config *ContainerConfig) (*Container, error)
	StartContainer(ctx context.Context, containerID string) error
	StopContainer(ctx context.Context, containerID string) error
	RestartContainer(ctx context.Context, containerID string) error
	RemoveContainer(ctx context.Context, containerID string, force bool) error
	InspectContainer(ctx context.Context, containerID string) (*Container, error)
	ListContainers(ctx context.Context, all bool) ([]*Container, error)
	Ping(ctx context.Context) error
}
