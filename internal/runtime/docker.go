package runtime

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"

	"dockhand/pkg/logger"
)

// DockerRuntime implements Runtime against the Docker Engine API.
type DockerRuntime struct {
	client *client.Client
}

// NewDockerRuntime connects to the engine at sock (unix socket path). An
// empty sock falls back to the environment configuration.
func NewDockerRuntime(sock string) (*DockerRuntime, error) {
	opts := []client.Opt{client.WithAPIVersionNegotiation()}
	if sock != "" {
		opts = append(opts, client.WithHost("unix://"+sock))
	} else {
		opts = append(opts, client.FromEnv)
	}

	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}

	return &DockerRuntime{client: cli}, nil
}

func (d *DockerRuntime) CreateContainer(ctx context.Context, config *ContainerConfig) (*Container, error) {
	mappings, err := ParsePortSpecs(config.Ports)
	if err != nil {
		return nil, err
	}
	exposed, bindings, err := natBindings(mappings)
	if err != nil {
		return nil, err
	}

	containerConfig := &container.Config{
		Image:        config.Image,
		Env:          config.Env,
		ExposedPorts: exposed,
		Labels:       config.Labels,
		Hostname:     config.Hostname,
	}

	hostConfig := &container.HostConfig{
		PortBindings: bindings,
	}
	if config.Network != "" {
		hostConfig.NetworkMode = container.NetworkMode(config.Network)
	}

	resp, err := d.client.ContainerCreate(ctx, containerConfig, hostConfig, nil, nil, config.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to create container: %w", err)
	}

	logger.Info("Container created", "id", resp.ID, "name", config.Name, "image", config.Image)

	return d.InspectContainer(ctx, resp.ID)
}

func (d *DockerRuntime) StartContainer(ctx context.Context, containerID string) error {
	if err := d.client.ContainerStart(ctx, containerID, container.StartOptions{}); err != nil {
		return fmt.Errorf("failed to start container %s: %w", containerID, err)
	}
	logger.Info("Container started", "id", containerID)
	return nil
}

func (d *DockerRuntime) StopContainer(ctx context.Context, containerID string) error {
	timeout := 30 // seconds
	if err := d.client.ContainerStop(ctx, containerID, container.StopOptions{Timeout: &timeout}); err != nil {
		return fmt.Errorf("failed to stop container %s: %w", containerID, err)
	}
	logger.Info("Container stopped", "id", containerID)
	return nil
}

func (d *DockerRuntime) RestartContainer(ctx context.Context, containerID string) error {
	timeout := 30 // seconds
	if err := d.client.ContainerRestart(ctx, containerID, container.StopOptions{Timeout: &timeout}); err != nil {
		return fmt.Errorf("failed to restart container %s: %w", containerID, err)
	}
	logger.Info("Container restarted", "id", containerID)
	return nil
}

func (d *DockerRuntime) RemoveContainer(ctx context.Context, containerID string, force bool) error {
	if err := d.client.ContainerRemove(ctx, containerID, container.RemoveOptions{Force: force}); err != nil {
		return fmt.Errorf("failed to remove container %s: %w", containerID, err)
	}
	logger.Info("Container removed", "id", containerID, "force", force)
	return nil
}

func (d *DockerRuntime) InspectContainer(ctx context.Context, containerID string) (*Container, error) {
	info, err := d.client.ContainerInspect(ctx, containerID)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect container %s: %w", containerID, err)
	}

	return &Container{
		ID:     info.ID,
		Name:   strings.TrimPrefix(info.Name, "/"),
		Image:  info.Config.Image,
		State:  stateFromEngine(info.State.Status),
		Labels: info.Config.Labels,
	}, nil
}

func (d *DockerRuntime) ListContainers(ctx context.Context, all bool) ([]*Container, error) {
	containers, err := d.client.ContainerList(ctx, container.ListOptions{All: all})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	var result []*Container
	for _, c := range containers {
		name := ""
		if len(c.Names) > 0 {
			name = strings.TrimPrefix(c.Names[0], "/")
		}
		result = append(result, &Container{
			ID:     c.ID,
			Name:   name,
			Image:  c.Image,
			State:  stateFromEngine(c.State),
			Labels: c.Labels,
		})
	}
	return result, nil
}

func (d *DockerRuntime) Ping(ctx context.Context) error {
	if _, err := d.client.Ping(ctx); err != nil {
		return fmt.Errorf("docker daemon unreachable: %w", err)
	}
	return nil
}
