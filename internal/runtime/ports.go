package runtime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/docker/go-connections/nat"

	"dockhand/internal/wire"
)

// PortMapping is a parsed "hostPort:containerPort[/proto]" spec.
type PortMapping struct {
	HostPort      string
	ContainerPort string
	Protocol      string
}

// ParsePortSpecs parses a slice of "hostPort:containerPort[/proto]" strings.
func ParsePortSpecs(specs []string) ([]PortMapping, error) {
	mappings := make([]PortMapping, 0, len(specs))

	for _, spec := range specs {
		parts := strings.Split(spec, ":")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid port specification: %s. Format should be hostPort:containerPort[/proto]", spec)
		}

		hostPort := parts[0]
		if _, err := strconv.Atoi(hostPort); err != nil {
			return nil, fmt.Errorf("invalid host port: %s. Must be a number", hostPort)
		}

		containerParts := strings.Split(parts[1], "/")
		containerPort := containerParts[0]
		if _, err := strconv.Atoi(containerPort); err != nil {
			return nil, fmt.Errorf("invalid exposed port: %s. Must be a number", containerPort)
		}

		protocol := "tcp"
		if len(containerParts) > 1 {
			protocol = containerParts[1]
		}

		mappings = append(mappings, PortMapping{
			HostPort:      hostPort,
			ContainerPort: containerPort,
			Protocol:      protocol,
		})
	}

	return mappings, nil
}

// natBindings converts parsed port mappings into the docker exposure sets.
func natBindings(mappings []PortMapping) (nat.PortSet, nat.PortMap, error) {
	exposed := make(nat.PortSet)
	bindings := make(nat.PortMap)

	for _, m := range mappings {
		port, err := nat.NewPort(m.Protocol, m.ContainerPort)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid container port %s/%s: %w", m.ContainerPort, m.Protocol, err)
		}
		exposed[port] = struct{}{}
		bindings[port] = append(bindings[port], nat.PortBinding{
			HostIP:   "0.0.0.0",
			HostPort: m.HostPort,
		})
	}

	return exposed, bindings, nil
}

// stateFromEngine normalizes a docker engine state string onto the wire
// enumeration so all backends report the same values.
func stateFromEngine(state string) wire.ContainerState {
	switch strings.ToLower(state) {
	case "created":
		return wire.StateCreated
	case "running":
		return wire.StateRunning
	case "paused":
		return wire.StatePaused
	case "restarting":
		return wire.StateRestarting
	case "exited":
		return wire.StateExited
	case "dead":
		return wire.StateDead
	default:
		return wire.StateUnknown
	}
}
