package dto

import (
	"strings"

	"dockhand/internal/wire"
)

// Display literals for lifecycle operations and node status.
const (
	OpStart   = "start"
	OpStop    = "stop"
	OpRestart = "restart"

	NodeStatusRunning     = "running"
	NodeStatusUnreachable = "unreachable"
)

// NodeTypes lists the supported node backends in display form. The order is
// load-bearing: index 0 is the docker backend, index 1 everything else.
var NodeTypes = []string{"docker", "kubernetes"}

// Every function below is total. Unknown wire values collapse to a safe
// default instead of returning an error, so that new enum values added to
// the agent protocol degrade gracefully on older servers.

// ContainerStateString returns the lowercased canonical name of a wire
// container state.
func ContainerStateString(s wire.ContainerState) string {
	return strings.ToLower(s.String())
}

// NodeTypeFromWire maps a wire node kind to its display form. Any kind
// other than docker is treated as the kubernetes backend.
func NodeTypeFromWire(k wire.NodeKind) string {
	if k == wire.KindDocker {
		return NodeTypes[0]
	}
	return NodeTypes[1]
}

// NodeTypeToWire is the inverse of NodeTypeFromWire.
func NodeTypeToWire(t string) wire.NodeKind {
	if t == NodeTypes[0] {
		return wire.KindDocker
	}
	return wire.KindKubernetes
}

// NodeStatusFromWire collapses a wire connection state to the two-valued
// display status. Only an explicit CONNECTED counts as running.
func NodeStatusFromWire(s wire.ConnState) string {
	if s == wire.ConnConnected {
		return NodeStatusRunning
	}
	return NodeStatusUnreachable
}

// OperationToWire maps a display operation to its wire value. Unknown
// operations yield OpUnrecognized, never an error.
func OperationToWire(op string) wire.ContainerOp {
	switch op {
	case OpStart:
		return wire.OpStart
	case OpStop:
		return wire.OpStop
	case OpRestart:
		return wire.OpRestart
	default:
		return wire.OpUnrecognized
	}
}
