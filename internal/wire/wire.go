// Package wire defines the integer-coded enumerations of the node agent
// protocol. Values are part of the wire schema shared with agents and must
// not be renumbered.
package wire

import "strconv"

// ContainerOp is a container lifecycle operation requested on a node.
type ContainerOp int32

const (
	OpUnrecognized ContainerOp = 0
	OpStart        ContainerOp = 1
	OpStop         ContainerOp = 2
	OpRestart      ContainerOp = 3
)

var containerOpName = map[ContainerOp]string{
	OpUnrecognized: "UNRECOGNIZED",
	OpStart:        "START",
	OpStop:         "STOP",
	OpRestart:      "RESTART",
}

func (op ContainerOp) String() string {
	if name, ok := containerOpName[op]; ok {
		return name
	}
	return "ContainerOp(" + strconv.Itoa(int(op)) + ")"
}

// ContainerState is the lifecycle state an agent reports for a container.
type ContainerState int32

const (
	StateUnknown    ContainerState = 0
	StateCreated    ContainerState = 1
	StateRunning    ContainerState = 2
	StatePaused     ContainerState = 3
	StateRestarting ContainerState = 4
	StateExited     ContainerState = 5
	StateDead       ContainerState = 6
)

var containerStateName = map[ContainerState]string{
	StateUnknown:    "UNKNOWN",
	StateCreated:    "CREATED",
	StateRunning:    "RUNNING",
	StatePaused:     "PAUSED",
	StateRestarting: "RESTARTING",
	StateExited:     "EXITED",
	StateDead:       "DEAD",
}

func (s ContainerState) String() string {
	if name, ok := containerStateName[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// NodeKind identifies the orchestration backend running on a node.
type NodeKind int32

const (
	KindUnspecified NodeKind = 0
	KindDocker      NodeKind = 1
	KindKubernetes  NodeKind = 2
)

var nodeKindName = map[NodeKind]string{
	KindUnspecified: "UNSPECIFIED",
	KindDocker:      "DOCKER",
	KindKubernetes:  "KUBERNETES",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindName[k]; ok {
		return name
	}
	return "NodeKind(" + strconv.Itoa(int(k)) + ")"
}

// ConnState is the connection status of a node as seen by the server.
type ConnState int32

const (
	ConnUnknown      ConnState = 0
	ConnConnected    ConnState = 1
	ConnDisconnected ConnState = 2
)

var connStateName = map[ConnState]string{
	ConnUnknown:      "UNKNOWN",
	ConnConnected:    "CONNECTED",
	ConnDisconnected: "DISCONNECTED",
}

func (s ConnState) String() string {
	if name, ok := connStateName[s]; ok {
		return name
	}
	return "UNKNOWN"
}
