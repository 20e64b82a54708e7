// Package events provides the in-memory event bus used to decouple the
// deployment service from logging and notification concerns.
package events

import (
	"time"
)

type EventType string

const (
	DeploymentCreated EventType = "deployment.created"
	DeploymentUpdated EventType = "deployment.updated"
	DeploymentRemoved EventType = "deployment.removed"
	ContainerStart    EventType = "container.start"
	ContainerStop     EventType = "container.stop"
	ContainerRestart  EventType = "container.restart"
	NodeUnreachable   EventType = "node.unreachable"
)

type Event struct {
	ID           string      `json:"id"`
	Type         EventType   `json:"type"`
	Timestamp    time.Time   `json:"timestamp"`
	DeploymentID string      `json:"deployment_id,omitempty"`
	NodeID       string      `json:"node_id,omitempty"`
	Image        string      `json:"image,omitempty"`
	Tag          string      `json:"tag,omitempty"`
	Data         interface{} `json:"data,omitempty"`
}

type EventHandler interface {
	Handle(event Event) error
	CanHandle(eventType EventType) bool
}

type EventBus interface {
	Publish(event Event) error
	Subscribe(handler EventHandler) error
	Unsubscribe(handler EventHandler) error
	Start() error
	Stop() error
}
