// Package dto provides shared data transfer objects for API responses and
// the translation between agent wire enumerations and their display form.
package dto

import "time"

// Deployment represents a deployment in API responses.
type Deployment struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	Tag         string    `json:"tag"`
	NodeID      string    `json:"node_id"`
	Replicas    int       `json:"replicas"`
	ContainerID string    `json:"container_id,omitempty"`
	State       string    `json:"state"`
	Ports       []string  `json:"ports,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeploymentCreateRequest creates a new deployment.
type DeploymentCreateRequest struct {
	Name     string   `json:"name" form:"name"`
	Image    string   `json:"image" form:"image"`
	Tag      string   `json:"tag" form:"tag"`
	NodeID   string   `json:"node_id" form:"node_id"`
	Replicas int      `json:"replicas" form:"replicas"`
	Ports    []string `json:"ports,omitempty" form:"ports"`
}

// DeploymentUpdateRequest updates an existing deployment. A zero Replicas
// leaves the current value untouched.
type DeploymentUpdateRequest struct {
	Image    string   `json:"image,omitempty" form:"image"`
	Tag      string   `json:"tag,omitempty" form:"tag"`
	Replicas int      `json:"replicas,omitempty" form:"replicas"`
	Ports    []string `json:"ports,omitempty" form:"ports"`
	Force    bool     `json:"force,omitempty" form:"force"`
}

// DeploymentsResponse is returned by the deployment listing endpoint.
type DeploymentsResponse struct {
	Deployments []Deployment `json:"deployments"`
}

// OperationRequest triggers a container lifecycle operation on a deployment.
type OperationRequest struct {
	Operation string `json:"operation" form:"operation"`
}

// OperationResponse reports the outcome of a lifecycle operation.
type OperationResponse struct {
	ID        string `json:"id"`
	Operation string `json:"operation"`
	State     string `json:"state"`
}

// Node represents a registered node in API responses.
type Node struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Type     string    `json:"type"`
	Address  string    `json:"address"`
	Status   string    `json:"status"`
	LastSeen time.Time `json:"last_seen"`
}

// NodeRegisterRequest registers a new node.
type NodeRegisterRequest struct {
	Name    string `json:"name" form:"name"`
	Type    string `json:"type" form:"type"`
	Address string `json:"address" form:"address"`
}

// NodesResponse is returned by the node listing endpoint.
type NodesResponse struct {
	Nodes []Node `json:"nodes"`
}
