// Package agent talks to remote node agents over HTTP JSON. The payloads
// carry the integer-coded wire enumerations; translation to display form
// happens at the dto mapper, never here.
package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"dockhand/internal/wire"
)

// StatusReport is what an agent reports about its node.
type StatusReport struct {
	NodeID    string         `json:"node_id"`
	Kind      wire.NodeKind  `json:"kind"`
	ConnState wire.ConnState `json:"conn_state"`
}

// ContainerReport is an agent's view of a single container.
type ContainerReport struct {
	ID    string              `json:"id"`
	Name  string              `json:"name"`
	Image string              `json:"image"`
	State wire.ContainerState `json:"state"`
}

// OpRequest asks an agent to run a lifecycle operation on a container.
type OpRequest struct {
	Op wire.ContainerOp `json:"op"`
}

// CreateRequest asks an agent to create a container.
type CreateRequest struct {
	Name     string   `json:"name"`
	Image    string   `json:"image"`
	Ports    []string `json:"ports,omitempty"`
	Replicas int      `json:"replicas,omitempty"`
}

// Client is an HTTP client for one node agent.
type Client struct {
	baseURL string
	nodeID  string
	secret  []byte
	http    *http.Client
}

// NewClient builds a client for the agent at baseURL.
func NewClient(baseURL, nodeID string, secret []byte, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		nodeID:  nodeID,
		secret:  secret,
		http:    &http.Client{Timeout: timeout},
	}
}

// Status fetches the node status. A transport failure is reported as a
// disconnected status, not an error: unreachable is a valid observation.
func (c *Client) Status(ctx context.Context) StatusReport {
	var report StatusReport
	if err := c.do(ctx, http.MethodGet, "/v1/status", nil, &report); err != nil {
		return StatusReport{NodeID: c.nodeID, ConnState: wire.ConnDisconnected}
	}
	return report
}

// Container fetches a single container report.
func (c *Client) Container(ctx context.Context, containerID string) (*ContainerReport, error) {
	var report ContainerReport
	if err := c.do(ctx, http.MethodGet, "/v1/containers/"+containerID, nil, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// CreateContainer asks the agent to create a container and returns its report.
func (c *Client) CreateContainer(ctx context.Context, req CreateRequest) (*ContainerReport, error) {
	var report ContainerReport
	if err := c.do(ctx, http.MethodPost, "/v1/containers", req, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// Operate sends a lifecycle operation for a container.
func (c *Client) Operate(ctx context.Context, containerID string, op wire.ContainerOp) (*ContainerReport, error) {
	var report ContainerReport
	if err := c.do(ctx, http.MethodPost, "/v1/containers/"+containerID+"/op", OpRequest{Op: op}, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// RemoveContainer asks the agent to remove a container.
func (c *Client) RemoveContainer(ctx context.Context, containerID string) error {
	return c.do(ctx, http.MethodDelete, "/v1/containers/"+containerID, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal agent request: %w", err)
		}
		body = bytes.NewReader(data)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build agent request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := MintToken(c.secret, c.nodeID)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("agent %s unreachable: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("agent %s returned %s for %s %s", c.baseURL, resp.Status, method, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode agent response: %w", err)
		}
	}
	return nil
}
