package agent

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dockhand/internal/wire"
)

func TestMintAndVerifyToken(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	token, err := MintToken(secret, "node-1")
	require.NoError(t, err)

	nodeID, err := VerifyToken(secret, token)
	require.NoError(t, err)
	require.Equal(t, "node-1", nodeID)

	_, err = VerifyToken([]byte("wrong-secret"), token)
	require.Error(t, err)
}

func TestClientStatus(t *testing.T) {
	t.Parallel()

	secret := []byte("test-secret")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		require.True(t, strings.HasPrefix(auth, "Bearer "))
		_, err := VerifyToken(secret, strings.TrimPrefix(auth, "Bearer "))
		require.NoError(t, err)

		require.Equal(t, "/v1/status", r.URL.Path)
		json.NewEncoder(w).Encode(StatusReport{
			NodeID:    "node-1",
			Kind:      wire.KindKubernetes,
			ConnState: wire.ConnConnected,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "node-1", secret, time.Second)
	report := c.Status(context.Background())
	require.Equal(t, wire.ConnConnected, report.ConnState)
	require.Equal(t, wire.KindKubernetes, report.Kind)
}

func TestClientStatusUnreachable(t *testing.T) {
	t.Parallel()

	// Port 1 is never listening; the client reports disconnected instead
	// of surfacing a transport error.
	c := NewClient("http://127.0.0.1:1", "node-1", []byte("s"), 200*time.Millisecond)
	report := c.Status(context.Background())
	require.Equal(t, wire.ConnDisconnected, report.ConnState)
	require.Equal(t, "node-1", report.NodeID)
}

func TestClientOperate(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/containers/abc/op", r.URL.Path)
		var req OpRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, wire.OpRestart, req.Op)

		json.NewEncoder(w).Encode(ContainerReport{ID: "abc", State: wire.StateRestarting})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "node-1", []byte("s"), time.Second)
	report, err := c.Operate(context.Background(), "abc", wire.OpRestart)
	require.NoError(t, err)
	require.Equal(t, wire.StateRestarting, report.State)
}

func TestClientErrorStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "node-1", []byte("s"), time.Second)
	_, err := c.Container(context.Background(), "abc")
	require.Error(t, err)
}
