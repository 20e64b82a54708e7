package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"dockhand/internal/dto"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func TestDeploymentCRUD(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	d := &dto.Deployment{
		ID:       uuid.NewString(),
		Name:     "web",
		Image:    "nginx",
		Tag:      "1.27.0",
		NodeID:   "node-1",
		Replicas: 2,
		State:    "created",
		Ports:    []string{"8080:80/tcp"},
	}
	require.NoError(t, s.CreateDeployment(ctx, d))
	require.False(t, d.CreatedAt.IsZero())

	got, err := s.GetDeployment(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, "web", got.Name)
	require.Equal(t, []string{"8080:80/tcp"}, got.Ports)

	byName, err := s.GetDeploymentByName(ctx, "web")
	require.NoError(t, err)
	require.Equal(t, d.ID, byName.ID)

	got.State = "running"
	got.ContainerID = "abc123"
	require.NoError(t, s.UpdateDeployment(ctx, got))

	got2, err := s.GetDeployment(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, "running", got2.State)
	require.Equal(t, "abc123", got2.ContainerID)

	all, err := s.ListDeployments(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, s.DeleteDeployment(ctx, d.ID))
	_, err = s.GetDeployment(ctx, d.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeploymentNotFound(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.GetDeployment(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	err = s.UpdateDeployment(ctx, &dto.Deployment{ID: "missing"})
	require.ErrorIs(t, err, ErrNotFound)

	err = s.DeleteDeployment(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDuplicateDeploymentName(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := &dto.Deployment{ID: uuid.NewString(), Name: "api", Image: "api", Tag: "v1", NodeID: "n1", Replicas: 1, State: "created"}
	require.NoError(t, s.CreateDeployment(ctx, first))

	dup := &dto.Deployment{ID: uuid.NewString(), Name: "api", Image: "api", Tag: "v2", NodeID: "n1", Replicas: 1, State: "created"}
	require.Error(t, s.CreateDeployment(ctx, dup))
}

func TestNodeCRUD(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	n := &dto.Node{
		ID:      uuid.NewString(),
		Name:    "worker-1",
		Type:    "docker",
		Address: "10.0.0.5:9000",
		Status:  "unreachable",
	}
	require.NoError(t, s.CreateNode(ctx, n))

	got, err := s.GetNode(ctx, n.ID)
	require.NoError(t, err)
	require.Equal(t, "docker", got.Type)

	require.NoError(t, s.UpdateNodeStatus(ctx, n.ID, "running"))

	got, err = s.GetNode(ctx, n.ID)
	require.NoError(t, err)
	require.Equal(t, "running", got.Status)

	nodes, err := s.ListNodes(ctx)
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	require.NoError(t, s.DeleteNode(ctx, n.ID))
	require.ErrorIs(t, s.UpdateNodeStatus(ctx, n.ID, "running"), ErrNotFound)
}
