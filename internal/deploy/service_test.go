package deploy

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"dockhand/internal/dto"
	"dockhand/internal/store"
	"dockhand/internal/wire"
)

// fakeBackend records calls and plays back canned states.
type fakeBackend struct {
	state     wire.ContainerState
	conn      wire.ConnState
	failOps   bool
	created   []string
	operated  []wire.ContainerOp
	removed   []string
	nextCtrID int
}

func (f *fakeBackend) Create(_ context.Context, d *dto.Deployment) (string, wire.ContainerState, error) {
	if f.failOps {
		return "", wire.StateUnknown, fmt.Errorf("backend down")
	}
	f.nextCtrID++
	id := fmt.Sprintf("ctr-%d", f.nextCtrID)
	f.created = append(f.created, d.Name)
	return id, f.state, nil
}

func (f *fakeBackend) Operate(_ context.Context, _ string, op wire.ContainerOp) (wire.ContainerState, error) {
	if f.failOps {
		return wire.StateUnknown, fmt.Errorf("backend down")
	}
	f.operated = append(f.operated, op)
	switch op {
	case wire.OpStop:
		return wire.StateExited, nil
	default:
		return wire.StateRunning, nil
	}
}

func (f *fakeBackend) State(_ context.Context, _ string) (wire.ContainerState, error) {
	if f.failOps {
		return wire.StateUnknown, fmt.Errorf("backend down")
	}
	return f.state, nil
}

func (f *fakeBackend) Remove(_ context.Context, id string) error {
	f.removed = append(f.removed, id)
	return nil
}

func (f *fakeBackend) ConnState(_ context.Context) wire.ConnState {
	return f.conn
}

func newTestService(t *testing.T, be backend) (*Service, *store.Store) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, st.Close()) })

	s := NewService(st, nil, nil, []byte("secret"), time.Second, "dockhand")
	s.backendFor = func(*dto.Node) backend { return be }
	return s, st
}

func registerNode(t *testing.T, s *Service) *dto.Node {
	t.Helper()
	n, err := s.RegisterNode(context.Background(), dto.NodeRegisterRequest{
		Name: "worker-1", Type: "docker",
	})
	require.NoError(t, err)
	return n
}

func TestCreateDeployment(t *testing.T) {
	be := &fakeBackend{state: wire.StateCreated}
	s, _ := newTestService(t, be)
	node := registerNode(t, s)
	ctx := context.Background()

	d, err := s.Create(ctx, dto.DeploymentCreateRequest{
		Name:   "web",
		Image:  "nginx",
		NodeID: node.ID,
		Ports:  []string{"8080:80"},
	})
	require.NoError(t, err)

	require.Equal(t, "web", d.Name)
	require.Equal(t, "latest", d.Tag)
	require.Equal(t, 1, d.Replicas)
	require.Equal(t, "ctr-1", d.ContainerID)
	require.Equal(t, "created", d.State)
	require.Equal(t, []string{"web"}, be.created)
}

func TestCreateSanitizesName(t *testing.T) {
	be := &fakeBackend{state: wire.StateCreated}
	s, _ := newTestService(t, be)
	node := registerNode(t, s)

	d, err := s.Create(context.Background(), dto.DeploymentCreateRequest{
		Name:   "  <script>alert(1)</script>web  ",
		Image:  "nginx",
		NodeID: node.ID,
	})
	require.NoError(t, err)
	require.Equal(t, "web", d.Name)

	// A name that sanitizes to nothing is rejected.
	_, err = s.Create(context.Background(), dto.DeploymentCreateRequest{
		Name:   "<script></script>",
		Image:  "nginx",
		NodeID: node.ID,
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateUnknownNode(t *testing.T) {
	s, _ := newTestService(t, &fakeBackend{})

	_, err := s.Create(context.Background(), dto.DeploymentCreateRequest{
		Name: "web", Image: "nginx", NodeID: "missing",
	})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestOperateLifecycle(t *testing.T) {
	be := &fakeBackend{state: wire.StateCreated}
	s, _ := newTestService(t, be)
	node := registerNode(t, s)
	ctx := context.Background()

	d, err := s.Create(ctx, dto.DeploymentCreateRequest{Name: "web", Image: "nginx", NodeID: node.ID})
	require.NoError(t, err)

	started, err := s.Operate(ctx, d.ID, "start")
	require.NoError(t, err)
	require.Equal(t, "running", started.State)

	stopped, err := s.Operate(ctx, d.ID, "stop")
	require.NoError(t, err)
	require.Equal(t, "exited", stopped.State)

	restarted, err := s.Operate(ctx, d.ID, "restart")
	require.NoError(t, err)
	require.Equal(t, "running", restarted.State)

	require.Equal(t, []wire.ContainerOp{wire.OpStart, wire.OpStop, wire.OpRestart}, be.operated)
}

func TestOperateUnrecognized(t *testing.T) {
	be := &fakeBackend{state: wire.StateCreated}
	s, _ := newTestService(t, be)
	node := registerNode(t, s)
	ctx := context.Background()

	d, err := s.Create(ctx, dto.DeploymentCreateRequest{Name: "web", Image: "nginx", NodeID: node.ID})
	require.NoError(t, err)

	_, err = s.Operate(ctx, d.ID, "pause")
	require.ErrorIs(t, err, ErrUnrecognizedOperation)
	require.Empty(t, be.operated)
}

func TestUpdateSemverDowngrade(t *testing.T) {
	be := &fakeBackend{state: wire.StateRunning}
	s, _ := newTestService(t, be)
	node := registerNode(t, s)
	ctx := context.Background()

	d, err := s.Create(ctx, dto.DeploymentCreateRequest{Name: "web", Image: "nginx", Tag: "1.27.0", NodeID: node.ID})
	require.NoError(t, err)

	// Downgrade without force is refused.
	_, err = s.Update(ctx, d.ID, dto.DeploymentUpdateRequest{Tag: "1.26.0"})
	require.ErrorIs(t, err, ErrDowngrade)

	// Forced downgrade goes through.
	updated, err := s.Update(ctx, d.ID, dto.DeploymentUpdateRequest{Tag: "1.26.0", Force: true})
	require.NoError(t, err)
	require.Equal(t, "1.26.0", updated.Tag)

	// Upgrades never need force.
	updated, err = s.Update(ctx, d.ID, dto.DeploymentUpdateRequest{Tag: "1.28.1"})
	require.NoError(t, err)
	require.Equal(t, "1.28.1", updated.Tag)

	// Non-semver tags skip the comparison entirely.
	updated, err = s.Update(ctx, d.ID, dto.DeploymentUpdateRequest{Tag: "stable"})
	require.NoError(t, err)
	require.Equal(t, "stable", updated.Tag)
}

func TestUpdateRedeploysOnImageChange(t *testing.T) {
	be := &fakeBackend{state: wire.StateRunning}
	s, _ := newTestService(t, be)
	node := registerNode(t, s)
	ctx := context.Background()

	d, err := s.Create(ctx, dto.DeploymentCreateRequest{Name: "web", Image: "nginx", NodeID: node.ID})
	require.NoError(t, err)
	oldContainer := d.ContainerID

	updated, err := s.Update(ctx, d.ID, dto.DeploymentUpdateRequest{Image: "caddy"})
	require.NoError(t, err)
	require.NotEqual(t, oldContainer, updated.ContainerID)
	require.Equal(t, []string{oldContainer}, be.removed)
}

func TestRemoveDeployment(t *testing.T) {
	be := &fakeBackend{state: wire.StateRunning}
	s, st := newTestService(t, be)
	node := registerNode(t, s)
	ctx := context.Background()

	d, err := s.Create(ctx, dto.DeploymentCreateRequest{Name: "web", Image: "nginx", NodeID: node.ID})
	require.NoError(t, err)

	require.NoError(t, s.Remove(ctx, d.ID))
	require.Equal(t, []string{d.ContainerID}, be.removed)

	_, err = st.GetDeployment(ctx, d.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestRefreshUpdatesState(t *testing.T) {
	be := &fakeBackend{state: wire.StateCreated}
	s, _ := newTestService(t, be)
	node := registerNode(t, s)
	ctx := context.Background()

	d, err := s.Create(ctx, dto.DeploymentCreateRequest{Name: "web", Image: "nginx", NodeID: node.ID})
	require.NoError(t, err)
	require.Equal(t, "created", d.State)

	be.state = wire.StateRunning
	refreshed, err := s.Refresh(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, "running", refreshed.State)
}

func TestRefreshKeepsStateWhenBackendDown(t *testing.T) {
	be := &fakeBackend{state: wire.StateRunning}
	s, _ := newTestService(t, be)
	node := registerNode(t, s)
	ctx := context.Background()

	d, err := s.Create(ctx, dto.DeploymentCreateRequest{Name: "web", Image: "nginx", NodeID: node.ID})
	require.NoError(t, err)

	be.failOps = true
	refreshed, err := s.Refresh(ctx, d.ID)
	require.NoError(t, err)
	require.Equal(t, "running", refreshed.State)
}

func TestRegisterNodeNormalizesType(t *testing.T) {
	s, _ := newTestService(t, &fakeBackend{})
	ctx := context.Background()

	n, err := s.RegisterNode(ctx, dto.NodeRegisterRequest{Name: "a", Type: "docker"})
	require.NoError(t, err)
	require.Equal(t, "docker", n.Type)

	n, err = s.RegisterNode(ctx, dto.NodeRegisterRequest{Name: "b", Type: "kubernetes"})
	require.NoError(t, err)
	require.Equal(t, "kubernetes", n.Type)

	// Anything else collapses to the second backend.
	n, err = s.RegisterNode(ctx, dto.NodeRegisterRequest{Name: "c", Type: "nomad"})
	require.NoError(t, err)
	require.Equal(t, "kubernetes", n.Type)
}

func TestRefreshNodeStatus(t *testing.T) {
	be := &fakeBackend{conn: wire.ConnConnected}
	s, _ := newTestService(t, be)
	node := registerNode(t, s)
	ctx := context.Background()

	require.Equal(t, "unreachable", node.Status)

	refreshed, err := s.RefreshNode(ctx, node.ID)
	require.NoError(t, err)
	require.Equal(t, "running", refreshed.Status)

	be.conn = wire.ConnDisconnected
	refreshed, err = s.RefreshNode(ctx, node.ID)
	require.NoError(t, err)
	require.Equal(t, "unreachable", refreshed.Status)

	// Unknown connection states also collapse to unreachable.
	be.conn = wire.ConnState(9)
	refreshed, err = s.RefreshNode(ctx, node.ID)
	require.NoError(t, err)
	require.Equal(t, "unreachable", refreshed.Status)
}
