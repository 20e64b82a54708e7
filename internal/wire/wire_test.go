package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainerOpString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "START", OpStart.String())
	assert.Equal(t, "STOP", OpStop.String())
	assert.Equal(t, "RESTART", OpRestart.String())
	assert.Equal(t, "UNRECOGNIZED", OpUnrecognized.String())
	assert.Equal(t, "ContainerOp(42)", ContainerOp(42).String())
}

func TestContainerStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "RUNNING", StateRunning.String())
	assert.Equal(t, "EXITED", StateExited.String())

	// Values outside the schema collapse to the unknown name so display
	// code never sees a raw integer.
	assert.Equal(t, "UNKNOWN", ContainerState(99).String())
}

func TestConnStateString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "CONNECTED", ConnConnected.String())
	assert.Equal(t, "DISCONNECTED", ConnDisconnected.String())
	assert.Equal(t, "UNKNOWN", ConnState(9).String())
}

func TestNodeKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "DOCKER", KindDocker.String())
	assert.Equal(t, "KUBERNETES", KindKubernetes.String())
	assert.Equal(t, "NodeKind(7)", NodeKind(7).String())
}
