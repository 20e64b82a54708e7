package webui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckboxChecked(t *testing.T) {
	out, err := RenderToString(Checkbox("auto-refresh", true))
	require.NoError(t, err)
	assert.Contains(t, out, `name="auto-refresh"`)
	assert.Contains(t, out, " checked")
}

func TestCheckboxUnchecked(t *testing.T) {
	out, err := RenderToString(Checkbox("auto-refresh", false))
	require.NoError(t, err)
	assert.NotContains(t, out, "checked")
}

func TestCheckboxEscapesName(t *testing.T) {
	out, err := RenderToString(Checkbox(`"><script>`, false))
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}

func TestStateBadge(t *testing.T) {
	tests := []struct {
		state string
		class string
	}{
		{"running", "badge badge-ok"},
		{"exited", "badge badge-err"},
		{"unreachable", "badge badge-err"},
		{"paused", "badge badge-warn"},
		{"created", "badge"},
		{"UNKNOWN", "badge"},
	}
	for _, tt := range tests {
		out, err := RenderToString(StateBadge(tt.state))
		require.NoError(t, err)
		assert.Contains(t, out, `class="`+tt.class+`"`, tt.state)
	}
}
