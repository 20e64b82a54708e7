package webui

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// Checkbox renders a toggle input. The checked state is passed in
// explicitly; the component keeps no state of its own.
func Checkbox(name string, checked bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		escaped := html.EscapeString(name)
		attr := ""
		if checked {
			attr = " checked"
		}
		_, err := fmt.Fprintf(w,
			`<input type="checkbox" class="toggle" id=%q name=%q%s>`,
			escaped, escaped, attr)
		return err
	})
}

// StateBadge renders a colored badge for a deployment or node state.
// Unknown states fall back to the neutral badge class.
func StateBadge(state string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		class := "badge"
		switch state {
		case "running":
			class = "badge badge-ok"
		case "exited", "dead", "unreachable":
			class = "badge badge-err"
		case "paused", "restarting":
			class = "badge badge-warn"
		}
		_, err := fmt.Fprintf(w, `<span class=%q>%s</span>`,
			class, html.EscapeString(state))
		return err
	})
}
