package webui

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/http"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Renderer renders the admin pages and fragments from TemplatesFS.
type Renderer struct {
	BuildVersion string
}

// NewRenderer creates a renderer stamped with the running build version.
func NewRenderer(buildVersion string) *Renderer {
	return &Renderer{BuildVersion: buildVersion}
}

func (r *Renderer) funcMap() template.FuncMap {
	return template.FuncMap{
		"checkbox": func(name string, checked bool) template.HTML {
			return componentHTML(Checkbox(name, checked))
		},
		"badge": func(state string) template.HTML {
			return componentHTML(StateBadge(state))
		},
	}
}

// Page renders a full admin page inside the shared layout.
func (r *Renderer) Page(c echo.Context, page string, data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}
	data["BuildVersion"] = r.BuildVersion

	tmpl, err := template.New("layout.gohtml").Funcs(r.funcMap()).ParseFS(TemplatesFS,
		"templates/layout.gohtml",
		"templates/"+page,
		"templates/fragments/*.gohtml")
	if err != nil {
		return fmt.Errorf("parse %s: %w", page, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	return c.HTML(http.StatusOK, buf.String())
}

// Fragment renders a single fragment without the layout, for htmx swaps.
func (r *Renderer) Fragment(name string, data any) (string, error) {
	tmpl, err := template.New(name + ".gohtml").Funcs(r.funcMap()).ParseFS(TemplatesFS,
		"templates/fragments/"+name+".gohtml")
	if err != nil {
		return "", fmt.Errorf("parse fragment %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render fragment %s: %w", name, err)
	}
	return buf.String(), nil
}

// Component writes a templ component as the HTML response body.
func (r *Renderer) Component(c echo.Context, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTML)
	c.Response().WriteHeader(http.StatusOK)
	if err := component.Render(c.Request().Context(), c.Response().Writer); err != nil {
		return fmt.Errorf("render component: %w", err)
	}
	return nil
}

func componentHTML(component templ.Component) template.HTML {
	var buf bytes.Buffer
	if err := component.Render(context.Background(), &buf); err != nil {
		return ""
	}
	return template.HTML(buf.String())
}

// RenderToString renders a templ component into a string, mainly for tests
// and htmx fragment responses.
func RenderToString(component templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := component.Render(context.Background(), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
