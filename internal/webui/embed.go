// Package webui holds the embedded assets and rendering helpers for the
// browser-facing admin interface.
package webui

import "embed"

// PublicFS holds the embedded static assets served under /static.
//
//go:embed public
var PublicFS embed.FS

// TemplatesFS holds the embedded gohtml templates and localized strings.
//
//go:embed templates
var TemplatesFS embed.FS
