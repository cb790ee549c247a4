// Package crakhack provides embedded assets for production builds.
package crakhack

import "embed"

// In dev mode (DEV=true) templates and static files are read from disk instead.

//go:embed all:frontend/static
var StaticFS embed.FS

//go:embed all:frontend/templates
var TemplateFS embed.FS
