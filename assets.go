// Package dictate provides embedded assets for production builds.
package dictate

import "embed"

// TemplateFS holds the view templates compiled into the binary.
//
//go:embed all:web/templates
var TemplateFS embed.FS
