// Package views holds the HTML templates, embedded into the binary.
package views

import "embed"

//go:embed layouts card admin console partials *.html
var FS embed.FS
