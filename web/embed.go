// Package web provides the embedded static assets (CSS, JS) served at
// /static/.
package web

import "embed"

//go:embed all:static
var StaticFS embed.FS
