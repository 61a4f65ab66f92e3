// Package web embeds the browser front-end served under /static.
package web

import "embed"

//go:embed static
var StaticFiles embed.FS
