// Package templates embeds the server-rendered pages so the binary is
// self-contained.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
