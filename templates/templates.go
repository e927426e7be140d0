// Package templates embeds the HTML pages served by the lobby fixture.
package templates

import "embed"

//go:embed *.html
var FS embed.FS
