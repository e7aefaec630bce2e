// Package web holds the static landing page served at "/".
package web

import "embed"

//go:embed index.html
var Assets embed.FS
