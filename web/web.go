// Package web embeds the browser front end.
package web

import "embed"

// StaticFiles holds index.html, app.js and styles.css under static/.
//
//go:embed static
var StaticFiles embed.FS
