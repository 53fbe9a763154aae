// Package web ships the default Green Pitch document and its static assets.
package web

import "embed"

// IndexFile is the name of the default document inside Files.
const IndexFile = "index.html"

//go:embed index.html static
var Files embed.FS
