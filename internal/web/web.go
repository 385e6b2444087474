// Package web embeds the frontend and the sample catalog for the server.
package web

import (
	"embed"
	"io/fs"
)

// CatalogFile is the catalog document's name inside Dist.
const CatalogFile = "movies.json"

//go:embed dist/*
var dist embed.FS

func Dist() (fs.FS, error) {
	return fs.Sub(dist, "dist")
}
