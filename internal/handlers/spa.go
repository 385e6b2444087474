package handlers

import (
	"bytes"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"
)

const indexFile = "index.html"

// spa serves the embedded landing page. Extension-less paths that match no
// asset get index.html; missing assets are 404s.
type spa struct {
	assets fs.FS
	files  http.Handler
	index  []byte
}

func SPA(assets fs.FS) (http.Handler, error) {
	index, err := fs.ReadFile(assets, indexFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded %s: %w", indexFile, err)
	}
	return &spa{
		assets: assets,
		files:  http.FileServer(http.FS(assets)),
		index:  index,
	}, nil
}

func (s *spa) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	switch {
	case name == "":
		s.serveIndex(w, r)
	case s.isFile(name):
		// The catalog document changes without a rebuild of the page.
		if path.Ext(name) == ".json" {
			w.Header().Set("Cache-Control", "no-cache")
		}
		s.files.ServeHTTP(w, r)
	case path.Ext(name) != "":
		http.NotFound(w, r)
	default:
		s.serveIndex(w, r)
	}
}

func (s *spa) isFile(name string) bool {
	info, err := fs.Stat(s.assets, name)
	return err == nil && !info.IsDir()
}

func (s *spa) serveIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, indexFile, time.Time{}, bytes.NewReader(s.index))
}
