// CLASSIFICATION: COMMUNITY
// Filename: serve.go v0.3
// Author: Lukas Bower
// Date Modified: 2026-10-17
// License: SPDX-License-Identifier: MIT OR Apache-2.0

// Package static serves a directory tree with net/http file semantics:
// index.html lookup, directory listings, MIME inference, range and
// conditional requests. Paths cannot escape dir.
package static

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

const indexPage = "/index.html"

// FileHandler returns an HTTP handler that serves files from dir.
//
// Unlike http.FileServer, an explicit request for .../index.html is
// answered with the file, or 404 when it is missing, instead of a redirect
// to the directory.
func FileHandler(dir string) http.Handler {
	root := http.Dir(dir)
	files := http.FileServer(root)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, indexPage) && serveIndex(w, r, root) {
			return
		}
		files.ServeHTTP(w, r)
	})
}

// serveIndex answers a request for an index.html path. It returns false
// only when the path names a directory, leaving it to http.FileServer.
func serveIndex(w http.ResponseWriter, r *http.Request, root http.FileSystem) bool {
	f, err := root.Open(path.Clean("/" + r.URL.Path))
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			http.NotFound(w, r)
		case errors.Is(err, fs.ErrPermission):
			http.Error(w, "403 Forbidden", http.StatusForbidden)
		default:
			http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		}
		return true
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
		return true
	}
	if info.IsDir() {
		return false
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}
