// CLASSIFICATION: COMMUNITY
// Filename: cors.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-17
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package devserver

import (
	"io"
	"net/http"
)

// CORS header values attached to every response.
const (
	AllowOrigin  = "*"
	AllowMethods = "GET, POST, OPTIONS"
	AllowHeaders = "Content-Type"
	CacheControl = "no-store, no-cache, must-revalidate"
)

var corsHeaders = [...]struct{ key, value string }{
	{"Access-Control-Allow-Origin", AllowOrigin},
	{"Access-Control-Allow-Methods", AllowMethods},
	{"Access-Control-Allow-Headers", AllowHeaders},
	{"Cache-Control", CacheControl},
}

func setCORSHeaders(h http.Header) {
	for _, kv := range corsHeaders {
		h.Set(kv.key, kv.value)
	}
}

// corsMiddleware answers OPTIONS on any path with 200 and an empty body.
// Every other response gets the CORS headers set when its status line is
// committed, after the wrapped handler has set its own. net/http drops
// Cache-Control on file-serving errors, so setting them up front is not
// enough.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			h := w.Header()
			setCORSHeaders(h)
			h.Set("Content-Length", "0")
			w.WriteHeader(http.StatusOK)
			return
		}
		cw := &corsWriter{ResponseWriter: w}
		next.ServeHTTP(cw, r)
		if !cw.wroteHeader {
			cw.WriteHeader(http.StatusOK)
		}
	})
}

type corsWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *corsWriter) WriteHeader(code int) {
	if w.wroteHeader {
		w.ResponseWriter.WriteHeader(code)
		return
	}
	setCORSHeaders(w.ResponseWriter.Header())
	// 1xx responses (other than 101) are informational and do not commit.
	if code >= http.StatusOK || code == http.StatusSwitchingProtocols {
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *corsWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// ReadFrom keeps the sendfile path of the underlying writer available to
// http.FileServer.
func (w *corsWriter) ReadFrom(r io.Reader) (int64, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if rf, ok := w.ResponseWriter.(io.ReaderFrom); ok {
		return rf.ReadFrom(r)
	}
	return io.Copy(w.ResponseWriter, r)
}

func (w *corsWriter) Flush() {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *corsWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
