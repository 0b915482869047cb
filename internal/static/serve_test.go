// CLASSIFICATION: COMMUNITY
// Filename: serve_test.go v0.1
// Author: Lukas Bower
// Date Modified: 2026-10-17
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package static

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestFileHandlerServesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "app.js"), "console.log(1)")
	rec := httptest.NewRecorder()
	FileHandler(dir).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app.js", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status code: %d", rec.Code)
	}
	if got := rec.Body.String(); got != "console.log(1)" {
		t.Fatalf("unexpected body: %q", got)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.Contains(ct, "javascript") {
		t.Fatalf("unexpected content type: %s", ct)
	}
}

func TestFileHandlerDirectoryIndex(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "panel", "index.html"), "<p>panel</p>")
	rec := httptest.NewRecorder()
	FileHandler(dir).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panel/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status code: %d", rec.Code)
	}
	if got := rec.Body.String(); got != "<p>panel</p>" {
		t.Fatalf("unexpected body: %q", got)
	}
}

func TestFileHandlerIndexNotRedirected(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "index.html"), "<h1>hi</h1>")
	rec := httptest.NewRecorder()
	FileHandler(dir).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/index.html", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status code: %d", rec.Code)
	}
	if got := rec.Body.String(); got != "<h1>hi</h1>" {
		t.Fatalf("unexpected body: %q", got)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type: %s", ct)
	}
}

func TestFileHandlerMissingIndexNotFound(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "docs", "readme.txt"), "")
	for _, p := range []string{"/index.html", "/missing/index.html", "/docs/index.html"} {
		rec := httptest.NewRecorder()
		FileHandler(dir).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, p, nil))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("GET %s: status code: %d (Location %q)", p, rec.Code, rec.Header().Get("Location"))
		}
	}
}

func TestFileHandlerIndexDirectoryRedirects(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "index.html"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	rec := httptest.NewRecorder()
	FileHandler(dir).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/index.html", nil))
	if rec.Code != http.StatusMovedPermanently {
		t.Fatalf("status code: %d", rec.Code)
	}
}

func TestFileHandlerDirectoryListing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "js", "auth.js"), "")
	rec := httptest.NewRecorder()
	FileHandler(dir).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/js/", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status code: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "auth.js") {
		t.Fatalf("listing missing entry: %s", rec.Body.String())
	}
}

func TestFileHandlerStaysInsideRoot(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "root")
	writeFile(t, filepath.Join(parent, "secret.txt"), "secret")
	writeFile(t, filepath.Join(root, "ok.txt"), "ok")

	ts := httptest.NewServer(FileHandler(root))
	defer ts.Close()
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/", nil)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	req.URL.Opaque = "/../secret.txt"
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if strings.Contains(string(body), "secret") {
		t.Fatalf("served file outside root")
	}
}
