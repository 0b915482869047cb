// CLASSIFICATION: COMMUNITY
// Filename: routes.go v0.2
// Author: Lukas Bower
// Date Modified: 2026-10-17
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package devserver

import (
	"net/http"

	"corsserve/internal/static"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// routes builds the handler chain. Everything below corsMiddleware,
// including panics recovered as 500 and chi's 405, leaves with the CORS
// headers attached.
func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(corsMiddleware)
	r.Use(middleware.Recoverer)
	if s.limiter != nil {
		r.Use(rateLimitMiddleware(s.limiter))
	}

	files := static.FileHandler(s.cfg.Root)
	r.Method(http.MethodGet, "/*", files)
	r.Method(http.MethodHead, "/*", files)
	return r
}
