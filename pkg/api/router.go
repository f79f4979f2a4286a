package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Handler returns the API router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/version", s.handleVersion)
	r.Get("/config", s.handleConfig)

	r.Get("/content-size", s.handleContentSize)
	r.Get("/records", s.handleRecords)
	r.Post("/invalidate", s.handleInvalidate)
	r.Put("/bounds", s.handleBounds)
	r.Put("/params", s.handleParams)

	r.Route("/board", func(r chi.Router) {
		r.Get("/", s.handleBoard)
		r.Delete("/", s.handleReset)
	})
	r.Post("/moves", s.handleMove)
	r.Get("/render/{format}", s.handleRender)

	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration", time.Since(start))
	})
}
