// Package router is a small method+path router over http.ServeMux with
// wildcard path segments and structured request logging.
package router

import (
	"net/http"
	"strings"
	"time"

	"fitness-data-pipeline/internal/logger"
)

type HandlerFunc func(http.ResponseWriter, *http.Request)

type Router struct {
	mux       *http.ServeMux
	routes    map[string]HandlerFunc // key = METHOD:PATH
	paths     map[string]bool        // registered path patterns
	wildcards []string               // wildcard patterns, in registration order
}

func New() *Router {
	r := &Router{
		mux:    http.NewServeMux(),
		routes: make(map[string]HandlerFunc),
		paths:  make(map[string]bool),
	}

	r.mux.HandleFunc("/", func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		lrw := &loggingResponseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		key := req.Method + ":" + req.URL.Path
		if h, ok := r.routes[key]; ok {
			h(lrw, req)
		} else if h, ok := r.matchWildcard(req.Method, req.URL.Path); ok {
			h(lrw, req)
		} else {
			http.NotFound(lrw, req)
		}

		logger.Debug("http request",
			"method", req.Method,
			"path", req.URL.Path,
			"status", lrw.statusCode,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})

	return r
}

// matchWildcard finds a registered wildcard route for the request
// path. Patterns are tried in registration order, so more specific
// routes must be registered first.
func (r *Router) matchWildcard(method, path string) (HandlerFunc, bool) {
	for _, pattern := range r.wildcards {
		if matchWildcardRoute(path, pattern) {
			if h, ok := r.routes[method+":"+pattern]; ok {
				return h, true
			}
		}
	}
	return nil, false
}

// matchWildcardRoute checks if a request path matches a route pattern
// where "*" matches exactly one segment, or any remaining segments when
// it is the pattern's last segment.
func matchWildcardRoute(requestPath, routePattern string) bool {
	requestSegments := strings.Split(strings.Trim(requestPath, "/"), "/")
	routeSegments := strings.Split(strings.Trim(routePattern, "/"), "/")

	if len(routeSegments) > 0 && routeSegments[len(routeSegments)-1] == "*" {
		if len(requestSegments) < len(routeSegments)-1 {
			return false
		}
		for i := 0; i < len(routeSegments)-1; i++ {
			if routeSegments[i] != "*" && requestSegments[i] != routeSegments[i] {
				return false
			}
		}
		return true
	}

	if len(requestSegments) != len(routeSegments) {
		return false
	}
	for i, seg := range routeSegments {
		if seg == "*" {
			continue
		}
		if requestSegments[i] != seg {
			return false
		}
	}
	return true
}

func (r *Router) register(method, path string, handler HandlerFunc) {
	r.routes[method+":"+path] = handler
	if !r.paths[path] && strings.Contains(path, "/*") {
		r.wildcards = append(r.wildcards, path)
	}
	r.paths[path] = true
}

func (r *Router) GET(path string, handler HandlerFunc)  { r.register(http.MethodGet, path, handler) }
func (r *Router) POST(path string, handler HandlerFunc) { r.register(http.MethodPost, path, handler) }
func (r *Router) PUT(path string, handler HandlerFunc)  { r.register(http.MethodPut, path, handler) }
func (r *Router) DELETE(path string, handler HandlerFunc) {
	r.register(http.MethodDelete, path, handler)
}

// Start runs the HTTP server on addr.
func (r *Router) Start(addr string) error {
	logger.Info("http server listening", "addr", addr)
	return http.ListenAndServe(addr, r.mux)
}

type loggingResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.statusCode = code
	lrw.ResponseWriter.WriteHeader(code)
}
