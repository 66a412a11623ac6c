package http

import (
	"sort"
	"strings"
	"sync"
)

// Middleware wraps a handler to provide cross-cutting behavior.
type Middleware func(Handler) Handler

// Router maps METHOD:PATH keys to handlers. Its Handle method is itself a
// Handler and answers unknown paths with 404 and known paths with an
// unregistered method with 405.
type Router struct {
	mu          sync.RWMutex
	routes      map[string]Handler
	middlewares []Middleware
}

// NewRouter creates an empty router.
func NewRouter() *Router {
	return &Router{
		routes: make(map[string]Handler),
	}
}

// Use appends middleware to the router chain in registration order.
func (r *Router) Use(middlewares ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middlewares = append(r.middlewares, middlewares...)
}

// Register maps a method/path pair to a handler.
func (r *Router) Register(method, path string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[routeKey(method, path)] = handler
}

// Lookup returns the handler for a method/path pair.
func (r *Router) Lookup(method, path string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	handler, ok := r.routes[routeKey(method, path)]
	return handler, ok
}

// Resolve returns a route handler wrapped with the registered middleware chain.
func (r *Router) Resolve(method, path string) (Handler, bool) {
	r.mu.RLock()
	handler, ok := r.routes[routeKey(method, path)]
	if !ok {
		r.mu.RUnlock()
		return nil, false
	}

	middlewares := make([]Middleware, len(r.middlewares))
	copy(middlewares, r.middlewares)
	r.mu.RUnlock()

	wrapped := applyMiddleware(handler, middlewares)
	return wrapped, true
}

// AllowedMethods returns sorted HTTP methods registered for a path.
func (r *Router) AllowedMethods(path string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]struct{})
	suffix := ":" + routePath(path)
	for key := range r.routes {
		if strings.HasSuffix(key, suffix) {
			method := strings.TrimSuffix(key, suffix)
			if method != "" {
				seen[method] = struct{}{}
			}
		}
	}

	methods := make([]string, 0, len(seen))
	for method := range seen {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return methods
}

// Handle dispatches req to its route.
func (r *Router) Handle(req *Request) (*Response, error) {
	handler, ok := r.Resolve(req.Method, req.Path)
	if !ok || handler == nil {
		if allowed := r.AllowedMethods(req.Path); len(allowed) > 0 {
			return textResponse(405, "Method Not Allowed").
				SetHeader("Allow", strings.Join(allowed, ", ")), nil
		}
		return textResponse(404, "Not Found"), nil
	}

	return handler(req)
}

// applyMiddleware wraps a handler with middlewares from outermost to innermost.
func applyMiddleware(handler Handler, middlewares []Middleware) Handler {
	wrapped := handler
	for i := len(middlewares) - 1; i >= 0; i-- {
		if middlewares[i] == nil {
			continue
		}
		wrapped = middlewares[i](wrapped)
	}
	return wrapped
}

// routeKey builds the router lookup key in METHOD:PATH format.
func routeKey(method, path string) string {
	return strings.ToUpper(method) + ":" + routePath(path)
}

// routePath drops the query string from a request target.
func routePath(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}
