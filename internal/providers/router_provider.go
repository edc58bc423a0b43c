package providers

import (
	"hourbot/internal/structures"
	"net/http"
	"strings"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	Handle(url string, handler http.Handler, methods ...string)
	GetRoutes() []structures.Route
	Has(url string) bool
}

type RouterProvider struct {
	routes []structures.Route
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.Handle(url, handler, http.MethodGet, http.MethodHead)
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.Handle(url, handler, http.MethodPost)
}

// Handle registers handler for url, answering 405 to any method not listed.
func (rp *RouterProvider) Handle(url string, handler http.Handler, methods ...string) {
	rp.routes = append(rp.routes, structures.Route{
		Url:     url,
		Handler: methodHandler(handler, methods...),
	})
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	return rp.routes
}

func (rp *RouterProvider) Has(url string) bool {
	for _, route := range rp.routes {
		if route.Url == url {
			return true
		}
	}
	return false
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{}
}

func methodHandler(handler http.Handler, methods ...string) http.Handler {
	allow := strings.Join(methods, ", ")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, m := range methods {
			if r.Method == m {
				handler.ServeHTTP(w, r)
				return
			}
		}
		w.Header().Set("Allow", allow)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
	})
}
