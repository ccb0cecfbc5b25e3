package app

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/felixbrock/partnerdash/internal/component"
)

const analyticsPath = "/partner/analytics"

func routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(analyticsPath, ComponentHandler(analytics))
	mux.Handle("/healthz", ComponentHandler(healthz))
	mux.Handle("/", ComponentHandler(notFound))
	return mux
}

// analytics serves the bare panel to htmx slot swaps and a full page otherwise.
func analytics(w http.ResponseWriter, r *http.Request) *ComponentResponse {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		return errorResponse(get405(), nil)
	}

	var c templ.Component = component.Analytics()
	if !isHTMX(r) {
		c = component.Page(component.AnalyticsTitle, c)
	}

	return &ComponentResponse{Component: c, Code: 200, ContentType: "text/html; charset=utf-8"}
}

func healthz(w http.ResponseWriter, r *http.Request) *ComponentResponse {
	ok := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "ok")
		return err
	})

	return &ComponentResponse{Component: ok, Code: 200, ContentType: "text/plain; charset=utf-8"}
}

func notFound(w http.ResponseWriter, r *http.Request) *ComponentResponse {
	return errorResponse(get404(), nil)
}
