package app

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	"github.com/felixbrock/partnerdash/internal/component"
)

type ComponentResponse struct {
	Error       error
	Message     string
	Code        int
	ContentType string
	Component   templ.Component
}

type ComponentHandler func(http.ResponseWriter, *http.Request) *ComponentResponse

func (ch ComponentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := ch(w, r)

	if resp.Error != nil {
		slog.Error(fmt.Sprintf(`Error occured: %s`, resp.Error.Error()),
			"request_id", RequestID(r.Context()))
	}

	code := resp.Code
	if code == 0 {
		code = http.StatusOK
	}

	// htmx only swaps 2xx responses into the slot
	if isHTMX(r) && (code < 200 || code > 299) {
		code = http.StatusOK
	}

	contentType := resp.ContentType
	if contentType == "" {
		contentType = "text/html; charset=utf-8"
	}

	var buf bytes.Buffer
	err := resp.Component.Render(r.Context(), &buf)
	if err != nil {
		slog.Error(fmt.Sprintf(`Error occured: %s`, err.Error()),
			"request_id", RequestID(r.Context()))
		http.Error(w, "templ: failed to render template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)
	_, err = w.Write(buf.Bytes())
	if err != nil {
		slog.Warn(fmt.Sprintf(`Failed to write response: %s`, err.Error()),
			"request_id", RequestID(r.Context()))
	}
}

func errorResponse(e errCtx, err error) *ComponentResponse {
	return &ComponentResponse{
		Component:   component.Error(e.Code, e.Title, e.Msg),
		Code:        e.Code,
		Message:     e.Title,
		ContentType: "text/html; charset=utf-8",
		Error:       err,
	}
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
