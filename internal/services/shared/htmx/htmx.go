// Package htmx renders full pages or partial fragments depending on whether a
// request was issued by htmx.
package htmx

import (
	"context"
	"html"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

const (
	// RequestHeaderKey is the htmx request header used to detect partial updates.
	RequestHeaderKey = "HX-Request"
	// TriggerHeaderKey asks htmx to dispatch a client-side event.
	TriggerHeaderKey = "HX-Trigger"
)

// IsHTMXRequest reports whether the request was initiated by htmx.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(r.Header.Get(RequestHeaderKey), "true")
}

// TitleTag formats an escaped `<title>` element.
func TitleTag(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	return "<title>" + html.EscapeString(title) + "</title>"
}

// SetTrigger asks htmx to dispatch event on the client after the swap.
func SetTrigger(w http.ResponseWriter, event string) {
	event = strings.TrimSpace(event)
	if w == nil || event == "" {
		return
	}
	w.Header().Set(TriggerHeaderKey, event)
}

// RenderPage writes fragment for htmx requests and full otherwise.
//
// htmx responses are prefixed with a title tag so the browser title follows
// partial navigation. If fragment is nil, full is used for both paths.
func RenderPage(w http.ResponseWriter, r *http.Request, fragment templ.Component, full templ.Component, title string, status int) error {
	if status <= 0 {
		status = http.StatusOK
	}
	target := full
	if IsHTMXRequest(r) && fragment != nil {
		target = fragment
	}
	if target == nil {
		target = fragment
	}
	if target == nil {
		w.WriteHeader(status)
		return nil
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if IsHTMXRequest(r) {
		if tag := TitleTag(title); tag != "" {
			if _, err := w.Write([]byte(tag)); err != nil {
				return err
			}
		}
	}
	return target.Render(requestContext(r), w)
}

func requestContext(r *http.Request) context.Context {
	if r == nil {
		return context.Background()
	}
	return r.Context()
}
