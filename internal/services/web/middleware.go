package web

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/louisbranch/setupassistant/internal/platform/id"
)

const headerRequestID = "X-Request-ID"

type requestIDKey struct{}

// requestIDFromContext returns the id assigned by withRequestID.
func requestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	value, _ := ctx.Value(requestIDKey{}).(string)
	return value
}

// withRequestID keeps a caller-supplied request id or assigns a new one.
func withRequestID() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := strings.TrimSpace(r.Header.Get(headerRequestID))
			if requestID == "" {
				generated, err := id.NewID()
				if err != nil {
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				requestID = generated
			}
			w.Header().Set(headerRequestID, requestID)
			ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(body []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(body)
}

// withRequestLogger logs one line per request.
func withRequestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)
			status := rec.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Printf("%s %s status=%d duration=%s request_id=%s",
				r.Method, r.URL.Path, status, time.Since(start).Round(time.Microsecond), requestIDFromContext(r.Context()))
		})
	}
}
