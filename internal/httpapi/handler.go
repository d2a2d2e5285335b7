package httpapi

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// NewHandler returns the production handler (mux + access log + metrics).
//
// Tests can still use NewMux directly to avoid noisy logs unless needed.
func NewHandler() http.Handler {
	return NewHandlerWithOptions(Options{})
}

func NewHandlerWithOptions(opt Options) http.Handler {
	opt = opt.withDefaults()
	return withObservability(opt.Logger, NewMuxWithOptions(opt))
}

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

func (w *statusWriter) WriteHeader(statusCode int) {
	w.status = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

func withObservability(log logrus.FieldLogger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)

		status := sw.status
		if status == 0 {
			status = http.StatusOK
		}

		pattern := r.Pattern
		if pattern == "" {
			// Keep it low-cardinality.
			pattern = r.Method + " " + r.URL.Path
		}

		metricsIncRequest(pattern, status)

		// Never log the query string: subscription URLs carry tokens.
		if r.URL.Path == "/healthz" || r.URL.Path == "/metrics" {
			return
		}
		entry := log.WithFields(logrus.Fields{
			"method":  r.Method,
			"path":    r.URL.Path,
			"pattern": pattern,
			"status":  status,
			"dur":     time.Since(start).Round(time.Millisecond).String(),
			"bytes":   sw.bytes,
		})
		if status >= http.StatusInternalServerError {
			entry.Warn("http")
			return
		}
		entry.Info("http")
	})
}
