package middleware

import (
	"net/http"
	"time"

	"github.com/RayuduBharani/meetocure-hs/internal/infrastructure/metrics"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// statusRecorder captures the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

type ObservabilityMiddleware struct {
	log     *logrus.Logger
	metrics *metrics.Metrics
}

func NewObservabilityMiddleware(log *logrus.Logger, m *metrics.Metrics) *ObservabilityMiddleware {
	return &ObservabilityMiddleware{log: log, metrics: m}
}

// Handle logs each request and records it under its route template, so path
// parameters do not explode label cardinality.
func (m *ObservabilityMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := "unmatched"
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		elapsed := time.Since(start)

		m.metrics.ObserveRequest(r.Method, route, rec.status, elapsed.Seconds())
		m.log.WithFields(logrus.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"route":       route,
			"status":      rec.status,
			"duration_ms": elapsed.Milliseconds(),
		}).Info("request")
	})
}
