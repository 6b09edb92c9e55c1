package mid

import (
	"context"
	"net/http"

	"github.com/ardanlabs/powchain/foundation/web"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request level metrics exposed on the debug /metrics endpoint.
var (
	requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "node",
		Name:      "requests_total",
		Help:      "Number of requests handled by the node API.",
	}, []string{"method"})

	requestErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "node",
		Name:      "request_errors_total",
		Help:      "Number of requests that returned an error.",
	})

	panics = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "node",
		Name:      "panics_total",
		Help:      "Number of panics recovered by the node API.",
	})
)

// Metrics updates program counters.
func Metrics() web.Middleware {

	m := func(handler web.Handler) web.Handler {

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			err := handler(ctx, w, r)

			requests.WithLabelValues(r.Method).Inc()
			if err != nil {
				requestErrors.Inc()
			}

			return err
		}

		return h
	}

	return m
}
