package metrics

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	StatusOK    = "ok"
	StatusFault = "fault"
)

type Metrics struct {
	apiCalls *prometheus.CounterVec
}

func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		apiCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "webpower_api_calls_total",
				Help: "Total number of SOAP API calls, by operation and outcome.",
			},
			[]string{"operation", "status"},
		),
	}

	reg.MustRegister(m.apiCalls)
	return m
}

// ObserveCall counts one API call. Safe on a nil receiver so callers without
// metrics configured need no guard.
func (m *Metrics) ObserveCall(operation string, status string) {
	if m == nil {
		return
	}
	m.apiCalls.WithLabelValues(operation, status).Inc()
}

// StartServer exposes the default registry on /metrics in a background
// goroutine.
func (m *Metrics) StartServer(port int) {
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())

		slog.Info(fmt.Sprintf("starting metrics server on :%d", port))
		if err := http.ListenAndServe(":"+strconv.Itoa(port), mux); err != nil {
			slog.Error(fmt.Sprintf("metrics server stopped: %v", err))
		}
	}()
}
