package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics tracks connections and requests.
type Metrics struct {
	Connections     prometheus.Gauge
	Refused         prometheus.Counter
	Requests        *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates the server metrics, registered with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Connections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "periodd_connections",
			Help: "Number of open websocket connections",
		}),
		Refused: factory.NewCounter(prometheus.CounterOpts{
			Name: "periodd_connections_refused_total",
			Help: "Connections refused because every slot was taken",
		}),
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "periodd_requests_total",
			Help: "Requests handled, by header and result",
		}, []string{"header", "result"}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "periodd_request_duration_seconds",
			Help:    "Time spent handling a request",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}, []string{"header"}),
	}
}

// ObserveRequest records a handled request.
// Call with time.Now() at the start of the request.
func (m *Metrics) ObserveRequest(header string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Requests.WithLabelValues(header, result).Inc()
	m.RequestDuration.WithLabelValues(header).Observe(time.Since(start).Seconds())
}

func (srv *PeriodServer) metricsHandler() http.Handler {
	return promhttp.HandlerFor(srv.registry, promhttp.HandlerOpts{})
}
