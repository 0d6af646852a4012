package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "kazakh_tutor"

// Chat outcomes, used as the "outcome" label of the replies counter.
const (
	OutcomeOK          = "ok"
	OutcomeEmptyInput  = "empty_input"
	OutcomeConfigError = "config_error"
	OutcomeUpstream    = "upstream_error"
	OutcomeEmptyReply  = "empty_reply"
	OutcomePanic       = "panic"
)

type Metrics struct {
	registry *prometheus.Registry

	ChatReplies   *prometheus.CounterVec
	GeminiLatency *prometheus.HistogramVec
}

// New creates a registry with the relay's collectors plus the Go runtime
// and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ChatReplies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_replies_total",
			Help:      "Chat replies sent, by outcome.",
		}, []string{"outcome"}),
		GeminiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "gemini_request_duration_seconds",
			Help:      "Latency of Gemini GenerateContent calls.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		m.ChatReplies,
		m.GeminiLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveReply(outcome string) {
	if m == nil {
		return
	}
	m.ChatReplies.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveGemini(result string, seconds float64) {
	if m == nil {
		return
	}
	m.GeminiLatency.WithLabelValues(result).Observe(seconds)
}
