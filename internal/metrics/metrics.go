// Package metrics exposes wizard dispatch counters to Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hotel-ob/internal/wizard"
)

const (
	namespace = "hotelob"
	subsystem = "wizard"
)

// Recorder counts step dispatches and failed backend calls. It implements
// wizard.Observer.
type Recorder struct {
	registry    *prometheus.Registry
	dispatches  *prometheus.CounterVec
	callFailure *prometheus.CounterVec
}

// NewRecorder registers the wizard metrics on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		dispatches: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "step_dispatches_total",
				Help:      "Total number of step submissions by outcome",
			},
			[]string{"step", "outcome"},
		),
		callFailure: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "call_failures_total",
				Help:      "Total number of rejected backend calls",
			},
			[]string{"step", "call", "blocking"},
		),
	}
}

// StepDispatched implements wizard.Observer.
func (r *Recorder) StepDispatched(step wizard.Step, outcome string) {
	r.dispatches.WithLabelValues(string(step), outcome).Inc()
}

// CallFailed implements wizard.Observer. Per-policy call names are folded
// into one label value to keep cardinality bounded.
func (r *Recorder) CallFailed(step wizard.Step, call string, blocking bool) {
	if i := strings.IndexByte(call, '('); i > 0 {
		call = call[:i]
	}
	r.callFailure.WithLabelValues(string(step), call, strconv.FormatBool(blocking)).Inc()
}

// Registry returns the registry holding the wizard metrics.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
