package errors

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// counts dispatched error responses
type Metrics struct {
	dispatched *prometheus.CounterVec
}

// creates the dispatcher metrics and registers them with reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		dispatched: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "ledgerly",
				Name:      "errors_dispatched_total",
				Help:      "Error responses produced by the dispatcher, by status and caller type.",
			},
			[]string{"status", "caller"},
		),
	}

	reg.MustRegister(m.dispatched)
	return m
}

func (m *Metrics) observe(kind Kind, caller Caller) {
	if m == nil {
		return
	}

	m.dispatched.WithLabelValues(strconv.Itoa(kind.Status()), caller.String()).Inc()
}
