package ticket

import "github.com/prometheus/client_golang/prometheus"

type Metrics struct {
	CreatedTotal       *prometheus.CounterVec
	ClosedTotal        prometheus.Counter
	CloseRejectedTotal prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CreatedTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "ticket_created_total", Help: "Tickets created."},
			[]string{"priority"},
		),
		ClosedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "ticket_closed_total", Help: "Tickets moved from Open to Closed."},
		),
		CloseRejectedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{Name: "ticket_close_rejected_total", Help: "Close requests for unknown or already closed tickets."},
		),
	}
	reg.MustRegister(m.CreatedTotal, m.ClosedTotal, m.CloseRejectedTotal)
	return m
}

func (m *Metrics) created(p Priority) {
	if m == nil {
		return
	}
	m.CreatedTotal.WithLabelValues(string(p)).Inc()
}

func (m *Metrics) closed(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.ClosedTotal.Inc()
		return
	}
	m.CloseRejectedTotal.Inc()
}
