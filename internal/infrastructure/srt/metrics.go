package srt

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/X1ag/SRTScheduler/internal/domain"
)

// Metrics counts calls made against the service. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	requests    *prometheus.CounterVec
	relogins    prometheus.Counter
	searchPages prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "srt",
			Name:      "requests_total",
			Help:      "Requests sent to the SRT service by path and outcome.",
		}, []string{"path", "outcome"}),
		relogins: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "srt",
			Name:      "relogins_total",
			Help:      "Automatic re-authentications after an expired session.",
		}),
		searchPages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "srt",
			Name:      "search_pages_total",
			Help:      "Schedule pages fetched.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.requests, m.relogins, m.searchPages)
	}
	return m
}

func (m *Metrics) observeRequest(path string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		var e *domain.Error
		if errors.As(err, &e) {
			outcome = string(e.Kind)
		} else {
			outcome = "transport"
		}
	}
	m.requests.WithLabelValues(path, outcome).Inc()
}

func (m *Metrics) observeRelogin() {
	if m == nil {
		return
	}
	m.relogins.Inc()
}

func (m *Metrics) observeSearchPage() {
	if m == nil {
		return
	}
	m.searchPages.Inc()
}
