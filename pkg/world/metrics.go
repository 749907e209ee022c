package world

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds Prometheus counters for rendered emotes. It uses its own
// registry so several worlds can coexist in one process.
type Metrics struct {
	Registry *prometheus.Registry

	emotesTotal    *prometheus.CounterVec
	errorsTotal    *prometheus.CounterVec
	deliveredTotal prometheus.Counter
	socialsLoaded  prometheus.Gauge
}

// NewMetrics creates and registers the emote metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		emotesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mushemote_emotes_total",
			Help: "Emotes rendered, by kind.",
		}, []string{"kind"}),
		errorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mushemote_emote_errors_total",
			Help: "Emotes rejected, by error kind.",
		}, []string{"error"}),
		deliveredTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mushemote_messages_delivered_total",
			Help: "Rendered strings handed to subscribers.",
		}),
		socialsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mushemote_socials_loaded",
			Help: "Number of predefined socials currently loaded.",
		}),
	}

	m.Registry.MustRegister(
		m.emotesTotal,
		m.errorsTotal,
		m.deliveredTotal,
		m.socialsLoaded,
	)
	return m
}

// All recording methods are no-ops on a nil *Metrics.

func (m *Metrics) rendered(kind EventType) {
	if m != nil {
		m.emotesTotal.WithLabelValues(kind.String()).Inc()
	}
}

func (m *Metrics) failed(kind string) {
	if m != nil {
		m.errorsTotal.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) delivered(n int) {
	if m != nil {
		m.deliveredTotal.Add(float64(n))
	}
}

func (m *Metrics) loaded(n int) {
	if m != nil {
		m.socialsLoaded.Set(float64(n))
	}
}

// Summary gathers every metric and formats one "name{labels} value" line per
// sample, sorted.
func (m *Metrics) Summary() ([]string, error) {
	families, err := m.Registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("gathering metrics: %w", err)
	}
	var lines []string
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			var labels []string
			for _, lp := range metric.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}
			var value float64
			switch {
			case metric.GetCounter() != nil:
				value = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				value = metric.GetGauge().GetValue()
			}
			lines = append(lines, fmt.Sprintf("%s %g", name, value))
		}
	}
	sort.Strings(lines)
	return lines, nil
}
