// File: control/metrics.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package control

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/momentics/wen/api"
)

// LinkMetrics aggregates per-process link telemetry.
type LinkMetrics struct {
	LinksOpened prometheus.Counter
	LinksClosed prometheus.Counter
	SliceBytes  prometheus.Counter
	SentBytes   prometheus.Counter
	Events      *prometheus.CounterVec
	Errors      *prometheus.CounterVec
}

// NewLinkMetrics builds the collectors and registers them on reg. A nil
// registerer leaves them unregistered, which the tests use.
func NewLinkMetrics(reg prometheus.Registerer) *LinkMetrics {
	m := &LinkMetrics{
		LinksOpened: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wen", Subsystem: "link", Name: "opened_total",
			Help: "Links that completed their handshake.",
		}),
		LinksClosed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wen", Subsystem: "link", Name: "closed_total",
			Help: "Links that reached the terminal state.",
		}),
		SliceBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wen", Subsystem: "link", Name: "slice_bytes_total",
			Help: "Payload bytes delivered to the application via slices.",
		}),
		SentBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wen", Subsystem: "link", Name: "sent_bytes_total",
			Help: "Payload bytes handed to Send.",
		}),
		Events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wen", Subsystem: "link", Name: "events_total",
			Help: "Events delivered by Poll, labelled by type.",
		}, []string{"type"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wen", Subsystem: "link", Name: "errors_total",
			Help: "ERROR events delivered by Poll, labelled by kind.",
		}, []string{"kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.LinksOpened, m.LinksClosed, m.SliceBytes, m.SentBytes, m.Events, m.Errors)
	}
	return m
}

// ObserveEvent records one delivered event.
func (m *LinkMetrics) ObserveEvent(ev api.Event) {
	m.Events.WithLabelValues(ev.Type.String()).Inc()
	switch ev.Type {
	case api.EventOpen:
		m.LinksOpened.Inc()
	case api.EventClose:
		m.LinksClosed.Inc()
	case api.EventSlice:
		m.SliceBytes.Add(float64(len(ev.Slice.Data)))
	case api.EventError:
		m.Errors.WithLabelValues(ev.Err.Error()).Inc()
	}
}

// ObserveSend records payload bytes queued for transmission.
func (m *LinkMetrics) ObserveSend(n int) {
	m.SentBytes.Add(float64(n))
}
