// Package metrics declares the Prometheus collectors of the service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry *prometheus.Registry

	DayCloseRuns         prometheus.Counter
	DayCloseMarkedAbsent prometheus.Counter
	DayCloseFailures     prometheus.Counter
	DayCloseDuration     prometheus.Histogram
	AttendanceEvents     *prometheus.CounterVec
	LeaveDecisions       *prometheus.CounterVec
}

// New registers every collector on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		DayCloseRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dayflow_dayclose_runs_total",
			Help: "Completed day-close sweeps.",
		}),
		DayCloseMarkedAbsent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dayflow_dayclose_marked_absent_total",
			Help: "Attendance records created as ABSENT by day-close sweeps.",
		}),
		DayCloseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dayflow_dayclose_failures_total",
			Help: "Employees a day-close sweep failed to process.",
		}),
		DayCloseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dayflow_dayclose_duration_seconds",
			Help:    "Wall time of day-close sweeps.",
			Buckets: prometheus.DefBuckets,
		}),
		AttendanceEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dayflow_attendance_events_total",
			Help: "Successful check-ins and check-outs.",
		}, []string{"event"}),
		LeaveDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "dayflow_leave_decisions_total",
			Help: "Leave requests decided, by resulting status.",
		}, []string{"status"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.DayCloseRuns,
		m.DayCloseMarkedAbsent,
		m.DayCloseFailures,
		m.DayCloseDuration,
		m.AttendanceEvents,
		m.LeaveDecisions,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
