package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jakechorley/shmira-scheduler/pkg/core/model"
)

const namespace = "shmira"

// Metrics holds the counters of one process. Watch mode keeps a single
// instance so counters accumulate across passes.
type Metrics struct {
	registry *prometheus.Registry

	ShiftsAdded         prometheus.Counter
	ShiftsRemoved       prometheus.Counter
	MappingsAdded       prometheus.Counter
	MappingsArchived    prometheus.Counter
	NotificationsSent   prometheus.Counter
	NotificationsFailed prometheus.Counter
	ArchiveRecords      prometheus.Counter
	Skipped             *prometheus.CounterVec
	Runs                *prometheus.CounterVec
	LastRunDuration     prometheus.Gauge
	LastSuccess         prometheus.Gauge
}

// New creates and registers every metric on a private registry
func New() *Metrics {
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
	}

	m := &Metrics{
		registry:            prometheus.NewRegistry(),
		ShiftsAdded:         counter("shifts_added_total", "Shifts appended to the shift master."),
		ShiftsRemoved:       counter("shifts_removed_total", "Obsolete shifts deleted from the shift master."),
		MappingsAdded:       counter("mappings_added_total", "Event mappings added."),
		MappingsArchived:    counter("mappings_archived_total", "Obsolete event mappings moved to the mapping archive."),
		NotificationsSent:   counter("notifications_sent_total", "Event notices sent."),
		NotificationsFailed: counter("notifications_failed_total", "Event notices that failed to send and stay unsent."),
		ArchiveRecords:      counter("archive_records_total", "Historical records appended."),
		Skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "skipped_records_total",
			Help:      "Records skipped by a phase, by reason.",
		}, []string{"phase", "reason"}),
		Runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Pipeline passes by outcome.",
		}, []string{"outcome"}),
		LastRunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_duration_seconds",
			Help:      "Duration of the most recent pass.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the most recent successful pass.",
		}),
	}

	m.registry.MustRegister(
		m.ShiftsAdded, m.ShiftsRemoved,
		m.MappingsAdded, m.MappingsArchived,
		m.NotificationsSent, m.NotificationsFailed,
		m.ArchiveRecords, m.Skipped, m.Runs,
		m.LastRunDuration, m.LastSuccess,
	)
	return m
}

// Registry exposes the registry for gathering
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Skip counts skipped records of a phase
func (m *Metrics) Skip(phase string, skips []model.Skip) {
	for _, s := range skips {
		m.Skipped.WithLabelValues(phase, string(s.Reason)).Inc()
	}
}

// ObserveRun records the outcome of one pass
func (m *Metrics) ObserveRun(started, finished time.Time, err error) {
	m.LastRunDuration.Set(finished.Sub(started).Seconds())
	if err != nil {
		m.Runs.WithLabelValues("failure").Inc()
		return
	}
	m.Runs.WithLabelValues("success").Inc()
	m.LastSuccess.Set(float64(finished.Unix()))
}

// WriteToTextfile writes the registry in the node exporter textfile format
func (m *Metrics) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
