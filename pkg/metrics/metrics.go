package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder counts what benchpark generates. Each Recorder owns its registry.
type Recorder struct {
	registry *prometheus.Registry

	ExperimentsGenerated *prometheus.CounterVec
	AllocationFailures   *prometheus.CounterVec
	ArtifactsWritten     *prometheus.CounterVec
	OperationDuration    *prometheus.HistogramVec
}

func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		ExperimentsGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "benchpark_experiments_generated_total",
				Help: "Total number of experiments written to workspaces",
			},
			[]string{"benchmark"},
		),
		AllocationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "benchpark_allocation_failures_total",
				Help: "Total number of experiments whose allocation could not be resolved",
			},
			[]string{"benchmark"},
		),
		ArtifactsWritten: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "benchpark_artifacts_written_total",
				Help: "Total number of files written",
			},
			[]string{"operation"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "benchpark_operation_duration_seconds",
				Help:    "Duration of benchpark operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// Observe records the time elapsed since start for operation.
func (r *Recorder) Observe(operation string, start time.Time) {
	r.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteFile writes every metric in text exposition format to path.
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics to %s: %w", path, err)
	}

	return nil
}
