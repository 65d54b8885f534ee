package config

import (
	"benchpark/pkg/log"
	"benchpark/pkg/metrics"
)

// Config holds the configuration for the benchpark commands.
type Config struct {
	// Logging contains the logging related config.
	Logging log.Config
	// MetricsFile is where metrics are written after a command, in the
	// prometheus text format. Empty disables it.
	MetricsFile string
	// BatchTimeout overrides the system batch time limit, in minutes.
	BatchTimeout int

	Experiment struct {
		Dest string
	}
	System struct {
		Dest string
	}
}

// WriteMetrics writes r to the metrics file when one is configured.
func (c *Config) WriteMetrics(r *metrics.Recorder) error {
	if c.MetricsFile == "" {
		return nil
	}

	return r.WriteFile(c.MetricsFile)
}
