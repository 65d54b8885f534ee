package ports

import (
	"benchpark/pkg/experiment"
	"benchpark/pkg/system"
)

// BenchmarkCatalog is the port definition for the set of known benchmarks.
type BenchmarkCatalog interface {
	// Get returns the benchmark with the given name.
	Get(name string) (experiment.Benchmark, error)
	// Names returns every benchmark name, sorted.
	Names() []string
}

// SystemCatalog is the port definition for the set of known systems.
type SystemCatalog interface {
	// Get returns the system with the given name.
	Get(name string) (*system.System, error)
	// Names returns every system name, sorted.
	Names() []string
}
