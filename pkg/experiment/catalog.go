package experiment

import (
	"sort"

	bperrors "benchpark/pkg/errors"
)

// Catalog is the set of benchmarks experiments can be generated for.
type Catalog struct {
	benchmarks map[string]Benchmark
}

// NewCatalog returns a catalogue of the supplied benchmarks.
func NewCatalog(benchmarks ...Benchmark) *Catalog {
	c := &Catalog{benchmarks: make(map[string]Benchmark, len(benchmarks))}
	for _, b := range benchmarks {
		c.benchmarks[b.Name()] = b
	}

	return c
}

// DefaultCatalog returns every built in benchmark.
func DefaultCatalog() *Catalog {
	return NewCatalog(Saxpy{}, AMG2023{})
}

// Get looks up a benchmark by name.
func (c *Catalog) Get(name string) (Benchmark, error) {
	b, ok := c.benchmarks[name]
	if !ok {
		return nil, bperrors.NewBenchmarkNotFound(name, c.Names())
	}

	return b, nil
}

// Names returns the benchmark names, sorted.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.benchmarks))
	for name := range c.benchmarks {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}
