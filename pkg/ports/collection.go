package ports

import (
	"time"

	"github.com/spf13/afero"

	"benchpark/pkg/metrics"
)

type Collection struct {
	Benchmarks        BenchmarkCatalog
	Systems           SystemCatalog
	IdentifierService IDService
	FileSystem        afero.Fs
	Metrics           *metrics.Recorder
	Clock             func() time.Time
}
