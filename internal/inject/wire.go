//go:build wireinject
// +build wireinject

package inject

import (
	"time"

	"github.com/google/wire"
	"github.com/spf13/afero"

	"benchpark/internal/config"
	"benchpark/pkg/app"
	"benchpark/pkg/experiment"
	"benchpark/pkg/identifier"
	"benchpark/pkg/metrics"
	"benchpark/pkg/ports"
	"benchpark/pkg/system"
)

func InitializePorts(cfg *config.Config) (*ports.Collection, error) {
	wire.Build(
		benchmarkCatalog,
		systemCatalog,
		identifier.New,
		metrics.New,
		afero.NewOsFs,
		clock,
		appPorts,
	)

	return nil, nil
}

func InitializeApp(cfg *config.Config, ports *ports.Collection) *app.App {
	wire.Build(app.New, appConfig)

	return nil
}

func appConfig(cfg *config.Config) *app.Config {
	return &app.Config{
		BatchTimeout: cfg.BatchTimeout,
	}
}

func benchmarkCatalog() ports.BenchmarkCatalog {
	return experiment.DefaultCatalog()
}

func systemCatalog() ports.SystemCatalog {
	return system.DefaultCatalog()
}

func clock() func() time.Time {
	return time.Now
}

func appPorts(benchmarks ports.BenchmarkCatalog, systems ports.SystemCatalog, is ports.IDService, fs afero.Fs, m *metrics.Recorder, clock func() time.Time) *ports.Collection {
	return &ports.Collection{
		Benchmarks:        benchmarks,
		Systems:           systems,
		IdentifierService: is,
		FileSystem:        fs,
		Metrics:           m,
		Clock:             clock,
	}
}
