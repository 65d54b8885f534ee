package ports

import "context"

// IDService is a port for a service that generates identifiers.
type IDService interface {
	// GenerateRandom generates a random identifier.
	GenerateRandom() (string, error)
}

// ListKind names what List reports on.
type ListKind string

const (
	ListBenchmarks ListKind = "benchmarks"
	ListSystems    ListKind = "systems"
	ListModifiers  ListKind = "modifiers"
)

// ExperimentInitResult reports what InitExperiment produced.
type ExperimentInitResult struct {
	Dir         string
	Spec        string
	Experiments []string
	Files       []string
}

// SystemInitResult reports what InitSystem produced.
type SystemInitResult struct {
	Dir   string
	Spec  string
	Files []string
}

// SetupResult reports what Setup produced.
type SetupResult struct {
	WorkspaceID string
	Dir         string
	Experiments []string
	Files       []string
}

// BenchparkUseCases is the port for the operations exposed on the command line.
type BenchparkUseCases interface {
	// InitExperiment writes an experiment directory for the benchmark spec in args.
	InitExperiment(ctx context.Context, dest string, args []string) (*ExperimentInitResult, error)
	// InitSystem writes a system directory for the system spec in args.
	InitSystem(ctx context.Context, dest string, args []string) (*SystemInitResult, error)
	// Setup combines an experiment and a system into a ramble workspace.
	Setup(ctx context.Context, experimentDir, systemDir, workspaceDir string) (*SetupResult, error)
	// List returns the names of the given kind, with a short description each.
	List(ctx context.Context, kind ListKind) ([]string, error)
}
