package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v2"

	"benchpark/pkg/defaults"
	bperrors "benchpark/pkg/errors"
	"benchpark/pkg/experiment"
	"benchpark/pkg/modifier"
	"benchpark/pkg/ports"
	"benchpark/pkg/ramble"
	"benchpark/pkg/spec"
	"benchpark/pkg/system"
)

// InitExperiment implements BenchparkUseCases.
func (a *App) InitExperiment(ctx context.Context, dest string, args []string) (*ports.ExperimentInitResult, error) {
	const operation = "experiment-init"

	logger := a.logger(ctx, operation)
	defer a.ports.Metrics.Observe(operation, time.Now())

	s, err := spec.Parse(args)
	if err != nil {
		return nil, fmt.Errorf("parsing experiment spec: %w", err)
	}

	b, err := a.ports.Benchmarks.Get(s.Name)
	if err != nil {
		return nil, err
	}

	e, err := experiment.New(b, s)
	if err != nil {
		return nil, fmt.Errorf("configuring experiment: %w", err)
	}

	if err := a.ensureEmpty(dest); err != nil {
		return nil, err
	}

	logger.Infof("initialising %s in %s", e.Spec, dest)

	doc, err := e.Document(nil, nil)
	if err != nil {
		return nil, fmt.Errorf("building ramble document: %w", err)
	}

	rambleData, err := ramble.Marshal(doc)
	if err != nil {
		return nil, err
	}

	names := instanceNames(e)

	record, err := yaml.Marshal(&experimentRecord{
		Benchmark:   b.Name(),
		Spec:        e.Spec.String(),
		Created:     a.ports.Clock().UTC(),
		Experiments: names,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding experiment record: %w", err)
	}

	files, err := a.write(ctx, operation, []artifact{
		{path: filepath.Join(dest, defaults.ExperimentFile), data: record},
		{path: filepath.Join(dest, defaults.RambleFile), data: rambleData},
		{path: filepath.Join(dest, defaults.ExecutionTemplateFile), data: []byte(ramble.ExecutionTemplate)},
	})
	if err != nil {
		return nil, err
	}

	return &ports.ExperimentInitResult{
		Dir:         dest,
		Spec:        e.Spec.String(),
		Experiments: names,
		Files:       files,
	}, nil
}

// InitSystem implements BenchparkUseCases.
func (a *App) InitSystem(ctx context.Context, dest string, args []string) (*ports.SystemInitResult, error) {
	const operation = "system-init"

	logger := a.logger(ctx, operation)
	defer a.ports.Metrics.Observe(operation, time.Now())

	s, err := spec.Parse(args)
	if err != nil {
		return nil, fmt.Errorf("parsing system spec: %w", err)
	}

	sys, err := a.ports.Systems.Get(s.Name)
	if err != nil {
		return nil, err
	}

	desc, err := sys.Describe(s)
	if err != nil {
		return nil, err
	}

	if err := a.ensureEmpty(dest); err != nil {
		return nil, err
	}

	logger.Infof("initialising %s in %s", desc.Spec, dest)

	files, err := system.Write(a.ports.FileSystem, dest, desc)
	a.ports.Metrics.ArtifactsWritten.WithLabelValues(operation).Add(float64(len(files)))

	if err != nil {
		return nil, err
	}

	return &ports.SystemInitResult{Dir: dest, Spec: desc.Spec, Files: files}, nil
}

// List implements BenchparkUseCases.
func (a *App) List(ctx context.Context, kind ports.ListKind) ([]string, error) {
	a.logger(ctx, "list").Debugf("listing %s", kind)

	switch kind {
	case ports.ListBenchmarks:
		names := a.ports.Benchmarks.Names()
		lines := make([]string, 0, len(names))

		for _, name := range names {
			b, err := a.ports.Benchmarks.Get(name)
			if err != nil {
				return nil, err
			}

			lines = append(lines, fmt.Sprintf("%s: %s", name, b.Description()))
		}

		return lines, nil
	case ports.ListSystems:
		names := a.ports.Systems.Names()
		lines := make([]string, 0, len(names))

		for _, name := range names {
			s, err := a.ports.Systems.Get(name)
			if err != nil {
				return nil, err
			}

			lines = append(lines, fmt.Sprintf("%s: %s", name, s.Summary))
		}

		return lines, nil
	case ports.ListModifiers:
		return modifier.Describe(), nil
	default:
		return nil, fmt.Errorf("%w %q, expected one of %s, %s, %s", bperrors.ErrUnknownListKind,
			kind, ports.ListBenchmarks, ports.ListSystems, ports.ListModifiers)
	}
}

func instanceNames(e *experiment.Experiment) []string {
	w := e.Workload()
	names := make([]string, 0, len(w.Instances))

	for _, inst := range w.Instances {
		names = append(names, inst.Name)
	}

	return names
}
