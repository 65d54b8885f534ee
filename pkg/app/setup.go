package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/opencontainers/go-digest"
	"gopkg.in/yaml.v2"

	"benchpark/pkg/allocation"
	"benchpark/pkg/defaults"
	"benchpark/pkg/experiment"
	"benchpark/pkg/ports"
	"benchpark/pkg/ramble"
	"benchpark/pkg/system"
)

// resolvedInstance is an experiment instance placed on a system.
type resolvedInstance struct {
	instance   experiment.Instance
	allocation *allocation.Resolved
	directives *allocation.Directives
}

func (r resolvedInstance) variables() map[string]interface{} {
	vars := r.allocation.Variables()
	for k, v := range r.directives.Variables() {
		vars[k] = v
	}

	return vars
}

// Setup implements BenchparkUseCases.
func (a *App) Setup(ctx context.Context, experimentDir, systemDir, workspaceDir string) (*ports.SetupResult, error) {
	const operation = "setup"

	logger := a.logger(ctx, operation)
	defer a.ports.Metrics.Observe(operation, time.Now())

	_, s, err := loadExperimentRecord(a.ports.FileSystem, experimentDir)
	if err != nil {
		return nil, err
	}

	b, err := a.ports.Benchmarks.Get(s.Name)
	if err != nil {
		return nil, err
	}

	e, err := experiment.New(b, s)
	if err != nil {
		return nil, fmt.Errorf("configuring experiment from %s: %w", experimentDir, err)
	}

	desc, err := system.Load(a.ports.FileSystem, systemDir)
	if err != nil {
		return nil, err
	}

	if a.cfg.BatchTimeout > 0 {
		desc.Timeout = a.cfg.BatchTimeout
	}

	logger.Infof("setting up %s on %s in %s", e.Spec, desc.Spec, workspaceDir)

	resolved, err := a.resolve(ctx, e, desc)
	if err != nil {
		return nil, err
	}

	if err := a.ensureEmpty(workspaceDir); err != nil {
		return nil, err
	}

	configDir := filepath.Join(workspaceDir, defaults.WorkspaceConfigDir)
	include := []string{
		"./" + filepath.Join(defaults.WorkspaceConfigDir, defaults.VariablesFile),
		"./" + filepath.Join(defaults.WorkspaceConfigDir, defaults.SoftwareFile),
	}

	doc, err := e.Document(include, func(inst experiment.Instance) (map[string]interface{}, error) {
		return resolved[inst.Name].variables(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("building ramble document: %w", err)
	}

	artifacts := make([]artifact, 0, 4+len(resolved))

	for _, entry := range []struct {
		name string
		doc  interface{}
	}{
		{defaults.RambleFile, doc},
		{defaults.VariablesFile, desc.VariablesDocument()},
		{defaults.SoftwareFile, desc.SoftwareDocument()},
	} {
		data, err := ramble.Marshal(entry.doc)
		if err != nil {
			return nil, err
		}

		artifacts = append(artifacts, artifact{path: filepath.Join(configDir, entry.name), data: data})
	}

	artifacts = append(artifacts, artifact{
		path: filepath.Join(configDir, defaults.ExecutionTemplateFile),
		data: []byte(ramble.ExecutionTemplate),
	})

	w := e.Workload()
	names := make([]string, 0, len(w.Instances))

	for _, inst := range w.Instances {
		script, path, err := a.renderScript(e, w, desc, resolved[inst.Name], workspaceDir)
		if err != nil {
			return nil, err
		}

		artifacts = append(artifacts, artifact{path: path, data: []byte(script), perm: defaults.ScriptFilePerm})
		names = append(names, inst.Name)
	}

	id, err := a.ports.IdentifierService.GenerateRandom()
	if err != nil {
		return nil, fmt.Errorf("generating workspace id: %w", err)
	}

	m := &manifest{
		WorkspaceID: id,
		Created:     a.ports.Clock().UTC(),
		Experiment:  e.Spec.String(),
		System:      desc.Spec,
	}

	for _, f := range artifacts {
		rel, err := filepath.Rel(workspaceDir, f.path)
		if err != nil {
			return nil, fmt.Errorf("relativising %s: %w", f.path, err)
		}

		m.Artifacts = append(m.Artifacts, artifactRecord{Path: rel, Digest: digest.FromBytes(f.data).String()})
	}

	manifestData, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}

	artifacts = append(artifacts, artifact{path: filepath.Join(workspaceDir, defaults.ManifestFile), data: manifestData})

	files, err := a.write(ctx, operation, artifacts)
	if err != nil {
		return nil, err
	}

	a.ports.Metrics.ExperimentsGenerated.WithLabelValues(b.Name()).Add(float64(len(names)))

	logger.WithField("workspace", id).Infof("generated %d experiments", len(names))

	return &ports.SetupResult{
		WorkspaceID: id,
		Dir:         workspaceDir,
		Experiments: names,
		Files:       files,
	}, nil
}

// resolve places every instance on the system, reporting all failures together.
func (a *App) resolve(ctx context.Context, e *experiment.Experiment, desc *system.Description) (map[string]resolvedInstance, error) {
	logger := a.logger(ctx, "resolve")

	capacity, err := desc.Capacity()
	if err != nil {
		return nil, err
	}

	var result *multierror.Error

	resolved := map[string]resolvedInstance{}

	for _, inst := range e.Workload().Instances {
		alloc, err := allocation.Resolve(capacity, inst.Request)
		if err != nil {
			a.ports.Metrics.AllocationFailures.WithLabelValues(e.Benchmark.Name()).Inc()
			result = multierror.Append(result, fmt.Errorf("experiment %s: %w", inst.Name, err))

			continue
		}

		directives, err := alloc.Directives(desc.Scheduler, desc.Timeout)
		if err != nil {
			return nil, fmt.Errorf("system %s: %w", desc.Name, err)
		}

		logger.Debugf("%s: %d nodes, %d ranks, %d gpus, bound by %s",
			inst.Name, alloc.NNodes, alloc.NRanks, alloc.NGPUs, alloc.BoundBy)

		resolved[inst.Name] = resolvedInstance{instance: inst, allocation: alloc, directives: directives}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, fmt.Errorf("resolving allocations on %s: %w", desc.Name, err)
	}

	return resolved, nil
}

// renderScript expands the execution template for one experiment and returns
// it with the path it belongs at.
func (a *App) renderScript(e *experiment.Experiment, w *experiment.Workload, desc *system.Description,
	r resolvedInstance, workspaceDir string,
) (string, string, error) {
	application := e.Benchmark.Name()
	runDir := filepath.Join(workspaceDir, defaults.WorkspaceExperimentsDir, application, w.Name, r.instance.Name)
	scriptPath := filepath.Join(runDir, defaults.ScriptFile)

	vars := desc.RambleVariables()

	for _, layer := range []map[string]interface{}{w.Variables, r.instance.Variables, r.variables()} {
		for k, v := range layer {
			vars[k] = v
		}
	}

	vars["application_name"] = application
	vars["workload_name"] = w.Name
	vars["experiment_name"] = r.instance.Name
	vars["experiment_run_dir"] = runDir
	vars["execute_experiment"] = scriptPath

	command, err := ramble.Command{
		Env:        e.Env(),
		Launcher:   r.directives.MPICommand,
		Executable: w.Executable,
	}.Render()
	if err != nil {
		return "", "", fmt.Errorf("experiment %s: %w", r.instance.Name, err)
	}

	vars["command"] = strings.TrimRight(command, "\n")

	return ramble.Expand(ramble.ExecutionTemplate, vars), scriptPath, nil
}
