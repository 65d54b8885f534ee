package experiment

import (
	"fmt"
	"sort"
	"strings"

	"benchpark/pkg/allocation"
	bperrors "benchpark/pkg/errors"
	"benchpark/pkg/modifier"
	"benchpark/pkg/ramble"
	"benchpark/pkg/scaling"
	"benchpark/pkg/spec"
)

// Benchmark describes one benchmark the catalogue can generate experiments for.
type Benchmark interface {
	Name() string
	Description() string
	Capabilities() Capabilities
	// Variants returns the benchmark specific variants.
	Variants() []spec.VariantDef
	// Workload builds the workload for a configured experiment.
	Workload(e *Experiment) (*Workload, error)
}

// Workload is the set of experiment instances a benchmark produces.
type Workload struct {
	Name string
	// Executable is the run command, with {variable} placeholders.
	Executable string
	Env        map[string]string
	Variables  map[string]interface{}
	Instances  []Instance
}

// Instance is one concrete experiment with its resource request.
type Instance struct {
	Name      string
	Variables map[string]interface{}
	Request   allocation.Request
}

// Experiment is a benchmark configured by a spec.
type Experiment struct {
	Benchmark  Benchmark
	Spec       *spec.Spec
	Model      ProgrammingModel
	Scaling    string
	Factor     int
	Iterations int
	Caliper    *modifier.Caliper

	overrides allocation.Request
	workload  *Workload
}

// New configures b from s. The spec is validated against every declared variant
// and its defaults are applied.
func New(b Benchmark, s *spec.Spec) (*Experiment, error) {
	caps := b.Capabilities()

	model, err := caps.selectModel(s)
	if err != nil {
		return nil, err
	}

	strategy, err := caps.selectScaling(s)
	if err != nil {
		return nil, err
	}

	defs := Variants(b)
	if err := s.Validate(defs, isRequestKey); err != nil {
		return nil, fmt.Errorf("validating %s: %w", s.Name, err)
	}

	s.ApplyDefaults(defs)

	e := &Experiment{
		Benchmark:  b,
		Spec:       s,
		Model:      model,
		Scaling:    strategy,
		Factor:     1,
		Iterations: 1,
	}

	if strategy != "" {
		if e.Factor, _, err = s.Int(scaling.FactorVariant); err != nil {
			return nil, err
		}

		if e.Iterations, _, err = s.Int(scaling.IterationsVariant); err != nil {
			return nil, err
		}
	}

	if caps.Profiling {
		if e.Caliper, err = modifier.NewCaliper(s.Values(modifier.CaliperVariant), string(model)); err != nil {
			return nil, err
		}
	}

	if e.overrides, err = requestOverrides(s); err != nil {
		return nil, err
	}

	if e.workload, err = b.Workload(e); err != nil {
		return nil, fmt.Errorf("building %s workload: %w", b.Name(), err)
	}

	seen := map[string]bool{}
	for _, inst := range e.workload.Instances {
		if seen[inst.Name] {
			return nil, fmt.Errorf("%w: experiment %s generated more than once", bperrors.ErrInvalidScaling, inst.Name)
		}

		seen[inst.Name] = true
	}

	return e, nil
}

// Variants returns every variant b accepts: capability variants, the caliper
// variant when profiling is supported, then the benchmark's own.
func Variants(b Benchmark) []spec.VariantDef {
	caps := b.Capabilities()

	defs := caps.variants()
	if caps.Profiling {
		defs = append(defs, modifier.Variant())
	}

	return append(defs, b.Variants()...)
}

// Prefix names the scaling study, e.g. "strong_scaling", or "" without one.
func (e *Experiment) Prefix() string {
	if e.Scaling == "" {
		return ""
	}

	return e.Scaling + "_scaling"
}

// Name builds an instance name from the benchmark, scaling prefix, model and parts.
func (e *Experiment) Name(parts ...interface{}) string {
	fields := []string{e.Benchmark.Name()}
	if p := e.Prefix(); p != "" {
		fields = append(fields, p)
	}

	fields = append(fields, string(e.Model))
	for _, p := range parts {
		fields = append(fields, fmt.Sprint(p))
	}

	return strings.Join(fields, "_")
}

// Workload returns the workload with request overrides applied to every instance.
func (e *Experiment) Workload() *Workload {
	w := *e.workload
	w.Instances = make([]Instance, len(e.workload.Instances))

	for i, inst := range e.workload.Instances {
		inst.Request = merge(inst.Request, e.overrides)
		w.Instances[i] = inst
	}

	return &w
}

// PackageSpec returns the spack spec the benchmark is built with.
func (e *Experiment) PackageSpec() string {
	pkg := e.Benchmark.Name()

	switch e.Model {
	case OpenMP:
		pkg += "+openmp"
	case CUDA:
		pkg += "+cuda cuda_arch={cuda_arch}"
	case ROCm:
		pkg += "+rocm amdgpu_target={rocm_arch}"
	}

	if e.Caliper.Enabled() {
		pkg += " +caliper"
	}

	return pkg
}

// Env returns the workload environment plus modifier and model variables.
func (e *Experiment) Env() map[string]string {
	env := map[string]string{}
	for k, v := range e.workload.Env {
		env[k] = v
	}

	if e.Model == OpenMP {
		env["OMP_NUM_THREADS"] = "{n_threads_per_proc}"
	}

	for k, v := range e.Caliper.EnvVars() {
		env[k] = v
	}

	return env
}

// InstanceVars supplies additional per-instance variables when rendering.
type InstanceVars func(inst Instance) (map[string]interface{}, error)

// Document renders the experiment as a ramble document. Each instance carries
// its own variables, its request and whatever extra returns.
func (e *Experiment) Document(include []string, extra InstanceVars) (*ramble.Document, error) {
	w := e.Workload()
	name := e.Benchmark.Name()

	experiments := make(map[string]ramble.Experiment, len(w.Instances))

	for _, inst := range w.Instances {
		vars := map[string]interface{}{}
		for k, v := range inst.Variables {
			vars[k] = v
		}

		for k, v := range inst.Request.Variables() {
			vars[k] = v
		}

		if extra != nil {
			more, err := extra(inst)
			if err != nil {
				return nil, err
			}

			for k, v := range more {
				vars[k] = v
			}
		}

		experiments[inst.Name] = ramble.Experiment{
			Variants:  map[string]string{"package_manager": "spack"},
			Variables: vars,
		}
	}

	workload := ramble.Workload{
		Variables:   w.Variables,
		Experiments: experiments,
	}

	if env := e.Env(); len(env) > 0 {
		workload.EnvVars = &ramble.EnvVars{Set: env}
	}

	packages := map[string]ramble.Package{
		name: {PkgSpec: e.PackageSpec(), Compiler: "default-compiler"},
	}
	envPackages := []string{"default-mpi", name}

	if e.Caliper.Enabled() {
		packages[modifier.CaliperName] = ramble.Package{PkgSpec: e.Caliper.PackageSpec(), Compiler: "default-compiler"}
		envPackages = append(envPackages, modifier.CaliperName)
	}

	return &ramble.Document{Ramble: ramble.Spec{
		Include:   include,
		Config:    ramble.DefaultConfig(),
		Modifiers: e.Caliper.Modifiers(),
		Applications: map[string]ramble.Application{
			name: {Workloads: map[string]ramble.Workload{w.Name: workload}},
		},
		Software: ramble.Software{
			Packages:     packages,
			Environments: map[string]ramble.Environment{name: {Packages: envPackages}},
		},
	}}, nil
}

// zip turns scaled series into one variable set per iteration.
func zip(series map[string][]int, n int) []map[string]int {
	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}

	sort.Strings(names)

	out := make([]map[string]int, n)
	for i := range out {
		out[i] = make(map[string]int, len(names))
		for _, name := range names {
			values := series[name]
			out[i][name] = values[len(values)-1]
			if i < len(values) {
				out[i][name] = values[i]
			}
		}
	}

	return out
}
