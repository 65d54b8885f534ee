package system

import (
	"fmt"
	"runtime"

	"benchpark/pkg/allocation"
	"benchpark/pkg/spec"
)

// Host describes the machine benchpark runs on. Cores and memory are detected
// unless given as variants.
func Host() *System {
	return &System{
		Name:    "host",
		Summary: "the local machine, detected at init time, mpirun launcher",
		VariantDefs: []spec.VariantDef{
			{Name: "cores", Values: spec.IntValues, Description: "Cores per node, detected when unset"},
			{Name: "gpus", Description: "GPUs per node, zero when unset"},
			{Name: "mem", Description: "Memory per node, e.g. 64GB, detected when unset"},
			{Name: "scheduler", Default: allocation.SchedulerMPI, Values: allocation.Schedulers(), Description: "Launcher to use"},
		},
		configure: configureHost,
	}
}

func configureHost(s *spec.Spec, d *Description) error {
	d.Scheduler = s.Value("scheduler")

	cores, set, err := s.Int("cores")
	if err != nil {
		return err
	}

	if !set {
		cores = runtime.NumCPU()
	}

	gpus, _, err := s.Int("gpus")
	if err != nil {
		return err
	}

	if gpus < 0 {
		return fmt.Errorf("gpus must not be negative, got %d", gpus)
	}

	mem := s.Value("mem")
	if mem == "" {
		bytes, err := detectMemory()
		if err != nil {
			return fmt.Errorf("detecting memory, pass mem=<size>: %w", err)
		}

		mem = allocation.FormatMemory(bytes)
	}

	d.Hardware = Hardware{CoresPerNode: cores, GPUsPerNode: gpus, MemPerNode: mem}
	d.Software = map[string]string{
		"default-compiler": "gcc",
		"default-mpi":      "openmpi",
		"blas":             "openblas",
		"lapack":           "openblas",
	}

	return nil
}
