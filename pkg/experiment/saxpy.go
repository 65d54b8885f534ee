package experiment

import (
	"benchpark/pkg/allocation"
	"benchpark/pkg/spec"
)

var saxpyProblemSizes = []int{128, 256, 512, 1024}

// Saxpy is a single precision a*x+y kernel, one experiment per problem size.
type Saxpy struct{}

func (Saxpy) Name() string { return "saxpy" }

func (Saxpy) Description() string {
	return "single precision a*x+y kernel over a range of problem sizes"
}

func (Saxpy) Capabilities() Capabilities {
	return Capabilities{
		ProgrammingModels: []ProgrammingModel{OpenMP, CUDA, ROCm},
		Profiling:         true,
	}
}

func (Saxpy) Variants() []spec.VariantDef {
	return []spec.VariantDef{
		{Name: "workload", Default: "problem", Values: []string{"problem"}, Description: "workload name"},
		{Name: "version", Default: "1.0.0", Values: []string{"1.0.0", "latest"}, Description: "app version"},
	}
}

func (s Saxpy) Workload(e *Experiment) (*Workload, error) {
	w := &Workload{
		Name:       e.Spec.Value("workload"),
		Executable: "saxpy -n {n}",
	}

	for _, n := range saxpyProblemSizes {
		inst := Instance{
			Variables: map[string]interface{}{"n": n},
		}

		if e.Model.UsesGPUs() {
			inst.Request = allocation.Request{NGPUs: allocation.Int(1)}
			inst.Name = e.Name(n, "1gpu")
		} else {
			inst.Request = allocation.Request{
				NRanks:          allocation.Int(8),
				NThreadsPerProc: allocation.Int(2),
			}
			inst.Name = e.Name(n, "8ranks")
		}

		w.Instances = append(w.Instances, inst)
	}

	return w, nil
}
